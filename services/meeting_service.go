package services

import (
	"errors"

	"society-connect-http-service/config"
	"society-connect-http-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MeetingWithCount 表示会议及其出席人数
type MeetingWithCount struct {
	models.Meeting
	AttendingCount int64 `json:"attending_count"`
}

// InterfaceMeetingService defines the meeting service interface
type InterfaceMeetingService interface {
	GetMeetings() ([]MeetingWithCount, error)
	CreateMeeting(principal Principal, meeting *models.Meeting) error
	UpdateMeeting(principal Principal, id uint, updates map[string]interface{}) (*models.Meeting, error)
	DeleteMeeting(principal Principal, id uint) error
	SubmitRSVP(principal Principal, meetingID uint, status models.RSVPStatus) error
	GetUserRSVPs(principal Principal) ([]models.MeetingRSVP, error)
}

// MeetingService 提供会议与回执相关的服务
type MeetingService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewMeetingService 创建一个新的会议服务
func NewMeetingService(db *gorm.DB, cfg *config.Config) InterfaceMeetingService {
	return &MeetingService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetMeetings 获取所有会议，按会议时间升序，并附带出席人数
func (s *MeetingService) GetMeetings() ([]MeetingWithCount, error) {
	var meetings []models.Meeting
	if err := s.DB.Order("meeting_date ASC").Find(&meetings).Error; err != nil {
		return nil, err
	}

	result := make([]MeetingWithCount, 0, len(meetings))
	for _, meeting := range meetings {
		var count int64
		if err := s.DB.Model(&models.MeetingRSVP{}).
			Where("meeting_id = ? AND status = ?", meeting.ID, models.RSVPAttending).
			Count(&count).Error; err != nil {
			return nil, err
		}
		result = append(result, MeetingWithCount{Meeting: meeting, AttendingCount: count})
	}

	return result, nil
}

// 2 CreateMeeting 管理员创建会议
func (s *MeetingService) CreateMeeting(principal Principal, meeting *models.Meeting) error {
	if !principal.IsAdmin() {
		return errors.New("只有管理员可以创建会议")
	}
	if meeting.Title == "" || meeting.MeetingDate.IsZero() {
		return errors.New("会议标题和时间不能为空")
	}

	meeting.CreatedBy = principal.UserID
	return s.DB.Create(meeting).Error
}

// 3 UpdateMeeting 管理员编辑会议
func (s *MeetingService) UpdateMeeting(principal Principal, id uint, updates map[string]interface{}) (*models.Meeting, error) {
	if !principal.IsAdmin() {
		return nil, errors.New("只有管理员可以编辑会议")
	}

	var meeting models.Meeting
	if err := s.DB.First(&meeting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("会议不存在")
		}
		return nil, err
	}

	if err := s.DB.Model(&meeting).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.DB.First(&meeting, id).Error; err != nil {
		return nil, err
	}
	return &meeting, nil
}

// 4 DeleteMeeting 管理员删除会议及其回执
func (s *MeetingService) DeleteMeeting(principal Principal, id uint) error {
	if !principal.IsAdmin() {
		return errors.New("只有管理员可以删除会议")
	}

	var meeting models.Meeting
	if err := s.DB.First(&meeting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("会议不存在")
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&models.MeetingRSVP{}).Error; err != nil {
			return err
		}
		return tx.Delete(&meeting).Error
	})
}

// 5 SubmitRSVP 提交或变更回执，幂等覆盖
// (meeting_id, user_id) 上只保留一条，重复提交覆盖旧值
func (s *MeetingService) SubmitRSVP(principal Principal, meetingID uint, status models.RSVPStatus) error {
	if !status.IsValid() {
		return errors.New("无效的回执状态")
	}

	var meeting models.Meeting
	if err := s.DB.First(&meeting, meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("会议不存在")
		}
		return err
	}

	rsvp := models.MeetingRSVP{
		MeetingID: meetingID,
		UserID:    principal.UserID,
		Status:    status,
	}

	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "meeting_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&rsvp).Error
}

// 6 GetUserRSVPs 获取本人所有回执
func (s *MeetingService) GetUserRSVPs(principal Principal) ([]models.MeetingRSVP, error) {
	var rsvps []models.MeetingRSVP
	if err := s.DB.Where("user_id = ?", principal.UserID).Find(&rsvps).Error; err != nil {
		return nil, err
	}
	return rsvps, nil
}

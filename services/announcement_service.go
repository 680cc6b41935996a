package services

import (
	"errors"

	"society-connect-http-service/config"
	"society-connect-http-service/models"

	"gorm.io/gorm"
)

// InterfaceAnnouncementService defines the announcement service interface
type InterfaceAnnouncementService interface {
	GetAnnouncements() ([]models.Announcement, error)
	CreateAnnouncement(principal Principal, announcement *models.Announcement) error
	UpdateAnnouncement(principal Principal, id uint, updates map[string]interface{}) (*models.Announcement, error)
	DeleteAnnouncement(principal Principal, id uint) error
}

// AnnouncementService 提供公告相关的服务，写操作仅限管理员
type AnnouncementService struct {
	DB       *gorm.DB
	Config   *config.Config
	Notifier InterfaceNotificationService
}

// NewAnnouncementService 创建一个新的公告服务
func NewAnnouncementService(db *gorm.DB, cfg *config.Config, notifier InterfaceNotificationService) InterfaceAnnouncementService {
	return &AnnouncementService{
		DB:       db,
		Config:   cfg,
		Notifier: notifier,
	}
}

// 1 GetAnnouncements 获取所有公告，按时间倒序，所有已登录用户可见
func (s *AnnouncementService) GetAnnouncements() ([]models.Announcement, error) {
	var announcements []models.Announcement
	if err := s.DB.Order("created_at DESC").Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}

// 2 CreateAnnouncement 管理员发布公告并向全体居民扇出通知
func (s *AnnouncementService) CreateAnnouncement(principal Principal, announcement *models.Announcement) error {
	if !principal.IsAdmin() {
		return errors.New("只有管理员可以发布公告")
	}
	if announcement.Title == "" || announcement.Content == "" {
		return errors.New("公告标题和内容不能为空")
	}

	announcement.CreatedBy = principal.UserID
	if err := s.DB.Create(announcement).Error; err != nil {
		return err
	}

	// 公告写入成功后扇出通知，扇出失败不影响公告本身
	if s.Notifier != nil {
		notifType := models.NotificationAnnouncement
		title := "新公告: " + announcement.Title
		if announcement.IsEmergency {
			title = "紧急公告: " + announcement.Title
		}
		if _, err := s.Notifier.FanOutToResidents(title, announcement.Content, notifType); err != nil {
			config.Warning("公告通知扇出失败: %v", err)
		}
	}

	return nil
}

// 3 UpdateAnnouncement 管理员编辑公告
func (s *AnnouncementService) UpdateAnnouncement(principal Principal, id uint, updates map[string]interface{}) (*models.Announcement, error) {
	if !principal.IsAdmin() {
		return nil, errors.New("只有管理员可以编辑公告")
	}

	var announcement models.Announcement
	if err := s.DB.First(&announcement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("公告不存在")
		}
		return nil, err
	}

	if err := s.DB.Model(&announcement).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.DB.First(&announcement, id).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

// 4 DeleteAnnouncement 管理员删除公告
func (s *AnnouncementService) DeleteAnnouncement(principal Principal, id uint) error {
	if !principal.IsAdmin() {
		return errors.New("只有管理员可以删除公告")
	}

	var announcement models.Announcement
	if err := s.DB.First(&announcement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("公告不存在")
		}
		return err
	}

	return s.DB.Delete(&announcement).Error
}

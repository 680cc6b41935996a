package services

import (
	"errors"
	"fmt"

	"society-connect-http-service/config"
	"society-connect-http-service/models"

	"gorm.io/gorm"
)

// InterfaceStaffAssignmentService defines the staff assignment service interface
type InterfaceStaffAssignmentService interface {
	GetAssignments(principal Principal) ([]models.StaffAssignment, error)
	GetMyAssignments(principal Principal) ([]models.StaffAssignment, error)
	CreateAssignment(principal Principal, assignment *models.StaffAssignment) error
	UpdateAssignmentStatus(principal Principal, id uint, status models.AssignmentStatus) (*models.StaffAssignment, error)
	DeleteAssignment(principal Principal, id uint) error
}

// StaffAssignmentService 提供定期工单(排班)相关的服务，读写仅限管理员
type StaffAssignmentService struct {
	DB       *gorm.DB
	Config   *config.Config
	Notifier InterfaceNotificationService
}

// NewStaffAssignmentService 创建一个新的工单服务
func NewStaffAssignmentService(db *gorm.DB, cfg *config.Config, notifier InterfaceNotificationService) InterfaceStaffAssignmentService {
	return &StaffAssignmentService{
		DB:       db,
		Config:   cfg,
		Notifier: notifier,
	}
}

// 1 GetAssignments 管理员获取所有工单，按时间倒序
func (s *StaffAssignmentService) GetAssignments(principal Principal) ([]models.StaffAssignment, error) {
	if !principal.IsAdmin() {
		return nil, errors.New("只有管理员可以查看工单")
	}

	var assignments []models.StaffAssignment
	if err := s.DB.Order("created_at DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// 2 GetMyAssignments 维修人员获取分配给自己的工单
func (s *StaffAssignmentService) GetMyAssignments(principal Principal) ([]models.StaffAssignment, error) {
	if !principal.IsStaff() {
		return nil, errors.New("只有维修人员可以查看本人工单")
	}

	var assignments []models.StaffAssignment
	if err := s.DB.Where("staff_user_id = ?", principal.UserID).
		Order("created_at DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// 3 CreateAssignment 管理员创建工单并通知对应的维修人员
func (s *StaffAssignmentService) CreateAssignment(principal Principal, assignment *models.StaffAssignment) error {
	if !principal.IsAdmin() {
		return errors.New("只有管理员可以创建工单")
	}
	if assignment.AssignmentType == "" {
		return errors.New("工单类型不能为空")
	}
	if !assignment.Schedule.IsValid() {
		return errors.New("无效的排班周期")
	}

	// 被安排人必须是维修人员
	var staff models.User
	if err := s.DB.First(&staff, assignment.StaffUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("维修人员不存在")
		}
		return err
	}
	if staff.Role != models.RoleMaintenanceStaff {
		return errors.New("被安排人不是维修人员")
	}

	assignment.AssignedBy = principal.UserID
	assignment.Status = models.AssignmentActive
	if err := s.DB.Create(assignment).Error; err != nil {
		return err
	}

	if s.Notifier != nil {
		title := "新的排班工单"
		message := fmt.Sprintf("您被安排为 %s（%s）", assignment.AssignmentType, assignment.Schedule)
		if err := s.Notifier.Notify(assignment.StaffUserID, title, message, models.NotificationInfo); err != nil {
			config.Warning("工单通知发送失败: %v", err)
		}
	}

	return nil
}

// 4 UpdateAssignmentStatus 管理员更新工单状态
func (s *StaffAssignmentService) UpdateAssignmentStatus(principal Principal, id uint, status models.AssignmentStatus) (*models.StaffAssignment, error) {
	if !principal.IsAdmin() {
		return nil, errors.New("只有管理员可以更新工单状态")
	}
	if !status.IsValid() {
		return nil, errors.New("无效的工单状态")
	}

	var assignment models.StaffAssignment
	if err := s.DB.First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("工单不存在")
		}
		return nil, err
	}

	if err := s.DB.Model(&assignment).Update("status", status).Error; err != nil {
		return nil, err
	}

	if err := s.DB.First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// 5 DeleteAssignment 管理员删除工单
func (s *StaffAssignmentService) DeleteAssignment(principal Principal, id uint) error {
	if !principal.IsAdmin() {
		return errors.New("只有管理员可以删除工单")
	}

	var assignment models.StaffAssignment
	if err := s.DB.First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("工单不存在")
		}
		return err
	}

	return s.DB.Delete(&assignment).Error
}

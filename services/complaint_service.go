package services

import (
	"errors"
	"fmt"
	"time"

	"society-connect-http-service/config"
	"society-connect-http-service/models"

	"gorm.io/gorm"
)

// ComplaintFilter 表示投诉列表的查询条件
type ComplaintFilter struct {
	Status   models.ComplaintStatus
	Category models.ComplaintCategory
	Priority models.ComplaintPriority
}

// InterfaceComplaintService defines the complaint service interface
type InterfaceComplaintService interface {
	CreateComplaint(principal Principal, complaint *models.Complaint) error
	GetComplaints(principal Principal, filter ComplaintFilter, page, pageSize int) ([]models.Complaint, int64, error)
	GetComplaintByID(principal Principal, id uint) (*models.Complaint, error)
	AssignComplaint(principal Principal, complaintID, staffID uint) (*models.Complaint, error)
	UpdateStatus(principal Principal, complaintID uint, to models.ComplaintStatus) (*models.Complaint, error)
	RateAndClose(principal Principal, complaintID uint, rating int, comment string) (*models.Complaint, error)
}

// ComplaintService 提供投诉生命周期相关的服务
type ComplaintService struct {
	DB       *gorm.DB
	Config   *config.Config
	Notifier InterfaceNotificationService
}

// NewComplaintService 创建一个新的投诉服务
func NewComplaintService(db *gorm.DB, cfg *config.Config, notifier InterfaceNotificationService) InterfaceComplaintService {
	return &ComplaintService{
		DB:       db,
		Config:   cfg,
		Notifier: notifier,
	}
}

// 1 CreateComplaint 居民提交新投诉，编号自动生成，楼栋门牌从档案复制
func (s *ComplaintService) CreateComplaint(principal Principal, complaint *models.Complaint) error {
	if principal.Role != models.RoleResident {
		return errors.New("只有居民可以提交投诉")
	}

	if complaint.Title == "" || complaint.Description == "" {
		return errors.New("标题和描述不能为空")
	}
	if !complaint.Category.IsValid() {
		return errors.New("无效的投诉类别")
	}
	if complaint.Priority == "" {
		complaint.Priority = models.PriorityMedium
	}
	if !complaint.Priority.IsValid() {
		return errors.New("无效的优先级")
	}

	// 从居民档案复制楼栋和门牌
	var filer models.User
	if err := s.DB.First(&filer, principal.UserID).Error; err != nil {
		return err
	}

	complaint.ResidentID = principal.UserID
	complaint.Wing = filer.Wing
	complaint.FlatNumber = filer.FlatNumber
	complaint.Status = models.ComplaintStatusSubmitted
	complaint.AssignedTo = nil
	complaint.Rating = nil
	complaint.RatingComment = nil

	return s.DB.Create(complaint).Error
}

// 2 GetComplaints 按角色过滤可见的投诉列表
// 居民只能看自己提交的，维修人员只能看分配给自己的，管理员可以看全部
func (s *ComplaintService) GetComplaints(principal Principal, filter ComplaintFilter, page, pageSize int) ([]models.Complaint, int64, error) {
	query := s.DB.Model(&models.Complaint{})

	switch principal.Role {
	case models.RoleResident:
		query = query.Where("resident_id = ?", principal.UserID)
	case models.RoleMaintenanceStaff:
		query = query.Where("assigned_to = ?", principal.UserID)
	case models.RoleAdmin:
		// 管理员无行级过滤
	default:
		return nil, 0, errors.New("没有权限查看投诉")
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pq := models.PaginationQuery{Page: page, PageSize: pageSize}
	pq.Normalize()

	var complaints []models.Complaint
	if err := query.Order("created_at DESC").
		Offset(pq.Offset()).Limit(pq.PageSize).
		Find(&complaints).Error; err != nil {
		return nil, 0, err
	}

	return complaints, total, nil
}

// 3 GetComplaintByID 获取单条投诉，按角色检查可见性
func (s *ComplaintService) GetComplaintByID(principal Principal, id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.DB.First(&complaint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("投诉不存在")
		}
		return nil, err
	}

	switch principal.Role {
	case models.RoleAdmin:
		return &complaint, nil
	case models.RoleResident:
		if complaint.ResidentID == principal.UserID {
			return &complaint, nil
		}
	case models.RoleMaintenanceStaff:
		if complaint.AssignedTo != nil && *complaint.AssignedTo == principal.UserID {
			return &complaint, nil
		}
	}

	// 对不可见的行按不存在处理，避免泄露编号
	return nil, errors.New("投诉不存在")
}

// 4 AssignComplaint 管理员把处于submitted状态的投诉分配给维修人员
// 分配后不支持改派
func (s *ComplaintService) AssignComplaint(principal Principal, complaintID, staffID uint) (*models.Complaint, error) {
	if !principal.IsAdmin() {
		return nil, errors.New("只有管理员可以分配投诉")
	}

	var complaint models.Complaint
	if err := s.DB.First(&complaint, complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("投诉不存在")
		}
		return nil, err
	}

	if complaint.Status != models.ComplaintStatusSubmitted {
		return nil, errors.New("只有待处理的投诉可以分配")
	}

	// 被分配人必须是维修人员
	var staff models.User
	if err := s.DB.First(&staff, staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("维修人员不存在")
		}
		return nil, err
	}
	if staff.Role != models.RoleMaintenanceStaff {
		return nil, errors.New("被分配人不是维修人员")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"assigned_to": staffID,
		"status":      models.ComplaintStatusAssigned,
		"assigned_at": now,
	}
	if err := s.DB.Model(&complaint).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 通知维修人员有新工单，失败不回滚分配
	if s.Notifier != nil {
		title := "新的维修任务"
		message := fmt.Sprintf("投诉 %s（%s）已分配给您", complaint.ComplaintNumber, complaint.Title)
		if err := s.Notifier.Notify(staffID, title, message, models.NotificationComplaint); err != nil {
			config.Warning("分配通知发送失败: %v", err)
		}
	}

	return s.getByID(complaintID)
}

// 5 UpdateStatus 被分配的维修人员推进状态: assigned→in_progress→resolved
func (s *ComplaintService) UpdateStatus(principal Principal, complaintID uint, to models.ComplaintStatus) (*models.Complaint, error) {
	if !principal.IsStaff() {
		return nil, errors.New("只有维修人员可以更新处理状态")
	}

	var complaint models.Complaint
	if err := s.DB.First(&complaint, complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("投诉不存在")
		}
		return nil, err
	}

	if complaint.AssignedTo == nil || *complaint.AssignedTo != principal.UserID {
		return nil, errors.New("该投诉未分配给您")
	}

	if to != models.ComplaintStatusInProgress && to != models.ComplaintStatusResolved {
		return nil, errors.New("无效的目标状态")
	}
	if !complaint.CanTransition(to) {
		return nil, errors.New("非法的状态迁移")
	}

	updates := map[string]interface{}{"status": to}
	if to == models.ComplaintStatusResolved {
		updates["resolved_at"] = time.Now()
	}
	if err := s.DB.Model(&complaint).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 解决后通知居民来评价
	if to == models.ComplaintStatusResolved && s.Notifier != nil {
		title := "投诉已解决"
		message := fmt.Sprintf("您的投诉 %s（%s）已处理完成，请评价并确认结单", complaint.ComplaintNumber, complaint.Title)
		if err := s.Notifier.Notify(complaint.ResidentID, title, message, models.NotificationComplaint); err != nil {
			config.Warning("解决通知发送失败: %v", err)
		}
	}

	return s.getByID(complaintID)
}

// 6 RateAndClose 投诉发起人对已解决的投诉评分并结单，结单后不可变更
func (s *ComplaintService) RateAndClose(principal Principal, complaintID uint, rating int, comment string) (*models.Complaint, error) {
	if principal.Role != models.RoleResident {
		return nil, errors.New("只有投诉发起人可以评价")
	}

	if rating < 1 || rating > 5 {
		return nil, errors.New("评分必须在1到5之间")
	}

	var complaint models.Complaint
	if err := s.DB.First(&complaint, complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("投诉不存在")
		}
		return nil, err
	}

	if complaint.ResidentID != principal.UserID {
		return nil, errors.New("只有投诉发起人可以评价")
	}
	if complaint.Status != models.ComplaintStatusResolved {
		return nil, errors.New("只有已解决的投诉可以评价结单")
	}

	updates := map[string]interface{}{
		"status":    models.ComplaintStatusClosed,
		"closed_at": time.Now(),
		"rating":    rating,
	}
	if comment != "" {
		updates["rating_comment"] = comment
	}
	if err := s.DB.Model(&complaint).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.getByID(complaintID)
}

// getByID 不做权限过滤的内部读取
func (s *ComplaintService) getByID(id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.DB.First(&complaint, id).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

package services

import (
	"errors"
	"time"

	"society-connect-http-service/config"
	"society-connect-http-service/models"

	"gorm.io/gorm"
)

// DashboardStats 表示按角色裁剪的首页统计
type DashboardStats struct {
	Role models.UserRole `json:"role"`

	// 居民视角
	MyComplaints     int64 `json:"my_complaints,omitempty"`
	MyOpenComplaints int64 `json:"my_open_complaints,omitempty"`
	PaymentDue       bool  `json:"payment_due,omitempty"`

	// 维修人员视角
	AssignedTasks  int64 `json:"assigned_tasks,omitempty"`
	TasksInProcess int64 `json:"tasks_in_process,omitempty"`
	TasksResolved  int64 `json:"tasks_resolved,omitempty"`

	// 管理员视角
	TotalComplaints   int64 `json:"total_complaints,omitempty"`
	PendingComplaints int64 `json:"pending_complaints,omitempty"`
	TotalResidents    int64 `json:"total_residents,omitempty"`
	UpcomingMeetings  int64 `json:"upcoming_meetings,omitempty"`
}

// CountItem 表示一个分组计数
type CountItem struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// ComplaintAnalytics 表示管理员的投诉分析视图
type ComplaintAnalytics struct {
	Total             int64       `json:"total"`
	Resolved          int64       `json:"resolved"`
	Pending           int64       `json:"pending"`
	AvgResolutionDays float64     `json:"avg_resolution_days"`
	ByCategory        []CountItem `json:"by_category"`
	ByStatus          []CountItem `json:"by_status"`
	ByWing            []CountItem `json:"by_wing"`
	ByPriority        []CountItem `json:"by_priority"`
}

// InterfaceDashboardService defines the dashboard service interface
type InterfaceDashboardService interface {
	GetStats(principal Principal) (*DashboardStats, error)
	GetComplaintAnalytics(principal Principal) (*ComplaintAnalytics, error)
}

// DashboardService 提供只读的汇总统计，每次请求基于当前数据重新计算
type DashboardService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewDashboardService 创建一个新的统计服务
func NewDashboardService(db *gorm.DB, cfg *config.Config) InterfaceDashboardService {
	return &DashboardService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetStats 按角色返回首页统计，switch覆盖全部角色，未知角色一律拒绝
func (s *DashboardService) GetStats(principal Principal) (*DashboardStats, error) {
	stats := &DashboardStats{Role: principal.Role}

	switch principal.Role {
	case models.RoleResident:
		if err := s.fillResidentStats(principal.UserID, stats); err != nil {
			return nil, err
		}
	case models.RoleMaintenanceStaff:
		if err := s.fillStaffStats(principal.UserID, stats); err != nil {
			return nil, err
		}
	case models.RoleAdmin:
		if err := s.fillAdminStats(stats); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("没有权限查看统计")
	}

	return stats, nil
}

func (s *DashboardService) fillResidentStats(userID uint, stats *DashboardStats) error {
	if err := s.DB.Model(&models.Complaint{}).
		Where("resident_id = ?", userID).
		Count(&stats.MyComplaints).Error; err != nil {
		return err
	}
	if err := s.DB.Model(&models.Complaint{}).
		Where("resident_id = ? AND status NOT IN ?", userID,
			[]models.ComplaintStatus{models.ComplaintStatusResolved, models.ComplaintStatusClosed}).
		Count(&stats.MyOpenComplaints).Error; err != nil {
		return err
	}

	// 当月是否已缴物业费
	currentMonth := time.Now().Format("2006-01")
	var paid int64
	if err := s.DB.Model(&models.MaintenancePayment{}).
		Where("user_id = ? AND month = ? AND status = ?", userID, currentMonth, models.PaymentPaid).
		Count(&paid).Error; err != nil {
		return err
	}
	stats.PaymentDue = paid == 0

	return nil
}

func (s *DashboardService) fillStaffStats(userID uint, stats *DashboardStats) error {
	if err := s.DB.Model(&models.Complaint{}).
		Where("assigned_to = ?", userID).
		Count(&stats.AssignedTasks).Error; err != nil {
		return err
	}
	if err := s.DB.Model(&models.Complaint{}).
		Where("assigned_to = ? AND status = ?", userID, models.ComplaintStatusInProgress).
		Count(&stats.TasksInProcess).Error; err != nil {
		return err
	}
	return s.DB.Model(&models.Complaint{}).
		Where("assigned_to = ? AND status IN ?", userID,
			[]models.ComplaintStatus{models.ComplaintStatusResolved, models.ComplaintStatusClosed}).
		Count(&stats.TasksResolved).Error
}

func (s *DashboardService) fillAdminStats(stats *DashboardStats) error {
	if err := s.DB.Model(&models.Complaint{}).Count(&stats.TotalComplaints).Error; err != nil {
		return err
	}
	if err := s.DB.Model(&models.Complaint{}).
		Where("status = ?", models.ComplaintStatusSubmitted).
		Count(&stats.PendingComplaints).Error; err != nil {
		return err
	}
	if err := s.DB.Model(&models.User{}).
		Where("role = ?", models.RoleResident).
		Count(&stats.TotalResidents).Error; err != nil {
		return err
	}
	return s.DB.Model(&models.Meeting{}).
		Where("meeting_date > ?", time.Now()).
		Count(&stats.UpcomingMeetings).Error
}

// 2 GetComplaintAnalytics 管理员的投诉分析: 按类别/状态/楼栋/优先级分组和平均解决时长
func (s *DashboardService) GetComplaintAnalytics(principal Principal) (*ComplaintAnalytics, error) {
	if !principal.IsAdmin() {
		return nil, errors.New("只有管理员可以查看分析数据")
	}

	analytics := &ComplaintAnalytics{}

	if err := s.DB.Model(&models.Complaint{}).Count(&analytics.Total).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Complaint{}).
		Where("status IN ?", []models.ComplaintStatus{models.ComplaintStatusResolved, models.ComplaintStatusClosed}).
		Count(&analytics.Resolved).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Complaint{}).
		Where("status = ?", models.ComplaintStatusSubmitted).
		Count(&analytics.Pending).Error; err != nil {
		return nil, err
	}

	var err error
	if analytics.ByCategory, err = s.groupCount("category"); err != nil {
		return nil, err
	}
	if analytics.ByStatus, err = s.groupCount("status"); err != nil {
		return nil, err
	}
	if analytics.ByWing, err = s.groupCount("wing"); err != nil {
		return nil, err
	}
	if analytics.ByPriority, err = s.groupCount("priority"); err != nil {
		return nil, err
	}

	// 平均解决时长，只统计已解决的
	var resolved []models.Complaint
	if err := s.DB.Where("resolved_at IS NOT NULL").Find(&resolved).Error; err != nil {
		return nil, err
	}
	if len(resolved) > 0 {
		var totalDays float64
		for _, c := range resolved {
			totalDays += c.ResolvedAt.Sub(c.CreatedAt).Hours() / 24
		}
		analytics.AvgResolutionDays = totalDays / float64(len(resolved))
	}

	return analytics, nil
}

// groupCount 对投诉表按单列分组计数，空值归为unknown
func (s *DashboardService) groupCount(column string) ([]CountItem, error) {
	rows, err := s.DB.Model(&models.Complaint{}).
		Select("COALESCE(" + column + ", 'unknown') AS name, COUNT(*) AS value").
		Group("name").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CountItem
	for rows.Next() {
		var item CountItem
		if err := rows.Scan(&item.Name, &item.Value); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

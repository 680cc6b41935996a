package services

import (
	"errors"
	"regexp"
	"time"

	"society-connect-http-service/config"
	"society-connect-http-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// PaymentSummary 表示管理员视角的收缴汇总
type PaymentSummary struct {
	TotalCollected float64 `json:"total_collected"`
	PaidThisMonth  int64   `json:"paid_this_month"`
	TotalResidents int64   `json:"total_residents"`
}

// InterfacePaymentService defines the maintenance payment service interface
type InterfacePaymentService interface {
	RecordPayment(principal Principal, amount float64, month, paymentMethod string) (*models.MaintenancePayment, error)
	GetPayments(principal Principal) ([]models.MaintenancePayment, error)
	GetSummary(principal Principal) (*PaymentSummary, error)
}

// PaymentService 提供物业费登记与查询的服务，只登记不走支付网关
type PaymentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPaymentService 创建一个新的缴费服务
func NewPaymentService(db *gorm.DB, cfg *config.Config) InterfacePaymentService {
	return &PaymentService{
		DB:     db,
		Config: cfg,
	}
}

// 1 RecordPayment 登记一笔当月物业费
// 同一用户同一个月的重复缴费在事务内检查，并由(user_id, month)唯一索引兜底
func (s *PaymentService) RecordPayment(principal Principal, amount float64, month, paymentMethod string) (*models.MaintenancePayment, error) {
	// 请求未携带金额时按小区统一物业费收取
	if amount == 0 {
		amount = s.Config.DefaultMaintenanceAmount
	}
	if amount <= 0 {
		return nil, errors.New("缴费金额必须大于0")
	}
	if !monthPattern.MatchString(month) {
		return nil, errors.New("无效的月份格式，应为YYYY-MM")
	}

	now := time.Now()
	payment := &models.MaintenancePayment{
		UserID:        principal.UserID,
		Amount:        amount,
		Month:         month,
		Status:        models.PaymentPaid,
		PaymentMethod: paymentMethod,
		TransactionID: "TXN-" + uuid.NewString(),
		PaidAt:        &now,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.MaintenancePayment{}).
			Where("user_id = ? AND month = ? AND status = ?", principal.UserID, month, models.PaymentPaid).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("本月物业费已缴纳")
		}

		return tx.Create(payment).Error
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// 2 GetPayments 查询缴费记录，居民只能看自己的，管理员可以看全部
func (s *PaymentService) GetPayments(principal Principal) ([]models.MaintenancePayment, error) {
	var payments []models.MaintenancePayment

	query := s.DB.Model(&models.MaintenancePayment{})
	if principal.IsAdmin() {
		query = query.Order("created_at DESC")
	} else {
		query = query.Where("user_id = ?", principal.UserID).Order("month DESC")
	}

	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// 3 GetSummary 管理员收缴汇总: 累计收款、本月已缴人数、居民总数
func (s *PaymentService) GetSummary(principal Principal) (*PaymentSummary, error) {
	if !principal.IsAdmin() {
		return nil, errors.New("只有管理员可以查看收缴汇总")
	}

	summary := &PaymentSummary{}

	row := s.DB.Model(&models.MaintenancePayment{}).
		Where("status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&summary.TotalCollected); err != nil {
		return nil, err
	}

	currentMonth := time.Now().Format("2006-01")
	if err := s.DB.Model(&models.MaintenancePayment{}).
		Where("month = ? AND status = ?", currentMonth, models.PaymentPaid).
		Count(&summary.PaidThisMonth).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.User{}).
		Where("role = ?", models.RoleResident).
		Count(&summary.TotalResidents).Error; err != nil {
		return nil, err
	}

	return summary, nil
}

package services

import (
	"errors"

	"society-connect-http-service/config"
	"society-connect-http-service/models"

	"gorm.io/gorm"
)

// FundOverview 表示基金台账及派生余额
type FundOverview struct {
	Entries      []models.SocietyFund `json:"entries"`
	TotalIncome  float64              `json:"total_income"`
	TotalExpense float64              `json:"total_expense"`
	Balance      float64              `json:"balance"`
}

// InterfaceFundService defines the society fund service interface
type InterfaceFundService interface {
	GetOverview() (*FundOverview, error)
	CreateEntry(principal Principal, entry *models.SocietyFund) error
	DeleteEntry(principal Principal, id uint) error
}

// FundService 提供社区基金台账的服务，余额实时汇总得出
type FundService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewFundService 创建一个新的基金服务
func NewFundService(db *gorm.DB, cfg *config.Config) InterfaceFundService {
	return &FundService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetOverview 获取台账明细和派生余额，所有已登录用户可见
func (s *FundService) GetOverview() (*FundOverview, error) {
	var entries []models.SocietyFund
	if err := s.DB.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}

	overview := &FundOverview{Entries: entries}
	for _, entry := range entries {
		if entry.Type == models.FundIncome {
			overview.TotalIncome += entry.Amount
		} else {
			overview.TotalExpense += entry.Amount
		}
	}
	overview.Balance = overview.TotalIncome - overview.TotalExpense

	return overview, nil
}

// 2 CreateEntry 管理员记一笔收支
func (s *FundService) CreateEntry(principal Principal, entry *models.SocietyFund) error {
	if !principal.IsAdmin() {
		return errors.New("只有管理员可以记账")
	}
	if entry.Title == "" {
		return errors.New("账目标题不能为空")
	}
	if !entry.Type.IsValid() {
		return errors.New("无效的账目类型")
	}
	if entry.Amount <= 0 {
		return errors.New("账目金额必须大于0")
	}

	entry.CreatedBy = principal.UserID
	return s.DB.Create(entry).Error
}

// 3 DeleteEntry 管理员删除一笔账目
func (s *FundService) DeleteEntry(principal Principal, id uint) error {
	if !principal.IsAdmin() {
		return errors.New("只有管理员可以删除账目")
	}

	var entry models.SocietyFund
	if err := s.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("账目不存在")
		}
		return err
	}

	return s.DB.Delete(&entry).Error
}

package models

import (
	"time"
)

// FundType 表示账目类型
type FundType string

const (
	FundIncome  FundType = "income"
	FundExpense FundType = "expense"
)

// IsValid 检查账目类型是否有效
func (t FundType) IsValid() bool {
	return t == FundIncome || t == FundExpense
}

// SocietyFund 表示社区基金台账的一条记录，余额由收支汇总得出，不单独存储
type SocietyFund struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Type        FundType  `gorm:"type:varchar(10);not null" json:"type"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Category    string    `gorm:"type:varchar(50)" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

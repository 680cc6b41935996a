package models

import (
	"time"
)

// PaymentStatus 表示缴费状态
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// MaintenancePayment 表示住户的月度物业费记录
// (user_id, month) 上的联合唯一索引保证同一个月不会重复缴费
type MaintenancePayment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"not null;uniqueIndex:idx_user_month" json:"user_id"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Month         string        `gorm:"type:varchar(7);not null;uniqueIndex:idx_user_month" json:"month"` // YYYY-MM
	Status        PaymentStatus `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	PaymentMethod string        `gorm:"type:varchar(20)" json:"payment_method"` // online, cash, cheque, upi
	TransactionID string        `gorm:"type:varchar(60)" json:"transaction_id"`
	PaidAt        *time.Time    `json:"paid_at"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

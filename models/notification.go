package models

import (
	"time"
)

// NotificationType 表示通知类型
type NotificationType string

const (
	NotificationInfo         NotificationType = "info"
	NotificationWarning      NotificationType = "warning"
	NotificationSuccess      NotificationType = "success"
	NotificationComplaint    NotificationType = "complaint"
	NotificationPayment      NotificationType = "payment"
	NotificationAnnouncement NotificationType = "announcement"
)

// IsValid 检查通知类型是否有效
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationInfo, NotificationWarning, NotificationSuccess,
		NotificationComplaint, NotificationPayment, NotificationAnnouncement:
		return true
	default:
		return false
	}
}

// Notification represents a per-user notification row written by system actions
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"` // 接收者
	Title     string           `gorm:"type:varchar(200);not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      NotificationType `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

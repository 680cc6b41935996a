package models

import (
	"time"
)

// AssignmentSchedule 表示排班周期
type AssignmentSchedule string

const (
	ScheduleDaily    AssignmentSchedule = "daily"
	ScheduleWeekly   AssignmentSchedule = "weekly"
	ScheduleMonthly  AssignmentSchedule = "monthly"
	ScheduleOnDemand AssignmentSchedule = "on_demand"
)

// AssignmentStatus 表示工单状态
type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "active"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

// IsValid 检查排班周期是否有效
func (s AssignmentSchedule) IsValid() bool {
	switch s {
	case ScheduleDaily, ScheduleWeekly, ScheduleMonthly, ScheduleOnDemand:
		return true
	default:
		return false
	}
}

// IsValid 检查工单状态是否有效
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentActive, AssignmentCompleted, AssignmentCancelled:
		return true
	default:
		return false
	}
}

// StaffAssignment 表示管理员给维修人员安排的定期工单，与投诉分配无关
type StaffAssignment struct {
	ID             uint               `gorm:"primaryKey" json:"id"`
	StaffUserID    uint               `gorm:"not null;index" json:"staff_user_id"`
	AssignmentType string             `gorm:"type:varchar(50);not null" json:"assignment_type"` // 如：Gardener, Security Guard
	Description    string             `gorm:"type:text" json:"description"`
	Schedule       AssignmentSchedule `gorm:"type:varchar(20);not null;default:'daily'" json:"schedule"`
	Wing           *string            `gorm:"type:varchar(10)" json:"wing"`
	Status         AssignmentStatus   `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	AssignedBy     uint               `gorm:"not null" json:"assigned_by"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`

	// Relations
	Staff *User `gorm:"foreignKey:StaffUserID" json:"staff,omitempty"`
}

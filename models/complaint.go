package models

import (
	"fmt"
	"time"

	"society-connect-http-service/utils"

	"gorm.io/gorm"
)

// ComplaintStatus 表示投诉状态
type ComplaintStatus string

const (
	ComplaintStatusSubmitted  ComplaintStatus = "submitted"
	ComplaintStatusAssigned   ComplaintStatus = "assigned"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusClosed     ComplaintStatus = "closed"
)

// ComplaintCategory 表示投诉类别
type ComplaintCategory string

const (
	CategoryWater       ComplaintCategory = "water"
	CategoryElectricity ComplaintCategory = "electricity"
	CategorySecurity    ComplaintCategory = "security"
	CategoryCleanliness ComplaintCategory = "cleanliness"
	CategoryPlumbing    ComplaintCategory = "plumbing"
	CategoryElevator    ComplaintCategory = "elevator"
	CategoryParking     ComplaintCategory = "parking"
	CategoryNoise       ComplaintCategory = "noise"
	CategoryOther       ComplaintCategory = "other"
)

// ComplaintPriority 表示投诉优先级
type ComplaintPriority string

const (
	PriorityLow      ComplaintPriority = "low"
	PriorityMedium   ComplaintPriority = "medium"
	PriorityHigh     ComplaintPriority = "high"
	PriorityCritical ComplaintPriority = "critical"
)

// IsValid 检查类别是否有效
func (c ComplaintCategory) IsValid() bool {
	switch c {
	case CategoryWater, CategoryElectricity, CategorySecurity, CategoryCleanliness,
		CategoryPlumbing, CategoryElevator, CategoryParking, CategoryNoise, CategoryOther:
		return true
	default:
		return false
	}
}

// IsValid 检查优先级是否有效
func (p ComplaintPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// Complaint represents a resident-filed maintenance complaint
type Complaint struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	ComplaintNumber string            `gorm:"type:varchar(30);unique;not null" json:"complaint_number"` // 系统生成，创建后不变
	Title           string            `gorm:"type:varchar(200);not null" json:"title"`
	Description     string            `gorm:"type:text;not null" json:"description"`
	Category        ComplaintCategory `gorm:"type:varchar(20);not null" json:"category"`
	Priority        ComplaintPriority `gorm:"type:varchar(10);not null" json:"priority"`
	Status          ComplaintStatus   `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`
	ResidentID      uint              `gorm:"not null;index" json:"resident_id"` // 创建后不变
	AssignedTo      *uint             `gorm:"index" json:"assigned_to"`          // 仅管理员分配时设置
	Wing            *string           `gorm:"type:varchar(10)" json:"wing"`      // 创建时从居民档案复制
	FlatNumber      *string           `gorm:"type:varchar(20)" json:"flat_number"`
	Rating          *int              `json:"rating"` // 1-5，仅结单时设置
	RatingComment   *string           `gorm:"type:text" json:"rating_comment"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	AssignedAt      *time.Time        `json:"assigned_at"`
	ResolvedAt      *time.Time        `json:"resolved_at"`
	ClosedAt        *time.Time        `json:"closed_at"`

	// Relations
	Resident *User `gorm:"foreignKey:ResidentID" json:"resident,omitempty"`
	Assignee *User `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}

// BeforeCreate 是一个GORM钩子，在创建新记录前生成投诉编号
func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ComplaintNumber == "" {
		// 编号格式: CMP-20250601-1A2B3C，日期加随机后缀，冲突时由唯一索引兜底
		suffix := uint32(utils.RandomInt32())
		c.ComplaintNumber = fmt.Sprintf("CMP-%s-%06X", time.Now().Format("20060102"), suffix&0xFFFFFF)
	}
	if c.Status == "" {
		c.Status = ComplaintStatusSubmitted
	}
	return nil
}

// CanTransition 检查状态迁移是否合法，不允许任何回退
func (c *Complaint) CanTransition(to ComplaintStatus) bool {
	switch c.Status {
	case ComplaintStatusSubmitted:
		return to == ComplaintStatusAssigned
	case ComplaintStatusAssigned:
		return to == ComplaintStatusInProgress
	case ComplaintStatusInProgress:
		return to == ComplaintStatusResolved
	case ComplaintStatusResolved:
		return to == ComplaintStatusClosed
	default:
		// closed 是终态，不支持重新打开
		return false
	}
}

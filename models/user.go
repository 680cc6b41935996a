package models

import (
	"time"

	"society-connect-http-service/utils"

	"gorm.io/gorm"
)

// UserRole 表示用户角色
type UserRole string

const (
	RoleResident         UserRole = "resident"
	RoleAdmin            UserRole = "admin"
	RoleMaintenanceStaff UserRole = "maintenance_staff"
)

// IsValid 检查角色是否是已知角色
func (r UserRole) IsValid() bool {
	switch r {
	case RoleResident, RoleAdmin, RoleMaintenanceStaff:
		return true
	default:
		return false
	}
}

// User represents a portal principal: profile plus exactly one role
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password   string    `gorm:"type:varchar(100);not null" json:"-"` // 不在JSON中暴露密码
	FullName   string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Email      string    `gorm:"type:varchar(100)" json:"email"`
	Phone      string    `gorm:"type:varchar(20)" json:"phone"`
	Wing       *string   `gorm:"type:varchar(10)" json:"wing"`
	FlatNumber *string   `gorm:"type:varchar(20)" json:"flat_number"`
	Role       UserRole  `gorm:"type:varchar(20);not null;default:'resident'" json:"role"` // 注册时确定，之后不变
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Complaints    []Complaint    `gorm:"foreignKey:ResidentID" json:"complaints,omitempty"`
	Notifications []Notification `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if u.Password != "" {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	// 未指定角色时默认为居民
	if u.Role == "" {
		u.Role = RoleResident
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (u *User) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}

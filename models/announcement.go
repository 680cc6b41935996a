package models

import (
	"time"
)

// Announcement represents a society-wide announcement published by an admin
type Announcement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsEmergency bool      `gorm:"default:false" json:"is_emergency"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Author *User `gorm:"foreignKey:CreatedBy" json:"author,omitempty"`
}

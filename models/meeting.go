package models

import (
	"time"
)

// RSVPStatus 表示参会回执状态
type RSVPStatus string

const (
	RSVPAttending    RSVPStatus = "attending"
	RSVPNotAttending RSVPStatus = "not_attending"
)

// IsValid 检查回执状态是否有效
func (s RSVPStatus) IsValid() bool {
	return s == RSVPAttending || s == RSVPNotAttending
}

// Meeting represents a society meeting or event
type Meeting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	MeetingDate time.Time `gorm:"not null" json:"meeting_date"`
	Location    string    `gorm:"type:varchar(200)" json:"location"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	RSVPs []MeetingRSVP `gorm:"foreignKey:MeetingID" json:"rsvps,omitempty"`
}

// MeetingRSVP 表示用户对会议的回执，每个(会议,用户)只保留一条
type MeetingRSVP struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	MeetingID uint       `gorm:"not null;uniqueIndex:idx_meeting_user" json:"meeting_id"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_meeting_user" json:"user_id"`
	Status    RSVPStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

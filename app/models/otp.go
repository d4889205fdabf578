package models

import "time"

// OTP is a single-use 6-digit verification code tied to a pending account.
// Only the most recently created unused code for a user is trusted.
type OTP struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID    string `gorm:"size:36;not null;index"`
	User      User   `gorm:"foreignKey:UserID"`
	Code      string `gorm:"size:6;not null"`
	IsUsed    bool   `gorm:"default:false;not null"`
	CreatedAt time.Time
}

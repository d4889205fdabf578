package models

import "time"

type Comment struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID string `gorm:"size:36;not null;index"`
	UserName  string `gorm:"size:100;not null"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

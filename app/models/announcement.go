package models

import "time"

type StoreAnnouncement struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	StoreID   string `gorm:"size:36;not null;index"`
	Store     Store  `gorm:"foreignKey:StoreID"`
	Title     string `gorm:"size:150;not null"`
	Message   string `gorm:"type:text;not null"`
	IsActive  bool   `gorm:"default:true;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GlobalAnnouncement is platform-wide and shown on every shop manager
// dashboard. Managed through the seed command, not the web UI.
type GlobalAnnouncement struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Title     string `gorm:"size:150;not null"`
	Message   string `gorm:"type:text;not null"`
	IsActive  bool   `gorm:"default:true;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

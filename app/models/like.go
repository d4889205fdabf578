package models

import "time"

// Like tracks anonymous likes by client IP. The composite unique index
// keeps one like per product per IP.
type Like struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID string `gorm:"size:36;not null;uniqueIndex:idx_product_user_ip"`
	UserIP    string `gorm:"size:45;not null;uniqueIndex:idx_product_user_ip"`
	CreatedAt time.Time
}

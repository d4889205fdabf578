package models

import "time"

// ProductImage is one uploaded original plus its three derived variants.
// Variant paths are set by the image pipeline whenever the original changes;
// they are empty while no original has been uploaded yet.
type ProductImage struct {
	ID            string  `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID     string  `gorm:"size:36;not null;index"`
	Product       Product `gorm:"foreignKey:ProductID"`
	OriginalPath  string  `gorm:"size:255"`
	LargePath     string  `gorm:"size:255"`
	MediumPath    string  `gorm:"size:255"`
	ThumbnailPath string  `gorm:"size:255"`
	IsPrimary     bool    `gorm:"default:false;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

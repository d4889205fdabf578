package models

import "time"

type Category struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	StoreID   string    `gorm:"size:36;not null;uniqueIndex:idx_store_category_name"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_store_category_name"`
	Products  []Product `gorm:"many2many:product_categories;"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID             string           `gorm:"size:36;not null;uniqueIndex;primary_key"`
	StoreID        string           `gorm:"size:36;not null;index"`
	Store          Store            `gorm:"foreignKey:StoreID"`
	Title          string           `gorm:"size:150;not null"`
	Caption        string           `gorm:"type:text"`
	Price          *decimal.Decimal `gorm:"type:decimal(10,2)"`
	WasPrice       *decimal.Decimal `gorm:"type:decimal(10,2)"`
	IsActive       bool             `gorm:"default:true;not null"`
	AvailableStock int              `gorm:"default:0;not null"`
	// PercentDiscount is derived from WasPrice and Price on every save,
	// never set by a caller directly. Nil means no discount.
	PercentDiscount *int       `gorm:"default:null"`
	Categories      []Category `gorm:"many2many:product_categories;"`
	Images          []ProductImage
	Comments        []Comment
	Likes           []Like
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ProductCategory struct {
	ProductID  string `gorm:"size:36;primaryKey"`
	CategoryID string `gorm:"size:36;primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

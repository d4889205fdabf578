package migrations

import (
	"github.com/graple254/bazaa/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Product{}, "Categories", &models.ProductCategory{}); err != nil {
		return err
	}
	return db.AutoMigrate(&models.User{}, &models.OTP{}, &models.Store{}, &models.Product{}, &models.ProductImage{}, &models.Category{}, &models.Comment{}, &models.Like{}, &models.StoreAnnouncement{}, &models.GlobalAnnouncement{})
}

package seeders

import (
	"context"
	"log"

	"github.com/graple254/bazaa/app/models"
	"github.com/graple254/bazaa/app/repositories"
	"github.com/graple254/bazaa/app/utils/calc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run seeds a demo shop manager with a verified account, a store with a
// working subdomain and a few products, plus the platform-wide
// announcements shown on every dashboard. Safe to re-run: existing rows
// are left alone.
func Run(ctx context.Context, db *gorm.DB) error {
	userRepo := repositories.NewUserRepository(db)
	storeRepo := repositories.NewStoreRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)

	user, err := userRepo.FindByEmail(ctx, "demo@bazaa.digital")
	if err != nil {
		return err
	}
	if user == nil {
		user = &models.User{
			Username: "demo",
			Email:    "demo@bazaa.digital",
			Password: "demo-password",
			Role:     models.RoleShopManager,
			IsActive: true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		log.Println("Seeded demo user demo@bazaa.digital")
	}

	store, err := storeRepo.FindByOwnerID(ctx, user.ID)
	if err != nil {
		return err
	}
	if store == nil {
		store = &models.Store{
			OwnerID:        user.ID,
			Name:           "Demo Store",
			Subdomain:      "demo",
			Description:    "A sample storefront seeded for local development.",
			WhatsappNumber: "254700000000",
		}
		if err := storeRepo.Create(ctx, store); err != nil {
			return err
		}
		log.Println("Seeded demo store at subdomain 'demo'")

		accessories, _, err := categoryRepo.GetOrCreate(ctx, store.ID, "Accessories")
		if err != nil {
			return err
		}

		price := decimal.NewFromInt(800)
		wasPrice := decimal.NewFromInt(1000)
		product := &models.Product{
			StoreID:         store.ID,
			Title:           "Sample Tote Bag",
			Caption:         "Handmade canvas tote, seeded for demos.",
			Price:           &price,
			WasPrice:        &wasPrice,
			PercentDiscount: calc.ComputeDiscount(&wasPrice, &price),
			AvailableStock:  10,
			IsActive:        true,
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if err := productRepo.SetCategories(ctx, product, []models.Category{*accessories}); err != nil {
			return err
		}
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.GlobalAnnouncement{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		ann := &models.GlobalAnnouncement{
			ID:       "global-welcome",
			Title:    "Welcome to Bazaa Digital",
			Message:  "Set up your store profile, add products, and share your subdomain with customers.",
			IsActive: true,
		}
		if err := db.WithContext(ctx).Create(ann).Error; err != nil {
			return err
		}
		log.Println("Seeded global announcement")
	}

	return nil
}

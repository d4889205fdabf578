package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/graple254/bazaa/app/models"
	"gorm.io/gorm"
)

type CategoryRepositoryImpl interface {
	GetOrCreate(ctx context.Context, storeID, name string) (*models.Category, bool, error)
	GetByStore(ctx context.Context, storeID string) ([]models.Category, error)
	FindByIDsForStore(ctx context.Context, storeID string, ids []string) ([]models.Category, error)
	FindByIDForStore(ctx context.Context, id, storeID string) (*models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryImpl {
	return &categoryRepository{db}
}

func (r *categoryRepository) GetOrCreate(ctx context.Context, storeID, name string) (*models.Category, bool, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Where("store_id = ? AND name = ?", storeID, name).First(&category).Error
	if err == nil {
		return &category, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	category = models.Category{
		ID:      uuid.New().String(),
		StoreID: storeID,
		Name:    name,
	}
	if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
		// A concurrent create can win the race; fall back to the existing row.
		if errors.Is(translateError(err), ErrDuplicate) {
			var existing models.Category
			if findErr := r.db.WithContext(ctx).Where("store_id = ? AND name = ?", storeID, name).First(&existing).Error; findErr == nil {
				return &existing, false, nil
			}
		}
		return nil, false, err
	}
	return &category, true, nil
}

func (r *categoryRepository) GetByStore(ctx context.Context, storeID string) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Where("store_id = ?", storeID).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) FindByIDsForStore(ctx context.Context, storeID string, ids []string) ([]models.Category, error) {
	var categories []models.Category
	if len(ids) == 0 {
		return categories, nil
	}
	err := r.db.WithContext(ctx).Where("store_id = ? AND id IN ?", storeID, ids).Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) FindByIDForStore(ctx context.Context, id, storeID string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Where("id = ? AND store_id = ?", id, storeID).First(&category).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/graple254/bazaa/app/models"
	"gorm.io/gorm"
)

type ImageRepositoryImpl interface {
	Create(ctx context.Context, image *models.ProductImage) error
	Update(ctx context.Context, image *models.ProductImage) error
	Delete(ctx context.Context, image *models.ProductImage) error
	FindByIDsForProduct(ctx context.Context, productID string, ids []string) ([]models.ProductImage, error)
	GetByProduct(ctx context.Context, productID string) ([]models.ProductImage, error)
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepositoryImpl {
	return &imageRepository{db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.ProductImage) error {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) Update(ctx context.Context, image *models.ProductImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *imageRepository) Delete(ctx context.Context, image *models.ProductImage) error {
	return r.db.WithContext(ctx).Delete(image).Error
}

func (r *imageRepository) FindByIDsForProduct(ctx context.Context, productID string, ids []string) ([]models.ProductImage, error) {
	var images []models.ProductImage
	if len(ids) == 0 {
		return images, nil
	}
	err := r.db.WithContext(ctx).Where("product_id = ? AND id IN ?", productID, ids).Find(&images).Error
	return images, err
}

func (r *imageRepository) GetByProduct(ctx context.Context, productID string) ([]models.ProductImage, error) {
	var images []models.ProductImage
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("created_at ASC").Find(&images).Error
	return images, err
}

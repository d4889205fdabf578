package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/graple254/bazaa/app/models"
	"gorm.io/gorm"
)

type LikeRepositoryImpl interface {
	// Create returns ErrDuplicate when this IP already liked the product.
	Create(ctx context.Context, productID, userIP string) error
	CountByProduct(ctx context.Context, productID string) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepositoryImpl {
	return &likeRepository{db}
}

func (r *likeRepository) Create(ctx context.Context, productID, userIP string) error {
	like := &models.Like{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserIP:    userIP,
	}
	return translateError(r.db.WithContext(ctx).Create(like).Error)
}

func (r *likeRepository) CountByProduct(ctx context.Context, productID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

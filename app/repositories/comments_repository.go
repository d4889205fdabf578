package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/graple254/bazaa/app/models"
	"gorm.io/gorm"
)

type CommentRepositoryImpl interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByProduct(ctx context.Context, productID string) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepositoryImpl {
	return &commentRepository{db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByProduct(ctx context.Context, productID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("created_at DESC").Find(&comments).Error
	return comments, err
}

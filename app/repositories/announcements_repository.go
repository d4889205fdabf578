package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/graple254/bazaa/app/models"
	"gorm.io/gorm"
)

type AnnouncementStats struct {
	Total  int64
	Active int64
}

type AnnouncementRepositoryImpl interface {
	Create(ctx context.Context, ann *models.StoreAnnouncement) error
	Update(ctx context.Context, ann *models.StoreAnnouncement) error
	FindByIDForStore(ctx context.Context, id, storeID string) (*models.StoreAnnouncement, error)
	GetByStorePaginated(ctx context.Context, storeID string, limit, offset int) ([]models.StoreAnnouncement, int64, error)
	GetActiveByStore(ctx context.Context, storeID string) ([]models.StoreAnnouncement, error)
	Stats(ctx context.Context, storeID string) (AnnouncementStats, error)
	GetActiveGlobal(ctx context.Context) ([]models.GlobalAnnouncement, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepositoryImpl {
	return &announcementRepository{db}
}

func (r *announcementRepository) Create(ctx context.Context, ann *models.StoreAnnouncement) error {
	if ann.ID == "" {
		ann.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(ann).Error
}

func (r *announcementRepository) Update(ctx context.Context, ann *models.StoreAnnouncement) error {
	return r.db.WithContext(ctx).Save(ann).Error
}

func (r *announcementRepository) FindByIDForStore(ctx context.Context, id, storeID string) (*models.StoreAnnouncement, error) {
	var ann models.StoreAnnouncement
	err := r.db.WithContext(ctx).Where("id = ? AND store_id = ?", id, storeID).First(&ann).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &ann, nil
}

func (r *announcementRepository) GetByStorePaginated(ctx context.Context, storeID string, limit, offset int) ([]models.StoreAnnouncement, int64, error) {
	var anns []models.StoreAnnouncement
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.StoreAnnouncement{}).Where("store_id = ?", storeID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&anns).Error

	return anns, total, err
}

func (r *announcementRepository) GetActiveByStore(ctx context.Context, storeID string) ([]models.StoreAnnouncement, error) {
	var anns []models.StoreAnnouncement
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Order("created_at DESC").
		Find(&anns).Error
	return anns, err
}

func (r *announcementRepository) Stats(ctx context.Context, storeID string) (AnnouncementStats, error) {
	var stats AnnouncementStats
	if err := r.db.WithContext(ctx).Model(&models.StoreAnnouncement{}).Where("store_id = ?", storeID).Count(&stats.Total).Error; err != nil {
		return AnnouncementStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&models.StoreAnnouncement{}).Where("store_id = ? AND is_active = ?", storeID, true).Count(&stats.Active).Error; err != nil {
		return AnnouncementStats{}, err
	}
	return stats, nil
}

func (r *announcementRepository) GetActiveGlobal(ctx context.Context) ([]models.GlobalAnnouncement, error) {
	var anns []models.GlobalAnnouncement
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&anns).Error
	return anns, err
}

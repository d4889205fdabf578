package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/graple254/bazaa/app/models"
	"gorm.io/gorm"
)

type StoreRepositoryImpl interface {
	Create(ctx context.Context, store *models.Store) error
	FindByID(ctx context.Context, id string) (*models.Store, error)
	FindBySubdomain(ctx context.Context, subdomain string) (*models.Store, error)
	FindByOwnerID(ctx context.Context, ownerID string) (*models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	SubdomainTaken(ctx context.Context, subdomain, excludeStoreID string) (bool, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepositoryImpl {
	return &storeRepository{db}
}

func (r *storeRepository) Create(ctx context.Context, store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	return translateError(r.db.WithContext(ctx).Create(store).Error)
}

func (r *storeRepository) FindByID(ctx context.Context, id string) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindBySubdomain(ctx context.Context, subdomain string) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).Where("subdomain = ?", subdomain).First(&store).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByOwnerID(ctx context.Context, ownerID string) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&store).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) Update(ctx context.Context, store *models.Store) error {
	return translateError(r.db.WithContext(ctx).Save(store).Error)
}

func (r *storeRepository) SubdomainTaken(ctx context.Context, subdomain, excludeStoreID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Store{}).Where("subdomain = ?", subdomain)
	if excludeStoreID != "" {
		query = query.Where("id <> ?", excludeStoreID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

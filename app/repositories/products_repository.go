package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/graple254/bazaa/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductStats struct {
	Total     int64
	Active    int64
	Inactive  int64
	WithStock int64
	LowStock  int64
}

type ProductRepositoryImpl interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, product *models.Product) error
	FindByIDForStore(ctx context.Context, id, storeID string) (*models.Product, error)
	FindActiveByIDForStore(ctx context.Context, id, storeID string) (*models.Product, error)
	GetByStorePaginated(ctx context.Context, storeID string, limit, offset int) ([]models.Product, int64, error)
	GetActiveByStorePaginated(ctx context.Context, storeID, categoryID string, limit, offset int) ([]models.Product, int64, error)
	GetRecentByStore(ctx context.Context, storeID string, limit int) ([]models.Product, error)
	Stats(ctx context.Context, storeID string) (ProductStats, error)
	SetCategories(ctx context.Context, product *models.Product, categories []models.Category) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	return p.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

// Update writes the product row only; categories and images are managed
// through their own repositories.
func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

func (p *productRepository) Delete(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Select("Images", "Comments", "Likes").Delete(product).Error
}

func (p *productRepository) FindByIDForStore(ctx context.Context, id, storeID string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Categories").
		Preload("Images").
		Where("id = ? AND store_id = ?", id, storeID).
		First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) FindActiveByIDForStore(ctx context.Context, id, storeID string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Categories").
		Preload("Images").
		Where("id = ? AND store_id = ? AND is_active = ?", id, storeID, true).
		First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetByStorePaginated(ctx context.Context, storeID string, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := p.db.WithContext(ctx).Model(&models.Product{}).Where("store_id = ?", storeID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := p.db.WithContext(ctx).
		Preload("Categories").
		Preload("Images").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) GetActiveByStorePaginated(ctx context.Context, storeID, categoryID string, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	base := p.db.WithContext(ctx).Model(&models.Product{}).
		Where("products.store_id = ? AND products.is_active = ?", storeID, true)
	if categoryID != "" {
		base = base.
			Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Where("pc.category_id = ?", categoryID)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Preload("Categories").
		Preload("Images").
		Order("products.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) GetRecentByStore(ctx context.Context, storeID string, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Preload("Images").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) Stats(ctx context.Context, storeID string) (ProductStats, error) {
	var stats ProductStats

	counts := []struct {
		dest  *int64
		where string
		args  []interface{}
	}{
		{&stats.Total, "store_id = ?", []interface{}{storeID}},
		{&stats.Active, "store_id = ? AND is_active = ?", []interface{}{storeID, true}},
		{&stats.Inactive, "store_id = ? AND is_active = ?", []interface{}{storeID, false}},
		{&stats.WithStock, "store_id = ? AND available_stock > 0", []interface{}{storeID}},
		{&stats.LowStock, "store_id = ? AND available_stock > 0 AND available_stock <= 3", []interface{}{storeID}},
	}

	for _, c := range counts {
		if err := p.db.WithContext(ctx).Model(&models.Product{}).Where(c.where, c.args...).Count(c.dest).Error; err != nil {
			return ProductStats{}, err
		}
	}

	return stats, nil
}

func (p *productRepository) SetCategories(ctx context.Context, product *models.Product, categories []models.Category) error {
	return p.db.WithContext(ctx).Model(product).Association("Categories").Replace(&categories)
}

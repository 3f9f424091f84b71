package repository

import (
	"context"

	"commenthub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type RegionRepository interface {
	Create(ctx context.Context, region *models.Region) error
	GetByID(ctx context.Context, regionID int64) (*models.Region, error)
	GetByAlias(ctx context.Context, alias string) (*models.Region, error)
	GetActive(ctx context.Context) ([]models.Region, error)
	Delete(ctx context.Context, regionID int64) error
	AdjustBlockCount(ctx context.Context, regionID int64, delta int) error
}

type regionRepository struct {
	db *gorm.DB
}

func NewRegionRepository(db *gorm.DB) RegionRepository {
	return &regionRepository{db: db}
}

func (r *regionRepository) Create(ctx context.Context, region *models.Region) error {
	return translateError(r.db.WithContext(ctx).Create(region).Error)
}

func (r *regionRepository) GetByID(ctx context.Context, regionID int64) (*models.Region, error) {
	var region models.Region
	if err := r.db.WithContext(ctx).First(&region, "id = ?", regionID).Error; err != nil {
		return nil, err
	}
	return &region, nil
}

func (r *regionRepository) GetByAlias(ctx context.Context, alias string) (*models.Region, error) {
	var region models.Region
	if err := r.db.WithContext(ctx).Where("alias = ?", alias).First(&region).Error; err != nil {
		return nil, err
	}
	return &region, nil
}

// GetActive retrieves regions currently in use (at least one block placed)
func (r *regionRepository) GetActive(ctx context.Context) ([]models.Region, error) {
	var regions []models.Region
	err := r.db.WithContext(ctx).
		Where("block_count > 0").
		Order("alias ASC").
		Find(&regions).Error
	if err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *regionRepository) Delete(ctx context.Context, regionID int64) error {
	return r.db.WithContext(ctx).Where("id = ?", regionID).Delete(&models.Region{}).Error
}

// AdjustBlockCount keeps the denormalized block counter in sync when
// blocks are placed into or removed from a region
func (r *regionRepository) AdjustBlockCount(ctx context.Context, regionID int64, delta int) error {
	return r.db.WithContext(ctx).Model(&models.Region{}).
		Where("id = ?", regionID).
		Update("block_count", gorm.Expr("block_count + ?", delta)).Error
}

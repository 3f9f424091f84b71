package repository

import (
	"context"

	"commenthub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type BlockRepository interface {
	Create(ctx context.Context, block *models.Block) error
	Update(ctx context.Context, block *models.Block) error
	Delete(ctx context.Context, blockID int64) error
	GetByID(ctx context.Context, blockID int64) (*models.Block, error)
	GetPublishedByRegion(ctx context.Context, regionID int64) ([]models.Block, error)
}

type blockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Create(ctx context.Context, block *models.Block) error {
	return translateError(r.db.WithContext(ctx).Create(block).Error)
}

func (r *blockRepository) Update(ctx context.Context, block *models.Block) error {
	return translateError(r.db.WithContext(ctx).Save(block).Error)
}

func (r *blockRepository) Delete(ctx context.Context, blockID int64) error {
	return r.db.WithContext(ctx).Where("id = ?", blockID).Delete(&models.Block{}).Error
}

func (r *blockRepository) GetByID(ctx context.Context, blockID int64) (*models.Block, error) {
	var block models.Block
	if err := r.db.WithContext(ctx).Where("id = ?", blockID).First(&block).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

// GetPublishedByRegion retrieves published blocks of a region in weight order
func (r *blockRepository) GetPublishedByRegion(ctx context.Context, regionID int64) ([]models.Block, error) {
	var blocks []models.Block
	err := r.db.WithContext(ctx).
		Where("region_id = ? AND published = true", regionID).
		Order("weight ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"commenthub/internal/microservices/http-api/dto"
	"commenthub/internal/microservices/http-api/models"
	"commenthub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrRegionNotFound = errors.New("region not found")
	ErrBlockNotFound  = errors.New("block not found")
	ErrAliasTaken     = errors.New("this alias has already been taken")
)

type BlockService interface {
	CreateRegion(ctx context.Context, req *dto.CreateRegionDTO) (*dto.RegionResponse, error)
	DeleteRegion(ctx context.Context, alias string) error
	GetActiveRegions(ctx context.Context) ([]dto.RegionResponse, error)
	GetRegionBlocks(ctx context.Context, regionAlias string) ([]dto.BlockResponse, error)
	CreateBlock(ctx context.Context, req *dto.CreateBlockDTO) (*dto.BlockResponse, error)
	UpdateBlock(ctx context.Context, blockID int64, req *dto.UpdateBlockDTO) (*dto.BlockResponse, error)
	DeleteBlock(ctx context.Context, blockID int64) error
}

type blockService struct {
	blockRepo  repository.BlockRepository
	regionRepo repository.RegionRepository
	cache      BlockCache
	logger     *slog.Logger
}

func NewBlockService(
	blockRepo repository.BlockRepository,
	regionRepo repository.RegionRepository,
	cache BlockCache,
	logger *slog.Logger,
) BlockService {
	return &blockService{
		blockRepo:  blockRepo,
		regionRepo: regionRepo,
		cache:      cache,
		logger:     logger,
	}
}

// CreateRegion creates a new region with a unique alias
func (s *blockService) CreateRegion(ctx context.Context, req *dto.CreateRegionDTO) (*dto.RegionResponse, error) {
	region := &models.Region{
		Title: req.Title,
		Alias: req.Alias,
	}

	if err := s.regionRepo.Create(ctx, region); err != nil {
		if errors.Is(err, repository.ErrAliasTaken) {
			return nil, ErrAliasTaken
		}
		return nil, err
	}

	return dto.FromModelToRegionResponse(region), nil
}

// DeleteRegion removes a region and drops its cached block list
func (s *blockService) DeleteRegion(ctx context.Context, alias string) error {
	region, err := s.regionRepo.GetByAlias(ctx, alias)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegionNotFound
		}
		return err
	}

	if err := s.regionRepo.Delete(ctx, region.ID); err != nil {
		return err
	}

	s.invalidate(ctx, region.Alias)
	return nil
}

// GetActiveRegions retrieves regions currently holding at least one block
func (s *blockService) GetActiveRegions(ctx context.Context) ([]dto.RegionResponse, error) {
	regions, err := s.regionRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	regionResponses := make([]dto.RegionResponse, 0, len(regions))
	for _, region := range regions {
		regionResponses = append(regionResponses, *dto.FromModelToRegionResponse(&region))
	}
	return regionResponses, nil
}

// GetRegionBlocks retrieves the published blocks of a region in weight
// order, served from cache when possible. Cache failures are logged and
// fall through to the database.
func (s *blockService) GetRegionBlocks(ctx context.Context, regionAlias string) ([]dto.BlockResponse, error) {
	if cached, found, err := s.cache.Get(ctx, regionAlias); err != nil {
		s.logger.Warn("block cache read failed", "region", regionAlias, "error", err)
	} else if found {
		return cached, nil
	}

	region, err := s.regionRepo.GetByAlias(ctx, regionAlias)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegionNotFound
		}
		return nil, err
	}

	blocks, err := s.blockRepo.GetPublishedByRegion(ctx, region.ID)
	if err != nil {
		return nil, err
	}

	blockResponses := make([]dto.BlockResponse, 0, len(blocks))
	for _, block := range blocks {
		blockResponses = append(blockResponses, *dto.FromModelToBlockResponse(&block))
	}

	if err := s.cache.Set(ctx, regionAlias, blockResponses); err != nil {
		s.logger.Warn("block cache write failed", "region", regionAlias, "error", err)
	}

	return blockResponses, nil
}

// CreateBlock places a new block into a region
func (s *blockService) CreateBlock(ctx context.Context, req *dto.CreateBlockDTO) (*dto.BlockResponse, error) {
	// Resolve the region first so a bad region id reads as not-found
	// rather than a constraint violation
	region, err := s.regionByID(ctx, req.RegionID)
	if err != nil {
		return nil, err
	}

	block := &models.Block{
		RegionID:  region.ID,
		Title:     req.Title,
		Alias:     req.Alias,
		Body:      req.Body,
		ShowTitle: true,
		Published: req.Published,
		Weight:    req.Weight,
	}
	if req.ShowTitle != nil {
		block.ShowTitle = *req.ShowTitle
	}

	if err := s.blockRepo.Create(ctx, block); err != nil {
		if errors.Is(err, repository.ErrAliasTaken) {
			return nil, ErrAliasTaken
		}
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, ErrRegionNotFound
		}
		return nil, err
	}

	if err := s.regionRepo.AdjustBlockCount(ctx, region.ID, 1); err != nil {
		s.logger.Warn("failed to bump region block count", "region_id", region.ID, "error", err)
	}

	s.invalidate(ctx, region.Alias)
	return dto.FromModelToBlockResponse(block), nil
}

// UpdateBlock updates an existing block
func (s *blockService) UpdateBlock(ctx context.Context, blockID int64, req *dto.UpdateBlockDTO) (*dto.BlockResponse, error) {
	block, err := s.blockRepo.GetByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, err
	}

	block.Title = req.Title
	block.Body = req.Body
	block.Published = req.Published
	block.Weight = req.Weight
	if req.ShowTitle != nil {
		block.ShowTitle = *req.ShowTitle
	}

	if err := s.blockRepo.Update(ctx, block); err != nil {
		return nil, err
	}

	if region, err := s.regionByID(ctx, block.RegionID); err == nil {
		s.invalidate(ctx, region.Alias)
	}
	return dto.FromModelToBlockResponse(block), nil
}

// DeleteBlock removes a block and keeps the region counter in sync
func (s *blockService) DeleteBlock(ctx context.Context, blockID int64) error {
	block, err := s.blockRepo.GetByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBlockNotFound
		}
		return err
	}

	if err := s.blockRepo.Delete(ctx, blockID); err != nil {
		return err
	}

	if err := s.regionRepo.AdjustBlockCount(ctx, block.RegionID, -1); err != nil {
		s.logger.Warn("failed to drop region block count", "region_id", block.RegionID, "error", err)
	}

	if region, err := s.regionByID(ctx, block.RegionID); err == nil {
		s.invalidate(ctx, region.Alias)
	}
	return nil
}

func (s *blockService) regionByID(ctx context.Context, regionID int64) (*models.Region, error) {
	region, err := s.regionRepo.GetByID(ctx, regionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegionNotFound
		}
		return nil, err
	}
	return region, nil
}

func (s *blockService) invalidate(ctx context.Context, regionAlias string) {
	if err := s.cache.Invalidate(ctx, regionAlias); err != nil {
		s.logger.Warn("block cache invalidation failed", "region", regionAlias, "error", err)
	}
}

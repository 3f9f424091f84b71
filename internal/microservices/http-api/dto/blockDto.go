package dto

import (
	"commenthub/internal/microservices/http-api/models"
)

// CreateRegionDTO for creating a region
type CreateRegionDTO struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
	Alias string `json:"alias" binding:"required,min=1,max=255"`
}

// RegionResponse for returning region information
type RegionResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Alias      string `json:"alias"`
	BlockCount int64  `json:"block_count"`
}

// FromModelToRegionResponse converts a Region model to RegionResponse DTO
func FromModelToRegionResponse(region *models.Region) *RegionResponse {
	return &RegionResponse{
		ID:         region.ID,
		Title:      region.Title,
		Alias:      region.Alias,
		BlockCount: region.BlockCount,
	}
}

// CreateBlockDTO for creating a block
type CreateBlockDTO struct {
	RegionID  int64  `json:"region_id" binding:"required"`
	Title     string `json:"title" binding:"required,min=1,max=255"`
	Alias     string `json:"alias" binding:"required,min=1,max=255"`
	Body      string `json:"body"`
	ShowTitle *bool  `json:"show_title"`
	Published bool   `json:"published"`
	Weight    int    `json:"weight"`
}

// UpdateBlockDTO for updating a block
type UpdateBlockDTO struct {
	Title     string `json:"title" binding:"required,min=1,max=255"`
	Body      string `json:"body"`
	ShowTitle *bool  `json:"show_title"`
	Published bool   `json:"published"`
	Weight    int    `json:"weight"`
}

// BlockResponse for returning block information
type BlockResponse struct {
	ID        int64  `json:"id"`
	RegionID  int64  `json:"region_id"`
	Title     string `json:"title"`
	Alias     string `json:"alias"`
	Body      string `json:"body"`
	ShowTitle bool   `json:"show_title"`
	Published bool   `json:"published"`
	Weight    int    `json:"weight"`
}

// FromModelToBlockResponse converts a Block model to BlockResponse DTO
func FromModelToBlockResponse(block *models.Block) *BlockResponse {
	return &BlockResponse{
		ID:        block.ID,
		RegionID:  block.RegionID,
		Title:     block.Title,
		Alias:     block.Alias,
		Body:      block.Body,
		ShowTitle: block.ShowTitle,
		Published: block.Published,
		Weight:    block.Weight,
	}
}

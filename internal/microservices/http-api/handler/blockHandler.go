package handler

import (
	"errors"
	"net/http"
	"strconv"

	"commenthub/internal/microservices/http-api/dto"
	"commenthub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type BlockHandler struct {
	blockService service.BlockService
}

func NewBlockHandler(blockService service.BlockService) *BlockHandler {
	return &BlockHandler{
		blockService: blockService,
	}
}

// RegisterRoutes registers region/block routes. Admin routes must be
// wrapped in auth + admin-role middleware by the caller.
func (h *BlockHandler) RegisterRoutes(router *gin.RouterGroup, admin *gin.RouterGroup) {
	regions := router.Group("/regions")
	{
		regions.GET("", h.ListActiveRegions)          // Regions currently holding blocks
		regions.GET("/:alias/blocks", h.ListBlocks)   // Published blocks of a region
	}

	admin.POST("/regions", h.CreateRegion)
	admin.DELETE("/regions/:alias", h.DeleteRegion)
	admin.POST("/blocks", h.CreateBlock)
	admin.PUT("/blocks/:id", h.UpdateBlock)
	admin.DELETE("/blocks/:id", h.DeleteBlock)
}

// ListActiveRegions retrieves regions currently in use
// GET /api/regions
func (h *BlockHandler) ListActiveRegions(c *gin.Context) {
	regions, err := h.blockService.GetActiveRegions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load regions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": regions})
}

// ListBlocks retrieves the published blocks of a region
// GET /api/regions/:alias/blocks
func (h *BlockHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.blockService.GetRegionBlocks(c.Request.Context(), c.Param("alias"))
	if err != nil {
		if errors.Is(err, service.ErrRegionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load blocks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": blocks})
}

// CreateRegion creates a new region
// POST /api/admin/regions
func (h *BlockHandler) CreateRegion(c *gin.Context) {
	var req dto.CreateRegionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	region, err := h.blockService.CreateRegion(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrAliasTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create region"})
		return
	}

	c.JSON(http.StatusCreated, region)
}

// DeleteRegion removes a region
// DELETE /api/admin/regions/:alias
func (h *BlockHandler) DeleteRegion(c *gin.Context) {
	if err := h.blockService.DeleteRegion(c.Request.Context(), c.Param("alias")); err != nil {
		if errors.Is(err, service.ErrRegionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete region"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Region deleted successfully"})
}

// CreateBlock places a new block into a region
// POST /api/admin/blocks
func (h *BlockHandler) CreateBlock(c *gin.Context) {
	var req dto.CreateBlockDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	block, err := h.blockService.CreateBlock(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAliasTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrRegionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create block"})
		}
		return
	}

	c.JSON(http.StatusCreated, block)
}

// UpdateBlock updates an existing block
// PUT /api/admin/blocks/:id
func (h *BlockHandler) UpdateBlock(c *gin.Context) {
	blockID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid block ID"})
		return
	}

	var req dto.UpdateBlockDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	block, err := h.blockService.UpdateBlock(c.Request.Context(), blockID, &req)
	if err != nil {
		if errors.Is(err, service.ErrBlockNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update block"})
		return
	}

	c.JSON(http.StatusOK, block)
}

// DeleteBlock removes a block
// DELETE /api/admin/blocks/:id
func (h *BlockHandler) DeleteBlock(c *gin.Context) {
	blockID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid block ID"})
		return
	}

	if err := h.blockService.DeleteBlock(c.Request.Context(), blockID); err != nil {
		if errors.Is(err, service.ErrBlockNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete block"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Block deleted successfully"})
}

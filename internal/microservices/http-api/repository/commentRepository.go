package repository

import (
	"context"

	"commenthub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	DeleteOwned(ctx context.Context, commentID int64, userID string) (int64, error)
	GetApprovedByTarget(ctx context.Context, model string, foreignKey int64, page, pageSize int) ([]models.Comment, int64, error)
	GetRecentApproved(ctx context.Context, limit int) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translateError(r.db.WithContext(ctx).Create(comment).Error)
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", commentID).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteOwned removes a comment only if the given user owns it. A mismatch
// is not an error: the caller gets the affected row count (0 or 1).
func (r *commentRepository) DeleteOwned(ctx context.Context, commentID int64, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", commentID, userID).
		Delete(&models.Comment{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// GetApprovedByTarget retrieves approved comments for a target item with pagination
func (r *commentRepository) GetApprovedByTarget(ctx context.Context, model string, foreignKey int64, page, pageSize int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	// Count total approved comments
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("model = ? AND foreign_key = ? AND status = ?", model, foreignKey, models.CommentStatusApproved).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	// Get paginated comments, oldest first so threads read top-down
	offset := (page - 1) * pageSize
	err = r.db.WithContext(ctx).
		Where("model = ? AND foreign_key = ? AND status = ?", model, foreignKey, models.CommentStatusApproved).
		Order("weight ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// GetRecentApproved retrieves the newest approved comments across all
// targets, ordered by weight descending (the feed listing)
func (r *commentRepository) GetRecentApproved(ctx context.Context, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("status = ?", models.CommentStatusApproved).
		Order("weight DESC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

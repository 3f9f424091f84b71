package repository

import (
	"context"

	"commenthub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type NodeRepository interface {
	FindApproved(ctx context.Context, nodeType string, id int64) (*models.Node, error)
	IncrementCommentCount(ctx context.Context, id int64) error
}

type nodeRepository struct {
	db *gorm.DB
}

func NewNodeRepository(db *gorm.DB) NodeRepository {
	return &nodeRepository{db: db}
}

// FindApproved looks up a content item by primary key, type and approved
// status. Anything else is treated as not found.
func (r *nodeRepository) FindApproved(ctx context.Context, nodeType string, id int64) (*models.Node, error) {
	var node models.Node
	err := r.db.WithContext(ctx).
		Where("id = ? AND type = ? AND status = ?", id, nodeType, models.NodeStatusApproved).
		First(&node).Error
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// IncrementCommentCount bumps the denormalized comment counter on a node
func (r *nodeRepository) IncrementCommentCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&models.Node{}).
		Where("id = ?", id).
		Update("comment_count", gorm.Expr("comment_count + 1")).Error
}

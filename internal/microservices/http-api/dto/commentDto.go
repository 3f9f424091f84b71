package dto

import (
	"time"

	"commenthub/internal/microservices/http-api/models"
)

// CreateCommentDTO for submitting a comment
type CreateCommentDTO struct {
	ParentID        *int64 `json:"parent_id"`
	Name            string `json:"name" binding:"required,max=255"`
	Email           string `json:"email" binding:"required,email"`
	Website         string `json:"website" binding:"omitempty,url"`
	Body            string `json:"body" binding:"required,min=1,max=5000"`
	CaptchaResponse string `json:"captcha_response"`
}

// SubmitCommentResponse for a successful submission
type SubmitCommentResponse struct {
	ID          int64  `json:"id"`
	Status      string `json:"status"`
	RedirectURL string `json:"redirect_url"`
	Message     string `json:"message"`
}

// PrecheckCommentResponse for a display-only invocation (no comment is created)
type PrecheckCommentResponse struct {
	Commentable bool   `json:"commentable"`
	RedirectURL string `json:"redirect_url"`
}

// DeleteCommentResponse reports the number of comments removed (0 or 1)
type DeleteCommentResponse struct {
	Affected int64 `json:"affected"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID        int64     `json:"id"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Level     int       `json:"level"`
	Name      string    `json:"name"`
	Website   string    `json:"website,omitempty"`
	Body      string    `json:"body"`
	Weight    int64     `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		ParentID:  comment.ParentID,
		Level:     comment.Level,
		Name:      comment.Name,
		Website:   comment.Website,
		Body:      comment.Body,
		Weight:    comment.Weight,
		CreatedAt: comment.CreatedAt,
	}
}

// PaginatedCommentResponse for returning paginated comments
type PaginatedCommentResponse struct {
	Data       []CommentResponse `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// NewPaginatedCommentResponse creates a paginated comment response
func NewPaginatedCommentResponse(data []CommentResponse, total, page, pageSize int) *PaginatedCommentResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedCommentResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

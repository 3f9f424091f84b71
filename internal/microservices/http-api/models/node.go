package models

import "time"

// Node statuses
const (
	NodeStatusApproved = "approved"
	NodeStatusPending  = "pending"
)

// Node is a content item that comments attach to. The Type column is the
// model name comments are registered under (e.g. "blog", "page").
type Node struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Type          string    `json:"type" gorm:"not null;index"`
	Title         string    `json:"title" gorm:"not null"`
	Slug          string    `json:"slug" gorm:"not null"`
	Path          string    `json:"path" gorm:"not null"`
	URL           string    `json:"url" gorm:"not null"`
	Status        string    `json:"status" gorm:"not null;default:'pending';index"`
	CommentStatus bool      `json:"comment_status" gorm:"not null;default:true"` // whether comments are currently open
	CommentCount  int64     `json:"comment_count" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Node) TableName() string {
	return "nodes"
}

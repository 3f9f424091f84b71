package models

import "time"

// Comment statuses
const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
)

type Comment struct {
	ID         int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Model      string  `json:"model" gorm:"not null;index:idx_comments_target"`
	ForeignKey int64   `json:"foreign_key" gorm:"not null;index:idx_comments_target"`
	ParentID   *int64  `json:"parent_id,omitempty" gorm:"index"`
	Level      int     `json:"level" gorm:"not null;default:0"` // nesting depth, 0 = top-level
	Name       string  `json:"name" gorm:"not null"`
	Email      string  `json:"email" gorm:"not null"`
	Website    string  `json:"website,omitempty"`
	Body       string  `json:"body" gorm:"not null;type:text"`
	IP         string  `json:"-"`
	UserID     *string `json:"user_id,omitempty" gorm:"type:uuid;index"` // set when author is authenticated
	Status     string  `json:"status" gorm:"not null;default:'pending';index"`
	Weight     int64   `json:"weight" gorm:"not null;index"` // ordering key, creation unix time

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User   *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Parent *Comment `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
}

func (Comment) TableName() string {
	return "comments"
}

package models

import "time"

// Region is a named template area blocks are placed into.
type Region struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title      string    `json:"title" gorm:"not null"`
	Alias      string    `json:"alias" gorm:"uniqueIndex;not null"`
	BlockCount int64     `json:"block_count" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Region) TableName() string {
	return "regions"
}

// Block is a piece of content placed into a region.
type Block struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	RegionID  int64     `json:"region_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	Alias     string    `json:"alias" gorm:"uniqueIndex;not null"`
	Body      string    `json:"body" gorm:"type:text"`
	ShowTitle bool      `json:"show_title" gorm:"not null;default:true"`
	Published bool      `json:"published" gorm:"not null;default:false;index"`
	Weight    int       `json:"weight" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Region *Region `json:"region,omitempty" gorm:"foreignKey:RegionID;constraint:OnDelete:CASCADE;"`
}

func (Block) TableName() string {
	return "blocks"
}

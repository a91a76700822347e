package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a post entity
type Post struct {
	Id          uint           `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	Title       string         `json:"title" gorm:"size:255;index"`
	Slug        string         `json:"slug" gorm:"size:255"`
	Excerpt     string         `json:"excerpt"`
	AuthorId    *uint          `json:"author_id"`
	Author      *Employee      `json:"author,omitempty" gorm:"foreignKey:AuthorId;references:Id"`
	Status      string         `json:"status" gorm:"size:32"`
	Category    string         `json:"category" gorm:"size:64"`
	Published   bool           `json:"published"`
	PublishedAt *time.Time     `json:"published_at"`
}

// TableName returns the table name for the Post model
func (m *Post) TableName() string {
	return "posts"
}

// GetId returns the Id of the model
func (m *Post) GetId() uint {
	return m.Id
}

// GetModelName returns the model name
func (m *Post) GetModelName() string {
	return "post"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products on the storefront.
type Category struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ParentID  *uuid.UUID `gorm:"column:parent_id;type:uuid" json:"parent_id,omitempty"`
	Name      string     `gorm:"column:name;not null" json:"name"`
	Slug      string     `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

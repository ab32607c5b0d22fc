package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Label mirrors the Trello label created for a category. An empty LabelID
// means the remote label was never created (or creation failed) and the
// category cannot be used for card-labeling yet.
type Label struct {
	LabelID    string `gorm:"size:64;index" json:"labelId"`
	LabelName  string `gorm:"size:255" json:"name"`
	LabelColor string `gorm:"size:32" json:"color"`
}

// Category groups assignments and is bound 1:1 to a Trello label on the
// owning user's board.
type Category struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:128;not null;index" json:"userId"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Label     Label     `gorm:"embedded;embeddedPrefix:trello_" json:"trelloLabel"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate assigns a UUID primary key when none is set.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

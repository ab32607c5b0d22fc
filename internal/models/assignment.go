package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Assignment statuses map to the three lists of the user's board.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Assignment is the local record of one Trello card. The remote card is the
// source of truth for name, description, due date and list membership; this
// row caches the last state the service wrote, with the raw card response
// kept in RemoteCard.
type Assignment struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"size:128;not null;index" json:"userId"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `gorm:"index" json:"dueDate"`

	// LabelID is the canonical category reference: the Trello label id of
	// the category the assignment belongs to, empty for uncategorized.
	LabelID string `gorm:"size:64;index" json:"labelId"`

	TrelloCardID  string         `gorm:"size:64;not null" json:"trelloCardId"`
	TodoListID    string         `gorm:"size:64" json:"toDoListId"`
	CurrentListID string         `gorm:"size:64" json:"currentListId"`
	Status        string         `gorm:"size:32;not null;default:todo" json:"status"`
	Notification  bool           `gorm:"not null;default:false" json:"notification"`
	RemoteCard    datatypes.JSON `gorm:"type:json" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Assignment
func (Assignment) TableName() string {
	return "assignments"
}

// BeforeCreate assigns a UUID primary key when none is set.
func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

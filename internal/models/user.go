package models

import (
	"time"
)

// Workspace holds the Trello identifiers provisioned for a user. An empty
// BoardID means the workspace has not been provisioned yet; it is created
// lazily the first time the user needs a card or a label.
type Workspace struct {
	BoardID          string `gorm:"size:64" json:"boardId"`
	TodoListID       string `gorm:"size:64" json:"toDoListId"`
	InProgressListID string `gorm:"size:64" json:"inProgressListId"`
	CompletedListID  string `gorm:"size:64" json:"completedListId"`
}

// Provisioned reports whether the remote board and lists exist.
func (w Workspace) Provisioned() bool {
	return w.BoardID != ""
}

// User represents a registered account. The primary key is the identity
// provider's subject id, not a locally generated one.
type User struct {
	ID        string    `gorm:"primaryKey;size:128" json:"id"`
	Username  string    `gorm:"size:255;not null" json:"username"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Role      string    `gorm:"size:32;not null;default:user" json:"role"`
	Workspace Workspace `gorm:"embedded" json:"workspace"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

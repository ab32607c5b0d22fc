package services

import (
	"context"
	"fmt"

	"github.com/techieblitz/assignment-tracker/internal/models"
	"github.com/techieblitz/assignment-tracker/internal/repository"
	"github.com/techieblitz/assignment-tracker/internal/trello"
)

// Board and list names created for every user on first use.
const (
	boardName          = "Assignment Board"
	todoListName       = "To Do"
	inProgressListName = "In progress"
	completedListName  = "Completed"
)

// BoardClient is the external board surface the services depend on. It is
// satisfied by *trello.Client and by fakes in tests.
type BoardClient interface {
	CreateBoard(ctx context.Context, name string) (string, error)
	CreateList(ctx context.Context, boardID, name string) (string, error)
	CreateLabel(ctx context.Context, boardID, name, color string) (*trello.Label, error)
	UpdateLabel(ctx context.Context, labelID, name string) error
	DeleteLabel(ctx context.Context, labelID string) error
	CreateCard(ctx context.Context, req trello.CardRequest) (*trello.Card, error)
	UpdateCard(ctx context.Context, cardID string, update trello.CardUpdate) error
	MoveCard(ctx context.Context, cardID, listID string) error
	DeleteCard(ctx context.Context, cardID string) error
}

// WorkspaceManager owns the lazy provisioning of a user's board and lists.
// The workspace identifiers are cached on the user record and re-read once
// per operation; callers never touch the board/list columns directly.
type WorkspaceManager struct {
	users *repository.UserRepository
	board BoardClient
}

func NewWorkspaceManager(users *repository.UserRepository, board BoardClient) *WorkspaceManager {
	return &WorkspaceManager{users: users, board: board}
}

// Ensure returns the user's workspace, creating the board and its three
// lists on first use. The identifiers are persisted with merge semantics so
// unrelated user fields survive.
func (m *WorkspaceManager) Ensure(ctx context.Context, userID string) (models.Workspace, error) {
	user, err := m.users.FindByID(ctx, userID)
	if err != nil {
		return models.Workspace{}, err
	}
	if user.Workspace.Provisioned() {
		return user.Workspace, nil
	}

	boardID, err := m.board.CreateBoard(ctx, boardName)
	if err != nil {
		return models.Workspace{}, fmt.Errorf("provision board: %w", err)
	}

	ws := models.Workspace{BoardID: boardID}
	for _, l := range []struct {
		name string
		dst  *string
	}{
		{todoListName, &ws.TodoListID},
		{inProgressListName, &ws.InProgressListID},
		{completedListName, &ws.CompletedListID},
	} {
		id, err := m.board.CreateList(ctx, boardID, l.name)
		if err != nil {
			return models.Workspace{}, fmt.Errorf("provision list %q: %w", l.name, err)
		}
		*l.dst = id
	}

	if err := m.users.SaveWorkspace(ctx, userID, ws); err != nil {
		return models.Workspace{}, err
	}
	return ws, nil
}

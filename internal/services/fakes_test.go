package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/techieblitz/assignment-tracker/internal/models"
	"github.com/techieblitz/assignment-tracker/internal/repository"
	"github.com/techieblitz/assignment-tracker/internal/trello"
	"github.com/techieblitz/assignment-tracker/internal/types"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Assignment{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	user := &models.User{ID: id, Username: "user-" + id, Email: id + "@example.com", Role: "user"}
	if err := repository.NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

// fakeBoard records external board calls and fails on demand.
type fakeBoard struct {
	boardCalls int
	listCalls  int
	labelCalls int
	cardCalls  int

	moveCalls     [][2]string // cardID, listID
	updateCalls   int
	deletedCards  []string
	deletedLabels []string

	failCreateCard  bool
	failCreateLabel bool
	failUpdateCard  bool
	failMoveCard    bool
	failDeleteCard  bool
}

func boardFailure() error {
	return &types.ExternalServiceError{Service: "trello", Status: 500}
}

func (f *fakeBoard) CreateBoard(ctx context.Context, name string) (string, error) {
	f.boardCalls++
	return "board-1", nil
}

func (f *fakeBoard) CreateList(ctx context.Context, boardID, name string) (string, error) {
	f.listCalls++
	return "list-" + name, nil
}

func (f *fakeBoard) CreateLabel(ctx context.Context, boardID, name, color string) (*trello.Label, error) {
	if f.failCreateLabel {
		return nil, boardFailure()
	}
	f.labelCalls++
	return &trello.Label{
		ID:      fmt.Sprintf("label-%d", f.labelCalls),
		Name:    name,
		Color:   color,
		BoardID: boardID,
	}, nil
}

func (f *fakeBoard) UpdateLabel(ctx context.Context, labelID, name string) error {
	return nil
}

func (f *fakeBoard) DeleteLabel(ctx context.Context, labelID string) error {
	f.deletedLabels = append(f.deletedLabels, labelID)
	return nil
}

func (f *fakeBoard) CreateCard(ctx context.Context, req trello.CardRequest) (*trello.Card, error) {
	if f.failCreateCard {
		return nil, boardFailure()
	}
	f.cardCalls++
	card := &trello.Card{
		ID:     fmt.Sprintf("card-%d", f.cardCalls),
		Name:   req.Name,
		Desc:   req.Description,
		Due:    req.Due,
		ListID: req.ListID,
	}
	if req.LabelID != "" {
		card.LabelIDs = []string{req.LabelID}
	}
	return card, nil
}

func (f *fakeBoard) UpdateCard(ctx context.Context, cardID string, update trello.CardUpdate) error {
	if f.failUpdateCard {
		return boardFailure()
	}
	f.updateCalls++
	return nil
}

func (f *fakeBoard) MoveCard(ctx context.Context, cardID, listID string) error {
	if f.failMoveCard {
		return boardFailure()
	}
	f.moveCalls = append(f.moveCalls, [2]string{cardID, listID})
	return nil
}

func (f *fakeBoard) DeleteCard(ctx context.Context, cardID string) error {
	if f.failDeleteCard {
		return boardFailure()
	}
	f.deletedCards = append(f.deletedCards, cardID)
	return nil
}

// fakeSender records sent reminder emails.
type fakeSender struct {
	sent     []string // recipient addresses in send order
	failNext bool
}

func (f *fakeSender) Send(ctx context.Context, to, subject, text, html string) error {
	if f.failNext {
		f.failNext = false
		return &types.ExternalServiceError{Service: "sendgrid", Status: 500}
	}
	f.sent = append(f.sent, to)
	return nil
}

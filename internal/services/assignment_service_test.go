package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/techieblitz/assignment-tracker/internal/models"
	"github.com/techieblitz/assignment-tracker/internal/repository"
	"github.com/techieblitz/assignment-tracker/internal/services"
	"github.com/techieblitz/assignment-tracker/internal/types"
)

func newAssignmentService(t *testing.T, board *fakeBoard) (*services.AssignmentService, *repository.UserRepository, *repository.CategoryRepository, *repository.AssignmentRepository) {
	t.Helper()
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	workspace := services.NewWorkspaceManager(users, board)
	svc := services.NewAssignmentService(assignments, categories, workspace, board)
	return svc, users, categories, assignments
}

func TestCreateProvisionsBoardOnce(t *testing.T) {
	board := &fakeBoard{}
	svc, users, _, _ := newAssignmentService(t, board)
	ctx := context.Background()

	user := &models.User{ID: "u1", Username: "alice", Email: "alice@example.com", Role: "user"}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	first, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Essay"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if board.boardCalls != 1 {
		t.Errorf("Expected 1 board creation, got %d", board.boardCalls)
	}
	if board.listCalls != 3 {
		t.Errorf("Expected 3 list creations, got %d", board.listCalls)
	}
	if first.TrelloCardID == "" {
		t.Error("Expected assignment to carry a card id")
	}
	if first.Status != models.StatusTodo {
		t.Errorf("Expected status %q, got %q", models.StatusTodo, first.Status)
	}

	// Workspace identifiers must land on the user record without
	// clobbering unrelated fields.
	stored, err := users.FindByID(ctx, "u1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.Workspace.BoardID != "board-1" {
		t.Errorf("Expected board id persisted, got %q", stored.Workspace.BoardID)
	}
	if stored.Workspace.TodoListID != "list-To Do" {
		t.Errorf("Expected todo list id persisted, got %q", stored.Workspace.TodoListID)
	}
	if stored.Username != "alice" || stored.Email != "alice@example.com" {
		t.Errorf("Workspace save clobbered user fields: %+v", stored)
	}

	// Second create reuses the cached workspace.
	if _, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Quiz prep"}); err != nil {
		t.Fatalf("Second create failed: %v", err)
	}
	if board.boardCalls != 1 {
		t.Errorf("Expected board to be created once, got %d calls", board.boardCalls)
	}
	if board.listCalls != 3 {
		t.Errorf("Expected lists to be created once, got %d calls", board.listCalls)
	}
}

func TestCreateResolvesCategoryLabel(t *testing.T) {
	board := &fakeBoard{}
	svc, users, categories, _ := newAssignmentService(t, board)
	ctx := context.Background()

	if err := users.Create(ctx, &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	category := &models.Category{UserID: "u1", Name: "Homework"}
	if err := categories.Create(ctx, category); err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	if err := categories.AttachLabel(ctx, category.ID, models.Label{LabelID: "lbl-1", LabelName: "Homework", LabelColor: "blue"}); err != nil {
		t.Fatalf("Failed to attach label: %v", err)
	}

	created, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Essay", Category: "Homework"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.LabelID != "lbl-1" {
		t.Errorf("Expected label id lbl-1, got %q", created.LabelID)
	}

	// Unknown category resolves to no label rather than an error.
	plain, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Reading", Category: "Nonexistent"})
	if err != nil {
		t.Fatalf("Create with unknown category failed: %v", err)
	}
	if plain.LabelID != "" {
		t.Errorf("Expected no label for unknown category, got %q", plain.LabelID)
	}
}

func TestCreateCardFailureLeavesNoLocalRecord(t *testing.T) {
	board := &fakeBoard{failCreateCard: true}
	svc, users, _, assignments := newAssignmentService(t, board)
	ctx := context.Background()

	if err := users.Create(ctx, &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	_, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Essay"})
	var ext *types.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Fatalf("Expected external service error, got %v", err)
	}

	all, err := assignments.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Expected no local record after card failure, got %d", len(all))
	}
}

func TestMoveUpdatesLocalAfterRemote(t *testing.T) {
	board := &fakeBoard{}
	svc, users, _, assignments := newAssignmentService(t, board)
	ctx := context.Background()

	if err := users.Create(ctx, &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	created, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Essay"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Move(ctx, "u1", created.ID, models.StatusCompleted); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if len(board.moveCalls) != 1 {
		t.Fatalf("Expected 1 move call, got %d", len(board.moveCalls))
	}
	if got := board.moveCalls[0]; got[0] != created.TrelloCardID || got[1] != "list-Completed" {
		t.Errorf("Unexpected move call: %v", got)
	}

	stored, err := assignments.FindByID(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.Status != models.StatusCompleted {
		t.Errorf("Expected status completed, got %q", stored.Status)
	}
	if stored.CurrentListID != "list-Completed" {
		t.Errorf("Expected current list mirrored, got %q", stored.CurrentListID)
	}
}

func TestMoveFailureLeavesLocalUntouched(t *testing.T) {
	board := &fakeBoard{}
	svc, users, _, assignments := newAssignmentService(t, board)
	ctx := context.Background()

	if err := users.Create(ctx, &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	created, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Essay"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	board.failMoveCard = true
	err = svc.Move(ctx, "u1", created.ID, models.StatusInProgress)
	var ext *types.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Fatalf("Expected external service error, got %v", err)
	}

	stored, err := assignments.FindByID(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.Status != models.StatusTodo {
		t.Errorf("Expected status unchanged, got %q", stored.Status)
	}
}

func TestMoveRejectsUnknownStatus(t *testing.T) {
	board := &fakeBoard{}
	svc, users, _, _ := newAssignmentService(t, board)
	ctx := context.Background()

	if err := users.Create(ctx, &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	created, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Essay"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = svc.Move(ctx, "u1", created.ID, "done")
	var ve *types.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if len(board.moveCalls) != 0 {
		t.Errorf("Expected no remote call for unknown status, got %d", len(board.moveCalls))
	}
}

func TestDeleteRemovesLocalEvenWhenRemoteFails(t *testing.T) {
	board := &fakeBoard{}
	svc, users, _, assignments := newAssignmentService(t, board)
	ctx := context.Background()

	if err := users.Create(ctx, &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	created, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Essay"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	board.failDeleteCard = true
	err = svc.Delete(ctx, "u1", created.ID)
	var ext *types.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Fatalf("Expected external service error, got %v", err)
	}

	_, err = assignments.FindByID(ctx, "u1", created.ID)
	var nf *types.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("Expected local record gone, got %v", err)
	}
}

func TestUpdateTouchesRemoteBeforeLocal(t *testing.T) {
	board := &fakeBoard{}
	svc, users, _, assignments := newAssignmentService(t, board)
	ctx := context.Background()

	if err := users.Create(ctx, &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	created, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Essay"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	board.failUpdateCard = true
	due := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	err = svc.Update(ctx, "u1", created.ID, services.AssignmentInput{Name: "Final essay", DueDate: &due})
	var ext *types.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Fatalf("Expected external service error, got %v", err)
	}
	stored, err := assignments.FindByID(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.Name != "Essay" {
		t.Errorf("Expected local record unchanged, got name %q", stored.Name)
	}

	board.failUpdateCard = false
	if err := svc.Update(ctx, "u1", created.ID, services.AssignmentInput{Name: "Final essay", DueDate: &due}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	stored, err = assignments.FindByID(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.Name != "Final essay" {
		t.Errorf("Expected name updated, got %q", stored.Name)
	}
	if stored.DueDate == nil || !stored.DueDate.Equal(due) {
		t.Errorf("Expected due date updated, got %v", stored.DueDate)
	}
}

func TestGetResolvesCategoryName(t *testing.T) {
	board := &fakeBoard{}
	svc, users, categories, _ := newAssignmentService(t, board)
	ctx := context.Background()

	if err := users.Create(ctx, &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	category := &models.Category{UserID: "u1", Name: "Homework"}
	if err := categories.Create(ctx, category); err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	if err := categories.AttachLabel(ctx, category.ID, models.Label{LabelID: "lbl-1", LabelName: "Homework", LabelColor: "blue"}); err != nil {
		t.Fatalf("Failed to attach label: %v", err)
	}

	created, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Essay", Category: "Homework"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	view, err := svc.Get(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if view.Category != "Homework" {
		t.Errorf("Expected category name resolved, got %q", view.Category)
	}

	// Dropping the category leaves the view with an empty name, not an error.
	if err := categories.Delete(ctx, "u1", category.ID); err != nil {
		t.Fatalf("Delete category failed: %v", err)
	}
	view, err = svc.Get(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("Get after category delete failed: %v", err)
	}
	if view.Category != "" {
		t.Errorf("Expected empty category for dangling label, got %q", view.Category)
	}
}

func TestGetNotFound(t *testing.T) {
	svc, users, _, _ := newAssignmentService(t, &fakeBoard{})
	ctx := context.Background()

	if err := users.Create(ctx, &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	_, err := svc.Get(ctx, "u1", "missing")
	var nf *types.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected not found error, got %v", err)
	}
}

func TestListByCategoryScopesToLabel(t *testing.T) {
	board := &fakeBoard{}
	svc, users, categories, _ := newAssignmentService(t, board)
	ctx := context.Background()

	if err := users.Create(ctx, &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	category := &models.Category{UserID: "u1", Name: "Homework"}
	if err := categories.Create(ctx, category); err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	if err := categories.AttachLabel(ctx, category.ID, models.Label{LabelID: "lbl-1", LabelName: "Homework", LabelColor: "blue"}); err != nil {
		t.Fatalf("Failed to attach label: %v", err)
	}

	if _, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Essay", Category: "Homework"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Reading"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	views, err := svc.ListByCategory(ctx, "u1", category.ID)
	if err != nil {
		t.Fatalf("ListByCategory failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("Expected 1 assignment in category, got %d", len(views))
	}
	if views[0].Name != "Essay" || views[0].Category != "Homework" {
		t.Errorf("Unexpected view: %+v", views[0])
	}
}

func TestListByCategoryWithoutLabelIsEmpty(t *testing.T) {
	board := &fakeBoard{}
	svc, users, categories, _ := newAssignmentService(t, board)
	ctx := context.Background()

	if err := users.Create(ctx, &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	// A category whose label creation failed keeps an empty label id.
	orphan := &models.Category{UserID: "u1", Name: "Orphan"}
	if err := categories.Create(ctx, orphan); err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}

	// Uncategorized assignments also carry an empty label id and must not
	// show up under the orphaned category.
	if _, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Essay"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, "u1", services.AssignmentInput{Name: "Reading"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	views, err := svc.ListByCategory(ctx, "u1", orphan.ID)
	if err != nil {
		t.Fatalf("ListByCategory failed: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("Expected no assignments for unlabeled category, got %d: %+v", len(views), views)
	}
}

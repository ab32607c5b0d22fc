package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/techieblitz/assignment-tracker/internal/models"
	"github.com/techieblitz/assignment-tracker/internal/repository"
	"github.com/techieblitz/assignment-tracker/internal/trello"
	"github.com/techieblitz/assignment-tracker/internal/types"
)

// AssignmentInput carries the client-supplied fields of an assignment.
// Category is the category name; empty means uncategorized.
type AssignmentInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Category    string     `json:"category"`
}

// AssignmentView is an assignment merged with the resolved category name.
type AssignmentView struct {
	models.Assignment
	Category string `json:"category"`
}

// AssignmentService keeps one local assignment record and one Trello card
// in agreement across create, update, move and delete. The two mutations
// are sequential network calls with no two-phase guarantee; the remote call
// goes first on update/move, the local delete goes first on delete.
type AssignmentService struct {
	assignments *repository.AssignmentRepository
	categories  *repository.CategoryRepository
	workspace   *WorkspaceManager
	board       BoardClient
}

func NewAssignmentService(
	assignments *repository.AssignmentRepository,
	categories *repository.CategoryRepository,
	workspace *WorkspaceManager,
	board BoardClient,
) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		categories:  categories,
		workspace:   workspace,
		board:       board,
	}
}

// Create provisions the user's workspace when needed, creates the card in
// the To Do list and persists the local record. Returns the created
// assignment with its card id.
func (s *AssignmentService) Create(ctx context.Context, userID string, in AssignmentInput) (*models.Assignment, error) {
	ws, err := s.workspace.Ensure(ctx, userID)
	if err != nil {
		return nil, err
	}

	labelID, err := s.resolveLabel(ctx, userID, in.Category)
	if err != nil {
		return nil, err
	}

	card, err := s.board.CreateCard(ctx, trello.CardRequest{
		Name:        in.Name,
		Description: in.Description,
		ListID:      ws.TodoListID,
		Due:         in.DueDate,
		LabelID:     labelID,
	})
	if err != nil {
		return nil, err
	}

	snapshot, _ := json.Marshal(card)
	assignment := &models.Assignment{
		UserID:        userID,
		Name:          in.Name,
		Description:   in.Description,
		DueDate:       in.DueDate,
		LabelID:       labelID,
		TrelloCardID:  card.ID,
		TodoListID:    ws.TodoListID,
		CurrentListID: ws.TodoListID,
		Status:        models.StatusTodo,
		RemoteCard:    snapshot,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Get reads the local record and resolves the stored label id back to the
// category name. A dangling label reference yields an empty category, not
// an error.
func (s *AssignmentService) Get(ctx context.Context, userID, id string) (*AssignmentView, error) {
	assignment, err := s.assignments.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, assignment), nil
}

func (s *AssignmentService) List(ctx context.Context, userID string) ([]AssignmentView, error) {
	assignments, err := s.assignments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]AssignmentView, 0, len(assignments))
	for i := range assignments {
		views = append(views, *s.toView(ctx, &assignments[i]))
	}
	return views, nil
}

// ListByCategory returns the user's assignments belonging to the category.
// A category without a label has no assignments; an empty label id must not
// match the uncategorized ones.
func (s *AssignmentService) ListByCategory(ctx context.Context, userID, categoryID string) ([]AssignmentView, error) {
	category, err := s.categories.FindByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if category.Label.LabelID == "" {
		return []AssignmentView{}, nil
	}
	assignments, err := s.assignments.ListByLabel(ctx, userID, category.Label.LabelID)
	if err != nil {
		return nil, err
	}
	views := make([]AssignmentView, 0, len(assignments))
	for i := range assignments {
		views = append(views, AssignmentView{Assignment: assignments[i], Category: category.Name})
	}
	return views, nil
}

// Update re-resolves the label and updates the remote card first. The local
// record is only touched after the remote update succeeds; a failure on the
// local write leaves the two out of agreement until the next update.
func (s *AssignmentService) Update(ctx context.Context, userID, id string, in AssignmentInput) error {
	assignment, err := s.assignments.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}

	labelID, err := s.resolveLabel(ctx, userID, in.Category)
	if err != nil {
		return err
	}

	if err := s.board.UpdateCard(ctx, assignment.TrelloCardID, trello.CardUpdate{
		Name:        in.Name,
		Description: in.Description,
		Due:         in.DueDate,
		LabelID:     labelID,
	}); err != nil {
		return err
	}

	return s.assignments.Update(ctx, userID, id, map[string]interface{}{
		"name":        in.Name,
		"description": in.Description,
		"due_date":    in.DueDate,
		"label_id":    labelID,
	})
}

// Delete removes the local record first, then the remote card. When the
// remote delete fails the card outlives the record; the error still
// propagates to the caller.
func (s *AssignmentService) Delete(ctx context.Context, userID, id string) error {
	assignment, err := s.assignments.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.assignments.Delete(ctx, userID, id); err != nil {
		return err
	}
	return s.board.DeleteCard(ctx, assignment.TrelloCardID)
}

// Move moves the card to the list matching the new status, then mirrors the
// status and list id on the local record. Concurrent moves on the same
// assignment race; last write wins on both sides.
func (s *AssignmentService) Move(ctx context.Context, userID, id, status string) error {
	assignment, err := s.assignments.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}

	ws, err := s.workspace.Ensure(ctx, userID)
	if err != nil {
		return err
	}
	listID, err := listForStatus(ws, status)
	if err != nil {
		return err
	}

	if err := s.board.MoveCard(ctx, assignment.TrelloCardID, listID); err != nil {
		return err
	}
	return s.assignments.UpdateStatus(ctx, userID, id, status, listID)
}

// resolveLabel maps a category name to its Trello label id. An unknown or
// empty category resolves to no label.
func (s *AssignmentService) resolveLabel(ctx context.Context, userID, category string) (string, error) {
	if category == "" {
		return "", nil
	}
	cat, err := s.categories.FindByName(ctx, userID, category)
	if err != nil {
		var nf *types.NotFoundError
		if errors.As(err, &nf) {
			return "", nil
		}
		return "", err
	}
	return cat.Label.LabelID, nil
}

func (s *AssignmentService) toView(ctx context.Context, assignment *models.Assignment) *AssignmentView {
	view := &AssignmentView{Assignment: *assignment}
	if assignment.LabelID == "" {
		return view
	}
	if category, err := s.categories.FindByLabelID(ctx, assignment.LabelID); err == nil {
		view.Category = category.Name
	}
	return view
}

func listForStatus(ws models.Workspace, status string) (string, error) {
	switch status {
	case models.StatusTodo:
		return ws.TodoListID, nil
	case models.StatusInProgress:
		return ws.InProgressListID, nil
	case models.StatusCompleted:
		return ws.CompletedListID, nil
	default:
		return "", &types.ValidationError{Message: "unknown status: " + status}
	}
}

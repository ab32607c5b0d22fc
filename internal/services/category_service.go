package services

import (
	"context"
	"log"

	"github.com/techieblitz/assignment-tracker/internal/models"
	"github.com/techieblitz/assignment-tracker/internal/repository"
)

// All labels are created with the same color, matching the board's visual
// convention.
const defaultLabelColor = "blue"

// CategoryService maintains the 1:1 binding between a local category and a
// Trello label on the owning user's board.
type CategoryService struct {
	categories *repository.CategoryRepository
	workspace  *WorkspaceManager
	board      BoardClient
}

func NewCategoryService(categories *repository.CategoryRepository, workspace *WorkspaceManager, board BoardClient) *CategoryService {
	return &CategoryService{categories: categories, workspace: workspace, board: board}
}

// Create writes the local record, then creates the label on the user's
// board and attaches its metadata. The local record is not rolled back when
// label creation fails; the category stays orphaned until recreated.
func (s *CategoryService) Create(ctx context.Context, userID, name string) (*models.Category, error) {
	category := &models.Category{UserID: userID, Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	ws, err := s.workspace.Ensure(ctx, userID)
	if err != nil {
		log.Printf("category %s left without label: %v", category.ID, err)
		return nil, err
	}

	label, err := s.board.CreateLabel(ctx, ws.BoardID, name, defaultLabelColor)
	if err != nil {
		log.Printf("category %s left without label: %v", category.ID, err)
		return nil, err
	}

	category.Label = models.Label{
		LabelID:    label.ID,
		LabelName:  label.Name,
		LabelColor: label.Color,
	}
	if err := s.categories.AttachLabel(ctx, category.ID, category.Label); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, userID, id string) (*models.Category, error) {
	return s.categories.FindByID(ctx, userID, id)
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}

// Rename renames the remote label first, then the local record.
func (s *CategoryService) Rename(ctx context.Context, userID, id, name string) error {
	category, err := s.categories.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if category.Label.LabelID != "" {
		if err := s.board.UpdateLabel(ctx, category.Label.LabelID, name); err != nil {
			return err
		}
	}
	return s.categories.Rename(ctx, userID, id, name)
}

// Delete removes the local record first, then the remote label, mirroring
// the assignment delete ordering.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	category, err := s.categories.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, userID, id); err != nil {
		return err
	}
	if category.Label.LabelID == "" {
		return nil
	}
	return s.board.DeleteLabel(ctx, category.Label.LabelID)
}

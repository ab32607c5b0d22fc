package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/techieblitz/assignment-tracker/internal/models"
	"github.com/techieblitz/assignment-tracker/internal/types"
	"gorm.io/gorm"
)

// AssignmentRepository handles CRUD for assignment records.
type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) FindByID(ctx context.Context, userID, id string) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).First(&assignment, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Resource: "assignment", ID: id}
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return &assignment, nil
}

func (r *AssignmentRepository) ListByUser(ctx context.Context, userID string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// ListByLabel returns the user's assignments carrying the given label id.
func (r *AssignmentRepository) ListByLabel(ctx context.Context, userID, labelID string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := r.db.WithContext(ctx).Where("user_id = ? AND label_id = ?", userID, labelID).
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("list assignments by label: %w", err)
	}
	return assignments, nil
}

// Update applies the given column values to one assignment.
func (r *AssignmentRepository) Update(ctx context.Context, userID, id string, values map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(values)
	if res.Error != nil {
		return fmt.Errorf("update assignment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &types.NotFoundError{Resource: "assignment", ID: id}
	}
	return nil
}

// UpdateStatus records a completed move: the new status and list id.
func (r *AssignmentRepository) UpdateStatus(ctx context.Context, userID, id, status, listID string) error {
	return r.Update(ctx, userID, id, map[string]interface{}{
		"status":          status,
		"current_list_id": listID,
	})
}

func (r *AssignmentRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&models.Assignment{})
	if res.Error != nil {
		return fmt.Errorf("delete assignment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &types.NotFoundError{Resource: "assignment", ID: id}
	}
	return nil
}

// ListDueBetweenUnnotified returns assignments across all users with a due
// date inside [start, end] that have not been notified yet. Both bounds are
// inclusive.
func (r *AssignmentRepository) ListDueBetweenUnnotified(ctx context.Context, start, end time.Time) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := r.db.WithContext(ctx).
		Where("due_date >= ? AND due_date <= ? AND notification = ?", start, end, false).
		Order("due_date").
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("list due assignments: %w", err)
	}
	return assignments, nil
}

// MarkNotified flips the notification flag after a reminder was sent.
func (r *AssignmentRepository) MarkNotified(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Where("id = ?", id).
		Update("notification", true)
	if res.Error != nil {
		return fmt.Errorf("mark notified: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &types.NotFoundError{Resource: "assignment", ID: id}
	}
	return nil
}

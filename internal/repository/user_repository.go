package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/techieblitz/assignment-tracker/internal/models"
	"github.com/techieblitz/assignment-tracker/internal/types"
	"gorm.io/gorm"
)

// UserRepository handles CRUD for user records.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Resource: "user", ID: id}
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Resource: "user"}
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// Update applies the given column values to one user. Only keys present in
// values are touched.
func (r *UserRepository) Update(ctx context.Context, id string, values map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &types.NotFoundError{Resource: "user", ID: id}
	}
	return nil
}

// SaveWorkspace persists the provisioned board and list identifiers with
// merge semantics: only the four workspace columns are written, everything
// else on the user row survives.
func (r *UserRepository) SaveWorkspace(ctx context.Context, id string, ws models.Workspace) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"board_id":            ws.BoardID,
		"todo_list_id":        ws.TodoListID,
		"in_progress_list_id": ws.InProgressListID,
		"completed_list_id":   ws.CompletedListID,
	})
	if res.Error != nil {
		return fmt.Errorf("save workspace: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &types.NotFoundError{Resource: "user", ID: id}
	}
	return nil
}

// Delete removes the user record. Categories and assignments are not
// cascaded; see the service documentation.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &types.NotFoundError{Resource: "user", ID: id}
	}
	return nil
}

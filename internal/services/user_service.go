package services

import (
	"context"
	"errors"

	"github.com/techieblitz/assignment-tracker/internal/models"
	"github.com/techieblitz/assignment-tracker/internal/repository"
	"github.com/techieblitz/assignment-tracker/internal/types"
)

// UserService handles registration and profile CRUD. The record key is the
// identity provider's subject id.
type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates the profile record for a verified identity. A duplicate
// email is a validation error, not a server error.
func (s *UserService) Register(ctx context.Context, userID, username, email string) (*models.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, &types.ValidationError{Message: "email already in use"}
	} else {
		var nf *types.NotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	user := &models.User{
		ID:       userID,
		Username: username,
		Email:    email,
		Role:     "user",
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update edits the mutable profile fields. Board identifiers are managed by
// the workspace manager and cannot be set here.
func (s *UserService) Update(ctx context.Context, id, username, email string) error {
	values := map[string]interface{}{}
	if username != "" {
		values["username"] = username
	}
	if email != "" {
		values["email"] = email
	}
	if len(values) == 0 {
		return &types.ValidationError{Message: "nothing to update"}
	}
	return s.users.Update(ctx, id, values)
}

// Delete removes the profile record. The user's categories and assignments
// are not cascaded and keep referencing the deleted id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

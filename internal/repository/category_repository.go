package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/techieblitz/assignment-tracker/internal/models"
	"github.com/techieblitz/assignment-tracker/internal/types"
	"gorm.io/gorm"
)

// CategoryRepository handles CRUD for category records.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, userID, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Resource: "category", ID: id}
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, userID, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "user_id = ? AND name = ?", userID, name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Resource: "category", ID: name}
		}
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return &category, nil
}

// FindByLabelID is the reverse lookup from a card's label id back to the
// human-readable category.
func (r *CategoryRepository) FindByLabelID(ctx context.Context, labelID string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "trello_label_id = ?", labelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Resource: "category"}
		}
		return nil, fmt.Errorf("find category by label: %w", err)
	}
	return &category, nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// AttachLabel stores the remote label metadata on the category after the
// label has been created on the user's board.
func (r *CategoryRepository) AttachLabel(ctx context.Context, id string, label models.Label) error {
	res := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Updates(map[string]interface{}{
		"trello_label_id":    label.LabelID,
		"trello_label_name":  label.LabelName,
		"trello_label_color": label.LabelColor,
	})
	if res.Error != nil {
		return fmt.Errorf("attach label: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &types.NotFoundError{Resource: "category", ID: id}
	}
	return nil
}

// Rename updates the category name and the mirrored label name.
func (r *CategoryRepository) Rename(ctx context.Context, userID, id, name string) error {
	res := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(map[string]interface{}{"name": name, "trello_label_name": name})
	if res.Error != nil {
		return fmt.Errorf("rename category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &types.NotFoundError{Resource: "category", ID: id}
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&models.Category{})
	if res.Error != nil {
		return fmt.Errorf("delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &types.NotFoundError{Resource: "category", ID: id}
	}
	return nil
}

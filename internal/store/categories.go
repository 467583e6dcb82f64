package store

import (
	"context"
	"fmt"

	"asset-management-api/internal/models"
)

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	out := []models.Category{}
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

// FindCategoryByName matches the name exactly, case included.
func (s *Store) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	return classify(s.db.WithContext(ctx).Create(c).Error)
}

func (s *Store) SaveCategory(ctx context.Context, c *models.Category) error {
	return classify(s.db.WithContext(ctx).Save(c).Error)
}

// DeleteCategory refuses with ErrInUse while assets still reference the
// category.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	n, err := s.CountAssetsByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: category %d is assigned to %d asset(s)", ErrInUse, id, n)
	}
	res := s.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

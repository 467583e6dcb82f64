package store

import (
	"context"

	"asset-management-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) withRelations(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Category").Preload("Location").Preload("User")
}

// ListAssets returns every asset with its category, location and user
// loaded. A reference to a missing row leaves the relation nil.
func (s *Store) ListAssets(ctx context.Context) ([]models.Asset, error) {
	out := []models.Asset{}
	if err := s.withRelations(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (s *Store) GetAsset(ctx context.Context, id int64) (*models.Asset, error) {
	var a models.Asset
	if err := s.withRelations(ctx).First(&a, id).Error; err != nil {
		return nil, classify(err)
	}
	return &a, nil
}

// CreateAsset inserts the asset row only. Referenced rows must already exist.
func (s *Store) CreateAsset(ctx context.Context, a *models.Asset) error {
	row := columnsOnly(a)
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return classify(err)
	}
	a.ID = row.ID
	return nil
}

// SaveAsset writes every column of a. Loaded relations are not written back.
func (s *Store) SaveAsset(ctx context.Context, a *models.Asset) error {
	return classify(s.db.WithContext(ctx).Omit(clause.Associations).Save(columnsOnly(a)).Error)
}

func (s *Store) DeleteAsset(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Asset{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CountAssetsByCategory(ctx context.Context, categoryID int64) (int64, error) {
	return s.countAssets(ctx, "category_id = ?", categoryID)
}

func (s *Store) CountAssetsByLocation(ctx context.Context, locationID int64) (int64, error) {
	return s.countAssets(ctx, "location_id = ?", locationID)
}

func (s *Store) countAssets(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Asset{}).Where(query, args...).Count(&n).Error; err != nil {
		return 0, classify(err)
	}
	return n, nil
}

func columnsOnly(a *models.Asset) *models.Asset {
	row := *a
	row.Category, row.Location, row.User = nil, nil, nil
	return &row
}

package store

import (
	"context"
	"fmt"

	"asset-management-api/internal/models"
)

func (s *Store) ListLocations(ctx context.Context) ([]models.Location, error) {
	out := []models.Location{}
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (s *Store) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	var l models.Location
	if err := s.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, classify(err)
	}
	return &l, nil
}

func (s *Store) FindLocationByName(ctx context.Context, name string) (*models.Location, error) {
	var l models.Location
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&l).Error; err != nil {
		return nil, classify(err)
	}
	return &l, nil
}

func (s *Store) CreateLocation(ctx context.Context, l *models.Location) error {
	return classify(s.db.WithContext(ctx).Create(l).Error)
}

func (s *Store) SaveLocation(ctx context.Context, l *models.Location) error {
	return classify(s.db.WithContext(ctx).Save(l).Error)
}

func (s *Store) DeleteLocation(ctx context.Context, id int64) error {
	n, err := s.CountAssetsByLocation(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: location %d is assigned to %d asset(s)", ErrInUse, id, n)
	}
	res := s.db.WithContext(ctx).Delete(&models.Location{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

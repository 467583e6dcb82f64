package store

import (
	"context"

	"asset-management-api/internal/models"
)

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return classify(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	return classify(s.db.WithContext(ctx).Save(u).Error)
}

// DeleteUser unassigns the user's assets, then removes the user. Run it
// inside WithTx so both steps commit together.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Asset{}).Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
		return classify(err)
	}
	res := db.Delete(&models.User{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package store

import (
	"context"
	"errors"

	"asset-management-api/internal/models"
)

// ResolveCategory returns the category called name, creating it when none
// exists. created reports whether a row was inserted. The description of a
// new row is description when non-empty, otherwise an auto-generated one.
//
// Call it on the root Store: the insert commits on its own so that a failure
// later in the caller's write does not undo it.
func (s *Store) ResolveCategory(ctx context.Context, name string, description *string) (c *models.Category, created bool, err error) {
	return resolve(ctx, name, s.FindCategoryByName, s.CreateCategory, func() *models.Category {
		desc := models.AutoCategoryDescription(name)
		if description != nil && *description != "" {
			desc = *description
		}
		return &models.Category{Name: name, Description: &desc}
	})
}

// ResolveLocation is ResolveCategory for locations.
func (s *Store) ResolveLocation(ctx context.Context, name string, address *string) (l *models.Location, created bool, err error) {
	return resolve(ctx, name, s.FindLocationByName, s.CreateLocation, func() *models.Location {
		addr := models.AutoLocationAddress(name)
		if address != nil && *address != "" {
			addr = *address
		}
		return &models.Location{Name: name, Address: &addr}
	})
}

func resolve[T any](
	ctx context.Context,
	name string,
	find func(context.Context, string) (*T, error),
	create func(context.Context, *T) error,
	build func() *T,
) (*T, bool, error) {
	found, err := find(ctx, name)
	if err == nil {
		return found, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	row := build()
	if err := create(ctx, row); err != nil {
		// A concurrent request may have inserted the same name first.
		if errors.Is(err, ErrConstraint) {
			if found, findErr := find(ctx, name); findErr == nil {
				return found, false, nil
			}
		}
		return nil, false, err
	}
	return row, true, nil
}

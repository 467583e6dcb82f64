// Package store persists categories, locations, users and assets.
package store

import (
	"context"
	"errors"
	"strings"

	"asset-management-api/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row has the requested id or key.
	ErrNotFound = errors.New("record not found")
	// ErrConstraint wraps unique, foreign key and not-null violations. The
	// driver's message is kept in the error text.
	ErrConstraint = errors.New("constraint violation")
	// ErrInUse is returned when deleting a row that assets still reference.
	ErrInUse = errors.New("record is in use")
)

type constraintError struct {
	err error
}

func (e *constraintError) Error() string { return e.err.Error() }

func (e *constraintError) Unwrap() []error { return []error{ErrConstraint, e.err} }

// classify maps driver errors onto the package's sentinel errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return &constraintError{err: err}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return &constraintError{err: err}
	}
	return err
}

// Store is the persistence layer. A Store returned by WithTx is bound to that
// transaction.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the tables of the four entities.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Category{},
		&models.Location{},
		&models.User{},
		&models.Asset{},
	)
}

// WithTx runs fn in a transaction. An error or panic from fn rolls back
// every change fn made.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

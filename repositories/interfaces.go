package repositories

import (
	"context"
	"errors"

	"github.com/upb/casting-agency/models"
)

// ErrNotFound is returned when a row with the requested id does not exist
var ErrNotFound = errors.New("record not found")

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction
	// Automatically commits if function succeeds, rolls back on error
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	Commit() error
	Rollback() error
	Context() context.Context
}

// MovieRepository handles movie data operations
type MovieRepository interface {
	// List returns every movie ordered by id
	List(ctx context.Context) ([]*models.Movie, error)

	// GetByID retrieves a movie; ErrNotFound when absent
	GetByID(ctx context.Context, id int64) (*models.Movie, error)

	// Create inserts movie and sets its ID
	Create(ctx context.Context, movie *models.Movie) error

	// Update overwrites title and release date
	Update(ctx context.Context, movie *models.Movie) error

	// Delete removes a movie; ErrNotFound when absent
	Delete(ctx context.Context, id int64) error
}

// ActorRepository handles actor data operations
type ActorRepository interface {
	List(ctx context.Context) ([]*models.Actor, error)
	GetByID(ctx context.Context, id int64) (*models.Actor, error)
	Create(ctx context.Context, actor *models.Actor) error
	Update(ctx context.Context, actor *models.Actor) error
	Delete(ctx context.Context, id int64) error
}

// Repositories holds all repository instances
type Repositories struct {
	Movies MovieRepository
	Actors ActorRepository
}

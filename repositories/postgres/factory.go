package postgres

import (
	"context"

	"github.com/upb/casting-agency/config"
	"github.com/upb/casting-agency/repositories"
	"go.uber.org/zap"
)

// RepositoryFactory creates and manages all repositories
type RepositoryFactory struct {
	db     *DB
	logger *zap.Logger
}

// NewRepositoryFactory opens the database and creates a factory around it
func NewRepositoryFactory(cfg *config.Config, logger *zap.Logger) (*RepositoryFactory, error) {
	db, err := NewDB(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	return NewRepositoryFactoryFromDB(db, logger), nil
}

// NewRepositoryFactoryFromDB creates a factory around an existing pool
func NewRepositoryFactoryFromDB(db *DB, logger *zap.Logger) *RepositoryFactory {
	return &RepositoryFactory{db: db, logger: logger}
}

// PrepareSchema creates the schema, or drops and reseeds it when reset is set
func (f *RepositoryFactory) PrepareSchema(ctx context.Context, reset bool) error {
	if reset {
		return f.db.ResetSchema(ctx)
	}
	return f.db.InitSchema(ctx)
}

// NewRepositories creates all repository instances
func (f *RepositoryFactory) NewRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		Movies: NewMovieRepository(f.db, f.logger),
		Actors: NewActorRepository(f.db, f.logger),
	}
}

// GetTransactionManager returns a transaction manager
func (f *RepositoryFactory) GetTransactionManager() repositories.TransactionManager {
	return NewTransactionManager(f.db, f.logger)
}

// GetDB returns the database connection
func (f *RepositoryFactory) GetDB() *DB {
	return f.db
}

// Close closes the database connection
func (f *RepositoryFactory) Close() error {
	return f.db.Close()
}

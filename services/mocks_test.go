package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/repositories"
)

// MockTransactionManager is a mock implementation of TransactionManager
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repositories.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// MockTransaction is a mock implementation of Transaction
type MockTransaction struct {
	mock.Mock
	committed  bool
	rolledback bool
}

func (m *MockTransaction) Commit() error {
	args := m.Called()
	m.committed = true
	return args.Error(0)
}

func (m *MockTransaction) Rollback() error {
	args := m.Called()
	m.rolledback = true
	return args.Error(0)
}

func (m *MockTransaction) Context() context.Context {
	args := m.Called()
	return args.Get(0).(context.Context)
}

// expectTransaction wires a transaction that hands ctx to the callback
func expectTransaction(ctx context.Context) (*MockTransactionManager, *MockTransaction) {
	txMgr := new(MockTransactionManager)
	tx := new(MockTransaction)
	txMgr.On("Begin", ctx).Return(tx, nil)
	tx.On("Context").Return(ctx)
	return txMgr, tx
}

// MockMovieRepository is a mock implementation of MovieRepository
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) List(ctx context.Context) ([]*models.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockActorRepository is a mock implementation of ActorRepository
type MockActorRepository struct {
	mock.Mock
}

func (m *MockActorRepository) List(ctx context.Context) ([]*models.Actor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Actor), args.Error(1)
}

func (m *MockActorRepository) GetByID(ctx context.Context, id int64) (*models.Actor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Actor), args.Error(1)
}

func (m *MockActorRepository) Create(ctx context.Context, actor *models.Actor) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

func (m *MockActorRepository) Update(ctx context.Context, actor *models.Actor) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

func (m *MockActorRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

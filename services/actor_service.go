package services

import (
	"context"

	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/repositories"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// CreateActorInput is the body of POST /actors
type CreateActorInput struct {
	Name   string `json:"name" validate:"required,notblank,max=255"`
	Age    *int   `json:"age" validate:"required,gte=0,lte=150"`
	Gender string `json:"gender" validate:"required,notblank,max=50"`
}

// UpdateActorInput is the body of PATCH /actors/{id}. Absent fields are kept.
type UpdateActorInput struct {
	Name   *string `json:"name" validate:"omitempty,notblank,max=255"`
	Age    *int    `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender *string `json:"gender" validate:"omitempty,notblank,max=50"`
}

func (in UpdateActorInput) empty() bool {
	return in.Name == nil && in.Age == nil && in.Gender == nil
}

// ActorService implements the actor use cases
type ActorService struct {
	actors repositories.ActorRepository
	txMgr  repositories.TransactionManager
	logger *zap.Logger
}

// NewActorService creates a new actor service
func NewActorService(actors repositories.ActorRepository, txMgr repositories.TransactionManager, logger *zap.Logger) *ActorService {
	return &ActorService{
		actors: actors,
		txMgr:  txMgr,
		logger: logger,
	}
}

// List returns every actor
func (s *ActorService) List(ctx context.Context) ([]*models.Actor, error) {
	actors, err := s.actors.List(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list actors", err)
	}
	return actors, nil
}

// Create validates input and stores a new actor, returning its id
func (s *ActorService) Create(ctx context.Context, input CreateActorInput) (int64, error) {
	if err := utils.ValidateStruct(&input); err != nil {
		return 0, invalidInput(err)
	}

	actor := models.NewActor(input.Name, *input.Age, input.Gender)
	if err := s.actors.Create(ctx, actor); err != nil {
		return 0, WrapInternal("failed to create actor", err)
	}

	s.logger.Info("actor created", zap.Int64("actor_id", actor.ID))
	return actor.ID, nil
}

// Update applies the present fields of input to actor id
func (s *ActorService) Update(ctx context.Context, id int64, input UpdateActorInput) (int64, error) {
	if input.empty() {
		return 0, ErrEmptyUpdate
	}
	if err := utils.ValidateStruct(&input); err != nil {
		return 0, invalidInput(err)
	}

	err := WithTransaction(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) error {
		actor, err := s.actors.GetByID(ctx, id)
		if err != nil {
			return wrapRepositoryError(err, ErrActorNotFound)
		}

		if input.Name != nil {
			actor.Name = *input.Name
		}
		if input.Age != nil {
			actor.Age = *input.Age
		}
		if input.Gender != nil {
			actor.Gender = *input.Gender
		}

		if err := s.actors.Update(ctx, actor); err != nil {
			return wrapRepositoryError(err, ErrActorNotFound)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("actor modified", zap.Int64("actor_id", id))
	return id, nil
}

// Delete removes actor id
func (s *ActorService) Delete(ctx context.Context, id int64) error {
	if err := s.actors.Delete(ctx, id); err != nil {
		return wrapRepositoryError(err, ErrActorNotFound)
	}

	s.logger.Info("actor deleted", zap.Int64("actor_id", id))
	return nil
}

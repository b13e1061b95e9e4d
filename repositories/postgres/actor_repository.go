package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/repositories"
	"go.uber.org/zap"
)

// ActorRepository implements repositories.ActorRepository
type ActorRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewActorRepository creates a new actor repository
func NewActorRepository(db *DB, logger *zap.Logger) repositories.ActorRepository {
	return &ActorRepository{
		db:     db,
		logger: logger,
	}
}

// List returns every actor ordered by id
func (r *ActorRepository) List(ctx context.Context) ([]*models.Actor, error) {
	query := `
		SELECT id, name, age, gender
		FROM actors
		ORDER BY id
	`

	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list actors: %w", err)
	}
	defer rows.Close()

	actors := make([]*models.Actor, 0)
	for rows.Next() {
		actor := &models.Actor{}
		if err := rows.Scan(&actor.ID, &actor.Name, &actor.Age, &actor.Gender); err != nil {
			return nil, fmt.Errorf("failed to scan actor: %w", err)
		}
		actors = append(actors, actor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate actors: %w", err)
	}

	return actors, nil
}

// GetByID retrieves an actor by ID
func (r *ActorRepository) GetByID(ctx context.Context, id int64) (*models.Actor, error) {
	query := `
		SELECT id, name, age, gender
		FROM actors
		WHERE id = $1
	`

	actor := &models.Actor{}
	err := GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&actor.ID,
		&actor.Name,
		&actor.Age,
		&actor.Gender,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("actor %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}

	return actor, nil
}

// Create inserts an actor and sets its generated ID
func (r *ActorRepository) Create(ctx context.Context, actor *models.Actor) error {
	query := `
		INSERT INTO actors (name, age, gender)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := GetExecutor(ctx, r.db).QueryRowContext(ctx, query, actor.Name, actor.Age, actor.Gender).Scan(&actor.ID)
	if err != nil {
		return fmt.Errorf("failed to create actor: %w", err)
	}

	r.logger.Debug("actor created", zap.Int64("id", actor.ID), zap.String("name", actor.Name))
	return nil
}

// Update overwrites every mutable actor column
func (r *ActorRepository) Update(ctx context.Context, actor *models.Actor) error {
	query := `
		UPDATE actors
		SET name = $2, age = $3, gender = $4
		WHERE id = $1
	`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, actor.ID, actor.Name, actor.Age, actor.Gender)
	if err != nil {
		return fmt.Errorf("failed to update actor: %w", err)
	}

	return requireAffected(result, "actor", actor.ID)
}

// Delete removes an actor
func (r *ActorRepository) Delete(ctx context.Context, id int64) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM actors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete actor: %w", err)
	}

	if err := requireAffected(result, "actor", id); err != nil {
		return err
	}

	r.logger.Debug("actor deleted", zap.Int64("id", id))
	return nil
}

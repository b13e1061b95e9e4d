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

// MovieRepository implements repositories.MovieRepository
type MovieRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *DB, logger *zap.Logger) repositories.MovieRepository {
	return &MovieRepository{
		db:     db,
		logger: logger,
	}
}

// List returns every movie ordered by id
func (r *MovieRepository) List(ctx context.Context) ([]*models.Movie, error) {
	query := `
		SELECT id, title, release_date
		FROM movies
		ORDER BY id
	`

	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	movies := make([]*models.Movie, 0)
	for rows.Next() {
		movie := &models.Movie{}
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.ReleaseDate); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movies: %w", err)
	}

	return movies, nil
}

// GetByID retrieves a movie by ID
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	query := `
		SELECT id, title, release_date
		FROM movies
		WHERE id = $1
	`

	movie := &models.Movie{}
	err := GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.ReleaseDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("movie %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return movie, nil
}

// Create inserts a movie and sets its generated ID
func (r *MovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	query := `
		INSERT INTO movies (title, release_date)
		VALUES ($1, $2)
		RETURNING id
	`

	err := GetExecutor(ctx, r.db).QueryRowContext(ctx, query, movie.Title, movie.ReleaseDate).Scan(&movie.ID)
	if err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}

	r.logger.Debug("movie created", zap.Int64("id", movie.ID), zap.String("title", movie.Title))
	return nil
}

// Update overwrites a movie's title and release date
func (r *MovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, release_date = $3
		WHERE id = $1
	`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, movie.ID, movie.Title, movie.ReleaseDate)
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	return requireAffected(result, "movie", movie.ID)
}

// Delete removes a movie
func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if err := requireAffected(result, "movie", id); err != nil {
		return err
	}

	r.logger.Debug("movie deleted", zap.Int64("id", id))
	return nil
}

// requireAffected maps a zero-row write to repositories.ErrNotFound
func requireAffected(result sql.Result, entity string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, repositories.ErrNotFound)
	}
	return nil
}

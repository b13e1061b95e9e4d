package services

import (
	"context"

	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/repositories"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// CreateMovieInput is the body of POST /movies
type CreateMovieInput struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	ReleaseDate string `json:"release_date" validate:"required,date"`
}

// UpdateMovieInput is the body of PATCH /movies/{id}. Absent fields are kept.
type UpdateMovieInput struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=255"`
	ReleaseDate *string `json:"release_date" validate:"omitempty,date"`
}

func (in UpdateMovieInput) empty() bool {
	return in.Title == nil && in.ReleaseDate == nil
}

// MovieService implements the movie use cases
type MovieService struct {
	movies repositories.MovieRepository
	txMgr  repositories.TransactionManager
	logger *zap.Logger
}

// NewMovieService creates a new movie service
func NewMovieService(movies repositories.MovieRepository, txMgr repositories.TransactionManager, logger *zap.Logger) *MovieService {
	return &MovieService{
		movies: movies,
		txMgr:  txMgr,
		logger: logger,
	}
}

// List returns every movie
func (s *MovieService) List(ctx context.Context) ([]*models.Movie, error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list movies", err)
	}
	return movies, nil
}

// Create validates input and stores a new movie, returning its id
func (s *MovieService) Create(ctx context.Context, input CreateMovieInput) (int64, error) {
	if err := utils.ValidateStruct(&input); err != nil {
		return 0, invalidInput(err)
	}

	releaseDate, err := parseReleaseDate(input.ReleaseDate)
	if err != nil {
		return 0, err
	}

	movie := models.NewMovie(input.Title, releaseDate)
	if err := s.movies.Create(ctx, movie); err != nil {
		return 0, WrapInternal("failed to create movie", err)
	}

	s.logger.Info("movie created", zap.Int64("movie_id", movie.ID))
	return movie.ID, nil
}

// Update applies the present fields of input to movie id
func (s *MovieService) Update(ctx context.Context, id int64, input UpdateMovieInput) (int64, error) {
	if input.empty() {
		return 0, ErrEmptyUpdate
	}
	if err := utils.ValidateStruct(&input); err != nil {
		return 0, invalidInput(err)
	}

	err := WithTransaction(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) error {
		movie, err := s.movies.GetByID(ctx, id)
		if err != nil {
			return wrapRepositoryError(err, ErrMovieNotFound)
		}

		if input.Title != nil {
			movie.Title = *input.Title
		}
		if input.ReleaseDate != nil {
			if movie.ReleaseDate, err = parseReleaseDate(*input.ReleaseDate); err != nil {
				return err
			}
		}

		if err := s.movies.Update(ctx, movie); err != nil {
			return wrapRepositoryError(err, ErrMovieNotFound)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("movie modified", zap.Int64("movie_id", id))
	return id, nil
}

// Delete removes movie id
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	if err := s.movies.Delete(ctx, id); err != nil {
		return wrapRepositoryError(err, ErrMovieNotFound)
	}

	s.logger.Info("movie deleted", zap.Int64("movie_id", id))
	return nil
}

func parseReleaseDate(s string) (models.Date, error) {
	t, err := utils.ParseDate(s)
	if err != nil {
		return models.Date{}, NewDomainError(ErrorTypeValidation, ErrInvalidReleaseDate.Message, err)
	}
	return models.NewDate(t), nil
}

func invalidInput(err error) *DomainError {
	domainErr := NewDomainError(ErrorTypeValidation, ErrInvalidInput.Message, err)
	for field, msg := range utils.GetValidationFields(err) {
		domainErr.WithDetail(field, msg)
	}
	return domainErr
}

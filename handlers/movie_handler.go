package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/upb/casting-agency/models"
	"github.com/upb/casting-agency/services"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// MovieService defines the movie operations the handler needs
type MovieService interface {
	List(ctx context.Context) ([]*models.Movie, error)
	Create(ctx context.Context, input services.CreateMovieInput) (int64, error)
	Update(ctx context.Context, id int64, input services.UpdateMovieInput) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// MovieHandler handles movie HTTP requests
type MovieHandler struct {
	movies MovieService
	logger *zap.Logger
}

// NewMovieHandler creates a new MovieHandler
func NewMovieHandler(movies MovieService, logger *zap.Logger) *MovieHandler {
	return &MovieHandler{
		movies: movies,
		logger: logger,
	}
}

// HandleList handles GET /movies
func (h *MovieHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movies.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]interface{}{
		"success": true,
		"movies":  movies,
	})
}

// HandleCreate handles POST /movies
func (h *MovieHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMovieInput
	if err := decodeBody(w, r, &input); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	id, err := h.movies.Create(r.Context(), input)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]interface{}{
		"success": true,
		"created": id,
	})
}

// HandleUpdate handles PATCH /movies/{id}
func (h *MovieHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	var input services.UpdateMovieInput
	if err := decodeBody(w, r, &input); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	modified, err := h.movies.Update(r.Context(), id, input)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]interface{}{
		"success":  true,
		"modified": modified,
	})
}

// HandleDelete handles DELETE /movies/{id}
func (h *MovieHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := h.movies.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]interface{}{
		"success": true,
		"deleted": strconv.FormatInt(id, 10),
	})
}

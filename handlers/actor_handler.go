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

// ActorService defines the actor operations the handler needs
type ActorService interface {
	List(ctx context.Context) ([]*models.Actor, error)
	Create(ctx context.Context, input services.CreateActorInput) (int64, error)
	Update(ctx context.Context, id int64, input services.UpdateActorInput) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// ActorHandler handles actor HTTP requests
type ActorHandler struct {
	actors ActorService
	logger *zap.Logger
}

// NewActorHandler creates a new ActorHandler
func NewActorHandler(actors ActorService, logger *zap.Logger) *ActorHandler {
	return &ActorHandler{
		actors: actors,
		logger: logger,
	}
}

// HandleList handles GET /actors
func (h *ActorHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actors, err := h.actors.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]interface{}{
		"success": true,
		"actors":  actors,
	})
}

// HandleCreate handles POST /actors
func (h *ActorHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input services.CreateActorInput
	if err := decodeBody(w, r, &input); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	id, err := h.actors.Create(r.Context(), input)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]interface{}{
		"success": true,
		"created": id,
	})
}

// HandleUpdate handles PATCH /actors/{id}
func (h *ActorHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	var input services.UpdateActorInput
	if err := decodeBody(w, r, &input); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	modified, err := h.actors.Update(r.Context(), id, input)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]interface{}{
		"success":  true,
		"modified": modified,
	})
}

// HandleDelete handles DELETE /actors/{id}
func (h *ActorHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := h.actors.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]interface{}{
		"success": true,
		"deleted": strconv.FormatInt(id, 10),
	})
}

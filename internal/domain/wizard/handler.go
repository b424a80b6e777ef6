package wizard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/spacely/spacely-api/internal/middleware"
	"github.com/spacely/spacely-api/internal/pkg/response"
)

// Handler handles listing wizard HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates wizard handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// State handles GET /api/v1/list-space/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.State(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		log.Error().Err(err).Msg("Wizard state fetch failed")
		response.InternalError(w)
		return
	}

	response.OK(w, state)
}

// Step handles GET /api/v1/list-space/steps/{n}
func (h *Handler) Step(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		response.BadRequest(w, "Invalid step number")
		return
	}

	view, err := h.service.Step(r.Context(), middleware.GetUserID(r.Context()), n)
	if err != nil {
		if errors.Is(err, ErrUnknownStep) {
			response.NotFound(w, err.Error())
			return
		}
		log.Error().Err(err).Msg("Wizard step fetch failed")
		response.InternalError(w)
		return
	}

	response.OK(w, view)
}

// SubmitStep handles PUT /api/v1/list-space/steps/{n}
func (h *Handler) SubmitStep(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		response.BadRequest(w, "Invalid step number")
		return
	}

	var patch StepPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	state, err := h.service.SubmitStep(r.Context(), middleware.GetUserID(r.Context()), n, &patch)
	if err != nil {
		var validationErr *ValidationError
		switch {
		case errors.Is(err, ErrUnknownStep):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrStepLocked):
			response.Conflict(w, err.Error())
		case errors.Is(err, ErrPatchMismatch):
			response.BadRequest(w, err.Error())
		case errors.As(err, &validationErr):
			response.ValidationError(w, validationErr.Fields)
		default:
			log.Error().Err(err).Msg("Wizard step submit failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, state)
}

// Publish handles POST /api/v1/list-space/publish
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	spaceID, err := h.service.Publish(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, ErrStepsIncomplete) {
			response.Conflict(w, err.Error())
			return
		}
		log.Error().Err(err).Msg("Wizard publish failed")
		response.InternalError(w)
		return
	}

	response.Created(w, map[string]string{"space_id": spaceID.String()})
}

// Reset handles POST /api/v1/list-space/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		log.Error().Err(err).Msg("Wizard reset failed")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

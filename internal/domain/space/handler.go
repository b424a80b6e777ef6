package space

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spacely/spacely-api/internal/middleware"
	"github.com/spacely/spacely-api/internal/pkg/response"
	"github.com/spacely/spacely-api/internal/pkg/validator"
)

// Handler handles space HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates space handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /api/v1/spaces
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	space, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		log.Error().Err(err).Msg("Space creation failed")
		response.InternalError(w)
		return
	}

	response.Created(w, ToResponse(space))
}

// Get handles GET /api/v1/spaces/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	space, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSpaceNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		log.Error().Err(err).Msg("Space fetch failed")
		response.InternalError(w)
		return
	}

	response.OK(w, ToResponse(space))
}

// List handles GET /api/v1/spaces
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)
	pagination := parsePagination(r)

	spaces, total, err := h.service.List(r.Context(), filter, pagination)
	if err != nil {
		log.Error().Err(err).Msg("Space list failed")
		response.InternalError(w)
		return
	}

	response.WithMeta(w, toResponses(spaces), response.NewMeta(total, pagination.Page, pagination.Limit))
}

// ListMine handles GET /api/v1/spaces/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	pagination := parsePagination(r)

	spaces, total, err := h.service.ListMine(r.Context(), middleware.GetUserID(r.Context()), pagination)
	if err != nil {
		log.Error().Err(err).Msg("Host space list failed")
		response.InternalError(w)
		return
	}

	response.WithMeta(w, toResponses(spaces), response.NewMeta(total, pagination.Page, pagination.Limit))
}

// Update handles PUT /api/v1/spaces/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	var req UpdateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	space, err := h.service.Update(r.Context(), middleware.GetUserID(r.Context()), id, &req)
	if err != nil {
		h.writeError(w, err, "Space update failed")
		return
	}

	response.OK(w, ToResponse(space))
}

// Archive handles DELETE /api/v1/spaces/{id}
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	if err := h.service.Archive(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		h.writeError(w, err, "Space archive failed")
		return
	}

	response.NoContent(w)
}

// Activate handles POST /api/v1/spaces/{id}/activate
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	if err := h.service.Activate(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		h.writeError(w, err, "Space activation failed")
		return
	}

	response.OK(w, map[string]string{"status": string(StatusActive)})
}

// BlockHour handles POST /api/v1/spaces/{id}/blocked-hours
func (h *Handler) BlockHour(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	var req BlockHourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	blocked, err := h.service.BlockHour(r.Context(), middleware.GetUserID(r.Context()), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBlockedHourExists):
			response.Conflict(w, err.Error())
		case errors.Is(err, ErrInvalidTime):
			response.BadRequest(w, err.Error())
		default:
			h.writeError(w, err, "Hour block failed")
		}
		return
	}

	response.Created(w, ToBlockedHourResponse(blocked))
}

// UnblockHour handles DELETE /api/v1/spaces/{id}/blocked-hours/{blockedID}
func (h *Handler) UnblockHour(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	blockedID, err := uuid.Parse(chi.URLParam(r, "blockedID"))
	if err != nil {
		response.BadRequest(w, "Invalid blocked hour ID")
		return
	}

	if err := h.service.UnblockHour(r.Context(), middleware.GetUserID(r.Context()), id, blockedID); err != nil {
		if errors.Is(err, ErrBlockedHourNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		h.writeError(w, err, "Hour unblock failed")
		return
	}

	response.NoContent(w)
}

// ListBlockedHours handles GET /api/v1/spaces/{id}/blocked-hours?date=
func (h *Handler) ListBlockedHours(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	blocked, err := h.service.ListBlockedHours(r.Context(), middleware.GetUserID(r.Context()), id, r.URL.Query().Get("date"))
	if err != nil {
		if errors.Is(err, ErrInvalidTime) {
			response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
			return
		}
		h.writeError(w, err, "Blocked hour list failed")
		return
	}

	out := make([]BlockedHourResponse, 0, len(blocked))
	for _, b := range blocked {
		out = append(out, ToBlockedHourResponse(b))
	}

	response.OK(w, out)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, ErrSpaceNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotSpaceOwner):
		response.Forbidden(w, err.Error())
	default:
		log.Error().Err(err).Msg(logMsg)
		response.InternalError(w)
	}
}

func toResponses(spaces []*Space) []SpaceResponse {
	out := make([]SpaceResponse, 0, len(spaces))
	for _, s := range spaces {
		out = append(out, ToResponse(s))
	}
	return out
}

func parseFilter(r *http.Request) *Filter {
	q := r.URL.Query()
	filter := &Filter{}

	if v := q.Get("q"); v != "" {
		filter.Query = &v
	}
	if v := q.Get("city"); v != "" {
		filter.City = &v
	}
	if v := q.Get("price_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMin = &f
		}
	}
	if v := q.Get("price_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMax = &f
		}
	}
	if v := q.Get("capacity"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MinCapacity = &n
		}
	}

	return filter
}

func parsePagination(r *http.Request) *Pagination {
	q := r.URL.Query()
	p := &Pagination{Page: 1, Limit: 20}

	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			p.Limit = n
		}
	}

	return p
}

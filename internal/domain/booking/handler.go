package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spacely/spacely-api/internal/domain/space"
	"github.com/spacely/spacely-api/internal/middleware"
	"github.com/spacely/spacely-api/internal/pkg/response"
	"github.com/spacely/spacely-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Availability handles GET /api/v1/spaces/{id}/availability?date=YYYY-MM-DD
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	spaceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "Missing date parameter")
		return
	}

	resp, err := h.service.Availability(r.Context(), spaceID, date)
	if err != nil {
		switch {
		case errors.Is(err, space.ErrSpaceNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrMalformedTimeRange):
			response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
		default:
			log.Error().Err(err).Msg("Availability lookup failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Quote handles POST /api/v1/bookings/quote
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	quote, err := h.service.QuoteFor(r.Context(), req.SpaceID, req.StartTime, req.EndTime)
	if err != nil {
		if errors.Is(err, space.ErrSpaceNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		log.Error().Err(err).Msg("Quote failed")
		response.InternalError(w)
		return
	}

	response.OK(w, quote)
}

// Submit handles POST /api/v1/bookings
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.service.Submit(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		var sessionErr *PaymentSessionError
		switch {
		case errors.Is(err, ErrNoTimeSelected):
			response.Error(w, http.StatusUnprocessableEntity, "NO_TIME_SELECTED", err.Error())
		case errors.Is(err, ErrMalformedTimeRange):
			response.Error(w, http.StatusUnprocessableEntity, "MALFORMED_TIME_RANGE", err.Error())
		case errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrSlotTaken):
			response.Conflict(w, err.Error())
		case errors.Is(err, space.ErrSpaceNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, space.ErrSpaceNotActive):
			response.BadRequest(w, err.Error())
		case errors.As(err, &sessionErr):
			// Booking exists; the client retries payment with its id.
			response.ErrorWithDetails(w, http.StatusBadGateway, "PAYMENT_SESSION_FAILED",
				ErrPaymentSession.Error(),
				map[string]string{"booking_id": sessionErr.BookingID.String()})
		default:
			log.Error().Err(err).Msg("Booking submission failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, resp)
}

// RetryPayment handles POST /api/v1/bookings/{id}/payment
func (h *Handler) RetryPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	resp, err := h.service.RetryPayment(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		var sessionErr *PaymentSessionError
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotBookingOwner):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrCannotCancel):
			response.BadRequest(w, "Booking is not awaiting payment")
		case errors.As(err, &sessionErr):
			response.BadGateway(w, "PAYMENT_SESSION_FAILED", ErrPaymentSession.Error())
		default:
			log.Error().Err(err).Msg("Payment retry failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Get handles GET /api/v1/bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	booking, err := h.service.Get(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotBookingOwner):
			response.Forbidden(w, err.Error())
		default:
			log.Error().Err(err).Msg("Booking fetch failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ToResponse(booking))
}

// ListMine handles GET /api/v1/bookings?page=&limit=
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	bookings, total, err := h.service.ListMine(r.Context(), middleware.GetUserID(r.Context()), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("Booking list failed")
		response.InternalError(w)
		return
	}

	response.WithMeta(w, toResponses(bookings), response.NewMeta(total, page, limit))
}

// ListForSpace handles GET /api/v1/spaces/{id}/bookings?date=YYYY-MM-DD
func (h *Handler) ListForSpace(w http.ResponseWriter, r *http.Request) {
	spaceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid space ID")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "Missing date parameter")
		return
	}

	bookings, err := h.service.ListForSpace(r.Context(), middleware.GetUserID(r.Context()), spaceID, date)
	if err != nil {
		switch {
		case errors.Is(err, space.ErrSpaceNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, space.ErrNotSpaceOwner):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrMalformedTimeRange):
			response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
		default:
			log.Error().Err(err).Msg("Space booking list failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, toResponses(bookings))
}

func toResponses(bookings []*Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, ToResponse(b))
	}
	return out
}

func parsePagination(r *http.Request) (page, limit int) {
	page, limit = 1, 20
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	return page, limit
}

// Cancel handles POST /api/v1/bookings/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	if err := h.service.Cancel(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotBookingOwner):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrCannotCancel):
			response.BadRequest(w, err.Error())
		default:
			log.Error().Err(err).Msg("Booking cancel failed")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

package booking

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/spacely/spacely-api/internal/pkg/paygate"
	"github.com/spacely/spacely-api/internal/pkg/response"
)

// WebhookHandler receives settlement callbacks from the payment
// gateway. Requests are authenticated by an HMAC signature over the
// raw body, never by their payload contents.
type WebhookHandler struct {
	service *Service
	secret  string
}

// NewWebhookHandler creates the payment webhook handler
func NewWebhookHandler(service *Service, secret string) *WebhookHandler {
	return &WebhookHandler{service: service, secret: secret}
}

type webhookPayload struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Amount    string `json:"amount"`
}

// HandlePayment handles POST /webhooks/payments
func (h *WebhookHandler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		response.BadRequest(w, "Unreadable body")
		return
	}

	if !paygate.VerifySignature(h.secret, body, r.Header.Get("X-Signature")) {
		log.Warn().Str("ip", r.RemoteAddr).Msg("webhook signature rejected")
		response.Unauthorized(w, "Invalid signature")
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if payload.SessionID == "" || payload.Status == "" {
		response.BadRequest(w, "Missing session_id or status")
		return
	}

	if err := h.service.ConfirmPayment(r.Context(), payload.SessionID, payload.Status, payload.Amount); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			// Unknown session. Acknowledge so the gateway stops retrying.
			response.OK(w, map[string]string{"status": "ignored"})
		case errors.Is(err, ErrAmountMismatch):
			response.BadRequest(w, err.Error())
		default:
			log.Error().Err(err).Msg("Webhook processing failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}

package media

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/spacely/spacely-api/internal/middleware"
	"github.com/spacely/spacely-api/internal/pkg/response"
)

// Handler handles photo upload HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates media handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload handles POST /api/v1/uploads with a multipart "photo" field
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		response.Error(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", ErrFileTooLarge.Error())
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		response.BadRequest(w, "Missing photo field")
		return
	}
	defer file.Close()

	upload, err := h.service.UploadPhoto(r.Context(), middleware.GetUserID(r.Context()), file)
	if err != nil {
		if errors.Is(err, ErrUnsupportedImg) {
			response.BadRequest(w, err.Error())
			return
		}
		log.Error().Err(err).Msg("Photo upload failed")
		response.InternalError(w)
		return
	}

	response.Created(w, upload)
}

// Routes returns media router. Uploads require a host account.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(middleware.RequireHost())

	r.Post("/", h.Upload)

	return r
}

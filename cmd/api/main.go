package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spacely/spacely-api/internal/config"
	"github.com/spacely/spacely-api/internal/domain/auth"
	"github.com/spacely/spacely-api/internal/domain/booking"
	"github.com/spacely/spacely-api/internal/domain/media"
	"github.com/spacely/spacely-api/internal/domain/space"
	"github.com/spacely/spacely-api/internal/domain/user"
	"github.com/spacely/spacely-api/internal/domain/wizard"
	"github.com/spacely/spacely-api/internal/middleware"
	"github.com/spacely/spacely-api/internal/pkg/database"
	"github.com/spacely/spacely-api/internal/pkg/imaging"
	"github.com/spacely/spacely-api/internal/pkg/jwt"
	"github.com/spacely/spacely-api/internal/pkg/logger"
	"github.com/spacely/spacely-api/internal/pkg/paygate"
	pkgresponse "github.com/spacely/spacely-api/internal/pkg/response"
	"github.com/spacely/spacely-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Spacely API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Storage ----------
	var fileStore storage.Storage
	var localStore *storage.LocalStorage
	if cfg.R2Enabled() {
		r2, err := storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create R2 storage")
		}
		fileStore = r2
	} else {
		localStore, err = storage.NewLocalStorage(cfg.UploadDir, cfg.BackendURL+"/files")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create local storage")
		}
		fileStore = localStore
		log.Warn().Str("dir", cfg.UploadDir).Msg("R2 not configured, storing uploads locally")
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	spaceRepo := space.NewRepository(db)
	blockedRepo := space.NewBlockedHourRepository(db)
	bookingRepo := booking.NewRepository(db)

	var draftRepo wizard.Repository
	if rdb != nil {
		draftRepo = wizard.NewRedisRepository(rdb)
	} else {
		draftRepo = wizard.NewMemoryRepository()
		log.Warn().Msg("Redis not configured, wizard drafts will not survive restarts")
	}

	// ---------- WebSocket hub ----------
	hub := booking.NewHub(rdb)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	// ---------- Payment gateway ----------
	var gateway booking.PaymentGateway
	if cfg.PayGateEnabled() {
		gateway = paygate.NewClient(paygate.Config{
			BaseURL:    cfg.PayGateBaseURL,
			MerchantID: cfg.PayGateMerchantID,
			SecretKey:  cfg.PayGateSecretKey,
			Timeout:    10 * time.Second,
		})
	} else {
		log.Warn().Msg("Payment gateway not configured, bookings will fail at checkout")
	}

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, rdb)
	spaceService := space.NewService(spaceRepo, blockedRepo, hub)
	bookingService := booking.NewService(bookingRepo, &spaceDirectoryAdapter{spaces: spaceRepo, service: spaceService}, gateway, hub, booking.Config{
		ReturnURL: cfg.FrontendURL + "/bookings/complete",
		CancelURL: cfg.FrontendURL + "/bookings/cancelled",
	})
	wizardService := wizard.NewService(draftRepo, &wizardSpaceCreatorAdapter{service: spaceService})
	mediaService := media.NewService(fileStore, imaging.NewProcessor(imaging.DefaultConfig()))

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	spaceHandler := space.NewHandler(spaceService)
	bookingHandler := booking.NewHandler(bookingService)
	webhookHandler := booking.NewWebhookHandler(bookingService, cfg.PayGateSecretKey)
	wizardHandler := wizard.NewHandler(wizardService)
	mediaHandler := media.NewHandler(mediaService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint stays outside Compress.
	r.Get("/ws", hub.ServeWS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/spaces", spaceHandler.Routes(authMiddleware))
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware))
		r.Mount("/list-space", wizardHandler.Routes(authMiddleware))
		r.Mount("/uploads", mediaHandler.Routes(authMiddleware))

		r.Get("/spaces/{id}/availability", bookingHandler.Availability)
		r.With(authMiddleware).Get("/spaces/{id}/bookings", bookingHandler.ListForSpace)
	})

	// Gateway callbacks are signed, not authenticated, and live outside
	// the versioned API.
	r.Post("/webhooks/payments", webhookHandler.HandlePayment)

	// Serve uploads directly when running on local storage.
	if localStore != nil {
		fs := http.StripPrefix("/files/", http.FileServer(http.Dir(localStore.BasePath())))
		r.Get("/files/*", fs.ServeHTTP)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// Adapter implementations to bridge interface mismatches

// spaceDirectoryAdapter adapts the space domain to booking.SpaceDirectory
type spaceDirectoryAdapter struct {
	spaces  space.Repository
	service *space.Service
}

func (a *spaceDirectoryAdapter) GetSpace(ctx context.Context, id uuid.UUID) (*space.Space, error) {
	return a.spaces.GetByID(ctx, id)
}

func (a *spaceDirectoryAdapter) BlockedStarts(ctx context.Context, spaceID uuid.UUID, date time.Time) ([]string, error) {
	return a.service.BlockedStarts(ctx, spaceID, date)
}

// wizardSpaceCreatorAdapter turns a finished wizard draft into a space listing
type wizardSpaceCreatorAdapter struct {
	service *space.Service
}

func (a *wizardSpaceCreatorAdapter) CreateFromDraft(ctx context.Context, hostID uuid.UUID, draft *wizard.Draft) (uuid.UUID, error) {
	created, err := a.service.Create(ctx, hostID, &space.CreateSpaceRequest{
		Title:        draft.BasicInfo.Title,
		Description:  draft.BasicInfo.Description,
		Category:     draft.BasicInfo.Category,
		Street:       draft.Address.Street,
		City:         draft.Address.City,
		Country:      draft.Address.Country,
		Latitude:     draft.Address.Latitude,
		Longitude:    draft.Address.Longitude,
		Capacity:     draft.Details.Capacity,
		Amenities:    draft.Details.Amenities,
		PricePerHour: draft.Pricing.PricePerHour,
		Currency:     draft.Pricing.Currency,
		ServiceHours: draft.Details.ServiceHours,
		Photos:       draft.Media.URLs,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}

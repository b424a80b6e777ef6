package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/spacely/spacely-api/internal/domain/user"
	"github.com/spacely/spacely-api/internal/pkg/jwt"
	"github.com/spacely/spacely-api/internal/pkg/password"
)

const refreshKeyPrefix = "auth:refresh:"

// Service handles authentication business logic
type Service struct {
	users user.Repository
	jwt   *jwt.Service
	redis *redis.Client
}

// NewService creates auth service
func NewService(users user.Repository, jwtService *jwt.Service, redisClient *redis.Client) *Service {
	return &Service{
		users: users,
		jwt:   jwtService,
		redis: redisClient,
	}
}

// Register creates a user account and issues a token pair
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if !user.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         user.Role(req.Role),
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.buildAuthResponse(ctx, u)
}

// Login verifies credentials and issues a token pair
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(ctx, u)
}

// Refresh rotates a refresh token and issues a new pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	// Rotation: the presented token must still be stored, and is consumed.
	if s.redis != nil {
		key := refreshKey(claims.UserID, claims.ID)
		stored, err := s.redis.GetDel(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, ErrInvalidRefresh
			}
			return nil, fmt.Errorf("refresh token lookup: %w", err)
		}
		if stored != jwt.HashRefreshToken(refreshToken) {
			return nil, ErrInvalidRefresh
		}
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return s.buildAuthResponse(ctx, u)
}

// Me returns the public profile for a user id
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *Service) buildAuthResponse(ctx context.Context, u *user.User) (*AuthResponse, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refresh, jti, expiresAt, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if s.redis != nil {
		key := refreshKey(u.ID, jti)
		ttl := time.Until(expiresAt)
		if err := s.redis.Set(ctx, key, jwt.HashRefreshToken(refresh), ttl).Err(); err != nil {
			// Token issuance still succeeds; refresh will fail later.
			log.Error().Err(err).Str("user_id", u.ID.String()).Msg("Failed to store refresh token")
		}
	}

	return &AuthResponse{
		User: toUserResponse(u),
		Tokens: TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    int64(s.jwt.GetAccessTTL().Seconds()),
		},
	}, nil
}

func refreshKey(userID uuid.UUID, jti string) string {
	return refreshKeyPrefix + userID.String() + ":" + jti
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

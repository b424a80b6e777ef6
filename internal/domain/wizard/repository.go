package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DraftTTL is how long an untouched draft survives. Every save renews it.
const DraftTTL = 7 * 24 * time.Hour

// Repository defines draft persistence interface
type Repository interface {
	Get(ctx context.Context, userID uuid.UUID) (*Draft, error)
	Save(ctx context.Context, userID uuid.UUID, draft *Draft) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type redisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates draft repository backed by Redis
func NewRedisRepository(client *redis.Client) Repository {
	return &redisRepository{client: client}
}

func draftKey(userID uuid.UUID) string {
	return "list-space-wizard-" + userID.String()
}

func (r *redisRepository) Get(ctx context.Context, userID uuid.UUID) (*Draft, error) {
	data, err := r.client.Get(ctx, draftKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("wizard repository get: %w", err)
	}

	// Unmarshal over defaults so drafts written by older builds keep
	// sane values for fields they never stored.
	draft := NewDraft()
	if err := json.Unmarshal(data, draft); err != nil {
		return nil, fmt.Errorf("wizard repository decode: %w", err)
	}

	return draft, nil
}

func (r *redisRepository) Save(ctx context.Context, userID uuid.UUID, draft *Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("wizard repository encode: %w", err)
	}

	if err := r.client.Set(ctx, draftKey(userID), data, DraftTTL).Err(); err != nil {
		return fmt.Errorf("wizard repository save: %w", err)
	}

	return nil
}

func (r *redisRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := r.client.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("wizard repository delete: %w", err)
	}
	return nil
}

// MemoryRepository keeps drafts in process memory. Used when Redis is
// not configured and in tests. Drafts do not survive restarts.
type MemoryRepository struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID][]byte
}

// NewMemoryRepository creates in-memory draft repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{drafts: make(map[uuid.UUID][]byte)}
}

func (r *MemoryRepository) Get(_ context.Context, userID uuid.UUID) (*Draft, error) {
	r.mu.RLock()
	data, ok := r.drafts[userID]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrDraftNotFound
	}

	draft := NewDraft()
	if err := json.Unmarshal(data, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (r *MemoryRepository) Save(_ context.Context, userID uuid.UUID, draft *Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.drafts[userID] = data
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	delete(r.drafts, userID)
	r.mu.Unlock()
	return nil
}

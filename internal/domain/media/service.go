package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spacely/spacely-api/internal/pkg/imaging"
	"github.com/spacely/spacely-api/internal/pkg/storage"
)

// MaxUploadSize caps a single photo upload at 10 MB.
const MaxUploadSize = 10 << 20

var (
	ErrFileTooLarge   = errors.New("file exceeds the 10MB limit")
	ErrUnsupportedImg = errors.New("unsupported image format, use JPEG or PNG")
)

// Upload is the stored photo pair.
type Upload struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

// Service processes and stores space photos
type Service struct {
	storage   storage.Storage
	processor *imaging.Processor
}

// NewService creates media service
func NewService(store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{storage: store, processor: processor}
}

// UploadPhoto resizes an image, renders its thumbnail, and stores both.
func (s *Service) UploadPhoto(ctx context.Context, userID uuid.UUID, reader io.Reader) (*Upload, error) {
	img, err := s.processor.Process(io.LimitReader(reader, MaxUploadSize))
	if err != nil {
		return nil, ErrUnsupportedImg
	}

	id := uuid.New()
	key := fmt.Sprintf("spaces/%s%s", id, img.Ext())
	thumbKey := fmt.Sprintf("spaces/%s_thumb%s", id, img.Ext())

	if err := s.storage.Put(ctx, key, bytes.NewReader(img.Original), img.ContentType); err != nil {
		return nil, fmt.Errorf("store original: %w", err)
	}
	if err := s.storage.Put(ctx, thumbKey, bytes.NewReader(img.Thumbnail), img.ContentType); err != nil {
		// Keep storage consistent: no original without its thumbnail.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.Error().Err(delErr).Str("key", key).Msg("orphan cleanup failed")
		}
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("key", key).
		Int("width", img.Width).
		Int("height", img.Height).
		Msg("photo uploaded")

	return &Upload{
		URL:          s.storage.GetURL(key),
		ThumbnailURL: s.storage.GetURL(thumbKey),
		Width:        img.Width,
		Height:       img.Height,
	}, nil
}

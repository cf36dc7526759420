package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/octobees/sitegen/internal/cms"
	"github.com/octobees/sitegen/internal/dto"
)

// TagInvalidator drops cached CMS responses by tag.
type TagInvalidator interface {
	InvalidateTags(ctx context.Context, tags ...string) (int, error)
}

// RevalidationService handles CMS content-change webhooks.
type RevalidationService struct {
	cache TagInvalidator
}

// NewRevalidationService creates a revalidation service.
func NewRevalidationService(cache TagInvalidator) *RevalidationService {
	return &RevalidationService{cache: cache}
}

// Revalidate drops the cache entries affected by a content change.
func (s *RevalidationService) Revalidate(ctx context.Context, req dto.RevalidateRequest) (dto.RevalidateResponse, error) {
	if strings.TrimSpace(req.ContentType) == "" {
		return dto.RevalidateResponse{}, ValidationError{Field: "contentType", Message: "is required"}
	}
	tags := cms.TagsForContent(req.ContentType, req.ContentID)
	n, err := s.cache.InvalidateTags(ctx, tags...)
	if err != nil {
		return dto.RevalidateResponse{}, fmt.Errorf("invalidate %v: %w", tags, err)
	}
	log.Printf("cache_revalidated content_type=%s content_id=%s tags=%s entries=%d",
		req.ContentType, req.ContentID, strings.Join(tags, ","), n)
	return dto.RevalidateResponse{Tags: tags, Invalidated: n}, nil
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/sitegen/internal/service"
)

type stubInvalidator struct {
	tags []string
	err  error
}

func (s *stubInvalidator) InvalidateTags(_ context.Context, tags ...string) (int, error) {
	s.tags = tags
	return len(tags), s.err
}

func TestRevalidateHandler(t *testing.T) {
	tests := map[string]struct {
		cache      *stubInvalidator
		body       string
		expectCode int
	}{
		"services changed": {
			cache:      &stubInvalidator{},
			body:       `{"contentType":"services"}`,
			expectCode: http.StatusOK,
		},
		"missing type": {
			cache:      &stubInvalidator{},
			body:       `{}`,
			expectCode: http.StatusBadRequest,
		},
		"malformed": {
			cache:      &stubInvalidator{},
			body:       `[`,
			expectCode: http.StatusBadRequest,
		},
		"cache down": {
			cache:      &stubInvalidator{err: errors.New("redis down")},
			body:       `{"contentType":"post","contentId":"hello"}`,
			expectCode: http.StatusInternalServerError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := NewRevalidateHandler(service.NewRevalidationService(tt.cache))
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/revalidate", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			if err := h.Revalidate(e.NewContext(req, rec)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected status %d, got %d", tt.expectCode, rec.Code)
			}
		})
	}
}

func TestRevalidateHandler_ReportsTags(t *testing.T) {
	cache := &stubInvalidator{}
	h := NewRevalidateHandler(service.NewRevalidationService(cache))
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/revalidate", strings.NewReader(`{"contentType":"theme_options"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Revalidate(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload struct {
		Status string `json:"status"`
		Data   struct {
			Tags []string `json:"tags"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Data.Tags) != 1 || payload.Data.Tags[0] != "theme-options" {
		t.Fatalf("unexpected tags: %+v", payload)
	}
}

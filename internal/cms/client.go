package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

// ErrNotFound is returned when the CMS has no document for the request.
var ErrNotFound = errors.New("cms: not found")

// StatusError reports a non-2xx answer from the CMS.
type StatusError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("cms returned %d: %s", e.Code, e.Message)
}

const defaultTimeout = 10 * time.Second

// forwardedHeaders are kept alongside cached bodies.
var forwardedHeaders = []string{"X-WP-Total", "X-WP-TotalPages"}

// Client reads documents from the WordPress REST API.
type Client struct {
	client  *http.Client
	baseURL string
	cache   Cache
	ttl     time.Duration
}

// Option configures optional client behaviour.
type Option func(*Client)

// WithCache stores GET responses in cache for ttl.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		if cache != nil {
			c.cache = cache
		}
		c.ttl = ttl
	}
}

// WithTimeout bounds each CMS request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// NewClient builds a CMS client. When client is nil and audience is set, an
// ID-token client is used so the CMS can sit behind identity-aware ingress.
func NewClient(client *http.Client, baseURL, audience string, opts ...Option) *Client {
	if baseURL == "" {
		panic("cms baseURL must not be empty")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
		if audience != "" {
			idc, err := idtoken.NewClient(context.Background(), audience)
			if err != nil {
				log.Printf("cms: id token client unavailable, using plain http: %v", err)
			} else {
				idc.Timeout = defaultTimeout
				client = idc
			}
		}
	}
	c := &Client{client: client, baseURL: baseURL, cache: NopCache{}, ttl: time.Hour}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cache returns the response cache, a NopCache when none was configured.
func (c *Client) Cache() Cache {
	return c.cache
}

type cachedResponse struct {
	Body   json.RawMessage   `json:"body"`
	Header map[string]string `json:"header,omitempty"`
}

// getJSON decodes the document at path into out. Cache failures are logged
// and fall through to the network.
func (c *Client) getJSON(ctx context.Context, path string, tags []string, out any) (http.Header, error) {
	if raw, ok, err := c.cache.Get(ctx, path); err != nil {
		log.Printf("cms: cache get path=%s err=%v", path, err)
	} else if ok {
		var cached cachedResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			if err := json.Unmarshal(cached.Body, out); err == nil {
				header := make(http.Header, len(cached.Header))
				for k, v := range cached.Header {
					header.Set(k, v)
				}
				return header, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cms request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, &StatusError{Code: resp.StatusCode, Message: extractError(resp.Body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read cms response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("could not decode cms response: %w", err)
	}

	cached := cachedResponse{Body: body, Header: map[string]string{}}
	for _, h := range forwardedHeaders {
		if v := resp.Header.Get(h); v != "" {
			cached.Header[h] = v
		}
	}
	if encoded, err := json.Marshal(cached); err == nil {
		if err := c.cache.Set(ctx, path, encoded, c.ttl, append(tags, TagAll)...); err != nil {
			log.Printf("cms: cache set path=%s err=%v", path, err)
		}
	}

	return resp.Header, nil
}

// postJSON posts payload to path and decodes the answer into out.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create cms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("cms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &StatusError{Code: resp.StatusCode, Message: extractError(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("could not decode cms response: %w", err)
	}
	return nil
}

func extractError(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return "cms returned an error"
	}

	// WordPress REST errors carry {code, message, data}.
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return string(data)
}

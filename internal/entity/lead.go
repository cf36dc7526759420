package entity

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a form submission recorded by the site.
type Lead struct {
	ID        uuid.UUID      `json:"id"`
	FormID    string         `json:"form_id"`
	Email     *string        `json:"email,omitempty"`
	Phone     *string        `json:"phone,omitempty"`
	FormData  map[string]any `json:"form_data"`
	Forwarded bool           `json:"forwarded"`
	CreatedAt time.Time      `json:"created_at"`
}

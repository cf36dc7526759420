package dto

import (
	"time"

	"github.com/octobees/sitegen/internal/entity"
)

// SubmitLeadRequest captures a contact or booking form submission.
type SubmitLeadRequest struct {
	FormID   string         `json:"formId"`
	FormData map[string]any `json:"formData"`
}

// SubmitLeadResponse mirrors the result the site forms expect.
type SubmitLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LeadFilter narrows the admin lead listing.
type LeadFilter struct {
	FormID  string
	Since   *time.Time
	Page    int
	PerPage int
}

// LeadResponse is the admin view of a stored lead.
type LeadResponse struct {
	ID        string         `json:"id"`
	FormID    string         `json:"form_id"`
	Email     *string        `json:"email,omitempty"`
	Phone     *string        `json:"phone,omitempty"`
	FormData  map[string]any `json:"form_data"`
	Forwarded bool           `json:"forwarded"`
	CreatedAt time.Time      `json:"created_at"`
}

// LeadListResponse wraps a page of leads.
type LeadListResponse struct {
	Items   []LeadResponse `json:"items"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// NewLeadResponse maps a stored lead to its admin representation.
func NewLeadResponse(lead entity.Lead) LeadResponse {
	return LeadResponse{
		ID:        lead.ID.String(),
		FormID:    lead.FormID,
		Email:     lead.Email,
		Phone:     lead.Phone,
		FormData:  lead.FormData,
		Forwarded: lead.Forwarded,
		CreatedAt: lead.CreatedAt,
	}
}

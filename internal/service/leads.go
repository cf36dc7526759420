package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/octobees/sitegen/internal/cms"
	"github.com/octobees/sitegen/internal/dto"
	"github.com/octobees/sitegen/internal/entity"
	"github.com/octobees/sitegen/internal/repository"
)

const (
	leadReceivedMessage  = "Thanks! We received your message."
	leadDuplicateMessage = "We already received this message."
)

var (
	// ErrForwardFailed is returned when a lead did not reach the CMS and the
	// caller should retry: either nothing was stored, or the submission
	// carries an idempotency key a retry will be matched on.
	ErrForwardFailed = errors.New("lead could not be delivered")
	// ErrLeadStoreDisabled is returned by List when no database is configured.
	ErrLeadStoreDisabled = errors.New("lead store is not configured")
)

// FormSubmitter forwards lead forms to the CMS.
type FormSubmitter interface {
	SubmitForm(ctx context.Context, formID string, data map[string]any) (*cms.FormResult, error)
}

// LeadService validates, forwards and optionally stores lead submissions.
type LeadService struct {
	validator *LeadValidator
	forms     FormSubmitter
	repo      repository.LeadsRepository
}

// NewLeadService creates a lead service. repo may be nil when no lead store
// is configured.
func NewLeadService(validator *LeadValidator, forms FormSubmitter, repo repository.LeadsRepository) *LeadService {
	return &LeadService{validator: validator, forms: forms, repo: repo}
}

// Submit handles one form submission. idempotencyKey is optional; with a
// lead store configured, a resubmission under the same key is not stored
// again and is only forwarded if the earlier attempt never reached the CMS.
func (s *LeadService) Submit(ctx context.Context, req dto.SubmitLeadRequest, idempotencyKey string) (dto.SubmitLeadResponse, error) {
	cleaned, err := s.validator.Validate(ctx, req)
	if err != nil {
		if errors.Is(err, ErrSpam) {
			log.Printf("lead_spam form_id=%s", req.FormID)
			return dto.SubmitLeadResponse{Success: true, Message: leadReceivedMessage}, nil
		}
		return dto.SubmitLeadResponse{}, err
	}

	var stored *entity.Lead
	if s.repo != nil {
		input := repository.CreateLeadInput{
			FormID:   cleaned.FormID,
			Email:    cleaned.Email,
			Phone:    cleaned.Phone,
			FormData: cleaned.FormData,
		}
		if idempotencyKey != "" {
			input.IdempotencyKey = &idempotencyKey
		}
		stored, err = s.repo.Create(ctx, input)
		switch {
		case errors.Is(err, repository.ErrDuplicateLead):
			return s.redeliver(ctx, idempotencyKey)
		case err != nil:
			log.Printf("lead_store_failed form_id=%s error=%v", cleaned.FormID, err)
			stored = nil
		}
	}

	return s.forward(ctx, stored, cleaned.FormID, cleaned.FormData, idempotencyKey != "")
}

// redeliver answers a resubmission under a known idempotency key. A stored
// lead that never reached the CMS is forwarded now.
func (s *LeadService) redeliver(ctx context.Context, idempotencyKey string) (dto.SubmitLeadResponse, error) {
	lead, err := s.repo.FindByIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		return dto.SubmitLeadResponse{}, fmt.Errorf("load lead for key: %w", err)
	}
	if lead.Forwarded {
		return dto.SubmitLeadResponse{Success: true, Message: leadDuplicateMessage}, nil
	}
	log.Printf("lead_redeliver lead_id=%s form_id=%s", lead.ID, lead.FormID)
	return s.forward(ctx, lead, lead.FormID, lead.FormData, true)
}

// forward sends the lead to the CMS. A failure is hidden from the caller
// only when the lead is stored and cannot be matched on retry.
func (s *LeadService) forward(ctx context.Context, stored *entity.Lead, formID string, data map[string]any, keyed bool) (dto.SubmitLeadResponse, error) {
	result, err := s.forms.SubmitForm(ctx, formID, data)
	if err != nil {
		log.Printf("lead_forward_failed form_id=%s stored=%t keyed=%t error=%v", formID, stored != nil, keyed, err)
		if stored == nil || keyed {
			return dto.SubmitLeadResponse{}, fmt.Errorf("%w: %v", ErrForwardFailed, err)
		}
		return dto.SubmitLeadResponse{Success: true, Message: leadReceivedMessage}, nil
	}

	if stored != nil && result.Success {
		if err := s.repo.MarkForwarded(ctx, stored.ID); err != nil {
			log.Printf("lead_mark_forwarded_failed lead_id=%s error=%v", stored.ID, err)
		}
	}

	message := result.Message
	if message == "" && result.Success {
		message = leadReceivedMessage
	}
	return dto.SubmitLeadResponse{Success: result.Success, Message: message}, nil
}

// List returns a page of stored leads for the admin inbox.
func (s *LeadService) List(ctx context.Context, filter dto.LeadFilter) (dto.LeadListResponse, error) {
	if s.repo == nil {
		return dto.LeadListResponse{}, ErrLeadStoreDisabled
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 || filter.PerPage > 100 {
		filter.PerPage = 20
	}
	leads, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.LeadListResponse{}, err
	}
	out := dto.LeadListResponse{
		Items:   make([]dto.LeadResponse, 0, len(leads)),
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}
	for _, lead := range leads {
		out.Items = append(out.Items, dto.NewLeadResponse(lead))
	}
	return out, nil
}

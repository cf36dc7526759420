package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/sitegen/internal/dto"
	"github.com/octobees/sitegen/internal/service"
)

// IdempotencyKeyHeader lets a form retry a submission without creating a
// second lead.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

// LeadsHandler exposes the lead form endpoint and the admin inbox.
type LeadsHandler struct {
	service *service.LeadService
}

// NewLeadsHandler creates a new handler instance.
func NewLeadsHandler(service *service.LeadService) *LeadsHandler {
	return &LeadsHandler{service: service}
}

// Submit handles POST /api/leads. The response body is the plain
// {success, message} object the site forms read.
func (h *LeadsHandler) Submit(c echo.Context) error {
	var req dto.SubmitLeadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.SubmitLeadResponse{Message: "invalid payload"})
	}

	key := strings.TrimSpace(c.Request().Header.Get(IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLength {
		return c.JSON(http.StatusBadRequest, dto.SubmitLeadResponse{Message: "idempotency key too long"})
	}

	resp, err := h.service.Submit(c.Request().Context(), req, key)
	if err != nil {
		var verr service.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.JSON(http.StatusBadRequest, dto.SubmitLeadResponse{Message: verr.Error()})
		case errors.Is(err, service.ErrForwardFailed):
			return c.JSON(http.StatusBadGateway, dto.SubmitLeadResponse{Message: "unable to send your message, please try again"})
		default:
			return c.JSON(http.StatusInternalServerError, dto.SubmitLeadResponse{Message: "unable to send your message"})
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// List handles GET /admin/leads.
func (h *LeadsHandler) List(c echo.Context) error {
	filter := dto.LeadFilter{
		FormID:  strings.ToLower(strings.TrimSpace(c.QueryParam("form_id"))),
		Page:    parseIntDefault(c.QueryParam("page"), 1),
		PerPage: parseIntDefault(c.QueryParam("per_page"), 20),
	}
	if since := strings.TrimSpace(c.QueryParam("since")); since != "" {
		parsed, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return Error(c, http.StatusBadRequest, "invalid since (use RFC3339)")
		}
		filter.Since = &parsed
	}

	list, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrLeadStoreDisabled) {
			return Error(c, http.StatusServiceUnavailable, "lead store is not configured")
		}
		return Error(c, http.StatusInternalServerError, "failed to list leads")
	}
	return Success(c, http.StatusOK, "leads retrieved", list)
}

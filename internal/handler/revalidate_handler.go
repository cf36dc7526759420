package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/sitegen/internal/dto"
	"github.com/octobees/sitegen/internal/service"
)

// RevalidateHandler receives CMS content-change webhooks.
type RevalidateHandler struct {
	service *service.RevalidationService
}

// NewRevalidateHandler creates a new handler instance.
func NewRevalidateHandler(service *service.RevalidationService) *RevalidateHandler {
	return &RevalidateHandler{service: service}
}

// Revalidate handles POST /api/revalidate.
func (h *RevalidateHandler) Revalidate(c echo.Context) error {
	var req dto.RevalidateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	resp, err := h.service.Revalidate(c.Request().Context(), req)
	if err != nil {
		var verr service.ValidationError
		if errors.As(err, &verr) {
			return Error(c, http.StatusBadRequest, verr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to invalidate cache")
	}
	return Success(c, http.StatusOK, "cache revalidated", resp)
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/supportstack/helpdesk-service/internal/api/dto"
	"github.com/supportstack/helpdesk-service/internal/repository"
	apperrors "github.com/supportstack/helpdesk-service/pkg/util/errorutil"
)

// ReferenceHandler serves the seeded lookup tables that the ticket forms need.
type ReferenceHandler struct {
	reference repository.ReferenceRepository
}

// NewReferenceHandler constructs handler.
func NewReferenceHandler(reference repository.ReferenceRepository) *ReferenceHandler {
	return &ReferenceHandler{reference: reference}
}

// List GET /reference.
func (h *ReferenceHandler) List(c *fiber.Ctx) error {
	categories, err := h.reference.ListCategories(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	priorities, err := h.reference.ListPriorities(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	statuses, err := h.reference.ListStatuses(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}

	resp := dto.ReferenceDataResponse{
		Categories: make([]dto.CategoryResponse, 0, len(categories)),
		Priorities: make([]dto.PriorityResponse, 0, len(priorities)),
		Statuses:   make([]dto.StatusResponse, 0, len(statuses)),
	}
	for _, cat := range categories {
		resp.Categories = append(resp.Categories, dto.CategoryResponse{ID: cat.ID, Name: cat.Name, Description: cat.Description})
	}
	for _, pr := range priorities {
		resp.Priorities = append(resp.Priorities, dto.PriorityResponse{ID: pr.ID, Name: pr.Name, Level: pr.Level})
	}
	for _, st := range statuses {
		resp.Statuses = append(resp.Statuses, dto.StatusResponse{ID: st.ID, Name: st.Name, Color: st.Color})
	}
	return respond(c, http.StatusOK, resp, "", "")
}

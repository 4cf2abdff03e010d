package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/supportstack/helpdesk-service/internal/api/dto"
	"github.com/supportstack/helpdesk-service/internal/auth"
	"github.com/supportstack/helpdesk-service/internal/service"
	apperrors "github.com/supportstack/helpdesk-service/pkg/util/errorutil"
)

// TicketsHandler manages the dashboard, ticket creation and the detail page.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Dashboard handles GET /tickets, the visibility-scoped listing.
func (h *TicketsHandler) Dashboard(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets, err := h.service.ListDashboard(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketSummary(&tickets[i]))
	}
	return respond(c, http.StatusOK, items, "", "")
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" ||
		req.Category == 0 || req.Priority == 0 {
		return apperrors.NewValidationError("title, description, category, priority required", nil)
	}

	ticket, err := h.service.CreateTicket(c.Context(), actor, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.Category,
		PriorityID:  req.Priority,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, dto.NewTicketSummary(ticket),
		"ticket created", apperrors.CategorySuccess)
}

// Detail GET /tickets/:id.
func (h *TicketsHandler) Detail(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseID(c, "id", "ticket")
	if err != nil {
		return err
	}

	detail, err := h.service.GetTicketDetail(c.Context(), actor, ticketID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, ticketDetailResponse(detail), "", "")
}

// Update handles POST /tickets/:id, the combined comment/status/assignment
// submission. Denied parts are skipped, reported via the outcome and a
// warning message.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID, err := parseID(c, "id", "ticket")
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	outcome, err := h.service.UpdateTicket(c.Context(), actor, ticketID, service.TicketUpdateInput{
		Content:      req.Content,
		StatusID:     req.StatusID,
		TechnicianID: req.TechnicianID,
	})
	if err != nil {
		return err
	}

	message := "ticket updated"
	category := apperrors.CategorySuccess
	switch {
	case len(outcome.SkippedParts) > 0 && outcome.Applied():
		message = "ticket updated; some changes were not permitted"
		category = apperrors.CategoryWarning
	case len(outcome.SkippedParts) > 0:
		message = "no permitted changes in submission"
		category = apperrors.CategoryWarning
	case !outcome.Applied():
		message = "nothing to update"
		category = apperrors.CategoryInfo
	}

	return respond(c, http.StatusOK, dto.UpdateOutcomeResponse{
		CommentAdded:      outcome.CommentAdded,
		StatusChanged:     outcome.StatusChanged,
		AssignmentChanged: outcome.AssignmentChanged,
		SkippedParts:      outcome.SkippedParts,
	}, message, category)
}

func ticketDetailResponse(detail *service.TicketDetail) dto.TicketDetailResponse {
	t := detail.Ticket
	resp := dto.TicketDetailResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		PriorityID:  t.PriorityID,
		StatusID:    t.StatusID,
		RequesterID: t.RequesterID,
		AssignedTo:  t.AssignedTo,
		CreatedAt:   t.CreatedAt,
		Comments:    make([]dto.CommentResponse, 0, len(detail.Comments)),
		Statuses:    make([]dto.StatusResponse, 0, len(detail.Statuses)),
		Technicians: make([]dto.UserSummary, 0, len(detail.Technicians)),
	}
	for _, comment := range detail.Comments {
		resp.Comments = append(resp.Comments, dto.CommentResponse{
			ID:        comment.ID,
			TicketID:  comment.TicketID,
			UserID:    comment.UserID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		})
	}
	for _, status := range detail.Statuses {
		resp.Statuses = append(resp.Statuses, dto.StatusResponse{ID: status.ID, Name: status.Name, Color: status.Color})
	}
	for i := range detail.Technicians {
		resp.Technicians = append(resp.Technicians, dto.NewUserSummary(&detail.Technicians[i]))
	}
	return resp
}

func parseID(c *fiber.Ctx, param, resource string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound(resource, nil)
	}
	return id, nil
}

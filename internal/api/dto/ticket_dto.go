package dto

import (
	"time"

	"github.com/supportstack/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload. Field names follow the web form.
type CreateTicketRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Category    int64  `json:"category" form:"category"`
	Priority    int64  `json:"priority" form:"priority"`
}

// UpdateTicketRequest is the combined detail-page submission: any subset of a
// new comment, a status change and an assignment change.
type UpdateTicketRequest struct {
	Content      string `json:"content" form:"content"`
	StatusID     *int64 `json:"status_id" form:"status_id"`
	TechnicianID *int64 `json:"technician_id" form:"technician_id"`
}

// TicketSummary response.
type TicketSummary struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	CategoryID  int64     `json:"category_id"`
	PriorityID  int64     `json:"priority_id"`
	StatusID    int64     `json:"status_id"`
	RequesterID int64     `json:"requester_id"`
	AssignedTo  *int64    `json:"assigned_to"`
	CreatedAt   time.Time `json:"created_at"`
}

// TicketDetailResponse provides full ticket info plus the rows the update
// form needs.
type TicketDetailResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	CategoryID  int64             `json:"category_id"`
	PriorityID  int64             `json:"priority_id"`
	StatusID    int64             `json:"status_id"`
	RequesterID int64             `json:"requester_id"`
	AssignedTo  *int64            `json:"assigned_to"`
	CreatedAt   time.Time         `json:"created_at"`
	Comments    []CommentResponse `json:"comments"`
	Statuses    []StatusResponse  `json:"statuses"`
	Technicians []UserSummary     `json:"technicians"`
}

// CommentResponse represents one thread entry.
type CommentResponse struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticket_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateOutcomeResponse reports which parts of a combined submission were
// applied and which were skipped.
type UpdateOutcomeResponse struct {
	CommentAdded      bool     `json:"comment_added"`
	StatusChanged     bool     `json:"status_changed"`
	AssignmentChanged bool     `json:"assignment_changed"`
	SkippedParts      []string `json:"skipped_parts,omitempty"`
}

// CategoryResponse reference row.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StatusResponse reference row.
type StatusResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PriorityResponse reference row.
type PriorityResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// ReferenceDataResponse bundles the lookup tables for the creation form.
type ReferenceDataResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Priorities []PriorityResponse `json:"priorities"`
	Statuses   []StatusResponse   `json:"statuses"`
}

// NewTicketSummary maps a domain ticket.
func NewTicketSummary(t *domain.Ticket) TicketSummary {
	return TicketSummary{
		ID:          t.ID,
		Title:       t.Title,
		CategoryID:  t.CategoryID,
		PriorityID:  t.PriorityID,
		StatusID:    t.StatusID,
		RequesterID: t.RequesterID,
		AssignedTo:  t.AssignedTo,
		CreatedAt:   t.CreatedAt,
	}
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/supportstack/helpdesk-service/internal/auth"
	"github.com/supportstack/helpdesk-service/internal/domain"
	"github.com/supportstack/helpdesk-service/internal/repository"
	apperrors "github.com/supportstack/helpdesk-service/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets   repository.TicketRepository
	comments  repository.CommentRepository
	users     repository.UserRepository
	reference repository.ReferenceRepository
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo    repository.TicketRepository
	CommentRepo   repository.CommentRepository
	UserRepo      repository.UserRepository
	ReferenceRepo repository.ReferenceRepository
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:   deps.TicketRepo,
		comments:  deps.CommentRepo,
		users:     deps.UserRepo,
		reference: deps.ReferenceRepo,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	CategoryID  int64
	PriorityID  int64
}

// TicketUpdateInput is a combined submission: any subset of a new comment, a
// status change and an assignment change.
type TicketUpdateInput struct {
	Content      string
	StatusID     *int64
	TechnicianID *int64
}

// TicketDetail is the fully materialized detail surface: the ticket, its
// thread, and the reference rows the update form needs.
type TicketDetail struct {
	Ticket      *domain.Ticket
	Comments    []domain.Comment
	Statuses    []domain.Status
	Technicians []domain.User
}

// UpdateOutcome reports which parts of a combined submission were applied.
// Denied parts are skipped, not failed.
type UpdateOutcome struct {
	CommentAdded      bool
	StatusChanged     bool
	AssignmentChanged bool
	SkippedParts      []string
}

// Applied reports whether any part took effect.
func (o UpdateOutcome) Applied() bool {
	return o.CommentAdded || o.StatusChanged || o.AssignmentChanged
}

// CreateTicket creates a ticket for the actor. The actor becomes the
// requester, the status is the initial one, and the ticket starts unassigned.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		CategoryID:  input.CategoryID,
		PriorityID:  input.PriorityID,
		StatusID:    domain.DefaultStatusID,
		RequesterID: actor.ID,
		AssignedTo:  nil,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, apperrors.NewValidationError("unknown category or priority", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ListDashboard returns the tickets the actor may see, per the visibility
// rule: admins everything, technicians their assignments plus the unassigned
// pool, employees their own requests.
func (s *TicketService) ListDashboard(ctx context.Context, actor *domain.User) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{}
	switch actor.Role {
	case domain.RoleAdmin:
		// unfiltered
	case domain.RoleTechnician:
		filter.VisibleToStaffID = &actor.ID
	default:
		filter.RequesterID = &actor.ID
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetTicketDetail fetches a ticket with its comment thread and the reference
// rows for the update form. Unknown ids are not found; tickets outside the
// actor's visibility are denied.
func (s *TicketService) GetTicketDetail(ctx context.Context, actor *domain.User, ticketID int64) (*TicketDetail, error) {
	ticket, err := s.getVisibleTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	statuses, err := s.reference.ListStatuses(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	technicians, err := s.users.ListStaff(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &TicketDetail{
		Ticket:      ticket,
		Comments:    comments,
		Statuses:    statuses,
		Technicians: technicians,
	}, nil
}

// UpdateTicket applies a combined submission. Each part is gated
// independently against the authorization policy; denied parts are silently
// skipped while the permitted ones are persisted in a single transaction.
func (s *TicketService) UpdateTicket(ctx context.Context, actor *domain.User, ticketID int64, input TicketUpdateInput) (*UpdateOutcome, error) {
	ticket, err := s.getVisibleTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	outcome := &UpdateOutcome{}
	update := repository.TicketUpdate{}

	if content := strings.TrimSpace(input.Content); content != "" {
		if auth.CanComment(actor, ticket) {
			update.Comment = &domain.Comment{
				TicketID: ticket.ID,
				UserID:   actor.ID,
				Content:  content,
			}
		} else {
			outcome.SkippedParts = append(outcome.SkippedParts, "comment")
		}
	}

	if input.StatusID != nil {
		if auth.Allows(actor.Role, auth.ActionChangeStatus) {
			if _, err := s.reference.GetStatus(ctx, *input.StatusID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, apperrors.NewValidationError("unknown status", nil)
				}
				return nil, apperrors.MapError(err)
			}
			update.StatusID = input.StatusID
		} else {
			outcome.SkippedParts = append(outcome.SkippedParts, "status")
		}
	}

	if input.TechnicianID != nil {
		if auth.Allows(actor.Role, auth.ActionAssignTicket) {
			assignee, err := s.users.GetByID(ctx, *input.TechnicianID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, apperrors.NewValidationError("unknown technician", nil)
				}
				return nil, apperrors.MapError(err)
			}
			if !assignee.Role.Staff() {
				return nil, apperrors.NewValidationError("assignee must be a technician or admin", nil)
			}
			update.AssignedTo = input.TechnicianID
		} else {
			outcome.SkippedParts = append(outcome.SkippedParts, "assignment")
		}
	}

	if !update.Empty() {
		if err := s.tickets.ApplyUpdate(ctx, ticket.ID, update); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	outcome.CommentAdded = update.Comment != nil
	outcome.StatusChanged = update.StatusID != nil
	outcome.AssignmentChanged = update.AssignedTo != nil
	return outcome, nil
}

func (s *TicketService) getVisibleTicket(ctx context.Context, actor *domain.User, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if !auth.CanViewTicket(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

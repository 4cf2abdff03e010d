package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supportstack/helpdesk-service/internal/domain"
)

// TicketFilter narrows ticket listings to what the actor may see.
// VisibleToStaffID selects tickets assigned to that user plus the unassigned
// pool; RequesterID selects the actor's own tickets; an empty filter matches
// everything.
type TicketFilter struct {
	RequesterID      *int64
	VisibleToStaffID *int64
	Limit            int
	Offset           int
}

// TicketUpdate is the change set of a combined ticket submission. Nil fields
// are untouched; all set fields are applied in one transaction.
type TicketUpdate struct {
	StatusID   *int64
	AssignedTo *int64
	Comment    *domain.Comment
}

// Empty reports whether the update carries no permitted changes.
func (u TicketUpdate) Empty() bool {
	return u.StatusID == nil && u.AssignedTo == nil && u.Comment == nil
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	ApplyUpdate(ctx context.Context, ticketID int64, update TicketUpdate) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, title, description, category_id, priority_id, status_id, requester_id, assigned_to, created_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, category_id, priority_id, status_id, requester_id, assigned_to)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, status_id, created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.CategoryID,
		ticket.PriorityID,
		ticket.StatusID,
		ticket.RequesterID,
		ticket.AssignedTo,
	).Scan(&ticket.ID, &ticket.StatusID, &ticket.CreatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.CategoryID,
		&ticket.PriorityID,
		&ticket.StatusID,
		&ticket.RequesterID,
		&ticket.AssignedTo,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		clauses = append(clauses, fmt.Sprintf("requester_id=$%d", len(args)))
	}
	if filter.VisibleToStaffID != nil {
		args = append(args, *filter.VisibleToStaffID)
		clauses = append(clauses, fmt.Sprintf("(assigned_to=$%d OR assigned_to IS NULL)", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// ApplyUpdate persists all parts of a combined submission atomically. The
// caller has already gated each part against the authorization policy.
func (r *ticketRepository) ApplyUpdate(ctx context.Context, ticketID int64, update TicketUpdate) error {
	if update.Empty() {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if update.StatusID != nil {
		cmd, err := tx.Exec(ctx, `UPDATE tickets SET status_id=$1 WHERE id=$2`, *update.StatusID, ticketID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
	}
	if update.AssignedTo != nil {
		cmd, err := tx.Exec(ctx, `UPDATE tickets SET assigned_to=$1 WHERE id=$2`, *update.AssignedTo, ticketID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
	}
	if update.Comment != nil {
		comment := update.Comment
		err := tx.QueryRow(ctx,
			`INSERT INTO comments (ticket_id, user_id, content) VALUES ($1,$2,$3) RETURNING id, created_at`,
			ticketID, comment.UserID, comment.Content,
		).Scan(&comment.ID, &comment.CreatedAt)
		if err != nil {
			return err
		}
		comment.TicketID = ticketID
	}

	return tx.Commit(ctx)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.CategoryID,
			&ticket.PriorityID,
			&ticket.StatusID,
			&ticket.RequesterID,
			&ticket.AssignedTo,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

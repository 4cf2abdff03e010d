package service

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/supportstack/helpdesk-service/internal/domain"
	"github.com/supportstack/helpdesk-service/internal/repository"
)

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

func foreignKeyViolation() error {
	return &pgconn.PgError{Code: "23503"}
}

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
	// referenced marks users whose deletion violates referential
	// integrity, mirroring the RESTRICT foreign keys.
	referenced map[int64]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int64]*domain.User{}, referenced: map[int64]bool{}}
}

func (r *fakeUserRepo) add(user domain.User) *domain.User {
	user.ID = r.nextID
	r.nextID++
	stored := user
	r.users[stored.ID] = &stored
	return &stored
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return uniqueViolation()
		}
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[stored.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username || existing.Email == user.Email {
			return uniqueViolation()
		}
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	if r.referenced[id] {
		return foreignKeyViolation()
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) ListStaff(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		if user.Role.Staff() {
			result = append(result, *user)
		}
	}
	return result, nil
}

type fakeTicketRepo struct {
	nextID  int64
	tickets map[int64]*domain.Ticket
	// updates records every ApplyUpdate call for assertions.
	updates []repository.TicketUpdate
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{nextID: 1, tickets: map[int64]*domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = r.nextID
	r.nextID++
	stored := *ticket
	r.tickets[stored.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.RequesterID != nil && ticket.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.VisibleToStaffID != nil {
			if ticket.AssignedTo != nil && *ticket.AssignedTo != *filter.VisibleToStaffID {
				continue
			}
		}
		result = append(result, *ticket)
	}
	return result, nil
}

func (r *fakeTicketRepo) ApplyUpdate(_ context.Context, ticketID int64, update repository.TicketUpdate) error {
	ticket, ok := r.tickets[ticketID]
	if !ok {
		return pgx.ErrNoRows
	}
	if update.StatusID != nil {
		ticket.StatusID = *update.StatusID
	}
	if update.AssignedTo != nil {
		assigned := *update.AssignedTo
		ticket.AssignedTo = &assigned
	}
	r.updates = append(r.updates, update)
	return nil
}

type fakeCommentRepo struct {
	comments map[int64][]domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[int64][]domain.Comment{}}
}

func (r *fakeCommentRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.Comment, error) {
	return r.comments[ticketID], nil
}

type fakeReferenceRepo struct {
	statuses map[int64]domain.Status
}

func newFakeReferenceRepo() *fakeReferenceRepo {
	return &fakeReferenceRepo{
		statuses: map[int64]domain.Status{
			1: {ID: 1, Name: "Open", Color: "primary"},
			2: {ID: 2, Name: "In Progress", Color: "warning"},
			3: {ID: 3, Name: "Resolved", Color: "success"},
		},
	}
}

func (r *fakeReferenceRepo) ListCategories(_ context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: 1, Name: "Hardware"}}, nil
}

func (r *fakeReferenceRepo) ListPriorities(_ context.Context) ([]domain.Priority, error) {
	return []domain.Priority{{ID: 1, Name: "Low", Level: 1}, {ID: 2, Name: "Medium", Level: 2}}, nil
}

func (r *fakeReferenceRepo) ListStatuses(_ context.Context) ([]domain.Status, error) {
	var result []domain.Status
	for _, st := range r.statuses {
		result = append(result, st)
	}
	return result, nil
}

func (r *fakeReferenceRepo) GetStatus(_ context.Context, id int64) (*domain.Status, error) {
	st, ok := r.statuses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &st, nil
}

type fakeSessions struct {
	nextID  int
	active  map[string]int64
	revoked []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{active: map[string]int64{}}
}

func (s *fakeSessions) Create(_ context.Context, userID int64) (string, error) {
	s.nextID++
	id := "session-" + strconv.Itoa(s.nextID)
	s.active[id] = userID
	return id, nil
}

func (s *fakeSessions) Revoke(_ context.Context, sessionID string) error {
	delete(s.active, sessionID)
	s.revoked = append(s.revoked, sessionID)
	return nil
}

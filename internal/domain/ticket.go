package domain

import "time"

// Ticket is the aggregate for support requests. Status, category and priority
// reference the seeded lookup tables; AssignedTo, when set, must reference a
// staff-role user.
type Ticket struct {
	ID          int64
	Title       string
	Description string
	CategoryID  int64
	PriorityID  int64
	StatusID    int64
	RequesterID int64
	AssignedTo  *int64
	CreatedAt   time.Time
}

// Assigned reports whether the ticket has left the unassigned pool.
func (t *Ticket) Assigned() bool {
	return t.AssignedTo != nil
}

// Comment is an append-only entry in a ticket's thread.
type Comment struct {
	ID        int64
	TicketID  int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

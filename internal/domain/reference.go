package domain

// DefaultStatusID is the status stamped onto newly created tickets.
const DefaultStatusID int64 = 1

// Category classifies tickets. Seeded out-of-band, read-only at runtime.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Status is a ticket lifecycle state row.
type Status struct {
	ID    int64
	Name  string
	Color string
}

// Priority is a ticket urgency row.
type Priority struct {
	ID    int64
	Name  string
	Level int
}

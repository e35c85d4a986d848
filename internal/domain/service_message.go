package domain

import "time"

// ServiceMessage is one entry in a ticket's conversation thread.
// Entries are append-only and immutable once stored.
type ServiceMessage struct {
	ID        string
	TicketID  string
	UserID    string
	Message   string
	Timestamp time.Time
}

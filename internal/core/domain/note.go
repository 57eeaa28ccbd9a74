package domain

import "time"

// FirstTicket is the ticket number handed to the first note ever created.
const FirstTicket = 500

// Note is a work ticket assigned to a single user.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Ticket    int64     `json:"ticket"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

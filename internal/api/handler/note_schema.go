package handler

import "time"

type createNoteRequest struct {
	User  string `json:"user"  validate:"required"`
	Title string `json:"title" validate:"required"`
	Text  string `json:"text"  validate:"required"`
}

type updateNoteRequest struct {
	ID        string `json:"id"        validate:"required"`
	User      string `json:"user"      validate:"required"`
	Title     string `json:"title"     validate:"required"`
	Text      string `json:"text"      validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

type deleteNoteRequest struct {
	ID string `json:"id" validate:"required"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Ticket    int64     `json:"ticket"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

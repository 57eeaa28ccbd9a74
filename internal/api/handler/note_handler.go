package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/technotes/technotes-api/internal/api/metrics"
	"github.com/technotes/technotes-api/internal/core/domain"
	"github.com/technotes/technotes-api/internal/core/ports"
)

type NoteHandler struct {
	service ports.NoteService
	audit   ports.AuditRecorder
}

func NewNoteHandler(service ports.NoteService, audit ports.AuditRecorder) *NoteHandler {
	return &NoteHandler{service: service, audit: audit}
}

// List handles GET /notes.
//
// @Summary      List all notes with their owner's username
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   noteResponse
// @Failure      400  {object}  messageResponse
// @Router       /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	views, err := h.service.ListNotes(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]noteResponse, len(views))
	for i, v := range views {
		out[i] = noteResponse{
			ID:        v.ID,
			User:      v.UserID,
			Username:  v.Username,
			Title:     v.Title,
			Text:      v.Text,
			Completed: v.Completed,
			Ticket:    v.Ticket,
			CreatedAt: v.CreatedAt.UTC(),
			UpdatedAt: v.UpdatedAt.UTC(),
		}
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /notes.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNoteRequest  true  "New note"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	var req createNoteRequest
	if err := bindAndValidate(c, &req, domain.ErrAllFieldsRequired); err != nil {
		return err
	}

	note, err := h.service.CreateNote(c.Request().Context(), ports.CreateNoteInput{
		UserID: req.User,
		Title:  req.Title,
		Text:   req.Text,
	})
	if err != nil {
		return err
	}

	metrics.NoteOperationsTotal.WithLabelValues("create").Inc()
	recordAudit(c, h.audit, domain.AuditNoteCreated, note.ID, note.Title)
	return c.JSON(http.StatusCreated, messageResponse{Message: "New note created"})
}

// Update handles PATCH /notes.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateNoteRequest  true  "Note fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /notes [patch]
func (h *NoteHandler) Update(c echo.Context) error {
	var req updateNoteRequest
	if err := bindAndValidate(c, &req, domain.ErrAllFieldsRequired); err != nil {
		return err
	}

	note, err := h.service.UpdateNote(c.Request().Context(), ports.UpdateNoteInput{
		ID:        req.ID,
		UserID:    req.User,
		Title:     req.Title,
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		return err
	}

	metrics.NoteOperationsTotal.WithLabelValues("update").Inc()
	recordAudit(c, h.audit, domain.AuditNoteUpdated, note.ID, note.Title)
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("'%s' updated", note.Title)})
}

// Delete handles DELETE /notes.
//
// @Summary      Delete a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteNoteRequest  true  "Note id"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Router       /notes [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	var req deleteNoteRequest
	if err := bindAndValidate(c, &req, domain.ErrNoteIDRequired); err != nil {
		return err
	}

	note, err := h.service.DeleteNote(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}

	metrics.NoteOperationsTotal.WithLabelValues("delete").Inc()
	recordAudit(c, h.audit, domain.AuditNoteDeleted, note.ID, note.Title)
	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Note '%s' with ID %s deleted", note.Title, note.ID),
	})
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/technotes/technotes-api/internal/core/domain"
	"github.com/technotes/technotes-api/internal/core/ports"
)

// actor returns the username injected by the Auth middleware, or "" on
// routes that run without it.
func actor(c echo.Context) string {
	username, _ := c.Get("username").(string)
	return username
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// recordAudit hands a mutation to the audit trail. A nil recorder disables
// auditing.
func recordAudit(c echo.Context, rec ports.AuditRecorder, action domain.AuditAction, subjectID, subject string) {
	if rec == nil {
		return
	}
	rec.Record(domain.AuditEntry{
		Action:    action,
		SubjectID: subjectID,
		Subject:   subject,
		Actor:     actor(c),
		RequestID: requestID(c),
	})
}

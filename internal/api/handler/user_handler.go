package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/technotes/technotes-api/internal/api/metrics"
	"github.com/technotes/technotes-api/internal/core/domain"
	"github.com/technotes/technotes-api/internal/core/ports"
)

// UserHandler exposes the user lifecycle over HTTP. Errors are returned to
// the central error handler, which renders them as {"message": ...}.
type UserHandler struct {
	service ports.UserService
	audit   ports.AuditRecorder
}

func NewUserHandler(service ports.UserService, audit ports.AuditRecorder) *UserHandler {
	return &UserHandler{service: service, audit: audit}
}

// List handles GET /users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = userResponse{ID: u.ID, Username: u.Username, Roles: u.Roles, Active: u.Active}
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req, domain.ErrMissingFields); err != nil {
		return err
	}

	user, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Roles:    req.Roles,
	})
	if err != nil {
		return err
	}

	metrics.UserOperationsTotal.WithLabelValues("create").Inc()
	recordAudit(c, h.audit, domain.AuditUserCreated, user.ID, user.Username)
	return c.JSON(http.StatusCreated, messageResponse{Message: fmt.Sprintf("New user %s created", user.Username)})
}

// Update handles PATCH /users.
//
// @Summary      Update a user
// @Description  Username, active flag and roles are always replaced; the password only when a non-empty one is sent.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "User fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /users [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req, domain.ErrMissingFields); err != nil {
		return err
	}

	user, err := h.service.UpdateUser(c.Request().Context(), ports.UpdateUserInput{
		ID:       req.ID,
		Username: req.Username,
		Active:   req.Active,
		Roles:    req.Roles,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UserOperationsTotal.WithLabelValues("update").Inc()
	recordAudit(c, h.audit, domain.AuditUserUpdated, user.ID, user.Username)
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("User %s updated", user.Username)})
}

// Delete handles DELETE /users. The id travels in the JSON body.
//
// @Summary      Delete a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteUserRequest  true  "User id"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /users [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	var req deleteUserRequest
	if err := bindAndValidate(c, &req, domain.ErrUserIDRequired); err != nil {
		return err
	}

	user, err := h.service.DeleteUser(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}

	metrics.UserOperationsTotal.WithLabelValues("delete").Inc()
	recordAudit(c, h.audit, domain.AuditUserDeleted, user.ID, user.Username)
	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("User %s with id %s deleted", user.Username, user.ID),
	})
}

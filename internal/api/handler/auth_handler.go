package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/technotes/technotes-api/internal/api/metrics"
	"github.com/technotes/technotes-api/internal/core/domain"
	"github.com/technotes/technotes-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

// Login authenticates a user and returns a JWT access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Router       /auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req, domain.ErrAllFieldsRequired); err != nil {
		return err
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{AccessToken: token})
}

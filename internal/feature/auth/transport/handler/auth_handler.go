// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"user_backend/internal/api"
	"user_backend/internal/feature/auth/transport/http/dto"
	"user_backend/internal/feature/auth/usecase"
	jwtmw "user_backend/internal/platform/jwt"
)

// AuthUsecase defines the usecase operations for authentication.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type AuthUsecase interface {
	// Login authenticates a user and returns a JWT token on success.
	Login(ctx context.Context, name, password string) (string, error)
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /auth/login. The outcomes are distinct on purpose:
// 400 for missing fields, 404 for an unknown name, 500 when the user has
// no stored credential, 401 for a wrong password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, api.Response{
			Message: "Name and password are required.",
			Status:  http.StatusBadRequest,
		})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.Response{
				Message: "User not found.",
				Status:  http.StatusNotFound,
			})
		case errors.Is(err, usecase.ErrCredentialNotSet):
			slog.Warn("login against user without credential", "name", req.Name)
			c.JSON(http.StatusInternalServerError, api.Response{
				Message: "Password not set for this user.",
				Status:  http.StatusInternalServerError,
			})
		case errors.Is(err, usecase.ErrInvalidPassword):
			slog.Warn("login failed", "name", req.Name, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.Response{
				Message: "Invalid password.",
				Status:  http.StatusUnauthorized,
			})
		default:
			slog.Error("login error", "name", req.Name, "error", err)
			c.JSON(http.StatusInternalServerError, api.Response{
				Message: "An unexpected error occurred.",
				Status:  http.StatusInternalServerError,
				Error:   err.Error(),
			})
		}
		return
	}

	slog.Info("login successful", "name", req.Name, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.LoginResponse{
		Message: "Authentication successful.",
		Status:  http.StatusOK,
		Token:   token,
	})
}

// Protected handles GET /protected, a demo route that simply echoes the
// identity the access guard attached to the context.
func Protected(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFromContext(c)
	if !ok {
		// Only reachable if the route was wired without the guard
		c.JSON(http.StatusInternalServerError, api.Response{
			Message: "Server misconfigured.",
			Status:  http.StatusInternalServerError,
		})
		return
	}
	c.JSON(http.StatusOK, api.Response{
		Message: "Access granted to protected route.",
		Status:  http.StatusOK,
		Data:    claims,
	})
}

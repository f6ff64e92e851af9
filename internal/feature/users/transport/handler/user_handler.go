// Package handler provides the HTTP handlers for the users feature.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"user_backend/internal/api"
	"user_backend/internal/feature/users/domain/entity"
	"user_backend/internal/feature/users/transport/http/dto"
	"user_backend/internal/feature/users/usecase"
)

// UserUsecase defines the usecase operations for the user aggregate.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type UserUsecase interface {
	List(ctx context.Context) ([]entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	Create(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error)
	Update(ctx context.Context, id uint, in usecase.UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id uint) error
}

// UserHandler handles HTTP requests for the user aggregate.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// parseID parses the :id path parameter. A non-numeric id is a client
// error, distinct from an unknown id.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Response{
			Message: "Invalid ID provided.",
			Status:  http.StatusBadRequest,
		})
		return 0, false
	}
	return uint(id), true
}

// List handles GET /api/users. Every user is returned with its location
// set; an empty table yields an empty list.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		slog.Error("list users failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Response{
			Message: "An unexpected error occurred.",
			Status:  http.StatusInternalServerError,
			Error:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, api.Response{
		Message: "All data displayed",
		Status:  http.StatusOK,
		Data:    users,
	})
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.Response{
				Message: fmt.Sprintf("No user found with ID %d", id),
				Status:  http.StatusNotFound,
			})
			return
		}
		slog.Error("get user failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.Response{
			Message: fmt.Sprintf("Error fetching user with ID %d", id),
			Status:  http.StatusInternalServerError,
			Error:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, api.Response{
		Message: "Required data displayed",
		Status:  http.StatusOK,
		Data:    user,
	})
}

// Create handles POST /api/users. The password is hashed before anything is
// stored and the created aggregate never echoes it back.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Response{
			Message: "Invalid request body.",
			Status:  http.StatusBadRequest,
		})
		return
	}

	in := usecase.CreateUserInput{
		Name:     req.Name,
		Salary:   req.Salary,
		Status:   req.Status,
		Password: req.Password,
	}
	for _, loc := range req.Locations {
		in.Locations = append(in.Locations, usecase.LocationInput{
			Country:  loc.Country,
			District: loc.District,
			Street:   loc.Street,
		})
	}

	user, err := h.users.Create(c.Request.Context(), in)
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	slog.Info("user created", "id", user.ID, "locations", len(user.Locations))
	c.JSON(http.StatusCreated, api.Response{
		Message: "User, associated locations, and password added successfully",
		Status:  http.StatusCreated,
		Data:    user,
	})
}

func (h *UserHandler) writeCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNameRequired):
		c.JSON(http.StatusBadRequest, api.Response{
			Message: "Name is required.",
			Status:  http.StatusBadRequest,
		})
	case errors.Is(err, usecase.ErrPasswordRequired):
		c.JSON(http.StatusBadRequest, api.Response{
			Message: "Password is required.",
			Status:  http.StatusBadRequest,
		})
	case errors.Is(err, usecase.ErrInvalidData):
		c.JSON(http.StatusBadRequest, api.Response{
			Message: "Validation error: Invalid data provided.",
			Status:  http.StatusBadRequest,
		})
	default:
		slog.Error("create user failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Response{
			Message: "An unexpected error occurred.",
			Status:  http.StatusInternalServerError,
			Error:   err.Error(),
		})
	}
}

// Update handles PATCH /api/users/:id. Any subset of fields may be
// supplied; omitted fields keep their prior value and locations are
// upserted by id.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Response{
			Message: "Invalid request body.",
			Status:  http.StatusBadRequest,
		})
		return
	}

	in := usecase.UpdateUserInput{
		Name:     req.Name,
		Salary:   req.Salary,
		Status:   req.Status,
		Password: req.Password,
	}
	for _, loc := range req.Locations {
		in.Locations = append(in.Locations, usecase.LocationInput{
			ID:       loc.ID,
			Country:  loc.Country,
			District: loc.District,
			Street:   loc.Street,
		})
	}

	user, err := h.users.Update(c.Request.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.Response{
				Message: fmt.Sprintf("User with ID %d not found.", id),
				Status:  http.StatusNotFound,
			})
		case errors.Is(err, usecase.ErrNameRequired),
			errors.Is(err, usecase.ErrPasswordRequired),
			errors.Is(err, usecase.ErrInvalidData):
			c.JSON(http.StatusBadRequest, api.Response{
				Message: "Validation error: Invalid data provided.",
				Status:  http.StatusBadRequest,
			})
		default:
			slog.Error("update user failed", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, api.Response{
				Message: "An unexpected error occurred.",
				Status:  http.StatusInternalServerError,
				Error:   err.Error(),
			})
		}
		return
	}

	slog.Info("user updated", "id", id)
	c.JSON(http.StatusOK, api.Response{
		Message: "User, associated locations, and password updated successfully",
		Status:  http.StatusOK,
		Data:    user,
	})
}

// Delete handles DELETE /api/users/:id. Dependent credential and location
// rows are removed with the user; an unknown id is a 404, never a silent
// success.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.Response{
				Message: fmt.Sprintf("User with ID %d not found.", id),
				Status:  http.StatusNotFound,
			})
			return
		}
		slog.Error("delete user failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.Response{
			Message: "An unexpected error occurred.",
			Status:  http.StatusInternalServerError,
			Error:   err.Error(),
		})
		return
	}

	slog.Info("user deleted", "id", id)
	c.JSON(http.StatusOK, api.Response{
		Message: "User, associated locations, and password deleted successfully",
		Status:  http.StatusOK,
	})
}

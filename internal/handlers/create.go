package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/user-directory/internal/logger"
	"github.com/sbilibin2017/user-directory/internal/models"
	"github.com/sbilibin2017/user-directory/internal/services"
)

// UserCreator defines the interface that the service must implement.
type UserCreator interface {
	Create(ctx context.Context, payload models.UserPayload) (*models.UserView, error)
}

// CreateUserRequest represents the JSON body for user creation
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// First name
	// required: true
	// example: Ann
	FirstName string `json:"first_name"`

	// Last name
	// required: true
	// example: Lee
	LastName string `json:"last_name"`

	// Email, unique across all records
	// required: true
	// example: ann@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// CreateUserResponse represents a successful creation response
// swagger:model CreateUserResponse
type CreateUserResponse struct {
	// Created user
	User *models.UserView `json:"user"`
}

// CreateUserErrorResponse represents an error response for user creation
// swagger:model CreateUserErrorResponse
type CreateUserErrorResponse struct {
	// Error message
	// example: Email address already registered.
	Error string `json:"error"`

	// Offending email, when the error is a conflict
	// example: ann@example.com
	Email string `json:"email,omitempty"`
}

// NewCreateUserHandler returns an HTTP handler for user creation.
// @Summary Create a new user
// @Description Stores a new user record. Email must be unique across all records, soft-deleted ones included.
// @Tags users
// @Accept json
// @Produce json
// @Param createUserRequest body handlers.CreateUserRequest true "User creation request"
// @Success 201 {object} handlers.CreateUserResponse "User created"
// @Failure 400 {object} handlers.CreateUserErrorResponse "Missing or malformed field"
// @Failure 409 {object} handlers.CreateUserErrorResponse "Email already registered"
// @Failure 500 {object} handlers.CreateUserErrorResponse "Internal server error"
// @Router /users [post]
func NewCreateUserHandler(svc UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateUserErrorResponse{
				Error: "Invalid JSON format. Missing value.",
			})
			return
		}

		view, err := svc.Create(r.Context(), models.UserPayload{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidPayload):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(CreateUserErrorResponse{
					Error: "Invalid JSON format. Missing value.",
				})
			case errors.Is(err, services.ErrEmailAlreadyRegistered):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(CreateUserErrorResponse{
					Error: "Email address already registered.",
					Email: req.Email,
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(CreateUserErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateUserResponse{User: view})
	}
}

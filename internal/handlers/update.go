package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/user-directory/internal/logger"
	"github.com/sbilibin2017/user-directory/internal/models"
	"github.com/sbilibin2017/user-directory/internal/services"
)

// UserUpdater defines the interface that the service must implement.
type UserUpdater interface {
	Update(ctx context.Context, userID int64, payload models.UserPayload) (*models.UserView, error)
}

// UpdateUserRequest represents the JSON body for a user update
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
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

// UpdateUserResponse represents a successful update response
// swagger:model UpdateUserResponse
type UpdateUserResponse struct {
	// Updated user
	User *models.UserView `json:"user"`

	// Message
	// example: User data updated.
	Message string `json:"message"`
}

// UpdateUserErrorResponse represents an error response for a user update
// swagger:model UpdateUserErrorResponse
type UpdateUserErrorResponse struct {
	// Error message
	// example: Email already registered.
	Error string `json:"error"`

	// Offending user id
	// example: 42
	UserID int64 `json:"user_id,omitempty"`

	// Offending email, when the error is a conflict
	// example: ann@example.com
	Email string `json:"email,omitempty"`
}

// NewUpdateUserHandler returns an HTTP handler for updating a user.
// @Summary Update a user
// @Description Rewrites first name, last name, email and password in one atomic step. Changing the email to an address held by another record is rejected.
// @Tags users
// @Accept json
// @Produce json
// @Param userID path int true "User id"
// @Param updateUserRequest body handlers.UpdateUserRequest true "User update request"
// @Success 200 {object} handlers.UpdateUserResponse "User updated"
// @Failure 400 {object} handlers.UpdateUserErrorResponse "Invalid id or missing field"
// @Failure 404 {object} handlers.UpdateUserErrorResponse "User not found"
// @Failure 409 {object} handlers.UpdateUserErrorResponse "Email already registered"
// @Failure 500 {object} handlers.UpdateUserErrorResponse "Internal server error"
// @Router /users/{userID} [put]
func NewUpdateUserHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateUserErrorResponse{
				Error: "Invalid user id.",
			})
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateUserErrorResponse{
				Error:  "Invalid JSON format or Missing value.",
				UserID: userID,
			})
			return
		}

		view, err := svc.Update(r.Context(), userID, models.UserPayload{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidPayload):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(UpdateUserErrorResponse{
					Error:  "Invalid JSON format or Missing value.",
					UserID: userID,
				})
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(UpdateUserErrorResponse{
					Error:  "User hasn't been found.",
					UserID: userID,
				})
			case errors.Is(err, services.ErrEmailAlreadyRegistered):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(UpdateUserErrorResponse{
					Error:  "Email already registered.",
					UserID: userID,
					Email:  req.Email,
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(UpdateUserErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UpdateUserResponse{
			User:    view,
			Message: "User data updated.",
		})
	}
}

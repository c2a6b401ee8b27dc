package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/user-directory/internal/logger"
	"github.com/sbilibin2017/user-directory/internal/services"
)

// UserDeleter defines the interface that the service must implement.
type UserDeleter interface {
	Delete(ctx context.Context, userID int64) error
}

// DeleteUserResponse represents a successful soft-delete confirmation
// swagger:model DeleteUserResponse
type DeleteUserResponse struct {
	// Message
	// example: User has been deleted.
	Message string `json:"message"`

	// User id
	// example: 1
	UserID int64 `json:"user_id"`
}

// DeleteUserErrorResponse represents an error response for a soft delete
// swagger:model DeleteUserErrorResponse
type DeleteUserErrorResponse struct {
	// Error message
	// example: User hasn't been found.
	Error string `json:"error"`

	// Offending user id
	// example: 42
	UserID int64 `json:"user_id,omitempty"`
}

// NewDeleteUserHandler returns an HTTP handler for soft-deleting a user.
// The operation is idempotent: deleting an already-deleted record answers
// 200 again.
// @Summary Soft-delete a user
// @Description Marks a user record deleted. The record stays in the store and keeps its email.
// @Tags users
// @Produce json
// @Param userID path int true "User id"
// @Success 200 {object} handlers.DeleteUserResponse "User deleted"
// @Failure 400 {object} handlers.DeleteUserErrorResponse "Invalid user id"
// @Failure 404 {object} handlers.DeleteUserErrorResponse "User not found"
// @Failure 500 {object} handlers.DeleteUserErrorResponse "Internal server error"
// @Router /users/{userID} [delete]
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DeleteUserErrorResponse{
				Error: "Invalid user id.",
			})
			return
		}

		if err := svc.Delete(r.Context(), userID); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(DeleteUserErrorResponse{
					Error:  "User hasn't been found.",
					UserID: userID,
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(DeleteUserErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeleteUserResponse{
			Message: "User has been deleted.",
			UserID:  userID,
		})
	}
}

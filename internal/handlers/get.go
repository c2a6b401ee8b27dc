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

// UserGetter defines the interface that the service must implement.
type UserGetter interface {
	Get(ctx context.Context, userID int64) (*models.UserView, error)
}

// GetUserResponse represents a successful read of an active user
// swagger:model GetUserResponse
type GetUserResponse struct {
	// User record
	User *models.UserView `json:"user"`
}

// GetUserTombstoneResponse marks a record that exists but was soft-deleted
// swagger:model GetUserTombstoneResponse
type GetUserTombstoneResponse struct {
	// User id
	// example: 1
	UserID int64 `json:"user_id"`

	// Always true for a tombstone
	// example: true
	Deleted bool `json:"deleted"`

	// Message
	// example: User has been deleted.
	Message string `json:"message"`
}

// GetUserErrorResponse represents an error response for a user read
// swagger:model GetUserErrorResponse
type GetUserErrorResponse struct {
	// Error message
	// example: User hasn't been found.
	Error string `json:"error"`

	// Offending user id
	// example: 42
	UserID int64 `json:"user_id,omitempty"`
}

// NewGetUserHandler returns an HTTP handler for reading one user.
// A soft-deleted record answers 410 with a tombstone body, distinct from
// 404 for an id that never existed.
// @Summary Get a user
// @Description Returns the public view of a user record. Soft-deleted records answer with a tombstone.
// @Tags users
// @Produce json
// @Param userID path int true "User id"
// @Success 200 {object} handlers.GetUserResponse "Active user"
// @Failure 400 {object} handlers.GetUserErrorResponse "Invalid user id"
// @Failure 404 {object} handlers.GetUserErrorResponse "User not found"
// @Failure 410 {object} handlers.GetUserTombstoneResponse "User has been deleted"
// @Failure 500 {object} handlers.GetUserErrorResponse "Internal server error"
// @Router /users/{userID} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(GetUserErrorResponse{
				Error: "Invalid user id.",
			})
			return
		}

		view, err := svc.Get(r.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(GetUserErrorResponse{
					Error:  "User hasn't been found.",
					UserID: userID,
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(GetUserErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		if view.Deleted {
			w.WriteHeader(http.StatusGone)
			json.NewEncoder(w).Encode(GetUserTombstoneResponse{
				UserID:  userID,
				Deleted: true,
				Message: "User has been deleted.",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(GetUserResponse{User: view})
	}
}

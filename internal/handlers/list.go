package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sbilibin2017/user-directory/internal/logger"
	"github.com/sbilibin2017/user-directory/internal/models"
)

// UserLister defines the interface that the service must implement.
type UserLister interface {
	List(ctx context.Context, includeDeleted bool) ([]models.UserView, error)
}

// ListUsersResponse represents the user listing
// swagger:model ListUsersResponse
type ListUsersResponse struct {
	// Users in insertion order
	Users []models.UserView `json:"users"`
}

// ListUsersErrorResponse represents an error response for the listing
// swagger:model ListUsersErrorResponse
type ListUsersErrorResponse struct {
	// Error message
	// example: Internal server error
	Error string `json:"error"`
}

// NewListUsersHandler returns an HTTP handler for listing users.
// @Summary List users
// @Description Returns users in insertion order. Soft-deleted records are excluded unless include_deleted is set.
// @Tags users
// @Produce json
// @Param include_deleted query bool false "Include soft-deleted records"
// @Success 200 {object} handlers.ListUsersResponse "Users"
// @Failure 500 {object} handlers.ListUsersErrorResponse "Internal server error"
// @Router /users [get]
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		// absent or unparsable means active records only
		includeDeleted, err := strconv.ParseBool(r.URL.Query().Get("include_deleted"))
		if err != nil {
			includeDeleted = false
		}

		views, err := svc.List(r.Context(), includeDeleted)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ListUsersErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		if views == nil {
			views = []models.UserView{}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ListUsersResponse{Users: views})
	}
}

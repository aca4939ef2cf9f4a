package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"noteskeeper/internal/logger"
	"noteskeeper/internal/models"
)

// UserGetter defines the interface that the user lookup service must implement.
type UserGetter interface {
	GetUser(ctx context.Context, username string) (*models.UserDB, error)
}

// GetUserResponse represents a user lookup response. The password hash is
// never included.
// swagger:model GetUserResponse
type GetUserResponse struct {
	// Account id
	// default: 1
	ID int64 `json:"id"`

	// Username
	// default: john_doe
	Username string `json:"username"`
}

// GetUserErrorResponse represents an error response for user lookup
// swagger:model GetUserErrorResponse
type GetUserErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// NewGetUserHandler returns an HTTP handler for looking up an active user
// by username.
// @Summary Get user by username
// @Description Returns id and username of an active account. Deactivated accounts are not found.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} handlers.GetUserResponse "User found"
// @Failure 404 {object} handlers.GetUserErrorResponse "User not found"
// @Router /users/{username} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		user, err := svc.GetUser(r.Context(), username)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(GetUserErrorResponse{
				Error: "Internal server error",
			})
			return
		}
		if user == nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(GetUserErrorResponse{
				Error: "User not found",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(GetUserResponse{
			ID:       user.ID,
			Username: user.Username,
		})
	}
}

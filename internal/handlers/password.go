package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"noteskeeper/internal/logger"
	"noteskeeper/internal/services"
)

// PasswordChanger defines the interface that the password change service must implement.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, username, newPassword string) error
}

// ChangePasswordRequest represents the JSON body for a password change
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// New password
	// required: true
	// default: NewSecret1
	NewPassword string `json:"new_password"`
}

// ChangePasswordResponse represents a successful password change response
// swagger:model ChangePasswordResponse
type ChangePasswordResponse struct {
	// Success message
	// default: Password updated successfully
	Message string `json:"message"`
}

// ChangePasswordErrorResponse represents an error response for a password change
// swagger:model ChangePasswordErrorResponse
type ChangePasswordErrorResponse struct {
	// Error message
	// default: Invalid user data
	Error string `json:"error"`
}

// NewChangePasswordHandler returns an HTTP handler for changing a password.
// Success is reported whether or not the username exists, matching the
// store's no-op update semantics.
// @Summary Change account password
// @Description Replaces the stored password hash for the username. Reports success even for unknown usernames.
// @Tags auth
// @Accept json
// @Produce json
// @Param changePasswordRequest body handlers.ChangePasswordRequest true "Password change request"
// @Success 200 {object} handlers.ChangePasswordResponse "Password updated"
// @Failure 400 {object} handlers.ChangePasswordErrorResponse "Invalid user data"
// @Router /password [post]
func NewChangePasswordHandler(svc PasswordChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChangePasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ChangePasswordErrorResponse{
				Error: "Invalid user data",
			})
			return
		}

		err := svc.ChangePassword(r.Context(), req.Username, req.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidUserData):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ChangePasswordErrorResponse{
					Error: "Invalid user data",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ChangePasswordErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ChangePasswordResponse{
			Message: "Password updated successfully",
		})
	}
}

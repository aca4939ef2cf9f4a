package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"noteskeeper/internal/logger"
)

// Deactivator defines the interface that the deactivation service must implement.
type Deactivator interface {
	Deactivate(ctx context.Context, username string) error
}

// DeactivateRequest represents the JSON body for account deactivation
// swagger:model DeactivateRequest
type DeactivateRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`
}

// DeactivateResponse represents a successful deactivation response
// swagger:model DeactivateResponse
type DeactivateResponse struct {
	// Success message
	// default: User deactivated successfully
	Message string `json:"message"`
}

// DeactivateErrorResponse represents an error response for deactivation
// swagger:model DeactivateErrorResponse
type DeactivateErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewDeactivateHandler returns an HTTP handler for account deactivation.
// Deactivation is a soft delete and is idempotent.
// @Summary Deactivate account
// @Description Soft-deletes the account. The record stays in storage but is excluded from authentication and lookups.
// @Tags auth
// @Accept json
// @Produce json
// @Param deactivateRequest body handlers.DeactivateRequest true "Deactivation request"
// @Success 200 {object} handlers.DeactivateResponse "User deactivated"
// @Failure 400 {object} handlers.DeactivateErrorResponse "Invalid request body"
// @Router /account [delete]
func NewDeactivateHandler(svc Deactivator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeactivateRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DeactivateErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		if err := svc.Deactivate(r.Context(), req.Username); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(DeactivateErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeactivateResponse{
			Message: "User deactivated successfully",
		})
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"noteskeeper/internal/logger"
	"noteskeeper/internal/middlewares"
	"noteskeeper/internal/services"
)

// NoteDeleter defines the interface that the note deletion service must implement.
type NoteDeleter interface {
	Delete(ctx context.Context, id, userID int64) error
}

// DeleteNoteResponse represents a successful note deletion response
// swagger:model DeleteNoteResponse
type DeleteNoteResponse struct {
	// Success message
	// default: Note deleted successfully
	Message string `json:"message"`
}

// NewDeleteNoteHandler returns an HTTP handler for soft-deleting a note
// owned by the authenticated account.
// @Summary Delete a note
// @Description Soft-deletes an active note owned by the authenticated account.
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note id"
// @Success 200 {object} handlers.DeleteNoteResponse "Note deleted"
// @Failure 401 {object} handlers.NoteErrorResponse "Missing or invalid token"
// @Failure 404 {object} handlers.NoteErrorResponse "Note not found"
// @Router /notes/{id} [delete]
func NewDeleteNoteHandler(svc NoteDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(NoteErrorResponse{
				Error: "Note not found",
			})
			return
		}

		if err := svc.Delete(r.Context(), id, claims.UserID); err != nil {
			if errors.Is(err, services.ErrNoteNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(NoteErrorResponse{
					Error: "Note not found",
				})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(NoteErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeleteNoteResponse{
			Message: "Note deleted successfully",
		})
	}
}

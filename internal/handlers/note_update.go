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

// NoteUpdater defines the interface that the note update service must implement.
type NoteUpdater interface {
	Update(ctx context.Context, id, userID int64, title, content string) error
}

// UpdateNoteRequest represents the JSON body for a note update
// swagger:model UpdateNoteRequest
type UpdateNoteRequest struct {
	// Title
	// required: true
	// default: groceries
	Title string `json:"title"`

	// Content
	// required: true
	// default: milk, eggs, bread
	Content string `json:"content"`
}

// UpdateNoteResponse represents a successful note update response
// swagger:model UpdateNoteResponse
type UpdateNoteResponse struct {
	// Success message
	// default: Note updated successfully
	Message string `json:"message"`
}

// NewUpdateNoteHandler returns an HTTP handler for updating a note owned by
// the authenticated account.
// @Summary Update a note
// @Description Replaces the title and content of an active note owned by the authenticated account.
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note id"
// @Param updateNoteRequest body handlers.UpdateNoteRequest true "Note update request"
// @Success 200 {object} handlers.UpdateNoteResponse "Note updated"
// @Failure 400 {object} handlers.NoteErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.NoteErrorResponse "Missing or invalid token"
// @Failure 404 {object} handlers.NoteErrorResponse "Note not found"
// @Router /notes/{id} [put]
func NewUpdateNoteHandler(svc NoteUpdater) http.HandlerFunc {
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

		var req UpdateNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(NoteErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		if err := svc.Update(r.Context(), id, claims.UserID, req.Title, req.Content); err != nil {
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
		json.NewEncoder(w).Encode(UpdateNoteResponse{
			Message: "Note updated successfully",
		})
	}
}

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
	"noteskeeper/internal/models"
	"noteskeeper/internal/services"
)

// NoteGetter defines the interface that the note lookup service must implement.
type NoteGetter interface {
	Get(ctx context.Context, id, userID int64) (*models.NoteDB, error)
}

// GetNoteResponse represents a note lookup response
// swagger:model GetNoteResponse
type GetNoteResponse struct {
	// Note id
	// default: 1
	ID int64 `json:"id"`

	// Title
	// default: groceries
	Title string `json:"title"`

	// Content
	// default: milk, eggs
	Content string `json:"content"`
}

// NewGetNoteHandler returns an HTTP handler for reading a note owned by the
// authenticated account.
// @Summary Get a note
// @Description Returns an active note owned by the authenticated account.
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note id"
// @Success 200 {object} handlers.GetNoteResponse "Note found"
// @Failure 401 {object} handlers.NoteErrorResponse "Missing or invalid token"
// @Failure 404 {object} handlers.NoteErrorResponse "Note not found"
// @Router /notes/{id} [get]
func NewGetNoteHandler(svc NoteGetter) http.HandlerFunc {
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

		note, err := svc.Get(r.Context(), id, claims.UserID)
		if err != nil {
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
		json.NewEncoder(w).Encode(GetNoteResponse{
			ID:      note.ID,
			Title:   note.Title,
			Content: note.Content,
		})
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"noteskeeper/internal/logger"
	"noteskeeper/internal/middlewares"
)

// NoteCreator defines the interface that the note creation service must implement.
type NoteCreator interface {
	Create(ctx context.Context, userID int64, title, content string) (int64, error)
}

// CreateNoteRequest represents the JSON body for note creation
// swagger:model CreateNoteRequest
type CreateNoteRequest struct {
	// Title
	// required: true
	// default: groceries
	Title string `json:"title"`

	// Content
	// required: true
	// default: milk, eggs
	Content string `json:"content"`
}

// CreateNoteResponse represents a successful note creation response
// swagger:model CreateNoteResponse
type CreateNoteResponse struct {
	// Note id
	// default: 1
	ID int64 `json:"id"`
}

// NoteErrorResponse represents an error response for note operations
// swagger:model NoteErrorResponse
type NoteErrorResponse struct {
	// Error message
	// default: Note not found
	Error string `json:"error"`
}

// NewCreateNoteHandler returns an HTTP handler for note creation. The owner
// is taken from the session token claims.
// @Summary Create a note
// @Description Stores a new note owned by the authenticated account.
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createNoteRequest body handlers.CreateNoteRequest true "Note creation request"
// @Success 201 {object} handlers.CreateNoteResponse "Note created"
// @Failure 400 {object} handlers.NoteErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.NoteErrorResponse "Missing or invalid token"
// @Router /notes [post]
func NewCreateNoteHandler(svc NoteCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req CreateNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(NoteErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		id, err := svc.Create(r.Context(), claims.UserID, req.Title, req.Content)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(NoteErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateNoteResponse{
			ID: id,
		})
	}
}

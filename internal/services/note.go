package services

import (
	"context"
	"errors"

	"noteskeeper/internal/logger"
	"noteskeeper/internal/models"
	"noteskeeper/internal/repositories"
)

// ErrNoteNotFound is returned when a note does not exist or belongs to
// another account.
var ErrNoteNotFound = errors.New("note not found")

// NoteReader defines read-only operations for notes.
type NoteReader interface {
	GetByID(ctx context.Context, id, userID int64) (*models.NoteDB, error)
}

// NoteWriter defines write operations for notes.
type NoteWriter interface {
	Save(ctx context.Context, userID int64, title, content string) (int64, error)
	Update(ctx context.Context, id, userID int64, title, content string) error
	Deactivate(ctx context.Context, id, userID int64) error
}

// NoteCache caches note reads.
type NoteCache interface {
	Get(ctx context.Context, id, userID int64) (*models.NoteDB, error)
	Set(ctx context.Context, note *models.NoteDB) error
	Delete(ctx context.Context, id, userID int64) error
}

// NoteService handles note CRUD for an authenticated account.
type NoteService struct {
	reader NoteReader
	writer NoteWriter
	cache  NoteCache
}

// NewNoteService creates a new NoteService instance.
func NewNoteService(reader NoteReader, writer NoteWriter, cache NoteCache) *NoteService {
	return &NoteService{
		reader: reader,
		writer: writer,
		cache:  cache,
	}
}

// Create stores a new note for the account and returns its id.
func (svc *NoteService) Create(ctx context.Context, userID int64, title, content string) (int64, error) {
	id, err := svc.writer.Save(ctx, userID, title, content)
	if err != nil {
		logger.Log.Errorw("failed to save note", "err", err)
		return 0, err
	}
	return id, nil
}

// Get returns a note owned by the account, reading through the cache.
// Cache failures fall back to the store.
func (svc *NoteService) Get(ctx context.Context, id, userID int64) (*models.NoteDB, error) {
	if svc.cache != nil {
		if note, err := svc.cache.Get(ctx, id, userID); err == nil && note != nil {
			return note, nil
		}
	}

	note, err := svc.reader.GetByID(ctx, id, userID)
	if err != nil {
		logger.Log.Errorw("failed to get note", "err", err)
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	if svc.cache != nil {
		if err := svc.cache.Set(ctx, note); err != nil {
			logger.Log.Warnw("failed to cache note", "note_id", note.ID, "err", err)
		}
	}

	return note, nil
}

// Update replaces the title and content of a note owned by the account and
// evicts the cached copy.
func (svc *NoteService) Update(ctx context.Context, id, userID int64, title, content string) error {
	if err := svc.writer.Update(ctx, id, userID, title, content); err != nil {
		if errors.Is(err, repositories.ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		logger.Log.Errorw("failed to update note", "err", err)
		return err
	}

	svc.evict(ctx, id, userID)

	return nil
}

// Delete soft-deletes a note owned by the account and evicts the cached copy.
func (svc *NoteService) Delete(ctx context.Context, id, userID int64) error {
	if err := svc.writer.Deactivate(ctx, id, userID); err != nil {
		if errors.Is(err, repositories.ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		logger.Log.Errorw("failed to delete note", "err", err)
		return err
	}

	svc.evict(ctx, id, userID)

	return nil
}

func (svc *NoteService) evict(ctx context.Context, id, userID int64) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Delete(ctx, id, userID); err != nil {
		logger.Log.Warnw("failed to evict note from cache", "note_id", id, "err", err)
	}
}

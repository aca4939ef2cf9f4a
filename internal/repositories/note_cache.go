package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"noteskeeper/internal/logger"
	"noteskeeper/internal/models"
)

// NoteCacheRepository caches note reads in Redis with a TTL.
type NoteCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached notes
}

// NewNoteCacheRepository creates a new cache repository with the given TTL.
func NewNoteCacheRepository(client *redis.Client, expiration time.Duration) *NoteCacheRepository {
	return &NoteCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func noteKey(id, userID int64) string {
	return fmt.Sprintf("note:%d:%d", userID, id)
}

// Get returns the cached note, or nil on a cache miss.
func (r *NoteCacheRepository) Get(ctx context.Context, id, userID int64) (*models.NoteDB, error) {
	key := noteKey(id, userID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var note models.NoteDB
	if err := json.Unmarshal([]byte(val), &note); err != nil {
		logger.Log.Infow(
			"key", key,
			"value", val,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow(
		"key", key,
		"result", note.ID,
		"error", nil,
	)

	return &note, nil
}

// Set caches a note with the configured expiration.
func (r *NoteCacheRepository) Set(ctx context.Context, note *models.NoteDB) error {
	key := noteKey(note.ID, note.UserID)

	data, err := json.Marshal(note)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}

// Delete evicts a note from the cache after an update or deletion.
func (r *NoteCacheRepository) Delete(ctx context.Context, id, userID int64) error {
	key := noteKey(id, userID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}

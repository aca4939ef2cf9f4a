package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"noteskeeper/internal/logger"
	"noteskeeper/internal/models"
	"noteskeeper/internal/password"
	"noteskeeper/internal/repositories"
	"noteskeeper/internal/validation"
)

// Error variables
var (
	ErrInvalidUserData    = errors.New("invalid user data")
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserReader defines read-only operations for accounts.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
}

// UserWriter defines write operations for accounts.
type UserWriter interface {
	Save(ctx context.Context, username, passwordHash string) (int64, error)
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error
	Deactivate(ctx context.Context, username string) error
}

// TokenGenerator defines an interface for issuing session tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, userID int64, username string) (string, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AuthService handles registration, login, password change and
// account deactivation.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	token       TokenGenerator
	kafkaWriter KafkaWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, token TokenGenerator, kafkaWriter KafkaWriter) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		token:       token,
		kafkaWriter: kafkaWriter,
	}
}

// publishAccountEvent publishes an account lifecycle event to Kafka.
// Publishing is best effort: failures are logged, never surfaced.
func (svc *AuthService) publishAccountEvent(ctx context.Context, username, operation string) {
	if svc.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "operation", operation)
		return
	}

	event := models.AccountEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now().Unix(),
		Username:  username,
		Operation: operation,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal account event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish account event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("account event published", "event_id", event.EventID, "operation", operation)
	}
}

// Register creates a new account. No token is issued: registration and
// login are separate steps.
func (svc *AuthService) Register(ctx context.Context, username, passwd string) error {
	if !validation.ValidateCredentials(username, passwd) {
		logger.Log.Errorw("invalid user data", "username", username)
		return ErrInvalidUserData
	}

	hash, err := password.Hash(passwd)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if _, err := svc.writer.Save(ctx, username, hash); err != nil {
		if errors.Is(err, repositories.ErrUsernameExists) {
			logger.Log.Errorw("user already exists", "username", username)
			return ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}

	svc.publishAccountEvent(ctx, username, models.EventUserRegistered)

	return nil
}

// Login authenticates an account and returns a session token. An unknown
// username and a wrong password produce the same error so that responses
// do not reveal which usernames exist.
func (svc *AuthService) Login(ctx context.Context, username, passwd string) (string, error) {
	if !validation.ValidateCredentials(username, passwd) {
		logger.Log.Errorw("invalid user data", "username", username)
		return "", ErrInvalidUserData
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	if !password.Verify(passwd, user.PasswordHash) {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.token.Generate(ctx, user.ID, user.Username)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", err
	}

	return token, nil
}

// GetUser returns the active account with the given username, or nil.
func (svc *AuthService) GetUser(ctx context.Context, username string) (*models.UserDB, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the stored digest for the username. The source
// system performs no existence or old-password check before the update, and
// an update for an unknown username is still reported as success. Only the
// new password's syntax is checked, since an unhashable value must never
// reach the store.
func (svc *AuthService) ChangePassword(ctx context.Context, username, newPassword string) error {
	if !validation.ValidatePassword(newPassword) {
		logger.Log.Errorw("invalid new password", "username", username)
		return ErrInvalidUserData
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePasswordHash(ctx, username, hash); err != nil {
		logger.Log.Errorw("failed to update password", "err", err)
		return err
	}

	svc.publishAccountEvent(ctx, username, models.EventPasswordChanged)

	return nil
}

// Deactivate soft-deletes the account. Idempotent: repeated calls report
// the same success.
func (svc *AuthService) Deactivate(ctx context.Context, username string) error {
	if err := svc.writer.Deactivate(ctx, username); err != nil {
		logger.Log.Errorw("failed to deactivate user", "err", err)
		return err
	}

	svc.publishAccountEvent(ctx, username, models.EventUserDeactivated)

	return nil
}

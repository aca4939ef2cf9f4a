package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"noteskeeper/internal/models"
	"noteskeeper/internal/repositories"
	"noteskeeper/internal/services"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockToken := services.NewMockTokenGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockToken, nil)

	tests := []struct {
		name      string
		username  string
		password  string
		saveCall  bool
		saveErr   error
		wantErr   error
	}{
		{
			name:     "successful registration",
			username: "alice12",
			password: "Secret123",
			saveCall: true,
		},
		{
			name:     "duplicate username",
			username: "alice12",
			password: "Different1",
			saveCall: true,
			saveErr:  repositories.ErrUsernameExists,
			wantErr:  services.ErrUserAlreadyExists,
		},
		{
			name:     "store error",
			username: "carol_w",
			password: "Secret123",
			saveCall: true,
			saveErr:  errors.New("db error"),
			wantErr:  errors.New("db error"),
		},
		{
			name:     "username too short",
			username: "bob",
			password: "Secret123",
			wantErr:  services.ErrInvalidUserData,
		},
		{
			name:     "password too short",
			username: "alice12",
			password: "short",
			wantErr:  services.ErrInvalidUserData,
		},
		{
			name:     "password with forbidden character",
			username: "alice12",
			password: "Secret 123",
			wantErr:  services.ErrInvalidUserData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.saveCall {
				mockWriter.EXPECT().
					Save(gomock.Any(), tt.username, gomock.Any()).
					Return(int64(1), tt.saveErr)
			}

			err := svc.Register(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_Register_HashNeverStored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockToken := services.NewMockTokenGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockToken, nil)

	mockWriter.EXPECT().
		Save(gomock.Any(), "alice12", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, hash string) (int64, error) {
			// The stored value is a bcrypt digest, never the plaintext.
			assert.NotEqual(t, "Secret123", hash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Secret123")))
			return 1, nil
		})

	err := svc.Register(context.Background(), "alice12", "Secret123")
	assert.NoError(t, err)
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockToken := services.NewMockTokenGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockToken, nil)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.DefaultCost)

	tests := []struct {
		name      string
		username  string
		loginPass string
		user      *models.UserDB
		readCall  bool
		readerErr error
		jwtErr    error
		expectJWT string
		wantErr   error
	}{
		{
			name:      "successful login",
			username:  "alice12",
			loginPass: "Secret123",
			user:      &models.UserDB{ID: 42, Username: "alice12", PasswordHash: string(hashed), Active: true},
			readCall:  true,
			expectJWT: "token123",
		},
		{
			name:      "user does not exist",
			username:  "nosuchuser",
			loginPass: "whatever1",
			user:      nil,
			readCall:  true,
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "wrong password",
			username:  "alice12",
			loginPass: "WrongPass1",
			user:      &models.UserDB{ID: 42, Username: "alice12", PasswordHash: string(hashed), Active: true},
			readCall:  true,
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "reader error",
			username:  "alice12",
			loginPass: "Secret123",
			readCall:  true,
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "token generation error",
			username:  "alice12",
			loginPass: "Secret123",
			user:      &models.UserDB{ID: 42, Username: "alice12", PasswordHash: string(hashed), Active: true},
			readCall:  true,
			jwtErr:    errors.New("jwt error"),
			wantErr:   errors.New("jwt error"),
		},
		{
			name:      "invalid username format",
			username:  "a b",
			loginPass: "Secret123",
			wantErr:   services.ErrInvalidUserData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.readCall {
				mockReader.EXPECT().
					GetByUsername(gomock.Any(), tt.username).
					Return(tt.user, tt.readerErr)
			}

			if tt.user != nil && tt.readerErr == nil && tt.loginPass == "Secret123" {
				mockToken.EXPECT().
					Generate(gomock.Any(), tt.user.ID, tt.user.Username).
					Return(tt.expectJWT, tt.jwtErr)
			}

			token, err := svc.Login(context.Background(), tt.username, tt.loginPass)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectJWT, token)
			}
		})
	}
}

// Unknown usernames and wrong passwords yield the exact same error value,
// so callers cannot probe which usernames exist.
func TestAuthService_Login_NoUsernameEnumeration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockToken := services.NewMockTokenGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockToken, nil)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.DefaultCost)

	mockReader.EXPECT().
		GetByUsername(gomock.Any(), "nosuchuser").
		Return(nil, nil)
	_, errUnknown := svc.Login(context.Background(), "nosuchuser", "whatever1")

	mockReader.EXPECT().
		GetByUsername(gomock.Any(), "alice12").
		Return(&models.UserDB{ID: 42, Username: "alice12", PasswordHash: string(hashed), Active: true}, nil)
	_, errWrongPass := svc.Login(context.Background(), "alice12", "WrongPass1")

	assert.ErrorIs(t, errUnknown, services.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, services.ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPass)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockToken := services.NewMockTokenGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockToken, nil)

	tests := []struct {
		name       string
		username   string
		newPass    string
		updateCall bool
		updateErr  error
		wantErr    error
	}{
		{
			name:       "successful change",
			username:   "alice12",
			newPass:    "NewSecret1",
			updateCall: true,
		},
		{
			name:       "unknown username still succeeds",
			username:   "nosuchuser",
			newPass:    "NewSecret1",
			updateCall: true,
		},
		{
			name:    "invalid new password",
			username: "alice12",
			newPass: "short",
			wantErr: services.ErrInvalidUserData,
		},
		{
			name:       "store error",
			username:   "alice12",
			newPass:    "NewSecret1",
			updateCall: true,
			updateErr:  errors.New("db error"),
			wantErr:    errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.updateCall {
				mockWriter.EXPECT().
					UpdatePasswordHash(gomock.Any(), tt.username, gomock.Any()).
					Return(tt.updateErr)
			}

			err := svc.ChangePassword(context.Background(), tt.username, tt.newPass)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_Deactivate_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockToken := services.NewMockTokenGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockToken, nil)

	// Deactivating twice produces the same observable outcome.
	mockWriter.EXPECT().
		Deactivate(gomock.Any(), "alice12").
		Return(nil).
		Times(2)

	assert.NoError(t, svc.Deactivate(context.Background(), "alice12"))
	assert.NoError(t, svc.Deactivate(context.Background(), "alice12"))
}

func TestAuthService_Deactivate_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockToken := services.NewMockTokenGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockToken, nil)

	mockWriter.EXPECT().
		Deactivate(gomock.Any(), "alice12").
		Return(errors.New("db error"))

	err := svc.Deactivate(context.Background(), "alice12")
	assert.EqualError(t, err, "db error")
}

func TestAuthService_GetUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockToken := services.NewMockTokenGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockToken, nil)

	user := &models.UserDB{ID: 42, Username: "alice12", Active: true}
	mockReader.EXPECT().
		GetByUsername(gomock.Any(), "alice12").
		Return(user, nil)

	got, err := svc.GetUser(context.Background(), "alice12")
	assert.NoError(t, err)
	assert.Equal(t, user, got)

	mockReader.EXPECT().
		GetByUsername(gomock.Any(), "nosuchuser").
		Return(nil, nil)

	got, err = svc.GetUser(context.Background(), "nosuchuser")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestAuthService_PublishesAccountEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockToken := services.NewMockTokenGenerator(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockToken, mockKafka)

	mockWriter.EXPECT().
		Save(gomock.Any(), "alice12", gomock.Any()).
		Return(int64(1), nil)
	mockKafka.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		Return(nil)

	assert.NoError(t, svc.Register(context.Background(), "alice12", "Secret123"))

	// Broker failures are logged, never surfaced.
	mockWriter.EXPECT().
		Deactivate(gomock.Any(), "alice12").
		Return(nil)
	mockKafka.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		Return(errors.New("broker down"))

	assert.NoError(t, svc.Deactivate(context.Background(), "alice12"))
}

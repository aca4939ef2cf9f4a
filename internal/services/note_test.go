package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"noteskeeper/internal/models"
	"noteskeeper/internal/repositories"
	"noteskeeper/internal/services"
)

func TestNoteService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockNoteReader(ctrl)
	mockWriter := services.NewMockNoteWriter(ctrl)

	svc := services.NewNoteService(mockReader, mockWriter, nil)

	mockWriter.EXPECT().
		Save(gomock.Any(), int64(42), "groceries", "milk, eggs").
		Return(int64(7), nil)

	id, err := svc.Create(context.Background(), 42, "groceries", "milk, eggs")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), id)

	mockWriter.EXPECT().
		Save(gomock.Any(), int64(42), "groceries", "milk, eggs").
		Return(int64(0), errors.New("db error"))

	_, err = svc.Create(context.Background(), 42, "groceries", "milk, eggs")
	assert.EqualError(t, err, "db error")
}

func TestNoteService_Get(t *testing.T) {
	note := &models.NoteDB{ID: 7, UserID: 42, Title: "groceries", Content: "milk", Active: true}

	tests := []struct {
		name      string
		cacheHit  bool
		cacheErr  error
		stored    *models.NoteDB
		readerErr error
		want      *models.NoteDB
		wantErr   error
	}{
		{
			name:     "cache hit skips the store",
			cacheHit: true,
			want:     note,
		},
		{
			name:   "cache miss reads the store and backfills",
			stored: note,
			want:   note,
		},
		{
			name:     "cache error falls back to the store",
			cacheErr: errors.New("redis down"),
			stored:   note,
			want:     note,
		},
		{
			name:    "absent note",
			stored:  nil,
			wantErr: services.ErrNoteNotFound,
		},
		{
			name:      "store error",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockReader := services.NewMockNoteReader(ctrl)
			mockWriter := services.NewMockNoteWriter(ctrl)
			mockCache := services.NewMockNoteCache(ctrl)

			svc := services.NewNoteService(mockReader, mockWriter, mockCache)

			if tt.cacheHit {
				mockCache.EXPECT().
					Get(gomock.Any(), int64(7), int64(42)).
					Return(note, nil)
			} else {
				mockCache.EXPECT().
					Get(gomock.Any(), int64(7), int64(42)).
					Return(nil, tt.cacheErr)
				mockReader.EXPECT().
					GetByID(gomock.Any(), int64(7), int64(42)).
					Return(tt.stored, tt.readerErr)
				if tt.stored != nil {
					mockCache.EXPECT().
						Set(gomock.Any(), tt.stored).
						Return(nil)
				}
			}

			got, err := svc.Get(context.Background(), 7, 42)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNoteService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockNoteReader(ctrl)
	mockWriter := services.NewMockNoteWriter(ctrl)
	mockCache := services.NewMockNoteCache(ctrl)

	svc := services.NewNoteService(mockReader, mockWriter, mockCache)

	// Successful update evicts the cached copy.
	mockWriter.EXPECT().
		Update(gomock.Any(), int64(7), int64(42), "groceries", "milk, bread").
		Return(nil)
	mockCache.EXPECT().
		Delete(gomock.Any(), int64(7), int64(42)).
		Return(nil)

	assert.NoError(t, svc.Update(context.Background(), 7, 42, "groceries", "milk, bread"))

	// Missing note maps to the service error, no eviction.
	mockWriter.EXPECT().
		Update(gomock.Any(), int64(8), int64(42), "x", "y").
		Return(repositories.ErrNoteNotFound)

	err := svc.Update(context.Background(), 8, 42, "x", "y")
	assert.ErrorIs(t, err, services.ErrNoteNotFound)
}

func TestNoteService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockNoteReader(ctrl)
	mockWriter := services.NewMockNoteWriter(ctrl)
	mockCache := services.NewMockNoteCache(ctrl)

	svc := services.NewNoteService(mockReader, mockWriter, mockCache)

	mockWriter.EXPECT().
		Deactivate(gomock.Any(), int64(7), int64(42)).
		Return(nil)
	mockCache.EXPECT().
		Delete(gomock.Any(), int64(7), int64(42)).
		Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), 7, 42))

	mockWriter.EXPECT().
		Deactivate(gomock.Any(), int64(8), int64(42)).
		Return(repositories.ErrNoteNotFound)

	err := svc.Delete(context.Background(), 8, 42)
	assert.ErrorIs(t, err, services.ErrNoteNotFound)
}

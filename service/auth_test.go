package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytube/models"
)

func TestRegisterAndLogin(t *testing.T) {
	s := newTestService(t, nil)

	u, err := s.Register("demo@studyapp.com", "demo", "passw0rd")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "passw0rd", u.Password)

	got, err := s.Authenticate("demo@studyapp.com", "passw0rd")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	token, err := s.Token(got)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicate(t *testing.T) {
	s := newTestService(t, nil)
	registerUser(t, s, "demo@studyapp.com", "demo")

	_, err := s.Register("demo@studyapp.com", "other", "passw0rd")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.Register("other@studyapp.com", "demo", "passw0rd")
	assert.ErrorIs(t, err, ErrConflict)
}

// A registration that slips past the pre-checks (concurrent insert with the
// same email) hits the unique index; the violation must read as a conflict,
// not an internal error.
func TestRegisterDuplicateKeyIsConflict(t *testing.T) {
	s := newTestService(t, nil)
	registerUser(t, s, "demo@studyapp.com", "demo")

	err := s.repo.CreateUser(&models.User{
		Email:    "demo@studyapp.com",
		Username: "other",
		Password: "x",
		IsActive: true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, wrapDuplicate(err, "account already exists"), ErrConflict)
}

func TestRegisterWeakPassword(t *testing.T) {
	s := newTestService(t, nil)

	tests := []struct {
		name     string
		password string
	}{
		{"too short", "a1"},
		{"no digit", "password"},
		{"no letter", "123456789"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register("weak@studyapp.com", "weak", tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	s := newTestService(t, nil)
	registerUser(t, s, "demo@studyapp.com", "demo")

	_, err := s.Authenticate("demo@studyapp.com", "wrongpass1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = s.Authenticate("ghost@studyapp.com", "passw0rd")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	s := newTestService(t, nil)
	u := registerUser(t, s, "demo@studyapp.com", "demo")

	err := s.ChangePassword(u.ID, "wrongpass1", "newpass1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, s.ChangePassword(u.ID, "passw0rd", "newpass1"))

	_, err = s.Authenticate("demo@studyapp.com", "passw0rd")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = s.Authenticate("demo@studyapp.com", "newpass1")
	assert.NoError(t, err)
}

func TestStats(t *testing.T) {
	s := newTestService(t, nil)
	u := registerUser(t, s, "demo@studyapp.com", "demo")

	v, err := s.SaveVideo(context.Background(), u.ID, SaveVideoInput{YoutubeID: "abc123", Title: "Intro to Algorithms"})
	require.NoError(t, err)
	watched := 90
	_, err = s.UpdateVideo(u.ID, v.ID, UpdateVideoInput{WatchedSeconds: &watched})
	require.NoError(t, err)
	_, err = s.CreateNote(u.ID, NoteInput{VideoID: v.ID, Content: "big-O basics"})
	require.NoError(t, err)
	_, err = s.CreatePlaylist(u.ID, "Programming Fundamentals", "")
	require.NoError(t, err)

	stats, err := s.Stats(u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.SavedVideos)
	assert.Equal(t, int64(1), stats.Notes)
	assert.Equal(t, int64(1), stats.Playlists)
	assert.Equal(t, int64(90), stats.TotalWatchTime)
}

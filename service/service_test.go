package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studytube/config"
	"studytube/dao"
	"studytube/models"
)

// fakeVideoAPI satisfies VideoAPI without network access.
type fakeVideoAPI struct {
	searchResp     *models.SearchResponse
	searchErr      error
	info           *models.VideoDetail
	infoErr        error
	lastMaxResults int
}

func (f *fakeVideoAPI) Search(_ context.Context, _ string, maxResults int, _, _ string) (*models.SearchResponse, error) {
	f.lastMaxResults = maxResults
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResp, nil
}

func (f *fakeVideoAPI) SearchEducational(ctx context.Context, q string, maxResults int) (*models.SearchResponse, error) {
	return f.Search(ctx, q, maxResults, "", "relevance")
}

func (f *fakeVideoAPI) VideoInfo(_ context.Context, _ string) (*models.VideoDetail, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.info, nil
}

func newTestService(t *testing.T, api VideoAPI) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SavedVideo{},
		&models.StudyNote{},
		&models.Playlist{},
		&models.PlaylistVideo{},
	))
	if api == nil {
		api = &fakeVideoAPI{}
	}
	cfg := &config.Config{JWTSecret: "test-secret", JWTTTLHours: 1}
	return New(dao.New(db, nil), api, cfg, false)
}

func registerUser(t *testing.T, s *Service, email, username string) *models.User {
	t.Helper()
	u, err := s.Register(email, username, "passw0rd")
	require.NoError(t, err)
	return u
}

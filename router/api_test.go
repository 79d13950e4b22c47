package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studytube/config"
	"studytube/controller"
	"studytube/dao"
	"studytube/mdb"
	"studytube/models"
	"studytube/service"
	"studytube/youtube"
)

type stubVideoAPI struct {
	searchErr error
}

func (f *stubVideoAPI) Search(context.Context, string, int, string, string) (*models.SearchResponse, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &models.SearchResponse{}, nil
}

func (f *stubVideoAPI) SearchEducational(ctx context.Context, q string, n int) (*models.SearchResponse, error) {
	return f.Search(ctx, q, n, "", "relevance")
}

func (f *stubVideoAPI) VideoInfo(context.Context, string) (*models.VideoDetail, error) {
	return nil, nil
}

func newTestAPI(t *testing.T, api service.VideoAPI) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, mdb.AutoMigrate(db))

	cfg := &config.Config{JWTSecret: "test-secret", JWTTTLHours: 1, CORSOrigins: []string{"*"}}
	svc := service.New(dao.New(db, nil), api, cfg, false)
	return API(controller.NewHandler(svc), cfg)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Covers register -> login -> save -> progress update -> list over HTTP.
func TestStudyFlowOverHTTP(t *testing.T) {
	r := newTestAPI(t, &stubVideoAPI{})

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email": "demo@studyapp.com", "username": "demo", "password": "passw0rd",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "demo@studyapp.com", "password": "passw0rd",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	w = doJSON(t, r, http.MethodPost, "/videos/save", login.Token, gin.H{
		"youtube_id": "abc123", "title": "Intro to Algorithms",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var saved struct {
		Video struct {
			ID uint `json:"id"`
		} `json:"video"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/videos/saved/%d", saved.Video.ID), login.Token, gin.H{
		"watch_progress": 50,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/videos/saved", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Videos []struct {
			YoutubeID     string  `json:"youtube_id"`
			WatchProgress float64 `json:"watch_progress"`
		} `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Videos, 1)
	assert.Equal(t, "abc123", list.Videos[0].YoutubeID)
	assert.Equal(t, 50.0, list.Videos[0].WatchProgress)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestAPI(t, &stubVideoAPI{})

	for _, path := range []string{"/videos/saved", "/notes", "/playlists", "/auth/me"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestSearchErrorStatusMapping(t *testing.T) {
	stub := &stubVideoAPI{searchErr: youtube.ErrUnavailable}
	r := newTestAPI(t, stub)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email": "demo@studyapp.com", "username": "demo", "password": "passw0rd",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	w = doJSON(t, r, http.MethodGet, "/videos/search?q=algorithms", reg.Token, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	stub.searchErr = youtube.ErrQuotaExceeded
	w = doJSON(t, r, http.MethodGet, "/videos/search?q=algorithms", reg.Token, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// nothing was persisted by the failed searches
	w = doJSON(t, r, http.MethodGet, "/videos/saved", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Videos []json.RawMessage `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Videos)
}

func TestHealth(t *testing.T) {
	r := newTestAPI(t, &stubVideoAPI{})
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"studytube/dao"
	"studytube/models"
	"studytube/utils"
	"studytube/youtube"
)

const (
	searchCacheTTL    = time.Hour
	eduSearchCacheTTL = 2 * time.Hour
	maxSearchResults  = 50
	maxPageSize       = 100
)

// Search forwards a query to the adapter through the redis cache. Cache
// failures degrade to a direct API call.
func (s *Service) Search(ctx context.Context, query string, maxResults int, pageToken, order string) (*models.SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	if maxResults <= 0 {
		maxResults = 20
	} else if maxResults > maxSearchResults {
		maxResults = maxSearchResults
	}
	if order == "" {
		order = "relevance"
	}
	if !youtube.ValidOrders[order] {
		return nil, fmt.Errorf("%w: bad order %q", ErrValidation, order)
	}

	key := searchCacheKey(query, maxResults, pageToken, order, false)
	if cached := s.cachedSearch(ctx, key); cached != nil {
		return cached, nil
	}
	resp, err := s.yt.Search(ctx, query, maxResults, pageToken, order)
	if err != nil {
		return nil, err
	}
	s.storeSearch(key, resp, searchCacheTTL)
	return resp, nil
}

// SearchEducational is the filtered variant of Search.
func (s *Service) SearchEducational(ctx context.Context, query string, maxResults int) (*models.SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	if maxResults <= 0 {
		maxResults = 20
	} else if maxResults > maxSearchResults {
		maxResults = maxSearchResults
	}

	key := searchCacheKey(query, maxResults, "", "relevance", true)
	if cached := s.cachedSearch(ctx, key); cached != nil {
		return cached, nil
	}
	resp, err := s.yt.SearchEducational(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	s.storeSearch(key, resp, eduSearchCacheTTL)
	return resp, nil
}

func searchCacheKey(query string, maxResults int, pageToken, order string, educational bool) string {
	raw := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(query)),
		strconv.Itoa(maxResults),
		pageToken,
		order,
		strconv.FormatBool(educational),
	}, "|")
	kind := "search"
	if educational {
		kind = "edu"
	}
	return "youtube_search:" + kind + ":" + utils.GetMd5(raw)
}

func (s *Service) cachedSearch(ctx context.Context, key string) *models.SearchResponse {
	if !s.cacheEnabled {
		return nil
	}
	raw, err := s.repo.CacheGet(ctx, key)
	if err != nil {
		return nil
	}
	var resp models.SearchResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		log.Warn("drop bad search cache entry", "key", key, "err", err)
		return nil
	}
	return &resp
}

func (s *Service) storeSearch(key string, resp *models.SearchResponse, ttl time.Duration) {
	if !s.cacheEnabled {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	go utils.SafeCall(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.repo.CacheSet(ctx, key, string(data), ttl); err != nil {
			log.Warn("cache search results", "key", key, "err", err)
		}
	})
}

// SaveVideoInput is the client-supplied metadata for a save.
type SaveVideoInput struct {
	YoutubeID    string
	Title        string
	Description  string
	ThumbnailURL string
	ChannelTitle string
	Duration     string
	Category     string
}

// SaveVideo is idempotent per (user, youtube_id): saving an already-saved
// video refreshes its metadata instead of duplicating the row. Metadata is
// enriched from the adapter when reachable; adapter failures here are not
// fatal, the client-supplied fields win.
func (s *Service) SaveVideo(ctx context.Context, userID uint, in SaveVideoInput) (*models.SavedVideo, error) {
	if in.YoutubeID == "" || in.Title == "" {
		return nil, fmt.Errorf("%w: youtube_id and title required", ErrValidation)
	}
	if in.Category == "" {
		in.Category = "general"
	}

	var info *models.VideoDetail
	if detail, err := s.yt.VideoInfo(ctx, in.YoutubeID); err == nil {
		info = detail
	} else {
		log.Warn("video info lookup failed, using client metadata", "youtube_id", in.YoutubeID, "err", err)
	}

	existing, err := s.repo.GetVideoByYoutubeID(userID, in.YoutubeID)
	if err == nil {
		applyVideoInput(existing, in, info)
		if err := s.repo.UpdateVideo(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	v := &models.SavedVideo{UserID: userID, YoutubeID: in.YoutubeID, Category: in.Category}
	applyVideoInput(v, in, info)
	if err := s.repo.CreateVideo(v); err != nil {
		return nil, err
	}
	return v, nil
}

func applyVideoInput(v *models.SavedVideo, in SaveVideoInput, info *models.VideoDetail) {
	v.Title = in.Title
	v.Description = in.Description
	v.ThumbnailURL = in.ThumbnailURL
	v.ChannelTitle = in.ChannelTitle
	v.Duration = in.Duration
	v.Category = in.Category
	if info == nil {
		return
	}
	if info.Duration != "" {
		v.Duration = info.Duration
	}
	if info.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, info.PublishedAt); err == nil {
			v.PublishedAt = &t
		}
	}
}

func (s *Service) ListVideos(userID uint, category string, skip, limit int) ([]models.SavedVideo, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	return s.repo.ListVideos(userID, category, skip, limit)
}

func (s *Service) GetVideo(userID, id uint) (*models.SavedVideo, error) {
	v, err := s.repo.GetVideoByID(userID, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return v, nil
}

// UpdateVideoInput carries the mutable fields; nil means leave unchanged.
type UpdateVideoInput struct {
	Category       *string
	WatchProgress  *float64
	WatchedSeconds *int
}

// UpdateVideo validates the progress bound and accumulates watch time
// monotonically. last_watched is bumped whenever progress changes.
func (s *Service) UpdateVideo(userID, id uint, in UpdateVideoInput) (*models.SavedVideo, error) {
	v, err := s.repo.GetVideoByID(userID, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	if in.WatchProgress != nil {
		p := *in.WatchProgress
		if p < 0 || p > 100 {
			return nil, fmt.Errorf("%w: watch_progress must be within [0,100]", ErrValidation)
		}
		v.WatchProgress = p
		now := time.Now()
		v.LastWatched = &now
	}
	if in.WatchedSeconds != nil {
		if *in.WatchedSeconds < 0 {
			return nil, fmt.Errorf("%w: watched_seconds must not be negative", ErrValidation)
		}
		v.TotalWatchTime += *in.WatchedSeconds
	}
	if in.Category != nil && *in.Category != "" {
		v.Category = *in.Category
	}
	if err := s.repo.UpdateVideo(v); err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteVideo removes the video, its notes (cascade policy), and every
// playlist link, re-packing positions in the affected playlists. Everything
// happens in one transaction, and the re-pack holds the same per-playlist
// locks the playlist operations serialize on.
func (s *Service) DeleteVideo(userID, id uint) error {
	v, err := s.repo.GetVideoByID(userID, id)
	if err != nil {
		return wrapNotFound(err)
	}

	entries, err := s.repo.ListPlaylistEntriesByVideo(v.ID)
	if err != nil {
		return err
	}
	// membership can change while we wait on a lock, so re-read until the
	// locked set matches what is in the database
	for {
		release := lockPlaylists(entryPlaylistIDs(entries))
		fresh, err := s.repo.ListPlaylistEntriesByVideo(v.ID)
		if err != nil {
			release()
			return err
		}
		if slices.Equal(entryPlaylistIDs(entries), entryPlaylistIDs(fresh)) {
			entries = fresh
			defer release()
			break
		}
		release()
		entries = fresh
	}

	return s.repo.Transaction(func(txr *dao.Repo) error {
		if err := txr.DeleteNotesByVideo(userID, v.ID); err != nil {
			return err
		}
		for _, pv := range entries {
			if err := txr.DeletePlaylistEntry(&pv); err != nil {
				return err
			}
			if err := txr.ShiftPositionsDown(pv.PlaylistID, pv.Position); err != nil {
				return err
			}
		}
		return txr.DeleteVideo(v)
	})
}

func entryPlaylistIDs(entries []models.PlaylistVideo) []uint {
	ids := make([]uint, 0, len(entries))
	for _, pv := range entries {
		ids = append(ids, pv.PlaylistID)
	}
	slices.Sort(ids)
	return ids
}

func (s *Service) VideoCategories(userID uint) ([]string, error) {
	return s.repo.ListVideoCategories(userID)
}

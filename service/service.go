package service

import (
	"context"

	"studytube/config"
	"studytube/dao"
	"studytube/models"
)

// VideoAPI is the external video-search adapter surface the service needs.
type VideoAPI interface {
	Search(ctx context.Context, query string, maxResults int, pageToken, order string) (*models.SearchResponse, error)
	SearchEducational(ctx context.Context, query string, maxResults int) (*models.SearchResponse, error)
	VideoInfo(ctx context.Context, videoID string) (*models.VideoDetail, error)
}

type Service struct {
	repo *dao.Repo
	yt   VideoAPI
	cfg  *config.Config

	// cacheEnabled is false when no redis handle was provided; searches then
	// always go straight to the API.
	cacheEnabled bool
}

func New(repo *dao.Repo, yt VideoAPI, cfg *config.Config, cacheEnabled bool) *Service {
	return &Service{repo: repo, yt: yt, cfg: cfg, cacheEnabled: cacheEnabled}
}

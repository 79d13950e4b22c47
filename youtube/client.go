// YouTube Data API v3 client.
//
// Normalizes search/videos responses into models types. Quota and
// availability failures are distinct sentinel errors so callers can map them
// to their own statuses instead of masking them as internal failures.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"studytube/models"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

var (
	// ErrQuotaExceeded means every configured API key reported quota
	// exhaustion. Retrying would make the condition worse.
	ErrQuotaExceeded = errors.New("youtube quota exceeded")
	// ErrUnavailable covers network failures and non-success statuses.
	ErrUnavailable = errors.New("youtube unavailable")
)

// Orders accepted by the search endpoint.
var ValidOrders = map[string]bool{
	"relevance": true,
	"date":      true,
	"rating":    true,
	"viewCount": true,
	"title":     true,
}

type Client struct {
	baseURL    string
	keys       []string
	httpClient *http.Client
	limiter    *rate.Limiter

	mu       sync.Mutex
	keyIndex int
}

// NewClient builds a client over the given API keys. Pass baseURL "" for the
// real API. Multiple keys are rotated when the provider reports quota
// exhaustion.
func NewClient(baseURL string, keys []string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		keys:       keys,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(8), 1),
	}
}

func (c *Client) apiKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keys[c.keyIndex]
}

func (c *Client) rotateKey() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyIndex = (c.keyIndex + 1) % len(c.keys)
}

// request issues one API call, rotating keys on quota errors. Exhausting all
// keys yields ErrQuotaExceeded; any other failure yields ErrUnavailable.
func (c *Client) request(ctx context.Context, endpoint string, params url.Values, result any) error {
	if len(c.keys) == 0 {
		return fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}
	for attempt := 0; attempt < len(c.keys); attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		params.Set("key", c.apiKey())

		apiURL := c.baseURL + "/" + endpoint + "?" + params.Encode()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		if resp.StatusCode == http.StatusOK {
			err = json.NewDecoder(resp.Body).Decode(result)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
			}
			return nil
		}

		reason := errorReason(resp)
		resp.Body.Close()
		if reason == "quotaExceeded" || reason == "rateLimitExceeded" {
			c.rotateKey()
			continue
		}
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return ErrQuotaExceeded
}

func errorReason(resp *http.Response) string {
	var body struct {
		Error struct {
			Errors []struct {
				Reason string `json:"reason"`
			} `json:"errors"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	if len(body.Error.Errors) == 0 {
		return ""
	}
	return body.Error.Errors[0].Reason
}

// raw API shapes
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
	PageInfo struct {
		TotalResults int `json:"totalResults"`
	} `json:"pageInfo"`
	NextPageToken string `json:"nextPageToken"`
}

type snippet struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Thumbnails   struct {
		Medium struct {
			URL string `json:"url"`
		} `json:"medium"`
	} `json:"thumbnails"`
}

type videosResponse struct {
	Items []struct {
		ID             string  `json:"id"`
		Snippet        snippet `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type videoDetails struct {
	duration  string
	viewCount string
}

// Search runs a paginated video search. maxResults is capped at 50 by the
// API; order must be one of ValidOrders.
func (c *Client) Search(ctx context.Context, query string, maxResults int, pageToken, order string) (*models.SearchResponse, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("order", order)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}
	return c.search(ctx, params)
}

// SearchEducational biases the query toward study content, pins the
// Education category, and runs the keyword filter pass over the results.
func (c *Client) SearchEducational(ctx context.Context, query string, maxResults int) (*models.SearchResponse, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query+" tutorial education learn")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("order", "relevance")
	params.Set("videoCategoryId", educationCategoryID)

	resp, err := c.search(ctx, params)
	if err != nil {
		return nil, err
	}
	resp.Videos = FilterEducational(resp.Videos)
	return resp, nil
}

func (c *Client) search(ctx context.Context, params url.Values) (*models.SearchResponse, error) {
	var data searchResponse
	if err := c.request(ctx, "search", params, &data); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(data.Items))
	for _, item := range data.Items {
		ids = append(ids, item.ID.VideoID)
	}
	details, err := c.videoDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	videos := make([]models.VideoSummary, 0, len(data.Items))
	for _, item := range data.Items {
		d := details[item.ID.VideoID]
		videos = append(videos, models.VideoSummary{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ThumbnailURL: item.Snippet.Thumbnails.Medium.URL,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
			Duration:     d.duration,
			ViewCount:    d.viewCount,
		})
	}
	return &models.SearchResponse{
		Videos:        videos,
		TotalResults:  data.PageInfo.TotalResults,
		NextPageToken: data.NextPageToken,
	}, nil
}

func (c *Client) videoDetails(ctx context.Context, ids []string) (map[string]videoDetails, error) {
	out := make(map[string]videoDetails)
	if len(ids) == 0 {
		return out, nil
	}
	params := url.Values{}
	params.Set("part", "contentDetails,statistics")
	params.Set("id", strings.Join(ids, ","))

	var data videosResponse
	if err := c.request(ctx, "videos", params, &data); err != nil {
		return nil, err
	}
	for _, item := range data.Items {
		out[item.ID] = videoDetails{
			duration:  ParseDuration(item.ContentDetails.Duration),
			viewCount: item.Statistics.ViewCount,
		}
	}
	return out, nil
}

// VideoInfo fetches full metadata for one video. A missing video returns
// (nil, nil) so save can fall back to client-supplied metadata.
func (c *Client) VideoInfo(ctx context.Context, videoID string) (*models.VideoDetail, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", videoID)

	var data videosResponse
	if err := c.request(ctx, "videos", params, &data); err != nil {
		return nil, err
	}
	if len(data.Items) == 0 {
		return nil, nil
	}
	item := data.Items[0]
	return &models.VideoDetail{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ThumbnailURL: item.Snippet.Thumbnails.Medium.URL,
		ChannelTitle: item.Snippet.ChannelTitle,
		PublishedAt:  item.Snippet.PublishedAt,
		Duration:     ParseDuration(item.ContentDetails.Duration),
		ViewCount:    item.Statistics.ViewCount,
		LikeCount:    item.Statistics.LikeCount,
	}, nil
}

var durationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts ISO 8601 durations to a display form,
// PT4M13S -> "4:13".
func ParseDuration(iso string) string {
	if iso == "" {
		return ""
	}
	m := durationRe.FindStringSubmatch(iso)
	if m == nil {
		return ""
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

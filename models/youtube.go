package models

// VideoSummary 定义搜索结果的结构体
type VideoSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
	Duration     string `json:"duration,omitempty"`
	ViewCount    string `json:"view_count,omitempty"`
}

// SearchResponse carries one page of normalized search results.
type SearchResponse struct {
	Videos        []VideoSummary `json:"videos"`
	TotalResults  int            `json:"total_results"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// VideoDetail is the full metadata for a single video.
type VideoDetail struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
	Duration     string `json:"duration"`
	ViewCount    string `json:"view_count"`
	LikeCount    string `json:"like_count"`
}

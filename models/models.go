package models

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username  string         `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password  string         `gorm:"size:255;not null" json:"-"` // bcrypt hash
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SavedVideo is a user's persisted reference to a YouTube video plus study
// metadata. One row per (user, youtube_id).
type SavedVideo struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"uniqueIndex:idx_user_youtube,priority:1;not null" json:"user_id"`
	YoutubeID    string     `gorm:"size:32;uniqueIndex:idx_user_youtube,priority:2;not null" json:"youtube_id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	ThumbnailURL string     `gorm:"size:1024" json:"thumbnail_url"`
	ChannelTitle string     `gorm:"size:255" json:"channel_title"`
	Duration     string     `gorm:"size:32" json:"duration"` // display form, e.g. "4:13"
	PublishedAt  *time.Time `json:"published_at"`
	Category     string     `gorm:"size:64;index;default:general" json:"category"`

	// study progress
	WatchProgress  float64    `json:"watch_progress"`   // percent, 0..100
	TotalWatchTime int        `json:"total_watch_time"` // seconds, only grows
	LastWatched    *time.Time `json:"last_watched"`

	CreatedAt time.Time `json:"saved_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StudyNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	VideoID   uint      `gorm:"index;not null" json:"video_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp *float64  `json:"timestamp"`          // seconds into the video
	Tags      string    `gorm:"size:1024" json:"-"` // JSON array
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagList decodes the stored tags column.
func (n *StudyNote) TagList() []string {
	if n.Tags == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(n.Tags), &tags); err != nil {
		return []string{}
	}
	return tags
}

// SetTagList encodes tags into the stored column.
func (n *StudyNote) SetTagList(tags []string) {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	n.Tags = string(data)
}

type Playlist struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaylistVideo links a saved video into a playlist. Positions within one
// playlist are unique and contiguous from 0.
type PlaylistVideo struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlaylistID uint      `gorm:"uniqueIndex:idx_playlist_video,priority:1;not null" json:"playlist_id"`
	VideoID    uint      `gorm:"uniqueIndex:idx_playlist_video,priority:2;not null" json:"video_id"`
	Position   int       `gorm:"not null" json:"position"`
	CreatedAt  time.Time `json:"added_at"`
}

type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

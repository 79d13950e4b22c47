package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studytube/service"
)

type SaveVideoReq struct {
	YoutubeID    string `json:"youtube_id" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	ChannelTitle string `json:"channel_title"`
	Duration     string `json:"duration"`
	Category     string `json:"category"`
}

type UpdateVideoReq struct {
	Category       *string  `json:"category"`
	WatchProgress  *float64 `json:"watch_progress"`
	WatchedSeconds *int     `json:"watched_seconds"`
}

func (h *Handler) SearchVideos(c *gin.Context) {
	query := c.Query("q")
	maxResults, _ := strconv.Atoi(c.DefaultQuery("max_results", "20"))
	resp, err := h.svc.Search(c.Request.Context(), query, maxResults,
		c.Query("page_token"), c.DefaultQuery("order", "relevance"))
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) SearchEducationalVideos(c *gin.Context) {
	query := c.Query("q")
	maxResults, _ := strconv.Atoi(c.DefaultQuery("max_results", "20"))
	resp, err := h.svc.SearchEducational(c.Request.Context(), query, maxResults)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) SaveVideo(c *gin.Context) {
	uid := c.GetUint("user_id")
	var req SaveVideoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := h.svc.SaveVideo(c.Request.Context(), uid, service.SaveVideoInput{
		YoutubeID:    req.YoutubeID,
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		ChannelTitle: req.ChannelTitle,
		Duration:     req.Duration,
		Category:     req.Category,
	})
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video": v})
}

func (h *Handler) ListSavedVideos(c *gin.Context) {
	uid := c.GetUint("user_id")
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	videos, err := h.svc.ListVideos(uid, c.Query("category"), skip, limit)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (h *Handler) GetSavedVideo(c *gin.Context) {
	uid := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("id"))
	v, err := h.svc.GetVideo(uid, uint(id))
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video": v})
}

func (h *Handler) UpdateSavedVideo(c *gin.Context) {
	uid := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("id"))
	var req UpdateVideoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := h.svc.UpdateVideo(uid, uint(id), service.UpdateVideoInput{
		Category:       req.Category,
		WatchProgress:  req.WatchProgress,
		WatchedSeconds: req.WatchedSeconds,
	})
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video": v})
}

func (h *Handler) DeleteSavedVideo(c *gin.Context) {
	uid := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.svc.DeleteVideo(uid, uint(id)); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) GetVideoCategories(c *gin.Context) {
	uid := c.GetUint("user_id")
	categories, err := h.svc.VideoCategories(uid)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

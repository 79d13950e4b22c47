package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CreatePlaylistReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdatePlaylistReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AddPlaylistVideoReq struct {
	VideoID  uint `json:"video_id" binding:"required"`
	Position *int `json:"position"`
}

type MovePlaylistVideoReq struct {
	Position int `json:"position"`
}

func (h *Handler) CreatePlaylist(c *gin.Context) {
	uid := c.GetUint("user_id")
	var req CreatePlaylistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.CreatePlaylist(uid, req.Name, req.Description)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"playlist": p})
}

func (h *Handler) ListPlaylists(c *gin.Context) {
	uid := c.GetUint("user_id")
	playlists, err := h.svc.ListPlaylists(uid)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlists": playlists})
}

func (h *Handler) GetPlaylist(c *gin.Context) {
	uid := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("id"))
	detail, err := h.svc.GetPlaylist(uid, uint(id))
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) UpdatePlaylist(c *gin.Context) {
	uid := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("id"))
	var req UpdatePlaylistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.UpdatePlaylist(uid, uint(id), req.Name, req.Description)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlist": p})
}

func (h *Handler) DeletePlaylist(c *gin.Context) {
	uid := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.svc.DeletePlaylist(uid, uint(id)); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) AddPlaylistVideo(c *gin.Context) {
	uid := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("id"))
	var req AddPlaylistVideoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pv, err := h.svc.AddVideoToPlaylist(uid, uint(id), req.VideoID, req.Position)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": pv})
}

func (h *Handler) MovePlaylistVideo(c *gin.Context) {
	uid := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("id"))
	videoID, _ := strconv.Atoi(c.Param("video_id"))
	var req MovePlaylistVideoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.MoveVideoInPlaylist(uid, uint(id), uint(videoID), req.Position); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) RemovePlaylistVideo(c *gin.Context) {
	uid := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("id"))
	videoID, _ := strconv.Atoi(c.Param("video_id"))
	if err := h.svc.RemoveVideoFromPlaylist(uid, uint(id), uint(videoID)); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

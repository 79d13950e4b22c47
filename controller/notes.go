package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studytube/models"
	"studytube/service"
)

type CreateNoteReq struct {
	VideoID   uint     `json:"video_id" binding:"required"`
	Content   string   `json:"content" binding:"required"`
	Timestamp *float64 `json:"timestamp"`
	Tags      []string `json:"tags"`
}

type UpdateNoteReq struct {
	Content   string   `json:"content"`
	Timestamp *float64 `json:"timestamp"`
	Tags      []string `json:"tags"`
}

// noteView adds the decoded tag list to the JSON shape.
type noteView struct {
	*models.StudyNote
	Tags []string `json:"tags"`
}

func viewNote(n *models.StudyNote) noteView {
	return noteView{StudyNote: n, Tags: n.TagList()}
}

func viewNotes(notes []models.StudyNote) []noteView {
	out := make([]noteView, 0, len(notes))
	for i := range notes {
		out = append(out, viewNote(&notes[i]))
	}
	return out
}

func (h *Handler) CreateNote(c *gin.Context) {
	uid := c.GetUint("user_id")
	var req CreateNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.svc.CreateNote(uid, service.NoteInput{
		VideoID:   req.VideoID,
		Content:   req.Content,
		Timestamp: req.Timestamp,
		Tags:      req.Tags,
	})
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"note": viewNote(n)})
}

func (h *Handler) ListNotes(c *gin.Context) {
	uid := c.GetUint("user_id")
	videoID, _ := strconv.Atoi(c.Query("video_id"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	notes, err := h.svc.ListNotes(uid, uint(videoID), c.Query("tag"), skip, limit)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": viewNotes(notes)})
}

func (h *Handler) SearchNotes(c *gin.Context) {
	uid := c.GetUint("user_id")
	notes, err := h.svc.SearchNotes(uid, c.Query("q"))
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": viewNotes(notes)})
}

func (h *Handler) GetNote(c *gin.Context) {
	uid := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("id"))
	n, err := h.svc.GetNote(uid, uint(id))
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": viewNote(n)})
}

func (h *Handler) UpdateNote(c *gin.Context) {
	uid := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("id"))
	var req UpdateNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.svc.UpdateNote(uid, uint(id), service.NoteInput{
		Content:   req.Content,
		Timestamp: req.Timestamp,
		Tags:      req.Tags,
	})
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": viewNote(n)})
}

func (h *Handler) DeleteNote(c *gin.Context) {
	uid := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.svc.DeleteNote(uid, uint(id)); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

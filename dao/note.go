package dao

import (
	"strings"

	"studytube/models"
)

func (r *Repo) CreateNote(n *models.StudyNote) error {
	return r.db.Create(n).Error
}

func (r *Repo) GetNoteByID(userID, id uint) (*models.StudyNote, error) {
	var n models.StudyNote
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ListNotes filters by video when videoID > 0 and by tag when tag is set.
// The tag match is a substring match against the stored JSON array.
func (r *Repo) ListNotes(userID uint, videoID uint, tag string, skip, limit int) ([]models.StudyNote, error) {
	q := r.db.Where("user_id = ?", userID)
	if videoID > 0 {
		q = q.Where("video_id = ?", videoID)
	}
	if tag != "" {
		q = q.Where("LOWER(tags) LIKE ?", "%"+strings.ToLower(tag)+"%")
	}
	var out []models.StudyNote
	if err := q.Order("created_at desc").Offset(skip).Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SearchNotes does a case-insensitive substring match over content and tags.
func (r *Repo) SearchNotes(userID uint, query string) ([]models.StudyNote, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var out []models.StudyNote
	err := r.db.Where("user_id = ? AND (LOWER(content) LIKE ? OR LOWER(tags) LIKE ?)",
		userID, pattern, pattern).
		Order("created_at desc").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) UpdateNote(n *models.StudyNote) error {
	return r.db.Save(n).Error
}

func (r *Repo) DeleteNote(n *models.StudyNote) error {
	return r.db.Delete(n).Error
}

func (r *Repo) DeleteNotesByVideo(userID, videoID uint) error {
	return r.db.Where("user_id = ? AND video_id = ?", userID, videoID).
		Delete(&models.StudyNote{}).Error
}

func (r *Repo) CountNotes(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.StudyNote{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

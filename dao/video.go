package dao

import (
	"studytube/models"
)

func (r *Repo) CreateVideo(v *models.SavedVideo) error {
	return r.db.Create(v).Error
}

func (r *Repo) GetVideoByID(userID, id uint) (*models.SavedVideo, error) {
	var v models.SavedVideo
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo) GetVideoByYoutubeID(userID uint, youtubeID string) (*models.SavedVideo, error) {
	var v models.SavedVideo
	if err := r.db.Where("user_id = ? AND youtube_id = ?", userID, youtubeID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo) ListVideos(userID uint, category string, skip, limit int) ([]models.SavedVideo, error) {
	q := r.db.Where("user_id = ?", userID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []models.SavedVideo
	if err := q.Order("created_at desc").Offset(skip).Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) UpdateVideo(v *models.SavedVideo) error {
	return r.db.Save(v).Error
}

func (r *Repo) DeleteVideo(v *models.SavedVideo) error {
	return r.db.Delete(v).Error
}

func (r *Repo) ListVideoCategories(userID uint) ([]string, error) {
	var out []string
	err := r.db.Model(&models.SavedVideo{}).
		Where("user_id = ? AND category <> ''", userID).
		Distinct("category").
		Pluck("category", &out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) CountVideos(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.SavedVideo{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *Repo) SumWatchTime(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.SavedVideo{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(total_watch_time), 0)").
		Scan(&total).Error
	return total, err
}

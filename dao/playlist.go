package dao

import (
	"gorm.io/gorm"

	"studytube/models"
)

func (r *Repo) CreatePlaylist(p *models.Playlist) error {
	return r.db.Create(p).Error
}

func (r *Repo) GetPlaylistByID(userID, id uint) (*models.Playlist, error) {
	var p models.Playlist
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) ListPlaylists(userID uint) ([]models.Playlist, error) {
	var out []models.Playlist
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) UpdatePlaylist(p *models.Playlist) error {
	return r.db.Save(p).Error
}

func (r *Repo) DeletePlaylist(p *models.Playlist) error {
	return r.db.Delete(p).Error
}

func (r *Repo) GetPlaylistEntry(playlistID, videoID uint) (*models.PlaylistVideo, error) {
	var pv models.PlaylistVideo
	if err := r.db.Where("playlist_id = ? AND video_id = ?", playlistID, videoID).First(&pv).Error; err != nil {
		return nil, err
	}
	return &pv, nil
}

// ListPlaylistEntries returns join rows ordered by position.
func (r *Repo) ListPlaylistEntries(playlistID uint) ([]models.PlaylistVideo, error) {
	var out []models.PlaylistVideo
	if err := r.db.Where("playlist_id = ?", playlistID).Order("position asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) CountPlaylistEntries(playlistID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.PlaylistVideo{}).Where("playlist_id = ?", playlistID).Count(&n).Error
	return n, err
}

func (r *Repo) CreatePlaylistEntry(pv *models.PlaylistVideo) error {
	return r.db.Create(pv).Error
}

func (r *Repo) DeletePlaylistEntry(pv *models.PlaylistVideo) error {
	return r.db.Delete(pv).Error
}

func (r *Repo) DeletePlaylistEntries(playlistID uint) error {
	return r.db.Where("playlist_id = ?", playlistID).Delete(&models.PlaylistVideo{}).Error
}

// ShiftPositionsUp makes room at from by moving positions >= from one up.
func (r *Repo) ShiftPositionsUp(playlistID uint, from int) error {
	return r.db.Model(&models.PlaylistVideo{}).
		Where("playlist_id = ? AND position >= ?", playlistID, from).
		Update("position", gorm.Expr("position + 1")).Error
}

// ShiftPositionsDown closes the gap after a removal at from.
func (r *Repo) ShiftPositionsDown(playlistID uint, from int) error {
	return r.db.Model(&models.PlaylistVideo{}).
		Where("playlist_id = ? AND position > ?", playlistID, from).
		Update("position", gorm.Expr("position - 1")).Error
}

// ListPlaylistEntriesByVideo returns every join row referencing the video,
// across all of the user's playlists.
func (r *Repo) ListPlaylistEntriesByVideo(videoID uint) ([]models.PlaylistVideo, error) {
	var out []models.PlaylistVideo
	if err := r.db.Where("video_id = ?", videoID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) CountPlaylists(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Playlist{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *Repo) UpdatePlaylistEntry(pv *models.PlaylistVideo) error {
	return r.db.Save(pv).Error
}

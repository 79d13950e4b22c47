package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"studytube/dao"
	"studytube/models"
	"studytube/utils"
)

const playlistLockTimeout = 5 * time.Second

// PlaylistEntry is a video with its position inside a playlist.
type PlaylistEntry struct {
	Position int               `json:"position"`
	Video    models.SavedVideo `json:"video"`
}

// PlaylistDetail is a playlist with its ordered videos materialized.
type PlaylistDetail struct {
	Playlist models.Playlist `json:"playlist"`
	Entries  []PlaylistEntry `json:"videos"`
}

func (s *Service) CreatePlaylist(userID uint, name, description string) (*models.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	p := &models.Playlist{UserID: userID, Name: name, Description: description}
	if err := s.repo.CreatePlaylist(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPlaylists(userID uint) ([]models.Playlist, error) {
	return s.repo.ListPlaylists(userID)
}

// GetPlaylist materializes the playlist with its videos in position order.
func (s *Service) GetPlaylist(userID, id uint) (*PlaylistDetail, error) {
	p, err := s.repo.GetPlaylistByID(userID, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	rows, err := s.repo.ListPlaylistEntries(p.ID)
	if err != nil {
		return nil, err
	}
	entries := make([]PlaylistEntry, 0, len(rows))
	for _, pv := range rows {
		v, err := s.repo.GetVideoByID(userID, pv.VideoID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, PlaylistEntry{Position: pv.Position, Video: *v})
	}
	return &PlaylistDetail{Playlist: *p, Entries: entries}, nil
}

func (s *Service) UpdatePlaylist(userID, id uint, name, description string) (*models.Playlist, error) {
	p, err := s.repo.GetPlaylistByID(userID, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	if err := s.repo.UpdatePlaylist(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePlaylist(userID, id uint) error {
	p, err := s.repo.GetPlaylistByID(userID, id)
	if err != nil {
		return wrapNotFound(err)
	}
	return s.repo.Transaction(func(txr *dao.Repo) error {
		if err := txr.DeletePlaylistEntries(p.ID); err != nil {
			return err
		}
		return txr.DeletePlaylist(p)
	})
}

// AddVideoToPlaylist appends at the next contiguous position, or inserts at
// an explicit position shifting subsequent entries. The read-modify-write of
// positions runs under a per-playlist lock plus a transaction so two rapid
// calls cannot interleave.
func (s *Service) AddVideoToPlaylist(userID, playlistID, videoID uint, position *int) (*models.PlaylistVideo, error) {
	p, err := s.repo.GetPlaylistByID(userID, playlistID)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	if _, err := s.repo.GetVideoByID(userID, videoID); err != nil {
		return nil, wrapNotFound(err)
	}

	done, ok := utils.OpLockTimeout(playlistLockKey(p.ID), playlistLockTimeout)
	if !ok {
		return nil, fmt.Errorf("%w: playlist is busy, retry", ErrConflict)
	}
	defer done()

	var created *models.PlaylistVideo
	err = s.repo.Transaction(func(txr *dao.Repo) error {
		if _, err := txr.GetPlaylistEntry(p.ID, videoID); err == nil {
			return fmt.Errorf("%w: video already in playlist", ErrConflict)
		}
		count, err := txr.CountPlaylistEntries(p.ID)
		if err != nil {
			return err
		}
		pos := int(count)
		if position != nil {
			pos = *position
			if pos < 0 || pos > int(count) {
				return fmt.Errorf("%w: position out of range", ErrValidation)
			}
			if err := txr.ShiftPositionsUp(p.ID, pos); err != nil {
				return err
			}
		}
		created = &models.PlaylistVideo{PlaylistID: p.ID, VideoID: videoID, Position: pos}
		return txr.CreatePlaylistEntry(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RemoveVideoFromPlaylist deletes the join row and re-packs positions so
// they stay contiguous.
func (s *Service) RemoveVideoFromPlaylist(userID, playlistID, videoID uint) error {
	p, err := s.repo.GetPlaylistByID(userID, playlistID)
	if err != nil {
		return wrapNotFound(err)
	}

	done, ok := utils.OpLockTimeout(playlistLockKey(p.ID), playlistLockTimeout)
	if !ok {
		return fmt.Errorf("%w: playlist is busy, retry", ErrConflict)
	}
	defer done()

	return s.repo.Transaction(func(txr *dao.Repo) error {
		pv, err := txr.GetPlaylistEntry(p.ID, videoID)
		if err != nil {
			return wrapNotFound(err)
		}
		if err := txr.DeletePlaylistEntry(pv); err != nil {
			return err
		}
		return txr.ShiftPositionsDown(p.ID, pv.Position)
	})
}

// MoveVideoInPlaylist moves a video to a new position, shifting neighbors.
func (s *Service) MoveVideoInPlaylist(userID, playlistID, videoID uint, newPosition int) error {
	p, err := s.repo.GetPlaylistByID(userID, playlistID)
	if err != nil {
		return wrapNotFound(err)
	}

	done, ok := utils.OpLockTimeout(playlistLockKey(p.ID), playlistLockTimeout)
	if !ok {
		return fmt.Errorf("%w: playlist is busy, retry", ErrConflict)
	}
	defer done()

	return s.repo.Transaction(func(txr *dao.Repo) error {
		pv, err := txr.GetPlaylistEntry(p.ID, videoID)
		if err != nil {
			return wrapNotFound(err)
		}
		count, err := txr.CountPlaylistEntries(p.ID)
		if err != nil {
			return err
		}
		if newPosition < 0 || newPosition >= int(count) {
			return fmt.Errorf("%w: position out of range", ErrValidation)
		}
		if newPosition == pv.Position {
			return nil
		}
		// take it out, close the gap, reopen at the target
		if err := txr.ShiftPositionsDown(p.ID, pv.Position); err != nil {
			return err
		}
		if err := txr.ShiftPositionsUp(p.ID, newPosition); err != nil {
			return err
		}
		pv.Position = newPosition
		return txr.UpdatePlaylistEntry(pv)
	})
}

func playlistLockKey(id uint) string {
	return fmt.Sprintf("playlist:%d", id)
}

// lockPlaylists takes the per-playlist locks for every id, in sorted order
// so two callers locking overlapping sets cannot deadlock. The returned
// release unlocks all of them.
func lockPlaylists(ids []uint) func() {
	slices.Sort(ids)
	releases := make([]func(), 0, len(ids))
	for _, id := range ids {
		releases = append(releases, utils.OpLockedWait(playlistLockKey(id)))
	}
	return func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
}

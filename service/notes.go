package service

import (
	"fmt"
	"strings"

	"studytube/models"
)

// NoteInput carries client fields for create and update.
type NoteInput struct {
	VideoID   uint
	Content   string
	Timestamp *float64
	Tags      []string
}

// CreateNote requires the referenced video to exist and belong to the
// caller. The timestamp, when present, must be non-negative; it is not
// checked against the video duration.
func (s *Service) CreateNote(userID uint, in NoteInput) (*models.StudyNote, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%w: content required", ErrValidation)
	}
	if in.Timestamp != nil && *in.Timestamp < 0 {
		return nil, fmt.Errorf("%w: timestamp must not be negative", ErrValidation)
	}
	if _, err := s.repo.GetVideoByID(userID, in.VideoID); err != nil {
		return nil, wrapNotFound(err)
	}
	n := &models.StudyNote{
		UserID:    userID,
		VideoID:   in.VideoID,
		Content:   in.Content,
		Timestamp: in.Timestamp,
	}
	n.SetTagList(in.Tags)
	if err := s.repo.CreateNote(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) ListNotes(userID, videoID uint, tag string, skip, limit int) ([]models.StudyNote, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	return s.repo.ListNotes(userID, videoID, tag, skip, limit)
}

func (s *Service) GetNote(userID, id uint) (*models.StudyNote, error) {
	n, err := s.repo.GetNoteByID(userID, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return n, nil
}

func (s *Service) UpdateNote(userID, id uint, in NoteInput) (*models.StudyNote, error) {
	n, err := s.repo.GetNoteByID(userID, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	if in.Content != "" {
		n.Content = in.Content
	}
	if in.Timestamp != nil {
		if *in.Timestamp < 0 {
			return nil, fmt.Errorf("%w: timestamp must not be negative", ErrValidation)
		}
		n.Timestamp = in.Timestamp
	}
	if in.Tags != nil {
		n.SetTagList(in.Tags)
	}
	if err := s.repo.UpdateNote(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) DeleteNote(userID, id uint) error {
	n, err := s.repo.GetNoteByID(userID, id)
	if err != nil {
		return wrapNotFound(err)
	}
	return s.repo.DeleteNote(n)
}

// SearchNotes is a case-insensitive substring match over content and tags.
func (s *Service) SearchNotes(userID uint, query string) ([]models.StudyNote, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	return s.repo.SearchNotes(userID, query)
}

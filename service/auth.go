package service

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studytube/models"
)

// Register creates a new account. Email and username must be unused.
func (s *Service) Register(email, username, password string) (*models.User, error) {
	if _, err := s.repo.GetUserByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if _, err := s.repo.GetUserByUsername(username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{Email: email, Username: username, Password: string(hash), IsActive: true}
	if err := s.repo.CreateUser(u); err != nil {
		// a concurrent registration can slip past the pre-checks; the
		// unique index catches it
		return nil, wrapDuplicate(err, "account already exists")
	}
	return u, nil
}

// Authenticate verifies credentials for login.
func (s *Service) Authenticate(email, password string) (*models.User, error) {
	u, err := s.repo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, fmt.Errorf("%w: account disabled", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	return u, nil
}

func (s *Service) GetUser(userID uint) (*models.User, error) {
	u, err := s.repo.GetUserByID(userID)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return u, nil
}

// ChangePassword verifies the old password before setting the new one.
func (s *Service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	u, err := s.repo.GetUserByID(userID)
	if err != nil {
		return wrapNotFound(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)); err != nil {
		return fmt.Errorf("%w: wrong password", ErrUnauthorized)
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return s.repo.UpdateUser(u)
}

// UserStats are per-user dashboard counters.
type UserStats struct {
	SavedVideos    int64 `json:"saved_videos"`
	Notes          int64 `json:"notes"`
	Playlists      int64 `json:"playlists"`
	TotalWatchTime int64 `json:"total_watch_time"`
}

func (s *Service) Stats(userID uint) (*UserStats, error) {
	videos, err := s.repo.CountVideos(userID)
	if err != nil {
		return nil, err
	}
	notes, err := s.repo.CountNotes(userID)
	if err != nil {
		return nil, err
	}
	playlists, err := s.repo.CountPlaylists(userID)
	if err != nil {
		return nil, err
	}
	watchTime, err := s.repo.SumWatchTime(userID)
	if err != nil {
		return nil, err
	}
	return &UserStats{
		SavedVideos:    videos,
		Notes:          notes,
		Playlists:      playlists,
		TotalWatchTime: watchTime,
	}, nil
}

// Token issues a signed bearer token for the user.
func (s *Service) Token(u *models.User) (string, error) {
	ttl := time.Duration(s.cfg.JWTTTLHours) * time.Hour
	claims := models.Claims{
		UserID: u.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// validatePassword enforces the minimum strength rule: at least six
// characters including a letter and a digit.
func validatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: password must contain a letter and a digit", ErrValidation)
	}
	return nil
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

func wrapDuplicate(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	}
	return err
}

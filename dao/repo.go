package dao

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"studytube/models"
)

type Repo struct {
	db  *gorm.DB
	rdb *redis.Client
}

func New(db *gorm.DB, rdb *redis.Client) *Repo {
	return &Repo{db: db, rdb: rdb}
}

// WithTx returns a Repo bound to the given transaction handle.
func (r *Repo) WithTx(tx *gorm.DB) *Repo {
	return &Repo{db: tx, rdb: r.rdb}
}

// Transaction runs fn with a Repo bound to one database transaction.
func (r *Repo) Transaction(fn func(txr *Repo) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

func (r *Repo) CreateUser(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *Repo) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetUserByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) UpdateUser(u *models.User) error {
	return r.db.Save(u).Error
}

// Cache helpers. Used by the youtube search cache; callers treat failures as
// cache misses.
func (r *Repo) CacheSet(ctx context.Context, key string, val string, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, val, ttl).Err()
}

func (r *Repo) CacheGet(ctx context.Context, key string) (string, error) {
	return r.rdb.Get(ctx, key).Result()
}

package mdb

import (
	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"studytube/config"
	"studytube/models"
)

func InitGorm(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.MysqlDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func InitRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
}

func AutoMigrate(db *gorm.DB) error {
	log.Info("running auto migrate...")
	return db.AutoMigrate(
		&models.User{},
		&models.SavedVideo{},
		&models.StudyNote{},
		&models.Playlist{},
		&models.PlaylistVideo{},
	)
}

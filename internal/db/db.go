package db

import (
	"time"

	"webchat/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect 建立 Postgres 连接；数据库容器可能比应用起得慢，这里轮询等待。
func Connect(dsn string) (*gorm.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= 10; attempt++ {
		gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err == nil {
			sqlDB, err2 := gdb.DB()
			if err2 == nil {
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetMaxOpenConns(20)
				sqlDB.SetConnMaxLifetime(time.Hour)
				return gdb, nil
			}
			lastErr = err2
		} else {
			lastErr = err
		}
		log.Warn().Err(lastErr).Int("attempt", attempt).Msg("db not ready, retrying")
		time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
	}
	return nil, lastErr
}

// Migrate 迁移 users 和 messages 两张表。
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&models.User{}, &models.Message{})
}

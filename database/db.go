package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func InitDatabase(ctx context.Context) error {
	if db != nil {
		return nil
	}
	log.FromContext(ctx).Debug("Initializing database")
	openDb, err := gorm.Open(gormlite.Open("data/mediadex.db"), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}
	db = openDb
	if err := db.AutoMigrate(&IndexChannel{}); err != nil {
		return err
	}
	channels, err := GetAllIndexChannels(ctx)
	if err != nil {
		return err
	}
	for _, channel := range channels {
		if channel.Enabled {
			watch(channel.ChatID)
		}
	}
	return nil
}

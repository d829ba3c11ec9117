package database

import (
	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// IndexChannel is a channel whose posts get indexed. Rows come from the
// config channel list and from /add.
type IndexChannel struct {
	ChatID   int64  `gorm:"primaryKey" json:"chat_id"`
	Title    string `json:"title"`
	Username string `json:"username"`
	Enabled  bool   `gorm:"default:true" json:"enabled"`
}

func (ic *IndexChannel) AfterSave(tx *gorm.DB) error {
	if ic.ChatID == 0 {
		log.FromContext(tx.Statement.Context).Warnf("AfterSave IndexChannel: chat_id is 0")
		return nil
	}
	if ic.Enabled {
		watch(ic.ChatID)
	} else {
		unwatch(ic.ChatID)
	}
	return nil
}

func (ic *IndexChannel) BeforeDelete(tx *gorm.DB) error {
	if ic.ChatID == 0 {
		log.FromContext(tx.Statement.Context).Warnf("BeforeDelete IndexChannel: chat_id is 0")
		return nil
	}
	unwatch(ic.ChatID)
	return nil
}

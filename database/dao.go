package database

import "context"

func UpsertIndexChannel(ctx context.Context, channel *IndexChannel) error {
	if err := db.WithContext(ctx).Save(channel).Error; err != nil {
		return err
	}
	return nil
}

func GetIndexChannel(ctx context.Context, chatID int64) (*IndexChannel, error) {
	var channel IndexChannel
	if err := db.WithContext(ctx).Where("chat_id = ?", chatID).First(&channel).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func DeleteIndexChannel(ctx context.Context, chatID int64) error {
	if err := db.WithContext(ctx).Where("chat_id = ?", chatID).
		Delete(&IndexChannel{ChatID: chatID}).Error; err != nil {
		// https://github.com/go-gorm/gorm/issues/5663
		watch(chatID) // rollback
		return err
	}
	return nil
}

func GetAllIndexChannels(ctx context.Context) ([]*IndexChannel, error) {
	var channels []*IndexChannel
	if err := db.WithContext(ctx).Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

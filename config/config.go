package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type EngineConfig struct {
	// "meilisearch" or "bleve"
	Type  string `toml:"type" mapstructure:"type"`
	Url   string `toml:"url" mapstructure:"url"`
	Key   string `toml:"key" mapstructure:"key"`
	Index string `toml:"index" mapstructure:"index"`
	Path  string `toml:"path" mapstructure:"path"`
}

type ApiConfig struct {
	Enable bool   `toml:"enable" mapstructure:"enable"`
	Addr   string `toml:"addr" mapstructure:"addr"`
	Key    string `toml:"key" mapstructure:"key"`
}

type AppConfig struct {
	AppID    int    `toml:"app_id" mapstructure:"app_id"`
	AppHash  string `toml:"app_hash" mapstructure:"app_hash"`
	BotToken string `toml:"bot_token" mapstructure:"bot_token"`
	// Phone of the user account used by the backfill command. The bot
	// itself cannot page channel history.
	Phone string `toml:"phone" mapstructure:"phone"`

	Admins []int64 `toml:"admins" mapstructure:"admins"`
	// Users allowed to use inline mode. Empty means everyone.
	AuthUsers []int64 `toml:"auth_users" mapstructure:"auth_users"`
	// Channels indexed from startup; more can be added with /add.
	Channels []int64 `toml:"channels" mapstructure:"channels"`

	MaxResults       int    `toml:"max_results" mapstructure:"max_results"`
	CacheTime        int    `toml:"cache_time" mapstructure:"cache_time"`
	UseCaptionFilter bool   `toml:"use_caption_filter" mapstructure:"use_caption_filter"`
	ChannelLink      string `toml:"channel_link" mapstructure:"channel_link"`
	StartMessage     string `toml:"start_message" mapstructure:"start_message"`

	Engine EngineConfig `toml:"engine" mapstructure:"engine"`
	Api    ApiConfig    `toml:"api" mapstructure:"api"`
}

var C AppConfig

func Init() error {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("data")

	viper.SetEnvPrefix("mediadex")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("max_results", 10)
	viper.SetDefault("cache_time", 300)
	viper.SetDefault("use_caption_filter", false)
	viper.SetDefault("start_message", "Hi! Send me an inline query to search indexed files.")
	viper.SetDefault("engine.type", "meilisearch")
	viper.SetDefault("engine.url", "http://localhost:7700")
	viper.SetDefault("engine.index", "mediadex")
	viper.SetDefault("engine.path", "data/bleve")
	viper.SetDefault("api.addr", ":8080")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	if err := viper.Unmarshal(&C); err != nil {
		return err
	}
	if C.BotToken == "" {
		return errors.New("bot_token is required")
	}
	if C.MaxResults < 1 || C.MaxResults > 50 {
		// telegram caps inline answers at 50 results
		C.MaxResults = 10
	}
	return nil
}

package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/charmbracelet/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/krau/mediadex/api"
	"github.com/krau/mediadex/bot"
	"github.com/krau/mediadex/config"
	"github.com/krau/mediadex/database"
	"github.com/krau/mediadex/engine"
)

func run() {
	if err := config.Init(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := os.MkdirAll(filepath.Join("data", "logs"), os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	logger := log.NewWithOptions(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   bot.LogFilePath,
		MaxBackups: 3,
		MaxAge:     7,
	}), log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		ReportCaller:    true,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx = log.WithContext(ctx, logger)

	if err := database.InitDatabase(ctx); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}

	searcher, err := engine.NewEngine(ctx)
	if err != nil {
		logger.Fatalf("Failed to create engine: %v", err)
	}

	b, err := bot.NewBot(ctx, searcher)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	if config.C.Api.Enable {
		api.Serve(config.C.Api.Addr)
		logger.Infof("API server started at %s", config.C.Api.Addr)
	}
	b.Start(ctx)

	if err := searcher.Close(); err != nil {
		logger.Errorf("Failed to close engine: %v", err)
	}
}

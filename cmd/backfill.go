package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/krau/mediadex/config"
	"github.com/krau/mediadex/database"
	"github.com/krau/mediadex/engine"
	"github.com/krau/mediadex/userclient"
	"github.com/spf13/cobra"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill [chat]",
	Short: "Index the message history of registered channels",
	Long: `Index existing channel history into the search engine.

The bot only sees posts made while it runs; this command walks the full
history using a user account session (set phone in the config). With no
argument it backfills every registered channel, otherwise only the given
channel ID or @username.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Init(); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := os.MkdirAll("data", os.ModePerm); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		logger := log.NewWithOptions(os.Stdout, log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
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
		defer searcher.Close()
		uc, err := userclient.NewUserClient(ctx)
		if err != nil {
			logger.Fatalf("Failed to create user client: %v", err)
		}
		defer uc.Close()

		if len(args) == 1 {
			err = uc.BackfillChannel(ctx, searcher, args[0])
		} else {
			err = uc.BackfillAll(ctx, searcher)
		}
		if err != nil {
			logger.Fatalf("Backfill failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(backfillCmd)
}

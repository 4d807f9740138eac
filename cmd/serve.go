package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/kasuboski/renamez/config"
	"github.com/kasuboski/renamez/pkg/logger"
	"github.com/kasuboski/renamez/pkg/storage"
	"github.com/kasuboski/renamez/pkg/storage/sqlite"
	"github.com/kasuboski/renamez/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the parser and history api",
	Long:  `start the parser and history api`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatalw("failed to read configurations", "error", err)
		}

		var history storage.RenameStorage
		if cfg.Storage.FilePath != "" {
			store, err := sqlite.New(ctx, cfg.Storage.FilePath)
			if err != nil {
				log.Fatalw("failed to create storage connection", "error", err)
			}
			defer store.Close()

			err = store.RunMigrations(ctx)
			if err != nil {
				log.Fatalw("failed to run migrations", "error", err)
			}

			history = store
		}

		srv := server.New(log, history, server.WithRateLimit(cfg.Server.RateLimit, cfg.Server.Burst))
		if err := srv.Serve(ctx, cfg.Server.Port); err != nil {
			log.Errorw("server stopped", "error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

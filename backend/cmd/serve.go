package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"englishhub/backend/config"
	"englishhub/backend/routes"
	"englishhub/backend/utils"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger, err := utils.InitLogger(cfg.LogMode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync()

		db, err := utils.InitDB(cfg)
		if err != nil {
			logger.Error("database init failed", "error", err)
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		app := routes.NewApp(cfg, db, logger)

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server starting", "port", cfg.ServerPort, "env", cfg.Env, "db_driver", cfg.DBDriver)
			errCh <- app.Listen(":" + cfg.ServerPort)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Info("shutting down", "signal", sig.String())
			return app.ShutdownWithTimeout(shutdownTimeout)
		case err := <-errCh:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

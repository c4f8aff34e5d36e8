package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"promto/internal/affiliate"
	"promto/internal/campaign"
	"promto/internal/config"
	"promto/internal/logging"
	"promto/internal/media"
	"promto/internal/preflight"
	"promto/internal/productpage"
	"promto/internal/search"
	"promto/internal/server"
	"promto/internal/services/aliexpress"
	"promto/internal/services/openai"
)

func newServeCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, path, exists, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			if exists {
				logger.Info("configuration loaded", logging.String("path", path))
			} else {
				logger.Info("no configuration file found, using defaults", logging.String("probed", path))
			}

			lock := flock.New(cfg.LockFilePath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return errors.New("another promto instance is already running")
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.Warn("failed to release instance lock", logging.Error(err))
				}
			}()

			for _, result := range preflight.RunAll(cfg) {
				if result.Passed {
					logger.Debug("preflight ok",
						logging.String("check", result.Name),
						logging.String("detail", result.Detail))
					continue
				}
				logger.Warn("preflight failed",
					logging.String("check", result.Name),
					logging.String("detail", result.Detail))
			}

			aliClient := aliexpress.NewClient(cfg.AliExpress)
			aiClient := openai.NewClient(cfg.OpenAI)
			composer := campaign.NewComposer(
				productpage.NewFinder(),
				media.NewFetcher(),
				aiClient,
				media.NewBuilder(cfg.Media.FFmpegBinary, cfg.Server.VideoDir, cfg.Server.TmpDir, logger),
				logger,
			)

			srv, err := server.New(server.Options{
				Bind:      cfg.Server.Bind,
				PublicDir: cfg.Server.PublicDir,
				VideoDir:  cfg.Server.VideoDir,
				Finder:    search.NewFinder(aliClient, logger),
				Resolver:  affiliate.NewResolver(aliClient, logger),
				Composer:  composer,
				Ideas:     aiClient,
				Logger:    logger,
			})
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			if err := srv.Start(ctx); err != nil {
				return fmt.Errorf("start server: %w", err)
			}
			defer srv.Stop()

			<-ctx.Done()
			logger.Info("shutting down")
			return nil
		},
	}
}

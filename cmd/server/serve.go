package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"user-center/internal/bootstrap"
	"user-center/internal/router"
	"user-center/internal/session"

	"github.com/spf13/cobra"
)

var autoMigrate bool

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务与定时任务",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := bootstrap.NewApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		if autoMigrate {
			if err := app.Migrate(ctx); err != nil {
				return err
			}
		}

		store, err := session.NewStore(cfg)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.Server.GetAddress(),
			Handler:           router.SetupRouter(cfg, logger, store, app.UserService),
			ReadHeaderTimeout: 10 * time.Second,
		}

		app.Scheduler.Start()
		defer app.Scheduler.Stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Infof("服务器启动在 %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("启动服务器失败: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("正在关闭服务器")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("关闭服务器失败: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "启动前迁移数据库并初始化管理员")
	rootCmd.AddCommand(serveCmd)
}

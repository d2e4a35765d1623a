package main

import (
	"user-center/internal/bootstrap"
	"user-center/internal/jobs"

	"github.com/spf13/cobra"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "立即刷新推荐用户缓存",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		app, err := bootstrap.NewApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		return app.Scheduler.RunByName(cmd.Context(), jobs.RecommendRefreshJobName)
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

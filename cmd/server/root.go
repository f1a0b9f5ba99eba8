package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/vytor/dsamastery/internal/config"
	"github.com/vytor/dsamastery/internal/logger"
)

var (
	cfg      config.Config
	inMemory bool
)

var rootCmd = &cobra.Command{
	Use:   "dsamastery",
	Short: "Track progress through a data structures and algorithms curriculum",
	Long: `dsamastery records concepts learned and problems solved against a fixed
DSA curriculum, keeps a study streak, and serves the dashboard analytics
over a local JSON API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}

		log := logger.New(
			logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
			logger.WithColors(true),
		)
		logger.SetDefault(log)
		cmd.SetContext(logger.NewContext(commandContext(cmd), log))
		return nil
	},
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&inMemory, "memory", false, "keep progress in memory instead of the sqlite database")
}

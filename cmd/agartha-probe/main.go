package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agartha/internal/probe"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	siteURL  string
	interval time.Duration
	timeout  time.Duration
	once     bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "agartha-probe",
	Short: "Check an Agartha site through its monitoring routes",
	Long: `agartha-probe calls /monitoring/status, /monitoring/db/write and
/monitoring/db/read on a running site, either once or on an interval.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !once && interval <= 0 {
			return fmt.Errorf("--interval must be positive, got %s", interval)
		}
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p := probe.New(siteURL, timeout, logger)
		if once {
			return p.Once(ctx)
		}
		return p.Run(ctx, interval)
	},
}

func init() {
	rootCmd.Flags().StringVar(&siteURL, "url", "http://localhost:4567", "base URL of the site")
	rootCmd.Flags().DurationVar(&interval, "interval", time.Minute, "time between checks")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "per request timeout")
	rootCmd.Flags().BoolVar(&once, "once", false, "check once and exit non-zero on failure")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

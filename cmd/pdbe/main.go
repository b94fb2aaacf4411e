package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fakhrymubarak/pdbe-client/internal/config"
)

var (
	// Global flags
	verbose    bool
	offline    bool
	jsonOutput bool
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "pdbe",
	Short: "Query the PDBe REST API",
	Long: `pdbe fetches entry summaries, citations, validation outliers, UniProt
mappings, secondary structure, search results and UniProt graph data from
the Protein Data Bank in Europe, and can serve the same lookups over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		config.SetLogger(logger.Sugar())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = config.GetLogger().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall timeout of a command")
	summaryCmd.Flags().BoolVar(&offline, "offline", false, "Use the bundled entry data instead of the API")

	rootCmd.AddCommand(
		summaryCmd,
		citationsCmd,
		outliersCmd,
		outlierResiduesCmd,
		mappingsCmd,
		mapResidueCmd,
		secondaryStructureCmd,
		searchCmd,
		sequenceSearchCmd,
		ligandSitesCmd,
		interfaceResiduesCmd,
		superposeCmd,
		serveCmd,
	)
}

// commandContext is cancelled on SIGINT/SIGTERM or when --timeout elapses.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

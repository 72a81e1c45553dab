// Package cli implements the casevault command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"casevault/internal/app"
	"casevault/internal/config"
	"casevault/internal/logging"
)

// Deps are the process hooks commands run against.
type Deps struct {
	// Open builds the application for commands that touch stored cases.
	Open func(ctx context.Context) (*app.App, error)
	// Now is the capture clock for previews.
	Now func() time.Time
}

// DefaultDeps opens the store named by the environment and logs to stderr
// so stdout stays clean for piping.
func DefaultDeps() Deps {
	return Deps{
		Open: func(ctx context.Context) (*app.App, error) {
			cfg := config.Load()
			logger := logging.New(os.Stderr, cfg.LogLevel, cfg.Location())
			return app.New(ctx, cfg, logger, nil)
		},
		Now: func() time.Time { return time.Now().In(config.Load().Location()) },
	}
}

func NewRootCommand(deps Deps) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "casevault",
		Short: "Inspect and export stored legal cases",
		Long: `casevault reads the case archive configured through STORE_BACKEND and
prints case lists, summaries and categorization previews.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewCasesCommand(deps))
	rootCmd.AddCommand(NewSummaryCommand(deps))
	rootCmd.AddCommand(NewCategorizeCommand(deps))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand(DefaultDeps()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func withApp(cmd *cobra.Command, deps Deps, fn func(a *app.App) error) error {
	a, err := deps.Open(cmd.Context())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer a.Close()
	return fn(a)
}

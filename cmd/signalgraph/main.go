package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/signalgraph/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "signalgraph",
		Short: "Reactive derived values over a house/room/window graph",
		Long: `signalgraph keeps derived values of an entity graph up to date.

Rooms and windows hold mutable dimensions. Volumes, surfaces and
aggregates over houses are derived reactively and recomputed only
where an input changed. The server exposes every field over HTTP and
streams its settled values over WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")

	rootCmd.AddCommand(
		serveCmd(&logLevel),
		demoCmd(&logLevel),
		initCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

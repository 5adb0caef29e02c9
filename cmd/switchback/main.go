// Command switchback serves a small demonstration app on the switchback router
// and inspects its route table.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:   "switchback",
		Short: "Route HTTP requests through layered middleware",
		Long: `switchback matches HTTP requests to routes and runs them through
middleware registered on the router, on groups of routes and on single routes.

This command serves a demonstration app and lists its routes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")

	cmd.AddCommand(
		serveCmd(&envFiles),
		routesCmd(&envFiles),
		versionCmd(),
	)

	return cmd
}

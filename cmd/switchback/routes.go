package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/switchback"
	"go.opentelemetry.io/otel/trace/noop"
)

func routesCmd(envFiles *[]string) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the routes of the demonstration app",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := switchback.LoadConfig(*envFiles...)
			if err != nil {
				return err
			}

			rt := newRouter(cfg, newLogger(cfg), prometheus.NewRegistry(), noop.NewTracerProvider())
			if err := rt.Freeze(); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "METHODS\tPATTERN\tNAME\tHANDLER")
			for _, route := range rt.Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					strings.Join(route.Methods(), ","),
					rt.BasePath()+route.Pattern(),
					route.Name(),
					route.Handler(),
				)
			}

			return w.Flush()
		},
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/logger"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func serveCmd(envFiles *[]string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demonstration app",
		Long: `Serve the demonstration app, with Prometheus metrics at /metrics.

Settings come from SWITCHBACK_ prefixed environment variables,
read after loading the dotenv files named by --env-file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := switchback.LoadConfig(*envFiles...)
			if err != nil {
				return err
			}

			if addr != "" {
				cfg.Addr = addr
			}

			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "address to listen on (default $SWITCHBACK_ADDR or :8080)")

	return cmd
}

func newLogger(cfg switchback.Config) logger.Logger {
	return logger.New(
		logger.WithEnv(cfg.Env.String()),
		logger.WithLevel(logger.NewLogLevel(cfg.LogLevel)),
		logger.WithSentry(cfg.SentryDSN),
	)
}

// serve runs the app until ctx ends or the process is signalled to stop.
func serve(ctx context.Context, cfg switchback.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ls := newLogger(cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			ls.Warn(err.Error(), &logger.LogContext{Error: err})
		}
	}()

	rt := newRouter(cfg, ls, reg, tp)
	if err := rt.Freeze(); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", rt)

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: middleware.Chain(
			mux,
			handlers.ProxyHeaders,
			middleware.ForceHTTPS(cfg.Env),
			middleware.CORS(cfg.CORSOrigin),
		),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		ls.Info(fmt.Sprintf("running web server at %s", srv.Addr), nil)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("could not listen: %w", err)
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		ls.Info("shutting down web server", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	ls.Info("web server shutdown successfully", nil)
	return nil
}

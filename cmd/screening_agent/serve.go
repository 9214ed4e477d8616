package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/searchfind/screening-engine/internal/logging"
	"github.com/searchfind/screening-engine/internal/server"
	"github.com/searchfind/screening-engine/internal/server/ratelimit"
	"github.com/searchfind/screening-engine/internal/service"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: "Start an HTTP server that exposes the screening engine as REST endpoints. " +
		"Postgres persistence and the redis cache are enabled by database.url and redis.address.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	rt, err := service.Build(cmd.Context(), cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer rt.Close()

	srv := server.New(server.Options{
		Server:    cfg.Server,
		RateLimit: ratelimit.FromSettings(cfg.RateLimit),
		Service:   rt.Service,
		Metrics:   rt.Metrics,
		Logger:    logger,
	})
	return srv.Start()
}

package service

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/searchfind/screening-engine/internal/cache"
	"github.com/searchfind/screening-engine/internal/config"
	"github.com/searchfind/screening-engine/internal/db"
	"github.com/searchfind/screening-engine/internal/fetch"
	"github.com/searchfind/screening-engine/internal/ingestion"
	"github.com/searchfind/screening-engine/internal/logging"
	"github.com/searchfind/screening-engine/internal/metrics"
	"github.com/searchfind/screening-engine/internal/screening"
	"github.com/searchfind/screening-engine/internal/textproc"
	"github.com/searchfind/screening-engine/internal/validation"
)

// Runtime is a Service together with the resources it was built on.
type Runtime struct {
	Service *Service
	Metrics *metrics.Metrics
	DB      *db.DB
	Cache   *cache.Cache
}

// Close releases the database pool and the redis connection.
func (r *Runtime) Close() {
	if r.Cache != nil {
		_ = r.Cache.Close()
	}
	if r.DB != nil {
		r.DB.Close()
	}
}

// Build connects the configured backing services and assembles a Service.
// Empty database or redis settings leave that concern disabled.
func Build(ctx context.Context, cfg *config.Config, logger logging.Logger, reg *prometheus.Registry) (*Runtime, error) {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	rt := &Runtime{Metrics: metrics.New(reg)}

	if cfg.Database.URL != "" {
		store, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		rt.DB = store
		logger.Info("database connected", nil)
	}

	if cfg.Redis.Address != "" {
		c, err := cache.Connect(ctx, cache.Config{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		rt.Cache = c
		logger.Info("redis connected", map[string]interface{}{"address": cfg.Redis.Address})
	}

	fetcherCfg := fetch.FetcherConfig{
		Options: &fetch.Options{Timeout: cfg.Fetch.Timeout, UserAgent: fetch.DefaultUserAgent},
		Logger:  logger,
	}
	if rt.Cache != nil {
		fetcherCfg.Cache = rt.Cache
	}
	if cfg.Fetch.UseBrowser {
		fetcherCfg.Renderer = fetch.NewBrowserRenderer(logger)
	}

	processor := textproc.New()
	validator := validation.NewContentValidator(processor)
	parser := ingestion.NewParser(ingestion.Options{Fetcher: fetch.NewFetcher(fetcherCfg), Logger: logger})

	var clock screening.Clock
	if cfg.Screening.FixedYear > 0 {
		clock = screening.FixedYear(cfg.Screening.FixedYear)
	}

	deps := Deps{
		Validator: validator,
		Processor: processor,
		Parser:    parser,
		Clock:     clock,
		Screener: screening.New(screening.Options{
			Validator:       validator,
			Processor:       processor,
			Parser:          parser,
			Clock:           clock,
			Logger:          logger,
			BulkConcurrency: cfg.Screening.BulkConcurrency,
		}),
		Metrics: rt.Metrics,
		Logger:  logger,
	}
	if rt.Cache != nil {
		deps.Cache = rt.Cache
	}
	if rt.DB != nil {
		deps.Store = rt.DB
	}

	rt.Service = New(deps)
	return rt, nil
}

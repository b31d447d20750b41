package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/wizqo2024/wizqo-sub002/internal/planner"
	"github.com/wizqo2024/wizqo-sub002/internal/validator"
	"github.com/wizqo2024/wizqo-sub002/internal/videos"
	"github.com/wizqo2024/wizqo-sub002/internal/videos/youtube"
	"github.com/wizqo2024/wizqo-sub002/shared/ai"
	"github.com/wizqo2024/wizqo-sub002/shared/config"
	"github.com/wizqo2024/wizqo-sub002/shared/logging"
	"github.com/wizqo2024/wizqo-sub002/shared/monitoring"
	"github.com/wizqo2024/wizqo-sub002/shared/storage"
)

// app holds the wired services shared by every command.
type app struct {
	cfg       *config.Config
	log       *logging.Logger
	monitor   *monitoring.Monitor
	metrics   *monitoring.Metrics
	cache     storage.ValidationCache
	history   storage.VideoHistory
	plans     storage.PlanRepository
	progress  storage.ProgressRepository
	validator *validator.Validator
	selector  *videos.Selector
	planner   *planner.Generator

	closers []func()
}

type appOptions struct {
	ensureSchema bool
}

func newApp(ctx context.Context, cfg *config.Config, log *logging.Logger, opts appOptions) (*app, error) {
	a := &app{
		cfg:     cfg,
		log:     log,
		monitor: monitoring.NewMonitor(log),
		metrics: monitoring.NewMetrics(),
	}

	llm, err := ai.New(ctx, &cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	if llm != nil {
		log.Info("LLM client initialized", "provider", llm.Name(), "model", cfg.AI.Model)
	} else {
		log.Info("no LLM configured, using rule-based validation and template plans")
	}

	a.cache = a.newCache(ctx)

	history, err := storage.NewFileVideoHistory(cfg.Storage.DataDir, cfg.HistoryWindow())
	if err != nil {
		return nil, err
	}
	a.history = history
	log.Info("video history initialized", "entries", history.Size())

	if err := a.newStore(ctx, opts.ensureSchema); err != nil {
		a.Close()
		return nil, err
	}

	var searcher videos.Searcher
	client, err := youtube.NewClient(ctx, &cfg.YouTube)
	switch {
	case err == nil:
		searcher = client
	case errors.Is(err, youtube.ErrMissingAPIKey):
		log.Warn("YOUTUBE_API_KEY not set, plans will use fallback videos")
	default:
		a.Close()
		return nil, err
	}

	a.validator = validator.New(
		validator.WithCache(a.cache),
		validator.WithLLM(llm),
		validator.WithLogger(log.With("component", "validator")),
		validator.WithMetrics(a.metrics),
		validator.WithMonitor(a.monitor),
	)
	a.selector = videos.NewSelector(searcher, a.history, log.With("component", "videos"), a.metrics, a.monitor)
	a.planner = planner.New(planner.Options{
		LLM:          llm,
		Videos:       a.selector,
		AffiliateTag: cfg.Affiliate.AmazonTag,
		Logger:       log.With("component", "planner"),
		Metrics:      a.metrics,
		Monitor:      a.monitor,
	})
	return a, nil
}

func (a *app) newCache(ctx context.Context) storage.ValidationCache {
	ttl := a.cfg.Validation.CacheTTL
	if a.cfg.Storage.RedisAddr == "" {
		return storage.NewMemoryValidationCache(ttl)
	}

	redisCache, err := storage.NewRedisValidationCache(ctx, a.cfg.Storage.RedisAddr, ttl)
	if err != nil {
		a.log.Warn("redis unavailable, using in-memory validation cache", "addr", a.cfg.Storage.RedisAddr, "error", err)
		return storage.NewMemoryValidationCache(ttl)
	}
	a.closers = append(a.closers, func() { _ = redisCache.Close() })
	a.log.Info("validation cache backed by redis", "addr", a.cfg.Storage.RedisAddr)
	return redisCache
}

func (a *app) newStore(ctx context.Context, ensureSchema bool) error {
	if a.cfg.Storage.DatabaseURL == "" {
		a.log.Warn("DATABASE_URL not set, plans and progress are kept in memory")
		store := storage.NewMemoryStore()
		a.plans, a.progress = store, store
		return nil
	}

	store, err := storage.NewPostgresStore(ctx, a.cfg.Storage.DatabaseURL)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, store.Close)
	if ensureSchema {
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	a.plans, a.progress = store, store
	a.log.Info("postgres store connected")
	return nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/seedtech/candidate-matcher/internal/ats"
	"github.com/seedtech/candidate-matcher/internal/cache"
	"github.com/seedtech/candidate-matcher/internal/config"
	"github.com/seedtech/candidate-matcher/internal/llm"
	"github.com/seedtech/candidate-matcher/internal/logger"
	"github.com/seedtech/candidate-matcher/internal/matching"
	"github.com/seedtech/candidate-matcher/internal/scoring"
	"github.com/seedtech/candidate-matcher/internal/similarity"
	"github.com/seedtech/candidate-matcher/internal/store"
)

// app wires configuration into the full dependency graph. Redis, Gemini and
// Workable are optional; the matcher degrades to neutral similarity scores
// and no fast cache when they are absent.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *store.Store
	redis   *cache.Redis
	oracle  llm.Client
	matcher *matching.Matcher
	ats     *ats.Client
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.JSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	a := &app{cfg: cfg, log: log}

	a.store, err = store.Connect(ctx, cfg.DatabaseURL, cfg.MaxCacheEntries, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := a.store.InitSchema(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	if cfg.RedisURL != "" {
		a.redis, err = cache.New(ctx, cfg.RedisURL, cfg.CacheExpiry)
		if err != nil {
			// The durable tier still serves lookups, so a dead Redis only
			// costs latency.
			log.Warn("redis unavailable, continuing without fast cache", zap.Error(err))
			a.redis = nil
		}
	}

	if cfg.GeminiAPIKey != "" {
		// The client outlives the boot context, so it gets its own.
		a.oracle, err = llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.Model)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
	} else {
		log.Warn("GEMINI_API_KEY not set, uncached similarities resolve to the neutral score")
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.APICallDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.APICallDelay), 1)
	}

	var fast similarity.FastCache
	if a.redis != nil {
		fast = a.redis
	}
	resolver := similarity.NewResolver(a.store, fast, a.oracle, limiter, log)
	engine := scoring.NewEngine(resolver, log)
	a.matcher = matching.New(engine, a.store, log)

	if cfg.WorkableAPIKey != "" {
		a.ats = ats.NewClient(cfg.WorkableSubdomain, cfg.WorkableAPIKey, cfg.APICallDelay, log)
	} else {
		log.Info("WORKABLE_API_KEY not set, ATS endpoints disabled")
	}

	return a, nil
}

// Close releases all held connections. Safe on a partially built app.
func (a *app) Close() {
	if a.oracle != nil {
		if err := a.oracle.Close(); err != nil {
			a.log.Warn("closing gemini client failed", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("closing redis failed", zap.Error(err))
		}
	}
	if a.store != nil {
		a.store.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func bootTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

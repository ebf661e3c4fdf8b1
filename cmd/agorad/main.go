package main

import (
	"context"
	"math/rand/v2"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/agorasim/agora/internal/api"
	"github.com/agorasim/agora/internal/buildconfig"
	"github.com/agorasim/agora/internal/config"
	"github.com/agorasim/agora/internal/domain"
	"github.com/agorasim/agora/internal/llm"
	"github.com/agorasim/agora/internal/randx"
	"github.com/agorasim/agora/internal/sim"
	"github.com/agorasim/agora/internal/store"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger := newLogger(config.LogLevel())
	defer func() { _ = logger.Sync() }()

	logger.Info("agora starting",
		zap.String("version", buildconfig.Version()),
		zap.String("commit", buildconfig.Commit()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Persistence is optional: a missing or unreachable database degrades
	// to an in-memory run rather than refusing to start.
	var pool *pgxpool.Pool
	var mirror domain.Mirror = domain.NopMirror{}
	if dbURL := config.DatabaseURL(); dbURL == "" {
		logger.Warn("DATABASE_URL not set, running without persistence")
	} else {
		p, err := store.Connect(ctx, dbURL)
		if err != nil {
			logger.Error("database connection failed, continuing without persistence", zap.Error(err))
		} else {
			st := store.New(p)
			if err := st.EnsureSchema(ctx, config.BeliefDim()); err != nil {
				logger.Error("schema setup failed, continuing without persistence", zap.Error(err))
				p.Close()
			} else {
				pool = p
				mirror = st
				defer pool.Close()
				logger.Info("connected to database")
			}
		}
	}

	seed := config.Seed()
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Info("simulation seed", zap.Uint64("seed", seed))

	// The text service draws its fallbacks from a separate stream so API
	// failures never perturb the simulation trajectory.
	provider := config.LLMProvider()
	text, err := llm.NewTextService(provider, config.OpenAIAPIKey(), randx.New(seed+1), logger)
	if err != nil {
		logger.Warn("text service initialization failed, running with placeholder prose",
			zap.String("provider", provider), zap.Error(err))
		text = domain.NopTextService{}
	} else {
		logger.Info("text service initialized", zap.String("provider", provider))
	}
	if provider == llm.ProviderNone {
		logger.Warn("running without LLM integration - using placeholder text")
	}

	params := sim.Params{
		Agents:    config.Agents(),
		BeliefDim: config.BeliefDim(),
	}
	logger.Info("initializing simulation",
		zap.Int("agents", params.Agents),
		zap.Int("belief_dim", params.BeliefDim),
	)
	model := sim.NewModel(params, randx.New(seed), text, mirror, logger)

	holder := sim.NewStateHolder()
	holder.Publish(model.Snapshot(), model.Series())

	app := api.NewApp(holder, pool, logger)
	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	runSimulation(ctx, model, holder, logger)

	// Keep serving the final state until a shutdown signal arrives.
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func runSimulation(ctx context.Context, model *sim.Model, holder *sim.StateHolder, logger *zap.Logger) {
	steps := config.Steps()
	delay := time.Duration(config.StepDelayMS()) * time.Millisecond

	for i := 0; i < steps; i++ {
		if ctx.Err() != nil {
			logger.Info("simulation interrupted", zap.Int("completed_steps", i))
			return
		}

		model.Step(ctx)
		holder.Publish(model.Snapshot(), model.Series())

		if i%12 == 0 {
			state := holder.State()
			logger.Info("yearly summary",
				zap.Int("year", i/12),
				zap.Int("agents", len(state.Agents)),
				zap.Int("essays", len(state.Essays)),
				zap.Int("schools", len(state.Schools)),
			)
		}

		if delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(delay):
			}
		}
	}

	final := holder.State()
	logger.Info("simulation completed",
		zap.Int("ticks", final.Tick),
		zap.Int("agents", len(final.Agents)),
		zap.Int("essays", len(final.Essays)),
		zap.Int("critiques", len(final.Critiques)),
		zap.Int("schools", len(final.Schools)),
	)
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

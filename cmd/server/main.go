package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Simplici0/reno.works/internal/config"
	"github.com/Simplici0/reno.works/internal/db"
	"github.com/Simplici0/reno.works/internal/format"
	"github.com/Simplici0/reno.works/internal/logging"
	"github.com/Simplici0/reno.works/internal/metrics"
	"github.com/Simplici0/reno.works/internal/migrations"
	"github.com/Simplici0/reno.works/internal/pricing"
	"github.com/Simplici0/reno.works/internal/seed"
	"github.com/Simplici0/reno.works/internal/store"
)

type server struct {
	engine    *pricing.Engine
	store     *store.Store
	metrics   *metrics.Recorder
	logger    *zap.Logger
	formatter *format.Formatter
	db        *sql.DB
}

func main() {
	cfg := config.Load()

	logger := logging.Must(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.IsDev(),
		Fields:      map[string]string{"service": "reno-server", "env": cfg.Env},
	})
	defer logger.Sync()

	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	database, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logger.Fatal("failed to open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Up(database, cfg.DBDriver); err != nil {
		logger.Fatal("failed to run database migrations", zap.Error(err))
	}

	engine, err := newEngine(cfg.PriceBookPath)
	if err != nil {
		logger.Fatal("failed to build pricing engine", zap.Error(err))
	}
	if missing := engine.Assemblies().CheckReferences(engine.Catalog()); len(missing) > 0 {
		logger.Warn("assemblies reference unknown catalog items", zap.Strings("codes", missing))
	}

	stats, err := seed.Run(database, seed.FromEngine(cfg.DBDriver, engine))
	if err != nil {
		logger.Fatal("failed to record pricing snapshot", zap.Error(err))
	}
	logger.Info("pricing snapshot recorded",
		zap.String("version", engine.Version()),
		zap.Int("inserts", stats.Inserts),
		zap.Int("updates", stats.Updates),
	)

	formatter, err := format.New(cfg.Locale)
	if err != nil {
		logger.Warn("invalid display locale, using es-ES", zap.String("locale", cfg.Locale), zap.Error(err))
		formatter, _ = format.New("es-ES")
	}

	srv := &server{
		engine:    engine,
		store:     store.New(database, cfg.DBDriver),
		metrics:   metrics.New(prometheus.DefaultRegisterer),
		logger:    logger,
		formatter: formatter,
		db:        database,
	}

	addr := ":" + cfg.Port
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(cfg.MaxInFlight),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("listening", zap.String("addr", addr))
	if err := httpServer.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newEngine(priceBookPath string) (*pricing.Engine, error) {
	if priceBookPath == "" {
		return pricing.NewEngine()
	}
	book, err := pricing.LoadBook(priceBookPath)
	if err != nil {
		return nil, err
	}
	return pricing.NewEngine(pricing.WithBook(book))
}

func (s *server) routes(maxInFlight int) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if maxInFlight > 0 {
		r.Use(middleware.Throttle(maxInFlight))
	}

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/catalog", s.handleCatalog)
	r.Get("/assemblies", s.handleAssemblies)
	r.Get("/options", s.handleOptions)

	r.Route("/estimates", func(r chi.Router) {
		r.Post("/", s.handleEstimateCreate)
		r.Get("/", s.handleEstimatesList)
		r.Get("/{id}", s.handleEstimateGet)
		r.Get("/{id}/text", s.handleEstimateText)
		r.Get("/{id}/boq.xlsx", s.handleEstimateExcel)
		r.Delete("/{id}", s.handleEstimateDelete)
	})
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "pricingVersion": s.engine.Version()})
}

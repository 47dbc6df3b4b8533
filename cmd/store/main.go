package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"TechStore/internal/catalog"
	"TechStore/internal/cli"
	"TechStore/internal/metrics"
	"TechStore/internal/order"
	"TechStore/internal/persist"
	"TechStore/pkg/kit"
)

func main() {
	service := "store"
	log := kit.NewLogger(service, uuid.NewString())
	defer func() { _ = log.Sync() }()

	dataDir := getenv("DATA_DIR", "data")
	dbURL := os.Getenv("DATABASE_URL")
	opsAddr := os.Getenv("OPS_ADDR")
	metricsToken := os.Getenv("METRICS_TOKEN")

	ctx := context.Background()

	lines, err := newLineStore(ctx, dataDir, dbURL)
	if err != nil {
		log.Fatal("line store init failed", zap.Error(err))
	}

	cat := catalog.NewStore()
	led := order.NewLedger(cat)
	gw := &persist.Gateway{Lines: lines, Log: log}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	// A malformed or dangling record refuses the whole load; running on
	// a silently truncated catalog risks undetected data loss.
	start := time.Now()
	if err := gw.LoadCatalog(ctx, cat); err != nil {
		log.Fatal("catalog load failed", zap.Error(err))
	}
	if err := gw.LoadOrders(ctx, led); err != nil {
		log.Fatal("orders load failed", zap.Error(err))
	}
	m.ObserveSnapshot("load", time.Since(start))
	m.CatalogItems.Set(float64(len(cat.List())))

	var stopOps func(context.Context) error
	if opsAddr != "" {
		stopOps = kit.StartHTTPServer(opsAddr, opsHandler(service, log, reg, lines, metricsToken), log)
	}

	app := &cli.App{
		Catalog: cat,
		Orders:  led,
		Prompt:  cli.NewPrompter(os.Stdin, os.Stdout),
		Out:     os.Stdout,
		Log:     log,
		Metrics: m,
	}
	app.Run()

	start = time.Now()
	if err := gw.SaveCatalog(ctx, cat); err != nil {
		log.Error("catalog save failed", zap.Error(err))
	}
	if err := gw.SaveOrders(ctx, led); err != nil {
		log.Error("orders save failed", zap.Error(err))
	}
	m.ObserveSnapshot("save", time.Since(start))

	if stopOps != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := stopOps(shutdownCtx); err != nil {
			log.Error("ops server shutdown failed", zap.Error(err))
		}
	}
}

func newLineStore(ctx context.Context, dataDir, dbURL string) (persist.LineStore, error) {
	if dbURL == "" {
		return persist.NewFileStore(dataDir), nil
	}

	db, err := persist.OpenPostgres(dbURL)
	if err != nil {
		return nil, err
	}
	pg := persist.NewPostgresStore(db)
	if err := pg.Init(ctx); err != nil {
		return nil, err
	}
	return pg, nil
}

func opsHandler(service string, log *zap.Logger, reg *prometheus.Registry, lines persist.LineStore, metricsToken string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(log))

	httpMetrics := kit.NewMetrics(reg)
	r.Use(httpMetrics.Middleware(service, kit.ChiRoutePatternOrPath))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 1*time.Second)
		defer cancel()

		if err := lines.Ping(ctx); err != nil {
			log.Warn("readyz failed", zap.Error(err))
			kit.WriteError(w, req, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.With(kit.MetricsAuth(metricsToken)).
		Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package main

import (
	"context"
	"database/sql"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/retailpulse/retailpulse/internal/app"
	"github.com/retailpulse/retailpulse/internal/dashboard"
	"github.com/retailpulse/retailpulse/internal/dashboard/svg"
	"github.com/retailpulse/retailpulse/internal/dataset"
	"github.com/retailpulse/retailpulse/internal/platform/cache"
	"github.com/retailpulse/retailpulse/internal/platform/db"
	"github.com/retailpulse/retailpulse/internal/session"
	"github.com/retailpulse/retailpulse/internal/store"
	"github.com/retailpulse/retailpulse/internal/view"
)

type lineRenderer struct{}

func (lineRenderer) MultiLine(width, height int, series []svg.Series, labels []string, opts svg.LineOpts) (template.HTML, error) {
	return svg.MultiLine(width, height, series, labels, opts)
}

type barRenderer struct{}

func (barRenderer) Bars(width, height int, values []float64, labels []string, opts svg.BarOpts) (template.HTML, error) {
	return svg.Bars(width, height, values, labels, opts)
}

type pieRenderer struct{}

func (pieRenderer) Pie(width, height int, values []float64, labels []string, opts svg.PieOpts) (template.HTML, error) {
	return svg.Pie(width, height, values, labels, opts)
}

type mapRenderer struct{}

func (mapRenderer) USMap(width, height int, revenue map[string]float64, opts svg.MapOpts) (template.HTML, error) {
	return svg.USMap(width, height, revenue, opts)
}

// openStore connects to the configured backing store with bounded retries.
func openStore(ctx context.Context, cfg *app.Config) (store.Store, error) {
	if cfg.StoreDriver == app.DriverPostgres {
		pool, err := db.Connect(ctx, cfg.StoreConnectRetries, cfg.StoreConnectBackoff, func(ctx context.Context) (*pgxpool.Pool, error) {
			return db.NewPostgres(ctx, cfg.PGDSN)
		})
		if err != nil {
			return nil, err
		}
		return store.NewPostgresStore(pool), nil
	}
	handle, err := db.Connect(ctx, cfg.StoreConnectRetries, cfg.StoreConnectBackoff, func(ctx context.Context) (*sql.DB, error) {
		return db.NewSQLite(ctx, cfg.SQLitePath)
	})
	if err != nil {
		return nil, err
	}
	return store.NewSQLiteStore(handle), nil
}

// loadDataset fetches both projections concurrently and runs enrichment.
func loadDataset(ctx context.Context, logger *slog.Logger, st store.Store) (*dataset.Dataset, error) {
	var (
		orders   []store.OrderRecord
		products []store.ProductRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = st.Orders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = st.Products(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := dataset.Enrich(orders, products)
	logger.Info("dataset loaded",
		slog.Int("orders", len(data.Orders)),
		slog.Int("aggregate_rows", len(data.Aggregate)),
		slog.Int("malformed_orders", data.Dropped.MalformedOrders),
		slog.Int("malformed_products", data.Dropped.MalformedProducts),
		slog.Int("unmapped_states", data.Dropped.UnmappedStates),
	)
	return data, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("store close", slog.Any("error", err))
		}
	}()

	data, err := loadDataset(ctx, logger, st)
	if err != nil {
		logger.Error("load dataset", slog.Any("error", err))
		os.Exit(1)
	}

	var selections *session.SelectionStore
	if cfg.RedisAddr != "" {
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis unavailable, selections held in process", slog.Any("error", err))
			selections = session.NewSelectionStore(nil, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Warn("redis close", slog.Any("error", err))
				}
			}()
			selections = session.NewSelectionStore(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())
		}
	} else {
		selections = session.NewSelectionStore(nil, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())
	}

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	dashboardHandler := dashboard.NewHandler(logger, data, templates, dashboard.Renderers{
		Line: lineRenderer{},
		Bar:  barRenderer{},
		Pie:  pieRenderer{},
		Map:  mapRenderer{},
	}, selections)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		DashboardHandler: dashboardHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

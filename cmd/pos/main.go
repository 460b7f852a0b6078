package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	cartapp "github.com/dwikikusuma/warung-pos/internal/cart/app"
	cartdomain "github.com/dwikikusuma/warung-pos/internal/cart/domain"
	cartadapter "github.com/dwikikusuma/warung-pos/internal/cart/infra/adapter"

	catalogapp "github.com/dwikikusuma/warung-pos/internal/catalog/app"
	catsqlite "github.com/dwikikusuma/warung-pos/internal/catalog/infra/sqlite"

	checkoutapp "github.com/dwikikusuma/warung-pos/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/warung-pos/internal/checkout/infra/adapter"

	txapp "github.com/dwikikusuma/warung-pos/internal/transaction/app"
	txsqlite "github.com/dwikikusuma/warung-pos/internal/transaction/infra/sqlite"

	"github.com/dwikikusuma/warung-pos/internal/httpapi"
	"github.com/dwikikusuma/warung-pos/pkg/config"
	"github.com/dwikikusuma/warung-pos/pkg/logger"
	"github.com/dwikikusuma/warung-pos/pkg/metrics"
	"github.com/dwikikusuma/warung-pos/pkg/shutdown"
	"github.com/dwikikusuma/warung-pos/pkg/sqlite"
)

const serviceName = "pos"

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   serviceName,
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db := mustDB(log, cfg.DBPath)
	defer db.Close()

	m := metrics.New(serviceName)

	// Catalog
	catalogSvc := catalogapp.NewService(catsqlite.NewProductRepo(db))
	if cfg.SeedCatalog {
		n, err := catalogSvc.SeedDefaults(ctx, catalogapp.DefaultProducts)
		if err != nil {
			log.Error("catalog seed failed", slog.Any("err", err))
			os.Exit(1)
		}
		if n > 0 {
			log.Info("default catalog loaded", slog.Int("products", n))
		}
	}

	// Transaction history
	historySvc := txapp.NewService(txsqlite.NewTransactionRepo(db), log)

	// Cart (one register, one cart)
	cartSvc := cartapp.NewService(cartdomain.NewCart(), cartadapter.NewCatalogServiceReader(catalogSvc), log)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	// Checkout (adapters)
	recorder := checkoutadapter.NewBreakerRecorder(historySvc, checkoutadapter.BreakerSettings{
		ConsecutiveFailures: uint32(cfg.BreakerFailures),
		OpenTimeout:         cfg.BreakerTimeout,
		OnStateChange: func(_, to gobreaker.State) {
			healthSrv.SetServingStatus(serviceName, servingStatus(to))
		},
	}, log)
	checkoutSvc := checkoutapp.NewService(checkoutadapter.NewCartServiceSession(cartSvc), recorder, log, m)

	ready := func() error {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer pingCancel()
		if err := db.PingContext(pingCtx); err != nil {
			return fmt.Errorf("database unreachable: %w", err)
		}
		if recorder.State() == gobreaker.StateOpen {
			return errors.New("transaction storage circuit open")
		}
		return nil
	}

	router := httpapi.NewRouter(httpapi.Handlers{
		Cart:        httpapi.NewCartHandler(cartSvc),
		Checkout:    httpapi.NewCheckoutHandler(checkoutSvc),
		Transaction: httpapi.NewTransactionHandler(historySvc),
		Product:     httpapi.NewProductHandler(catalogSvc),
	}, httpapi.RouterOptions{
		RequestTimeout: cfg.RequestTimeout,
		Metrics:        m,
		Ready:          ready,
	})

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           otelhttp.NewHandler(router, "pos-http"),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", grpcAddr))
		os.Exit(1)
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	reflection.Register(grpcServer)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		healthSrv.Shutdown()

		stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer stopCancel()

		if err := httpServer.Shutdown(stopCtx); err != nil {
			log.Error("http shutdown error", slog.Any("err", err))
		}

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopCtx.Done():
			log.Warn("graceful stop timeout, forcing stop")
			grpcServer.Stop()
		case <-stopped:
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", slog.Any("err", err))
	}
	log.Info("bye")
}

// servingStatus reports NOT_SERVING while checkouts would fail fast.
func servingStatus(s gobreaker.State) healthpb.HealthCheckResponse_ServingStatus {
	if s == gobreaker.StateOpen {
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
	return healthpb.HealthCheckResponse_SERVING
}

func mustDB(log *slog.Logger, path string) *sql.DB {
	db, err := sqlite.OpenAndMigrate(sqlite.Config{Path: path})
	if err != nil {
		log.Error("db open failed", slog.Any("err", err), slog.String("path", path))
		os.Exit(1)
	}
	return db
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"heatpump_simulator/internal/config"
	"heatpump_simulator/internal/heatload"
	"heatpump_simulator/internal/logging"
	"heatpump_simulator/internal/metrics"
	"heatpump_simulator/internal/mqtt"
	"heatpump_simulator/internal/planner"
	"heatpump_simulator/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ./config.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	data, err := loadData(cfg.Data, logger)
	if err != nil {
		return err
	}

	m := metrics.New()
	hub := ws.NewHub(logger)
	callbacks := planner.Callbacks{m, ws.NewBridge(hub, logger)}

	if cfg.MQTT.Broker != "" {
		client, err := mqtt.Connect(cfg.MQTT, logger)
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
		callbacks = append(callbacks, mqtt.NewPublisher(client, cfg.MQTT.TopicPrefix, logger))
	}

	engine := planner.New(data.climate, data.catalog, data.weather, callbacks, planner.Options{
		Simple: heatload.Simple{
			HotWaterPowerW: cfg.Estimate.HotWaterPowerW,
			ThresholdC:     cfg.Estimate.SimpleThresholdC,
		},
		Parallelism: cfg.Simulate.Parallelism,
		Logger:      logger,
	})

	handler := ws.NewHandler(hub, engine, m, logger)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(handler, m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Server.Addr).Info("starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(handler http.Handler, m *metrics.Metrics) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	r.Handle("/ws", handler)
	return r
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/faizanhussain2310/goredis/internal/config"
	"github.com/faizanhussain2310/goredis/internal/logging"
	"github.com/faizanhussain2310/goredis/internal/metrics"
	"github.com/faizanhussain2310/goredis/internal/server"
)

var log = logging.For("main")

func main() {
	defaults := config.Default()

	addr := flag.String("addr", defaults.Addr, "address to bind the TCP listener to")
	port := flag.Int("port", defaults.Port, "port to listen on")
	replicaOfHost := flag.String("replicaof-host", "", "primary host; together with -replicaof-port puts this node into replica role")
	replicaOfPort := flag.Int("replicaof-port", 0, "primary port")
	metricsAddr := flag.String("metrics-addr", "", "address to serve Prometheus /metrics on (empty disables it)")
	logLevel := flag.String("log-level", defaults.LogLevel, "log level: debug, info, warn, error")
	flag.Parse()

	logging.SetLevel(*logLevel)

	cfg := &config.Config{
		Addr:          *addr,
		Port:          *port,
		ReplicaOfHost: *replicaOfHost,
		ReplicaOfPort: *replicaOfPort,
		MetricsAddr:   *metricsAddr,
		LogLevel:      *logLevel,
	}

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		metricsSrv := m.Serve(cfg.MetricsAddr)
		log.WithField("addr", cfg.MetricsAddr).Info("metrics endpoint listening")
		defer metrics.Shutdown(metricsSrv)
	}

	srv := server.New(cfg, m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutdown signal received")
		cancel()
	}()

	if cfg.IsReplica() {
		log.WithField("master", *replicaOfHost).Info("starting as replica")
	} else {
		log.Info("starting as master")
	}

	if err := srv.Start(ctx); err != nil {
		log.WithError(err).Error("server exited with error")
		os.Exit(1)
	}

	srv.WaitIdle(5 * time.Second)
	log.Info("shutdown complete")
}

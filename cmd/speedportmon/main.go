// speedportmon polls a Speedport DSL router and records its line state.
//
// Every cycle reads the router's Status.json, extracts the DSL sync rates
// and connectivity flags, and writes them as one point to InfluxDB. The
// snapshot can optionally be mirrored to an MQTT broker. The process runs
// until it receives SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nerrad567/speedportmon/internal/infrastructure/config"
	"github.com/nerrad567/speedportmon/internal/infrastructure/influxdb"
	"github.com/nerrad567/speedportmon/internal/infrastructure/logging"
	"github.com/nerrad567/speedportmon/internal/infrastructure/mqtt"
	"github.com/nerrad567/speedportmon/internal/monitor"
	"github.com/nerrad567/speedportmon/internal/speedport"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// startupCheckTimeout bounds the informational InfluxDB ping at startup.
const startupCheckTimeout = 5 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the application logic, separated from main for testability.
//
// Returns:
//   - error: nil after a signal-driven shutdown, or a startup failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting speedportmon",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded",
		"router", cfg.Router.URL,
		"interval", cfg.Loop.Interval(),
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
	)

	writer := influxdb.NewWriter(cfg.InfluxDB)
	checkInflux(ctx, writer, log)

	opts := monitor.Options{
		Fetcher:  speedport.NewClient(cfg.Router),
		Writer:   writer,
		Interval: cfg.Loop.Interval(),
		Logger:   log,
	}

	if cfg.MQTT.Enabled() {
		mqttClient, connErr := connectMQTT(ctx, cfg.MQTT, log)
		if connErr != nil {
			log.Warn("MQTT unavailable, continuing without it", "error", connErr)
		} else {
			defer func() {
				log.Info("disconnecting from MQTT")
				if closeErr := mqttClient.Close(); closeErr != nil {
					log.Error("error closing MQTT", "error", closeErr)
				}
			}()
			opts.Publisher = mqttClient
		}
	}

	loop, err := monitor.New(opts)
	if err != nil {
		return fmt.Errorf("creating monitor: %w", err)
	}

	if err := loop.Run(ctx); err != nil {
		return fmt.Errorf("running monitor: %w", err)
	}

	log.Info("speedportmon stopped")
	return nil
}

// checkInflux reports InfluxDB reachability. It never fails startup: a
// missing setting or an unreachable server only affects individual writes.
func checkInflux(ctx context.Context, writer *influxdb.Writer, log *logging.Logger) {
	checkCtx, cancel := context.WithTimeout(ctx, startupCheckTimeout)
	defer cancel()

	err := writer.HealthCheck(checkCtx)
	switch {
	case errors.Is(err, influxdb.ErrConfig):
		log.Warn("InfluxDB not fully configured, writes will fail", "error", err)
	case err != nil:
		log.Warn("InfluxDB not reachable yet", "bucket", writer.Bucket(), "error", err)
	default:
		log.Info("InfluxDB reachable", "bucket", writer.Bucket())
	}
}

// connectMQTT connects the optional snapshot publisher and installs
// logging callbacks for later reconnects. A failed health check after
// connecting is only logged; paho keeps reconnecting in the background.
func connectMQTT(ctx context.Context, cfg config.MQTTConfig, log *logging.Logger) (*mqtt.Client, error) {
	client, err := mqtt.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := client.HealthCheck(ctx); err != nil {
		log.Warn("MQTT health check failed", "error", err)
	}
	log.Info("MQTT connected",
		"broker", cfg.Broker,
		"client_id", cfg.ClientID,
		"topic", cfg.Topic,
	)

	client.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	client.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	return client, nil
}

package influxdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/nerrad567/speedportmon/internal/infrastructure/config"
)

// Default timeouts for InfluxDB operations.
const (
	defaultWriteTimeout = 10 * time.Second
	defaultPingTimeout  = 5 * time.Second
)

// Writer persists snapshots to a single InfluxDB bucket.
//
// A Writer does not hold a connection. Every call opens a client and
// closes it before returning, on success and on failure alike.
type Writer struct {
	cfg config.InfluxDBConfig
}

// NewWriter creates a Writer. The configuration is not validated here;
// see Validate.
func NewWriter(cfg config.InfluxDBConfig) *Writer {
	return &Writer{cfg: cfg}
}

// Bucket returns the target bucket name.
func (w *Writer) Bucket() string {
	return w.cfg.Bucket
}

// Validate checks that every mandatory connection setting is present.
//
// Returns:
//   - error: ErrConfig naming each missing environment variable, or nil
func Validate(cfg config.InfluxDBConfig) error {
	var missing []string
	if cfg.URL == "" {
		missing = append(missing, config.EnvInfluxURL)
	}
	if cfg.Token == "" {
		missing = append(missing, config.EnvInfluxToken)
	}
	if cfg.Org == "" {
		missing = append(missing, config.EnvInfluxOrg)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required environment variables: %s",
			ErrConfig, strings.Join(missing, ", "))
	}

	return nil
}

// open creates an InfluxDB client with a bounded HTTP request timeout.
// Callers must Close the returned client.
func (w *Writer) open() influxdb2.Client {
	// #nosec G115 -- constant, positive
	timeoutSeconds := uint(defaultWriteTimeout / time.Second)
	return influxdb2.NewClientWithOptions(
		w.cfg.URL,
		w.cfg.Token,
		influxdb2.DefaultOptions().SetHTTPRequestTimeout(timeoutSeconds),
	)
}

// HealthCheck verifies the InfluxDB server is reachable and healthy.
//
// It is informational: the poll loop never depends on it.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: ErrConfig if settings are missing, ErrConnectionFailed if
//     the ping fails, or nil if healthy
func (w *Writer) HealthCheck(ctx context.Context) error {
	if err := Validate(w.cfg); err != nil {
		return err
	}

	client := w.open()
	defer client.Close()

	checkCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	healthy, err := client.Ping(checkCtx)
	if err != nil {
		return fmt.Errorf("%w: ping failed: %w", ErrConnectionFailed, err)
	}
	if !healthy {
		return fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	return nil
}

package influxdb

import (
	"context"
	"fmt"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/speedportmon/internal/speedport"
)

// Point layout.
const (
	Measurement = "dsl_status"
	HostTag     = "host"
	HostName    = "speedport"
)

// Write stores one snapshot as a single dsl_status point.
//
// The configuration is validated first; if anything is missing no client is
// created. Absent snapshot fields are written as 0 / false. The write is
// synchronous and bounded by a 10 second timeout in addition to ctx.
//
// Parameters:
//   - ctx: Context for cancellation
//   - snap: Snapshot to persist (may be empty)
//
// Returns:
//   - error: ErrConfig, ErrWriteFailed, or nil
func (w *Writer) Write(ctx context.Context, snap speedport.Snapshot) error {
	if err := Validate(w.cfg); err != nil {
		return err
	}

	client := w.open()
	defer client.Close()

	writeCtx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	writeAPI := client.WriteAPIBlocking(w.cfg.Org, w.cfg.Bucket)
	if err := writeAPI.WritePoint(writeCtx, NewPoint(snap)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	return nil
}

// NewPoint converts a snapshot into the dsl_status point.
//
// The point carries no timestamp so that InfluxDB assigns the write time.
func NewPoint(snap speedport.Snapshot) *write.Point {
	return write.NewPoint(
		Measurement,
		map[string]string{
			HostTag: HostName,
		},
		Fields(snap),
		time.Time{},
	)
}

// Fields returns the five field values with defaults substituted for
// absent snapshot fields.
func Fields(snap speedport.Snapshot) map[string]interface{} {
	return map[string]interface{}{
		"downstream": snap.DownstreamOrZero(),
		"upstream":   snap.UpstreamOrZero(),
		"link":       snap.LinkOrFalse(),
		"online":     snap.OnlineOrFalse(),
		"connected":  snap.ConnectedOrFalse(),
	}
}

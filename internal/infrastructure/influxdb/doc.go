// Package influxdb writes DSL snapshots to InfluxDB v2.
//
// It wraps the official influxdb-client-go v2 library. Each Write is a
// self-contained operation: validate settings, open a client, perform one
// blocking write of a single dsl_status point, close the client.
//
// # Usage
//
//	w := influxdb.NewWriter(cfg.InfluxDB)
//	if err := w.Write(ctx, snapshot); err != nil {
//	    log.Error("write failed", "error", err)
//	}
//
// # Data Layout
//
//	measurement: dsl_status
//	tags:        host=speedport
//	fields:      downstream (int), upstream (int),
//	             link (bool), online (bool), connected (bool)
//
// No client timestamp is sent; the server assigns the write time.
//
// # Error Handling
//
// Missing URL, token or organisation returns ErrConfig without touching
// the network. Any failure from the write call returns ErrWriteFailed.
//
// # Thread Safety
//
// Writer holds no mutable state and is safe for concurrent use.
package influxdb

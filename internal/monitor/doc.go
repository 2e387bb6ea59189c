// Package monitor runs the DSL polling loop.
//
// Each cycle:
//  1. Fetch a snapshot from the router. On failure the error is logged and
//     an empty snapshot is used instead, so the cycle always continues.
//  2. Log the snapshot.
//  3. Publish it to the optional Publisher (failures are only logged).
//  4. Write it. On failure the error is logged.
//  5. Sleep for the interval and start again.
//
// The loop has no fatal errors. Writer errors and panics inside a cycle are
// logged and retried after the normal interval, without limit. Only context
// cancellation (SIGINT/SIGTERM in the binary) stops it, moving the loop from
// StateRunning to StateStopped.
//
// # Usage
//
//	loop, err := monitor.New(monitor.Options{
//	    Fetcher:  speedport.NewClient(cfg.Router),
//	    Writer:   influxdb.NewWriter(cfg.InfluxDB),
//	    Interval: cfg.Loop.Interval(),
//	    Logger:   log,
//	})
//	if err != nil {
//	    return err
//	}
//	return loop.Run(ctx)
package monitor

// Package config handles loading and validating speedportmon configuration.
//
// This package manages:
//   - Reading settings from environment variables
//   - Default value handling
//   - Validation of values the poll loop cannot run without
//
// Security Considerations:
//   - The InfluxDB token and MQTT password are only held in memory
//   - Never log the Config struct as a whole
//
// Mandatory InfluxDB settings are not validated here. The writer checks them
// on every write so a misconfigured deployment keeps polling and logs the
// problem each cycle instead of exiting.
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Loop.Interval())
package config

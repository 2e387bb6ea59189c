package influxdb

import "errors"

// Sentinel errors for InfluxDB operations.
//
// These errors can be checked using errors.Is() for specific handling:
//
//	if errors.Is(err, influxdb.ErrConfig) {
//	    // Settings are missing, retrying will not help until they are set
//	}
var (
	// ErrConfig indicates a mandatory connection setting is unset or empty.
	// It is returned before any connection is attempted.
	ErrConfig = errors.New("influxdb: incomplete configuration")

	// ErrWriteFailed indicates the write request to InfluxDB failed.
	ErrWriteFailed = errors.New("influxdb: write failed")

	// ErrConnectionFailed indicates the server could not be reached or
	// reported itself unhealthy.
	ErrConnectionFailed = errors.New("influxdb: connection failed")
)

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the root configuration structure for speedportmon.
// It is built once at startup from environment variables and passed
// explicitly to every component.
type Config struct {
	Router   RouterConfig
	InfluxDB InfluxDBConfig
	MQTT     MQTTConfig
	Logging  LoggingConfig
	Loop     LoopConfig
}

// RouterConfig contains the Speedport router connection settings.
type RouterConfig struct {
	// URL is the router base URL, e.g. "http://192.168.2.1".
	URL string
}

// InfluxDBConfig contains InfluxDB v2 connection settings.
//
// URL, Token and Org are mandatory but are not checked by Load. A missing
// value surfaces as influxdb.ErrConfig on every write attempt.
type InfluxDBConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// MQTTConfig contains the optional MQTT snapshot publisher settings.
// An empty Broker disables publishing.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	QoS      int
}

// Enabled reports whether a broker has been configured.
func (c MQTTConfig) Enabled() bool {
	return c.Broker != ""
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string
	Format string
	Output string
}

// LoopConfig contains poll loop settings.
type LoopConfig struct {
	// IntervalSeconds is the pause between cycles.
	IntervalSeconds int
}

// Interval returns the loop interval as a Duration.
func (c LoopConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Environment variable names.
const (
	EnvSpeedportURL = "SPEEDPORT_URL"
	EnvInfluxURL    = "INFLUX_URL"
	EnvInfluxToken  = "INFLUX_TOKEN"
	EnvInfluxOrg    = "INFLUX_ORG"
	EnvInfluxBucket = "INFLUX_BUCKET"
	EnvLoopInterval = "LOOP_INTERVAL"

	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
	EnvLogOutput = "LOG_OUTPUT"

	EnvMQTTBroker   = "MQTT_BROKER"
	EnvMQTTClientID = "MQTT_CLIENT_ID"
	EnvMQTTUsername = "MQTT_USERNAME"
	EnvMQTTPassword = "MQTT_PASSWORD"
	EnvMQTTTopic    = "MQTT_TOPIC"
	EnvMQTTQoS      = "MQTT_QOS"
)

// Load builds the configuration from the process environment.
//
// The loading order is:
//  1. Default values (hardcoded)
//  2. Environment variables (override defaults)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If a value cannot be parsed or validation fails
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom is Load with an injectable environment lookup, used by tests.
func LoadFrom(lookup func(string) (string, bool)) (*Config, error) {
	cfg := defaultConfig()

	if err := applyEnv(cfg, lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Router: RouterConfig{
			URL: "http://192.168.2.1",
		},
		InfluxDB: InfluxDBConfig{
			Bucket: "speedport",
		},
		MQTT: MQTTConfig{
			ClientID: "speedportmon",
			Topic:    "speedport/dsl",
			QoS:      1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
		Loop: LoopConfig{
			IntervalSeconds: 3600,
		},
	}
}

// applyEnv applies environment variable overrides to the configuration.
// Unset variables keep their defaults; mandatory InfluxDB settings are
// copied as-is, including empty values.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	if v := get(EnvSpeedportURL); v != "" {
		cfg.Router.URL = v
	}

	// InfluxDB
	cfg.InfluxDB.URL = get(EnvInfluxURL)
	cfg.InfluxDB.Token = get(EnvInfluxToken)
	cfg.InfluxDB.Org = get(EnvInfluxOrg)
	if v := get(EnvInfluxBucket); v != "" {
		cfg.InfluxDB.Bucket = v
	}

	if v := get(EnvLoopInterval); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvLoopInterval, err)
		}
		cfg.Loop.IntervalSeconds = secs
	}

	// Logging
	if v := get(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := get(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := get(EnvLogOutput); v != "" {
		cfg.Logging.Output = v
	}

	// MQTT
	cfg.MQTT.Broker = get(EnvMQTTBroker)
	if v := get(EnvMQTTClientID); v != "" {
		cfg.MQTT.ClientID = v
	}
	cfg.MQTT.Username = get(EnvMQTTUsername)
	// Passwords may legitimately contain surrounding spaces.
	cfg.MQTT.Password, _ = lookup(EnvMQTTPassword)
	if v := get(EnvMQTTTopic); v != "" {
		cfg.MQTT.Topic = v
	}
	if v := get(EnvMQTTQoS); v != "" {
		qos, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvMQTTQoS, err)
		}
		cfg.MQTT.QoS = qos
	}

	return nil
}

// Validate checks the configuration for errors that prevent the loop from
// being scheduled at all.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Router.URL == "" {
		errs = append(errs, "router url is required")
	}

	if c.Loop.IntervalSeconds <= 0 {
		errs = append(errs, EnvLoopInterval+" must be a positive number of seconds")
	}

	switch strings.ToLower(c.Logging.Output) {
	case "stdout", "stderr":
	default:
		errs = append(errs, EnvLogOutput+" must be stdout or stderr")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, EnvMQTTQoS+" must be 0, 1, or 2")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

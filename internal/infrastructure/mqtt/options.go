package mqtt

import (
	"crypto/tls"
	"net"
	"strings"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/speedportmon/internal/infrastructure/config"
)

// Connection constants.
const (
	// defaultConnectTimeout is the maximum time to wait for initial connection.
	defaultConnectTimeout = 10 * time.Second

	// defaultPublishTimeout is the maximum time to wait for publish acknowledgment.
	defaultPublishTimeout = 5 * time.Second

	// defaultDisconnectQuiesce is the time to wait for pending operations on disconnect.
	defaultDisconnectQuiesce = 1000 // milliseconds

	// defaultKeepAlive is the keepalive interval for the connection.
	defaultKeepAlive = 60 * time.Second

	// defaultMaxReconnectInterval caps the exponential reconnect backoff.
	defaultMaxReconnectInterval = 5 * time.Minute

	// defaultPort is used when the broker address has no port.
	defaultPort = "1883"

	// maxQoS is the maximum QoS level supported.
	maxQoS = 2

	// tlsMinVersion is the minimum TLS version for secure connections.
	tlsMinVersion = tls.VersionTLS12
)

// brokerURL normalises a broker address into a paho URL.
//
// Accepted forms: "host", "host:port", "tcp://host:port", "ssl://host:port".
// A missing scheme means tcp, a missing port means 1883.
func brokerURL(addr string) string {
	scheme := "tcp"
	if i := strings.Index(addr, "://"); i >= 0 {
		scheme = addr[:i]
		addr = addr[i+3:]
	}

	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, defaultPort)
	}

	return scheme + "://" + addr
}

// isTLS reports whether the broker URL uses a TLS scheme.
func isTLS(url string) bool {
	return strings.HasPrefix(url, "ssl://") ||
		strings.HasPrefix(url, "tls://") ||
		strings.HasPrefix(url, "mqtts://")
}

// buildClientOptions creates paho MQTT options from the speedportmon config.
//
// This configures:
//   - Broker URL (tcp:// or ssl://)
//   - Client ID for identification
//   - Authentication credentials (if provided)
//   - Auto-reconnect with exponential backoff
//   - TLS configuration for ssl:// brokers
//   - Clean session mode
//   - Last Will and Testament on the availability topic
func buildClientOptions(cfg config.MQTTConfig) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()

	url := brokerURL(cfg.Broker)
	opts.AddBroker(url)

	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	// Clean session - start fresh on connect (no persistent session on broker)
	opts.SetCleanSession(true)

	// Reconnect after the initial connection has succeeded. The initial
	// attempt itself is not retried so Connect fails fast.
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(false)
	opts.SetMaxReconnectInterval(defaultMaxReconnectInterval)

	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(defaultKeepAlive)

	if isTLS(url) {
		opts.SetTLSConfig(&tls.Config{
			MinVersion: tlsMinVersion,
		})
	}

	// #nosec G115 -- QoS validated by config.Validate
	opts.SetWill(Topics{Base: cfg.Topic}.Availability(), payloadOffline, byte(cfg.QoS), true)

	return opts
}

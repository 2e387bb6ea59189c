// Package mqtt publishes DSL snapshots to an MQTT broker.
//
// Publishing is optional and runs alongside the InfluxDB write: home
// automation systems can subscribe to the retained snapshot topic and react
// to the line state without querying the time-series database.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Retained snapshot publishing with QoS guarantees
//   - Last Will and Testament (LWT) on the availability topic
//
// # Topics
//
//	{topic}               retained JSON snapshot, one per poll
//	{topic}/availability  retained "online" / "offline"
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Warn("MQTT disabled", "error", err)
//	}
//	defer client.Close()
//
//	err = client.PublishSnapshot(snapshot)
//
// # Security Considerations
//
//   - Use an ssl:// broker address for anything beyond a trusted LAN
//   - Payloads contain line rates only, no credentials
package mqtt

package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nerrad567/speedportmon/internal/speedport"
)

// Maximum payload size for MQTT messages (1MB).
const maxPayloadSize = 1 << 20 // 1MB

// snapshotPayload is the JSON document published for each poll.
// Fields the router did not report are omitted.
type snapshotPayload struct {
	speedport.Snapshot
	Timestamp string `json:"timestamp"`
}

// encodeSnapshot builds the snapshot payload stamped with t.
func encodeSnapshot(snap speedport.Snapshot, t time.Time) ([]byte, error) {
	return json.Marshal(snapshotPayload{
		Snapshot:  snap,
		Timestamp: t.UTC().Format(time.RFC3339),
	})
}

// Publish sends a message to the specified MQTT topic.
//
// Parameters:
//   - topic: The topic to publish to
//   - payload: The message payload (max 1MB)
//   - qos: Quality of Service level (0, 1, or 2)
//   - retained: Whether the broker should retain the message for new subscribers
//
// Returns:
//   - error: nil on success, or wrapped error describing the failure
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// PublishSnapshot publishes a snapshot as a retained message on the
// snapshot topic with the configured QoS.
func (c *Client) PublishSnapshot(snap speedport.Snapshot) error {
	payload, err := encodeSnapshot(snap, time.Now())
	if err != nil {
		return fmt.Errorf("%w: encoding snapshot: %w", ErrPublishFailed, err)
	}

	// #nosec G115 -- QoS validated by config.Validate
	return c.Publish(c.topics.Snapshot(), payload, byte(c.cfg.QoS), true)
}

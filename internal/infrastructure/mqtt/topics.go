package mqtt

// Availability payloads. They are plain strings so that consumers such as
// Home Assistant can use them without a template.
const (
	payloadOnline  = "online"
	payloadOffline = "offline"
)

// Topics builds the topics published under a configured base.
//
//	topics := mqtt.Topics{Base: "speedport/dsl"}
//	topics.Snapshot()     // "speedport/dsl"
//	topics.Availability() // "speedport/dsl/availability"
type Topics struct {
	Base string
}

// Snapshot returns the topic carrying the latest DSL snapshot.
func (t Topics) Snapshot() string {
	return t.Base
}

// Availability returns the topic carrying the monitor's online state.
func (t Topics) Availability() string {
	return t.Base + "/availability"
}

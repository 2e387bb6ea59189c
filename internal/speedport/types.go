package speedport

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Item types that carry DSL data. Everything else in Status.json is skipped.
const (
	VarTypeValue  = "value"
	VarTypeStatus = "status"
)

// Item identifiers recognised by Parse.
const (
	VarIDDownstream = "dsl_downstream"
	VarIDUpstream   = "dsl_upstream"
	VarIDLinkStatus = "dsl_link_status"
	VarIDOnline     = "onlinestatus"
	VarIDStatus     = "status"
)

// onlineValue is the only value that maps to true for the boolean fields.
// The comparison is case-sensitive.
const onlineValue = "online"

// StatusItem is one entry of the router's Status.json array.
//
// VarValue is kept raw because the router mixes JSON strings and numbers.
// It is nil when the key is absent.
type StatusItem struct {
	VarType  string          `json:"vartype"`
	VarID    string          `json:"varid"`
	VarValue json.RawMessage `json:"varvalue"`
}

// Snapshot is the normalised result of one poll.
//
// Every field is optional: nil means the router did not report it (or the
// fetch failed). Consumers substitute 0 / false for nil fields.
type Snapshot struct {
	Downstream *int64 `json:"downstream,omitempty"`
	Upstream   *int64 `json:"upstream,omitempty"`
	Link       *bool  `json:"link,omitempty"`
	Online     *bool  `json:"online,omitempty"`
	Connected  *bool  `json:"connected,omitempty"`
}

// IsEmpty reports whether no field is set.
func (s Snapshot) IsEmpty() bool {
	return s.Downstream == nil && s.Upstream == nil &&
		s.Link == nil && s.Online == nil && s.Connected == nil
}

// DownstreamOrZero returns the downstream sync rate, or 0 when absent.
func (s Snapshot) DownstreamOrZero() int64 { return intOrZero(s.Downstream) }

// UpstreamOrZero returns the upstream sync rate, or 0 when absent.
func (s Snapshot) UpstreamOrZero() int64 { return intOrZero(s.Upstream) }

// LinkOrFalse returns the DSL link state, or false when absent.
func (s Snapshot) LinkOrFalse() bool { return boolOrFalse(s.Link) }

// OnlineOrFalse returns the internet connectivity state, or false when absent.
func (s Snapshot) OnlineOrFalse() bool { return boolOrFalse(s.Online) }

// ConnectedOrFalse returns the general connection state, or false when absent.
func (s Snapshot) ConnectedOrFalse() bool { return boolOrFalse(s.Connected) }

// String renders only the fields that are present, e.g.
// "{downstream:50000 online:true}". An empty snapshot renders as "{}".
func (s Snapshot) String() string {
	parts := make([]string, 0, 5)
	if s.Downstream != nil {
		parts = append(parts, "downstream:"+strconv.FormatInt(*s.Downstream, 10))
	}
	if s.Upstream != nil {
		parts = append(parts, "upstream:"+strconv.FormatInt(*s.Upstream, 10))
	}
	if s.Link != nil {
		parts = append(parts, "link:"+strconv.FormatBool(*s.Link))
	}
	if s.Online != nil {
		parts = append(parts, "online:"+strconv.FormatBool(*s.Online))
	}
	if s.Connected != nil {
		parts = append(parts, "connected:"+strconv.FormatBool(*s.Connected))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func intOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func boolOrFalse(v *bool) bool {
	if v == nil {
		return false
	}
	return *v
}

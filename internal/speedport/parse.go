package speedport

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Parse maps status items onto a Snapshot.
//
// Only items whose VarType is "value" or "status" are considered, and only
// the identifiers listed below; everything else is ignored. Items are applied
// in order, so when the router repeats an identifier the last one wins.
//
//	dsl_downstream  -> Downstream (integer, non-numeric is 0)
//	dsl_upstream    -> Upstream   (integer, non-numeric is 0)
//	dsl_link_status -> Link       (value == "online")
//	onlinestatus    -> Online     (value == "online")
//	status          -> Connected  (value == "online")
func Parse(items []StatusItem) Snapshot {
	var snap Snapshot

	for _, item := range items {
		if item.VarType != VarTypeValue && item.VarType != VarTypeStatus {
			continue
		}

		switch item.VarID {
		case VarIDDownstream:
			v := coerceInt(item.VarValue)
			snap.Downstream = &v
		case VarIDUpstream:
			v := coerceInt(item.VarValue)
			snap.Upstream = &v
		case VarIDLinkStatus:
			v := isOnline(item.VarValue)
			snap.Link = &v
		case VarIDOnline:
			v := isOnline(item.VarValue)
			snap.Online = &v
		case VarIDStatus:
			v := isOnline(item.VarValue)
			snap.Connected = &v
		}
	}

	return snap
}

// coerceInt converts a raw varvalue to an integer.
//
// Strings are trimmed and parsed in base 10, numbers are truncated toward
// zero. A missing value, null, or anything unparsable yields 0.
func coerceInt(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0
		}
		return n
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if n, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			return n
		}
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil || math.IsNaN(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
			return 0
		}
		return int64(f)
	default:
		return 0
	}
}

// isOnline reports whether a raw varvalue is exactly the JSON string "online".
func isOnline(raw json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return s == onlineValue
}

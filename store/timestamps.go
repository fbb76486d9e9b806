package store

import (
	"encoding/json"
	"time"
)

// Record lists whose "timestamp" may have been written without a zone.
var timestampedKeys = []string{"users", "payments", "notifications"}

// Zone-less layouts seen in older documents. A fractional second is
// accepted after the seconds field.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// normalizeTimestamps rewrites zone-less record timestamps as RFC 3339 in
// UTC. Anything it does not recognise is left for the typed decode to report.
func normalizeTimestamps(raw json.RawMessage) json.RawMessage {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return raw
	}

	changed := false
	for _, rec := range records {
		ts, ok := rec["timestamp"]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(ts, &s); err != nil || s == "" {
			continue
		}
		if _, err := time.Parse(time.RFC3339Nano, s); err == nil {
			continue
		}
		for _, layout := range zonelessLayouts {
			t, err := time.ParseInLocation(layout, s, time.UTC)
			if err != nil {
				continue
			}
			if fixed, err := json.Marshal(t); err == nil {
				rec["timestamp"] = fixed
				changed = true
			}
			break
		}
	}
	if !changed {
		return raw
	}
	out, err := json.Marshal(records)
	if err != nil {
		return raw
	}
	return out
}

package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// punchLayouts are tried in order. Zone-less timestamps are read as local
// time. Fractional seconds are accepted by every layout.
var punchLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Punch is a recorded clock-in or clock-out. Raw keeps the backend's text, so
// a decoded record encodes back unchanged. Time is zero when Raw is not a
// timestamp we recognise.
type Punch struct {
	Time time.Time
	Raw  string
}

// PunchAt returns a punch for t
func PunchAt(t time.Time) Punch {
	return Punch{Time: t}
}

// ParsePunch reads a punch timestamp as the backend sends it
func ParsePunch(s string) Punch {
	for _, layout := range punchLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Punch{Time: t, Raw: s}
		}
	}
	return Punch{Raw: s}
}

// Valid reports whether the punch carries a usable time
func (p Punch) Valid() bool {
	return !p.Time.IsZero()
}

// String returns the backend's text if there is one
func (p Punch) String() string {
	if p.Raw != "" {
		return p.Raw
	}
	return p.Time.Format(time.RFC3339Nano)
}

// MarshalJSON writes the backend's text when known, otherwise RFC 3339
func (p Punch) MarshalJSON() ([]byte, error) {
	if p.Raw != "" {
		return json.Marshal(p.Raw)
	}
	return p.Time.MarshalJSON()
}

// UnmarshalJSON accepts any JSON value. Strings are parsed as timestamps;
// anything else is kept verbatim in Raw.
func (p *Punch) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*p = Punch{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*p = Punch{Raw: string(data)}
		return nil
	}
	*p = ParsePunch(s)
	return nil
}

package data

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the wire format used for every timestamp.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Time is a UTC instant that marshals with TimeLayout.
type Time struct {
	time.Time
}

func At(t time.Time) Time {
	return Time{t.UTC()}
}

func TimePtr(t time.Time) *Time {
	v := At(t)
	return &v
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(TimeLayout) + `"`), nil
}

func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(TimeLayout, s)
	if err != nil {
		// accept RFC 3339 from clients that do not pad milliseconds
		parsed, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("parse time %q: %w", s, err)
		}
	}
	t.Time = parsed.UTC()
	return nil
}

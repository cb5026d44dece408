package data

import "time"

const (
	AbandonSessionMinutes       = 180
	CompanionNumberOfHours      = 24
	OngoingSessionMinutes       = 15
	SpiritBankStartPoints       = 50
	CostAddVirtualSessionPoints = 5
)

type Geolocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Session struct {
	Geolocation *Geolocation `json:"geolocation"`
	Discipline  string       `json:"discipline"`
	Intention   string       `json:"intention"`
	StartTime   Time         `json:"startTime"`
	EndTime     *Time        `json:"endTime"`
	Circle      *Circle      `json:"circle"`
}

// Abandoned reports a session that was never ended and started more than
// AbandonSessionMinutes before now.
func (s Session) Abandoned(now time.Time) bool {
	return s.EndTime == nil && s.StartTime.Before(now.Add(-AbandonSessionMinutes*time.Minute))
}

func (s Session) DurationMinutes(now time.Time) int64 {
	switch {
	case s.Abandoned(now):
		return 0
	case s.EndTime == nil:
		return int64(now.Sub(s.StartTime.Time) / time.Minute)
	default:
		return int64(s.EndTime.Sub(s.StartTime.Time) / time.Minute)
	}
}

// Overlap reports whether the session was active at some point strictly
// inside (start, end).
func (s Session) Overlap(start, end, now time.Time) bool {
	if s.EndTime != nil && s.EndTime.After(start) && s.EndTime.Before(end) {
		return true
	}
	abandoned := s.Abandoned(now)
	if s.StartTime.After(start) && s.StartTime.Before(end) && !abandoned {
		return true
	}
	return s.EndTime == nil && !abandoned
}

func (s Session) After(t, now time.Time) bool {
	return s.StartTime.After(t) && !s.Abandoned(now)
}

func (s Session) Ongoing(now time.Time) bool {
	return s.EndTime == nil && !s.Abandoned(now)
}

// InCircle reports whether the session was started inside the circle with id.
func (s Session) InCircle(circleID string) bool {
	return s.Circle != nil && s.Circle.ID == circleID
}

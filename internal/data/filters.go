package data

import (
	"math"
	"time"
)

func PractitionersWithSessionsBetween(ps []*Practitioner, start, end, now time.Time) []*Practitioner {
	var out []*Practitioner
	for _, p := range ps {
		if p.HasSessionBetween(start, end, now) {
			out = append(out, p)
		}
	}
	return out
}

func AllSessionsActiveBetween(ps []*Practitioner, start, end, now time.Time) []Session {
	var out []Session
	for _, p := range ps {
		for _, s := range p.Sessions {
			if s.Overlap(start, end, now) {
				out = append(out, s)
			}
		}
	}
	return out
}

// LastSessionsActiveBetween takes the last session of every practitioner other
// than excludeID and keeps those overlapping (start, end).
func LastSessionsActiveBetween(ps []*Practitioner, excludeID string, start, end, now time.Time) []Session {
	var out []Session
	for _, p := range ps {
		if p.ID == excludeID {
			continue
		}
		if last := p.LastSession(); last != nil && last.Overlap(start, end, now) {
			out = append(out, *last)
		}
	}
	return out
}

// OngoingSessions lists the ongoing last sessions of every practitioner other
// than excludeID.
func OngoingSessions(ps []*Practitioner, excludeID string, now time.Time) []Session {
	var out []Session
	for _, p := range ps {
		if p.ID == excludeID {
			continue
		}
		if last := p.LastSession(); last != nil && last.Ongoing(now) {
			out = append(out, *last)
		}
	}
	return out
}

func SessionsInCircle(ps []*Practitioner, circleID string) []Session {
	var out []Session
	for _, p := range ps {
		for _, s := range p.Sessions {
			if s.InCircle(circleID) {
				out = append(out, s)
			}
		}
	}
	return out
}

func AllCircles(ps []*Practitioner) []Circle {
	out := []Circle{}
	for _, p := range ps {
		out = append(out, p.Circles...)
	}
	return out
}

func ActiveCircles(ps []*Practitioner, now time.Time) []Circle {
	out := []Circle{}
	for _, c := range AllCircles(ps) {
		if c.Active(now) {
			out = append(out, c)
		}
	}
	return out
}

// FindCircle looks the circle up among every practitioner's own circles.
func FindCircle(ps []*Practitioner, id string) (*Circle, *Practitioner) {
	for _, p := range ps {
		if c := p.Circle(id); c != nil {
			return c, p
		}
	}
	return nil, nil
}

// EndSessionAward is what ending the practitioner's last session yields for
// the circle that session belongs to.
type EndSessionAward struct {
	Circle       *Circle
	Creator      bool
	CirclePoints int64
}

// ComputeEndSessionAward pays the creator of the practitioner's current circle
// a share of the contributions made by everyone who sat in it.
func ComputeEndSessionAward(p *Practitioner, all []*Practitioner, contributionPercent int64, now time.Time) EndSessionAward {
	var award EndSessionAward
	last := p.LastSession()
	if last == nil || last.Circle == nil {
		return award
	}
	award.Circle = last.Circle
	award.Creator = p.CreatorOfCircle(last.Circle)
	if !award.Creator {
		return award
	}
	var sessions int64
	for _, other := range all {
		if other.HasSessionInCircleAfterStartTime(last.Circle.StartTime.Time, last.Circle.ID, now) {
			sessions++
		}
	}
	points := float64(sessions*last.Circle.MinimumSpiritContribution*contributionPercent) / 100.0
	award.CirclePoints = int64(math.Round(points))
	return award
}

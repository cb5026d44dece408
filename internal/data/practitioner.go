package data

import "time"

type LogType string

const (
	LogStart              LogType = "START"
	LogEndedSession       LogType = "ENDED_SESSION"
	LogJoinedCircle       LogType = "JOINED_CIRCLE"
	LogEndedCreatedCircle LogType = "ENDED_CREATED_CIRCLE"
	LogAddVirtualToCircle LogType = "ADD_VIRTUAL_TO_CIRCLE"
	LogDonate             LogType = "DONATE"
)

type SpiritBankLogItem struct {
	Created Time    `json:"created"`
	Type    LogType `json:"type"`
	Points  int64   `json:"points"`
}

type Practitioner struct {
	ID                string              `json:"_id"`
	Created           Time                `json:"created"`
	Sessions          []Session           `json:"sessions"`
	Circles           []Circle            `json:"circles"`
	FullName          *string             `json:"fullName"`
	Email             *string             `json:"email"`
	Description       *string             `json:"description"`
	SpiritBankLog     []SpiritBankLogItem `json:"spiritBankLog"`
	RegisteredCircles []string            `json:"registeredCircles"`
}

// NewPractitioner returns a practitioner credited with the start points.
func NewPractitioner(id string, now time.Time) *Practitioner {
	return &Practitioner{
		ID:                id,
		Created:           At(now),
		Sessions:          []Session{},
		Circles:           []Circle{},
		SpiritBankLog:     []SpiritBankLogItem{{Created: At(now), Type: LogStart, Points: SpiritBankStartPoints}},
		RegisteredCircles: []string{},
	}
}

func (p *Practitioner) SetInvolved(fullName, email, description string) {
	p.FullName = &fullName
	p.Email = &email
	p.Description = &description
}

func (p *Practitioner) Involved() bool {
	return p.FullName != nil && p.Email != nil && p.Description != nil
}

func (p *Practitioner) SpiritBankPoints() int64 {
	var sum int64
	for _, item := range p.SpiritBankLog {
		sum += item.Points
	}
	return sum
}

func (p *Practitioner) AddLog(now time.Time, typ LogType, points int64) {
	p.SpiritBankLog = append(p.SpiritBankLog, SpiritBankLogItem{Created: At(now), Type: typ, Points: points})
}

func (p *Practitioner) LastSession() *Session {
	if len(p.Sessions) == 0 {
		return nil
	}
	return &p.Sessions[len(p.Sessions)-1]
}

func (p *Practitioner) HasSessionBetween(start, end, now time.Time) bool {
	for _, s := range p.Sessions {
		if s.Overlap(start, end, now) {
			return true
		}
	}
	return false
}

func (p *Practitioner) HasSessionInCircleAfterStartTime(start time.Time, circleID string, now time.Time) bool {
	for _, s := range p.Sessions {
		if s.After(start, now) && s.InCircle(circleID) {
			return true
		}
	}
	return false
}

func (p *Practitioner) HasOngoingSession(now time.Time) bool {
	last := p.LastSession()
	return last != nil && last.Ongoing(now)
}

// Circle returns the practitioner's own circle with id, or nil.
func (p *Practitioner) Circle(id string) *Circle {
	for i := range p.Circles {
		if p.Circles[i].ID == id {
			return &p.Circles[i]
		}
	}
	return nil
}

func (p *Practitioner) CreatorOfCircle(c *Circle) bool {
	return c != nil && p.Circle(c.ID) != nil
}

func (p *Practitioner) TotalSessionMinutes(now time.Time) int64 {
	var sum int64
	for _, s := range p.Sessions {
		sum += s.DurationMinutes(now)
	}
	return sum
}

func (p *Practitioner) RegisterCircle(id string) {
	for _, existing := range p.RegisteredCircles {
		if existing == id {
			return
		}
	}
	p.RegisteredCircles = append(p.RegisteredCircles, id)
}

// PutCircle replaces the circle with the same id or appends it.
func (p *Practitioner) PutCircle(c Circle) {
	if existing := p.Circle(c.ID); existing != nil {
		*existing = c
		return
	}
	p.Circles = append(p.Circles, c)
}

func (p *Practitioner) RemoveCircle(id string) bool {
	for i := range p.Circles {
		if p.Circles[i].ID == id {
			p.Circles = append(p.Circles[:i], p.Circles[i+1:]...)
			return true
		}
	}
	return false
}

// EndLastSession stamps the end time on the last session. It is a no-op when
// there is no session or it is already ended.
func (p *Practitioner) EndLastSession(now time.Time) {
	last := p.LastSession()
	if last == nil || last.EndTime != nil {
		return
	}
	last.EndTime = TimePtr(now)
}

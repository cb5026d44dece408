package shared

import (
	"sort"
	"time"

	"agartha/internal/data"
)

// Error messages returned to clients.
const (
	MsgCircleNotActiveOrExist       = "Circle is not active or does not exist"
	MsgPractitionerIDIncorrect      = "Practitioner Id missing or incorrect"
	MsgPractitionerNotAffordCircle  = "Practitioner cannot afford to join this circle"
	MsgDisciplineNotMatched         = "Selected discipline does not match any in Circle"
	MsgIntentionNotMatched          = "Selected intention does not match any in Circle"
	MsgNegativeIntegerValue         = "Value must be a positive integer"
	MsgPractitionerOutOfFunds       = "Practitioner does not have enough points"
	MsgEmailNotFound                = "Email address not found"
	MsgImageMissing                 = "Image is missing or has wrong file type"
	MsgDisciplineIntentionEmpty     = "Discipline and Intention cannot be empty"
	MsgNotCreatorOfCircle           = "Practitioner is not the creator of this circle"
	MsgUnauthorized                 = "Unauthorized"
	MsgRequestNotAllowed            = "Request not allowed"
	MsgInsufficientDataCreateCircle = "Insufficient data to create circle."
)

// Error codes carried by /v2 responses.
const (
	ErrorCodeCircleMinPoints    = 10001
	ErrorCodeInsufficientCircle = 10003
)

type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode int    `json:"errorCode,omitempty"`
}

type StartSessionInformation struct {
	Geolocation *data.Geolocation `json:"geolocation"`
	Discipline  string            `json:"discipline"`
	Practice    string            `json:"practice"`
	Intention   string            `json:"intention"`
}

type InvolvedInformation struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

type Feedback struct {
	Feedback int64 `json:"feedback"`
}

type IDResponse struct {
	ID string `json:"_id"`
}

type PractitionerReport struct {
	PractitionerID      string `json:"practitionerId"`
	LastSessionMinutes  int64  `json:"lastSessionMinutes"`
	TotalSessionMinutes int64  `json:"totalSessionMinutes"`
	IsInvolved          bool   `json:"isInvolved"`
	SpiritBankPoints    int64  `json:"spiritBankPoints"`
}

func NewPractitionerReport(p *data.Practitioner, now time.Time) PractitionerReport {
	r := PractitionerReport{
		PractitionerID:      p.ID,
		TotalSessionMinutes: p.TotalSessionMinutes(now),
		IsInvolved:          p.Involved(),
		SpiritBankPoints:    p.SpiritBankPoints(),
	}
	if last := p.LastSession(); last != nil {
		r.LastSessionMinutes = last.DurationMinutes(now)
	}
	return r
}

type CompanionReport struct {
	CompanionCount    int            `json:"companionCount"`
	SessionCount      int            `json:"sessionCount"`
	SessionSumMinutes int64          `json:"sessionSumMinutes"`
	Intentions        map[string]int `json:"intentions"`
}

// NewCompanionReport counts every session, possibly several per companion.
func NewCompanionReport(companions int, sessions []data.Session, now time.Time) CompanionReport {
	r := CompanionReport{
		CompanionCount: companions,
		SessionCount:   len(sessions),
		Intentions:     map[string]int{},
	}
	for _, s := range sessions {
		r.SessionSumMinutes += s.DurationMinutes(now)
		r.Intentions[s.Intention]++
	}
	return r
}

// NewSingleSessionReport is used when each companion contributes one session.
func NewSingleSessionReport(sessions []data.Session, now time.Time) CompanionReport {
	return NewCompanionReport(len(sessions), sessions, now)
}

type CompanionsSessionReport struct {
	MatchPoints int               `json:"matchPoints"`
	Geolocation *data.Geolocation `json:"geolocation"`
	Discipline  string            `json:"discipline"`
	Intention   string            `json:"intention"`
	StartTime   data.Time         `json:"startTime"`
	EndTime     *data.Time        `json:"endTime"`
}

func NewCompanionsSessionReport(s data.Session) CompanionsSessionReport {
	return CompanionsSessionReport{
		Geolocation: s.Geolocation,
		Discipline:  s.Discipline,
		Intention:   s.Intention,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
	}
}

// GiveMatchPoints scores one point each for sharing intention and discipline
// with the user's latest session.
func (r *CompanionsSessionReport) GiveMatchPoints(user *data.Practitioner) {
	last := user.LastSession()
	if last == nil {
		return
	}
	if r.Intention == last.Intention {
		r.MatchPoints++
	}
	if r.Discipline == last.Discipline {
		r.MatchPoints++
	}
}

// MatchedSessions scores sessions against user, best match first.
func MatchedSessions(user *data.Practitioner, sessions []data.Session) []CompanionsSessionReport {
	out := make([]CompanionsSessionReport, 0, len(sessions))
	for _, s := range sessions {
		r := NewCompanionsSessionReport(s)
		r.GiveMatchPoints(user)
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchPoints > out[j].MatchPoints })
	return out
}

type CircleReport struct {
	Name                  string `json:"name"`
	Description           string `json:"description"`
	NumberOfPractitioners int    `json:"numberOfPractitioners"`
	GeneratedPoints       int64  `json:"generatedPoints"`
}

func NewCircleReport(c data.Circle, sessions []data.Session, logPoints int64) CircleReport {
	return CircleReport{
		Name:                  c.Name,
		Description:           c.Description,
		NumberOfPractitioners: len(sessions),
		GeneratedPoints:       logPoints,
	}
}

type RegisteredReport struct {
	VirtualRegistered       int64 `json:"virtualRegistered"`
	PractitionersRegistered int64 `json:"practitionersRegistered"`
}

// WebSocket events.
const (
	EventStartSession       = "start_session"
	EventConnectVirtual     = "connect_virtual"
	EventNewCompanion       = "new_companion"
	EventCompanionsSessions = "companions_sessions"
	EventCompanionLeft      = "companion_left"
	EventError              = "error"
)

// WebSocketMessage travels in both directions on /websocket. Data and
// PractitionersSession hold JSON encoded payloads.
type WebSocketMessage struct {
	Event                string `json:"event"`
	Data                 string `json:"data"`
	PractitionersSession string `json:"practitionersSession,omitempty"`
}

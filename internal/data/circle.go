package data

import "time"

type Intention struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type Discipline struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Circle struct {
	ID                        string       `json:"_id"`
	Name                      string       `json:"name"`
	Description               string       `json:"description"`
	Geolocation               *Geolocation `json:"geolocation"`
	StartTime                 Time         `json:"startTime"`
	EndTime                   Time         `json:"endTime"`
	Intentions                []Intention  `json:"intentions"`
	Disciplines               []Discipline `json:"disciplines"`
	MinimumSpiritContribution int64        `json:"minimumSpiritContribution"`
	Language                  string       `json:"language"`
	VirtualRegistered         int64        `json:"virtualRegistered"`
	Feedback                  []int64      `json:"feedback"`
}

func (c Circle) Active(now time.Time) bool {
	return c.StartTime.Before(now) && c.EndTime.After(now)
}

// AllowsDiscipline is true when the circle lists no disciplines or lists one
// with the given title.
func (c Circle) AllowsDiscipline(title string) bool {
	if len(c.Disciplines) == 0 {
		return true
	}
	for _, d := range c.Disciplines {
		if d.Title == title {
			return true
		}
	}
	return false
}

func (c Circle) AllowsIntention(title string) bool {
	if len(c.Intentions) == 0 {
		return true
	}
	for _, i := range c.Intentions {
		if i.Title == title {
			return true
		}
	}
	return false
}

// LogPoints sums the log items created strictly inside the circle window.
func (c Circle) LogPoints(log []SpiritBankLogItem) int64 {
	var sum int64
	for _, item := range log {
		if item.Created.After(c.StartTime.Time) && item.Created.Before(c.EndTime.Time) {
			sum += item.Points
		}
	}
	return sum
}

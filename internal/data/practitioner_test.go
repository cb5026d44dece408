package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func circleAt(id string, start, end time.Time, minimum int64) Circle {
	return Circle{
		ID:                        id,
		Name:                      "Circle " + id,
		StartTime:                 At(start),
		EndTime:                   At(end),
		MinimumSpiritContribution: minimum,
	}
}

func TestNewPractitioner(t *testing.T) {
	p := NewPractitioner("abc", now)

	assert.Equal(t, "abc", p.ID)
	require.Len(t, p.SpiritBankLog, 1)
	assert.Equal(t, LogStart, p.SpiritBankLog[0].Type)
	assert.Equal(t, int64(SpiritBankStartPoints), p.SpiritBankPoints())
	assert.False(t, p.Involved())
	assert.Nil(t, p.LastSession())
}

func TestPractitioner_Involved(t *testing.T) {
	p := NewPractitioner("abc", now)
	p.SetInvolved("Rebecca", "rebecca@kollektiva.se", "Spiritual person")
	assert.True(t, p.Involved())
	assert.Equal(t, "rebecca@kollektiva.se", *p.Email)
}

func TestPractitioner_SpiritBankPoints(t *testing.T) {
	p := NewPractitioner("abc", now)
	p.AddLog(now, LogEndedSession, 7)
	p.AddLog(now, LogJoinedCircle, -20)
	assert.Equal(t, int64(37), p.SpiritBankPoints())
}

func TestPractitioner_OngoingAndEnd(t *testing.T) {
	p := NewPractitioner("abc", now)
	assert.False(t, p.HasOngoingSession(now))

	p.Sessions = append(p.Sessions, session(now.Add(-10*time.Minute), nil))
	assert.True(t, p.HasOngoingSession(now))

	p.EndLastSession(now)
	assert.False(t, p.HasOngoingSession(now))
	require.NotNil(t, p.LastSession().EndTime)
	assert.Equal(t, int64(10), p.TotalSessionMinutes(now))

	// ending again keeps the first end time
	p.EndLastSession(now.Add(time.Hour))
	assert.True(t, p.LastSession().EndTime.Equal(now))
}

func TestPractitioner_Circles(t *testing.T) {
	p := NewPractitioner("abc", now)
	c := circleAt("c1", now.Add(-time.Hour), now.Add(time.Hour), 5)

	assert.False(t, p.CreatorOfCircle(&c))
	p.PutCircle(c)
	assert.True(t, p.CreatorOfCircle(&c))
	assert.False(t, p.CreatorOfCircle(nil))

	c.Name = "Renamed"
	p.PutCircle(c)
	require.Len(t, p.Circles, 1)
	assert.Equal(t, "Renamed", p.Circles[0].Name)

	assert.True(t, p.RemoveCircle("c1"))
	assert.False(t, p.RemoveCircle("c1"))
	assert.Empty(t, p.Circles)
}

func TestPractitioner_RegisterCircleOnce(t *testing.T) {
	p := NewPractitioner("abc", now)
	p.RegisterCircle("c1")
	p.RegisterCircle("c1")
	p.RegisterCircle("c2")
	assert.Equal(t, []string{"c1", "c2"}, p.RegisteredCircles)
}

func TestPractitioner_HasSessionInCircleAfterStartTime(t *testing.T) {
	c := circleAt("c1", now.Add(-time.Hour), now.Add(time.Hour), 5)
	p := NewPractitioner("abc", now)

	inCircle := session(now.Add(-30*time.Minute), nil)
	inCircle.Circle = &c
	p.Sessions = append(p.Sessions, inCircle)

	assert.True(t, p.HasSessionInCircleAfterStartTime(c.StartTime.Time, "c1", now))
	assert.False(t, p.HasSessionInCircleAfterStartTime(c.StartTime.Time, "other", now))
	assert.False(t, p.HasSessionInCircleAfterStartTime(now.Add(-10*time.Minute), "c1", now))
}

func TestCircle_Rules(t *testing.T) {
	c := circleAt("c1", now.Add(-time.Hour), now.Add(time.Hour), 5)
	assert.True(t, c.Active(now))
	assert.False(t, c.Active(now.Add(2*time.Hour)))

	assert.True(t, c.AllowsDiscipline("anything"))
	c.Disciplines = []Discipline{{Title: "Yoga"}}
	c.Intentions = []Intention{{Title: "Love"}}
	assert.True(t, c.AllowsDiscipline("Yoga"))
	assert.False(t, c.AllowsDiscipline("Dance"))
	assert.True(t, c.AllowsIntention("Love"))
	assert.False(t, c.AllowsIntention("Harmony"))

	log := []SpiritBankLogItem{
		{Created: At(now.Add(-2 * time.Hour)), Points: 100},
		{Created: At(now), Points: 3},
		{Created: At(now.Add(10 * time.Minute)), Points: 4},
	}
	assert.Equal(t, int64(7), c.LogPoints(log))
}

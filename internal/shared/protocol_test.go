package shared

import (
	"testing"
	"time"

	"agartha/internal/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2018, 6, 1, 12, 0, 0, 0, time.UTC)

func sess(discipline, intention string, startedAgo time.Duration) data.Session {
	return data.Session{Discipline: discipline, Intention: intention, StartTime: data.At(now.Add(-startedAgo))}
}

func TestNewPractitionerReport(t *testing.T) {
	p := data.NewPractitioner("p1", now)
	r := NewPractitionerReport(p, now)
	assert.Equal(t, "p1", r.PractitionerID)
	assert.Zero(t, r.LastSessionMinutes)
	assert.Equal(t, int64(50), r.SpiritBankPoints)

	done := sess("Yoga", "Love", 60*time.Minute)
	done.EndTime = data.TimePtr(now.Add(-30 * time.Minute))
	p.Sessions = append(p.Sessions, done, sess("Yoga", "Love", 5*time.Minute))

	r = NewPractitionerReport(p, now)
	assert.Equal(t, int64(5), r.LastSessionMinutes)
	assert.Equal(t, int64(35), r.TotalSessionMinutes)
}

func TestNewCompanionReport(t *testing.T) {
	sessions := []data.Session{
		sess("Yoga", "Love", 10*time.Minute),
		sess("Dance", "Love", 20*time.Minute),
		sess("Yoga", "Harmony", 30*time.Minute),
	}
	r := NewCompanionReport(2, sessions, now)
	assert.Equal(t, 2, r.CompanionCount)
	assert.Equal(t, 3, r.SessionCount)
	assert.Equal(t, int64(60), r.SessionSumMinutes)
	assert.Equal(t, map[string]int{"Love": 2, "Harmony": 1}, r.Intentions)

	single := NewSingleSessionReport(sessions[:1], now)
	assert.Equal(t, 1, single.CompanionCount)

	empty := NewSingleSessionReport(nil, now)
	assert.NotNil(t, empty.Intentions)
}

func TestMatchedSessions(t *testing.T) {
	user := data.NewPractitioner("me", now)
	user.Sessions = append(user.Sessions, sess("Yoga", "Love", time.Minute))

	got := MatchedSessions(user, []data.Session{
		sess("Dance", "Harmony", time.Minute),
		sess("Dance", "Love", 2*time.Minute),
		sess("Yoga", "Love", 3*time.Minute),
	})
	require.Len(t, got, 3)
	assert.Equal(t, []int{2, 1, 0}, []int{got[0].MatchPoints, got[1].MatchPoints, got[2].MatchPoints})
	assert.Equal(t, "Yoga", got[0].Discipline)
}

func TestGiveMatchPoints_UserWithoutSessions(t *testing.T) {
	r := NewCompanionsSessionReport(sess("Yoga", "Love", time.Minute))
	r.GiveMatchPoints(data.NewPractitioner("me", now))
	assert.Zero(t, r.MatchPoints)
}

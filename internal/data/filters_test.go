package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func practitionerWith(id string, sessions ...Session) *Practitioner {
	p := NewPractitioner(id, now.Add(-24*time.Hour))
	p.Sessions = append(p.Sessions, sessions...)
	return p
}

func TestFilters(t *testing.T) {
	start, end := now.Add(-60*time.Minute), now

	a := practitionerWith("a", session(now.Add(-10*time.Minute), nil))
	b := practitionerWith("b",
		session(now.Add(-5*time.Hour), ptr(now.Add(-4*time.Hour))),
		session(now.Add(-20*time.Minute), ptr(now.Add(-5*time.Minute))),
	)
	c := practitionerWith("c", session(now.Add(-5*time.Hour), ptr(now.Add(-4*time.Hour))))
	all := []*Practitioner{a, b, c}

	t.Run("practitioners with sessions between", func(t *testing.T) {
		got := PractitionersWithSessionsBetween(all, start, end, now)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
	})

	t.Run("all sessions active between", func(t *testing.T) {
		assert.Len(t, AllSessionsActiveBetween(all, start, end, now), 2)
	})

	t.Run("last sessions exclude the asking practitioner", func(t *testing.T) {
		got := LastSessionsActiveBetween(all, "a", start, end, now)
		require.Len(t, got, 1)
		assert.True(t, got[0].StartTime.Equal(now.Add(-20*time.Minute)))
	})

	t.Run("ongoing", func(t *testing.T) {
		assert.Len(t, OngoingSessions(all, "", now), 1)
		assert.Empty(t, OngoingSessions(all, "a", now))
	})
}

func TestCircleLookups(t *testing.T) {
	active := circleAt("active", now.Add(-time.Hour), now.Add(time.Hour), 5)
	old := circleAt("old", now.Add(-3*time.Hour), now.Add(-2*time.Hour), 5)

	creator := practitionerWith("creator")
	creator.Circles = []Circle{active, old}

	joined := session(now.Add(-10*time.Minute), nil)
	joined.Circle = &active
	other := practitionerWith("other", joined)

	all := []*Practitioner{creator, other}

	assert.Len(t, AllCircles(all), 2)
	got := ActiveCircles(all, now)
	require.Len(t, got, 1)
	assert.Equal(t, "active", got[0].ID)

	found, owner := FindCircle(all, "old")
	require.NotNil(t, found)
	assert.Equal(t, "creator", owner.ID)
	found, owner = FindCircle(all, "missing")
	assert.Nil(t, found)
	assert.Nil(t, owner)

	assert.Len(t, SessionsInCircle(all, "active"), 1)
}

func TestComputeEndSessionAward(t *testing.T) {
	c := circleAt("c1", now.Add(-time.Hour), now.Add(time.Hour), 10)

	creator := practitionerWith("creator")
	creator.Circles = []Circle{c}
	own := session(now.Add(-50*time.Minute), nil)
	own.Circle = &c
	creator.Sessions = append(creator.Sessions, own)

	var all []*Practitioner
	all = append(all, creator)
	for _, id := range []string{"p1", "p2"} {
		s := session(now.Add(-40*time.Minute), nil)
		s.Circle = &c
		all = append(all, practitionerWith(id, s))
	}

	t.Run("creator is paid a share", func(t *testing.T) {
		award := ComputeEndSessionAward(creator, all, 25, now)
		assert.True(t, award.Creator)
		// 3 sessions * 10 points * 25%
		assert.Equal(t, int64(8), award.CirclePoints)
		require.NotNil(t, award.Circle)
		assert.Equal(t, "c1", award.Circle.ID)
	})

	t.Run("participant gets nothing", func(t *testing.T) {
		award := ComputeEndSessionAward(all[1], all, 25, now)
		assert.False(t, award.Creator)
		assert.Zero(t, award.CirclePoints)
	})

	t.Run("no circle", func(t *testing.T) {
		award := ComputeEndSessionAward(practitionerWith("x", session(now, nil)), all, 25, now)
		assert.Nil(t, award.Circle)
	})
}

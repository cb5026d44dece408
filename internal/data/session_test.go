package data

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2018, 6, 1, 12, 0, 0, 0, time.UTC)

func session(start time.Time, end *time.Time) Session {
	s := Session{Discipline: "Meditation", Intention: "Love", StartTime: At(start)}
	if end != nil {
		s.EndTime = TimePtr(*end)
	}
	return s
}

func ptr(t time.Time) *time.Time { return &t }

func TestSession_Abandoned(t *testing.T) {
	t.Run("open and older than limit", func(t *testing.T) {
		s := session(now.Add(-181*time.Minute), nil)
		assert.True(t, s.Abandoned(now))
		assert.False(t, s.Ongoing(now))
		assert.Equal(t, int64(0), s.DurationMinutes(now))
	})
	t.Run("open and recent", func(t *testing.T) {
		s := session(now.Add(-179*time.Minute), nil)
		assert.False(t, s.Abandoned(now))
		assert.True(t, s.Ongoing(now))
		assert.Equal(t, int64(179), s.DurationMinutes(now))
	})
	t.Run("ended sessions are never abandoned", func(t *testing.T) {
		s := session(now.Add(-300*time.Minute), ptr(now.Add(-200*time.Minute)))
		assert.False(t, s.Abandoned(now))
		assert.Equal(t, int64(100), s.DurationMinutes(now))
	})
}

func TestSession_DurationTruncatesSeconds(t *testing.T) {
	s := session(now.Add(-90*time.Second), nil)
	assert.Equal(t, int64(1), s.DurationMinutes(now))
}

func TestSession_Overlap(t *testing.T) {
	start, end := now.Add(-60*time.Minute), now.Add(-30*time.Minute)

	tests := []struct {
		name string
		s    Session
		want bool
	}{
		{"ends inside", session(now.Add(-90*time.Minute), ptr(now.Add(-45*time.Minute))), true},
		{"starts inside", session(now.Add(-45*time.Minute), ptr(now.Add(-10*time.Minute))), true},
		{"spans without ending", session(now.Add(-90*time.Minute), nil), true},
		{"before window", session(now.Add(-120*time.Minute), ptr(now.Add(-90*time.Minute))), false},
		{"after window", session(now.Add(-20*time.Minute), ptr(now.Add(-10*time.Minute))), false},
		{"abandoned", session(now.Add(-200*time.Minute), nil), false},
		{"ends exactly at window end", session(now.Add(-90*time.Minute), ptr(end)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.Overlap(start, end, now))
		})
	}
}

func TestSession_After(t *testing.T) {
	s := session(now.Add(-10*time.Minute), nil)
	assert.True(t, s.After(now.Add(-20*time.Minute), now))
	assert.False(t, s.After(now.Add(-5*time.Minute), now))

	abandoned := session(now.Add(-200*time.Minute), nil)
	assert.False(t, abandoned.After(now.Add(-300*time.Minute), now))
}

func TestTime_JSON(t *testing.T) {
	s := session(time.Date(2018, 5, 9, 10, 0, 0, 123_000_000, time.UTC), nil)
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"startTime":"2018-05-09T10:00:00.123Z"`)
	assert.Contains(t, string(b), `"endTime":null`)

	var back Session
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.StartTime.Equal(s.StartTime.Time))
	assert.Nil(t, back.EndTime)
}

func TestTime_UnmarshalRFC3339(t *testing.T) {
	var tm Time
	require.NoError(t, json.Unmarshal([]byte(`"2018-05-09T10:00:00+02:00"`), &tm))
	assert.Equal(t, 8, tm.Hour())
	assert.Equal(t, time.UTC, tm.Location())

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &tm))
}

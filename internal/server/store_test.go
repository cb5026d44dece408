package server

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"agartha/internal/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2018, 6, 1, 12, 0, 0, 0, time.UTC)

func newSQLiteTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "nested", "agartha.db"))
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db, zap.NewNop()))
	s := NewSQLiteStore(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func eachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryStore()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteTestStore(t)) })
}

func TestStore_Practitioners(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		inserted, err := s.InsertPractitioner(ctx, data.NewPractitioner("a", testNow))
		require.NoError(t, err)
		assert.True(t, inserted)

		inserted, err = s.InsertPractitioner(ctx, data.NewPractitioner("a", testNow))
		require.NoError(t, err)
		assert.False(t, inserted)

		_, err = s.InsertPractitioner(ctx, data.NewPractitioner("b", testNow))
		require.NoError(t, err)

		missing, err := s.GetPractitioner(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, missing)

		got, err := s.GetPractitioner(ctx, "a")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(50), got.SpiritBankPoints())
		assert.True(t, got.Created.Equal(testNow))

		all, err := s.ListPractitioners(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "a", all[0].ID)
		assert.Equal(t, "b", all[1].ID)
	})
}

func TestStore_UpdatePractitioners(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for _, id := range []string{"a", "b"} {
			_, err := s.InsertPractitioner(ctx, data.NewPractitioner(id, testNow))
			require.NoError(t, err)
		}

		out, err := s.UpdatePractitioners(ctx, []string{"a", "missing", "b"}, func(ps []*data.Practitioner) error {
			assert.Nil(t, ps[1])
			ps[0].SetInvolved("Anna", "anna@kollektiva.se", "Yogi")
			ps[2].AddLog(testNow, data.LogDonate, 5)
			return nil
		})
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.True(t, out[0].Involved())

		byEmail, err := s.FindPractitionerByEmail(ctx, "anna@kollektiva.se")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, "a", byEmail.ID)

		b, err := s.GetPractitioner(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, int64(55), b.SpiritBankPoints())

		boom := errors.New("boom")
		_, err = s.UpdatePractitioners(ctx, []string{"b"}, func(ps []*data.Practitioner) error {
			ps[0].AddLog(testNow, data.LogDonate, 100)
			return boom
		})
		assert.ErrorIs(t, err, boom)

		b, err = s.GetPractitioner(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, int64(55), b.SpiritBankPoints(), "failed update must not be saved")
	})
}

func TestStore_Remove(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		generated := data.NewPractitioner("gen", testNow)
		desc := GeneratedDescription
		generated.Description = &desc
		for _, p := range []*data.Practitioner{data.NewPractitioner("a", testNow), generated, data.NewPractitioner("b", testNow)} {
			_, err := s.InsertPractitioner(ctx, p)
			require.NoError(t, err)
		}

		require.NoError(t, s.RemoveGeneratedPractitioners(ctx))
		all, err := s.ListPractitioners(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		removed, err := s.RemovePractitioner(ctx, "a")
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = s.RemovePractitioner(ctx, "a")
		require.NoError(t, err)
		assert.False(t, removed)

		require.NoError(t, s.RemoveAllPractitioners(ctx))
		all, err = s.ListPractitioners(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestStore_SettingsImagesMonitor(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		st, err := s.GetSettings(ctx)
		require.NoError(t, err)
		assert.Nil(t, st)

		require.NoError(t, s.PutSettings(ctx, data.DefaultSettings("settings")))
		st, err = s.GetSettings(ctx)
		require.NoError(t, err)
		require.NotNil(t, st)
		assert.Len(t, st.Intentions, 10)

		st.Intentions = st.Intentions[:1]
		require.NoError(t, s.PutSettings(ctx, st))
		st, err = s.GetSettings(ctx)
		require.NoError(t, err)
		assert.Len(t, st.Intentions, 1)

		img, err := s.GetImage(ctx, "logo")
		require.NoError(t, err)
		assert.Nil(t, img)
		require.NoError(t, s.PutImage(ctx, &data.Image{ID: "logo", FileName: "a.png", Image: []byte{1, 2}}))
		require.NoError(t, s.PutImage(ctx, &data.Image{ID: "logo", FileName: "b.png", Image: []byte{3}}))
		img, err = s.GetImage(ctx, "logo")
		require.NoError(t, err)
		assert.Equal(t, "b.png", img.FileName)
		assert.Equal(t, []byte{3}, img.Image)

		n, err := s.CountMonitorItems(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		require.NoError(t, s.InsertMonitorItem(ctx, data.NewMonitorItem("m1", testNow)))
		n, err = s.CountMonitorItems(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestRunMigrations_Idempotent(t *testing.T) {
	s := newSQLiteTestStore(t)
	require.NoError(t, RunMigrations(s.DB, zap.NewNop()))

	var n int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

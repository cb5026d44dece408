package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fakeSite(write, read string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/monitoring/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":"Still alive"}`))
	})
	mux.HandleFunc("/monitoring/db/write", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(write))
	})
	mux.HandleFunc("/monitoring/db/read", func(w http.ResponseWriter, r *http.Request) {
		if read == "" {
			http.Error(w, `{"error":"db error"}`, http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(read))
	})
	return httptest.NewServer(mux)
}

func TestCheck_Healthy(t *testing.T) {
	srv := fakeSite("true", "true")
	defer srv.Close()

	p := New(srv.URL+"/", time.Second, zap.NewNop())
	assert.Equal(t, srv.URL, p.BaseURL)

	res, err := p.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Positive(t, res.Latency)
}

func TestCheck_Unhealthy(t *testing.T) {
	srv := fakeSite("false", "true")
	defer srv.Close()

	res, err := New(srv.URL, time.Second, zap.NewNop()).Check(context.Background())
	assert.ErrorIs(t, err, ErrUnhealthy)
	assert.True(t, res.Alive)
	assert.False(t, res.DBWrite)
	assert.True(t, res.DBRead)
}

func TestCheck_ReadFails(t *testing.T) {
	srv := fakeSite("true", "")
	defer srv.Close()

	p := New(srv.URL, time.Second, zap.NewNop())
	res, err := p.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/monitoring/db/read: status 500")
	assert.NotErrorIs(t, err, ErrUnhealthy)
	assert.False(t, res.OK())

	assert.Error(t, p.Once(context.Background()))
}

func TestCheck_Unreachable(t *testing.T) {
	srv := fakeSite("true", "true")
	url := srv.URL
	srv.Close()

	res, err := New(url, time.Second, zap.NewNop()).Check(context.Background())
	assert.Error(t, err)
	assert.False(t, res.Alive)
}

func TestRun_StopsOnCancel(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/monitoring/status" {
			hits.Add(1)
		}
		_, _ = w.Write([]byte("true"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(srv.URL, time.Second, zap.NewNop()).Run(ctx, 10*time.Millisecond) }()

	require.Eventually(t, func() bool { return hits.Load() >= 2 }, 5*time.Second, 5*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestRun_RejectsNonPositiveInterval(t *testing.T) {
	p := New("http://127.0.0.1:0", time.Second, zap.NewNop())
	for _, interval := range []time.Duration{0, -time.Second} {
		err := p.Run(context.Background(), interval)
		assert.ErrorIs(t, err, ErrInterval, interval)
	}
}

// Package probe checks a running Agartha site through its monitoring routes.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Probe struct {
	BaseURL string
	Client  *http.Client
	Log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Probe {
	return &Probe{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		Log:     logger,
	}
}

// Result of one round of checks.
type Result struct {
	Alive   bool
	DBWrite bool
	DBRead  bool
	Latency time.Duration
}

func (r Result) OK() bool {
	return r.Alive && r.DBWrite && r.DBRead
}

var ErrUnhealthy = errors.New("site unhealthy")

var ErrInterval = errors.New("interval must be positive")

func (p *Probe) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.Unmarshal(b, v)
}

// Check runs the status, write and read checks concurrently. Failed checks
// are reported in the Result and joined into the error.
func (p *Probe) Check(ctx context.Context) (Result, error) {
	var res Result
	var statusErr, writeErr, readErr error
	start := time.Now()

	var g errgroup.Group
	g.Go(func() error {
		var status struct {
			Text string `json:"text"`
		}
		if statusErr = p.get(ctx, "/monitoring/status", &status); statusErr == nil {
			res.Alive = status.Text == "Still alive"
		}
		return nil
	})
	g.Go(func() error {
		writeErr = p.get(ctx, "/monitoring/db/write", &res.DBWrite)
		return nil
	})
	g.Go(func() error {
		readErr = p.get(ctx, "/monitoring/db/read", &res.DBRead)
		return nil
	})
	_ = g.Wait()
	res.Latency = time.Since(start)

	if err := errors.Join(statusErr, writeErr, readErr); err != nil {
		return res, err
	}
	if !res.OK() {
		return res, ErrUnhealthy
	}
	return res, nil
}

// Run checks on every tick until ctx is done.
func (p *Probe) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInterval, interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		p.report(p.Check(ctx))
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (p *Probe) report(res Result, err error) {
	fields := []zap.Field{
		zap.String("site", p.BaseURL),
		zap.Bool("alive", res.Alive),
		zap.Bool("db_write", res.DBWrite),
		zap.Bool("db_read", res.DBRead),
		zap.Duration("latency", res.Latency),
	}
	if err != nil {
		p.Log.Warn("probe failed", append(fields, zap.Error(err))...)
		return
	}
	p.Log.Info("probe ok", fields...)
}

// Once runs a single check and logs it.
func (p *Probe) Once(ctx context.Context) error {
	res, err := p.Check(ctx)
	p.report(res, err)
	return err
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"agartha/internal/shared"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// httpServer is the part of *http.Server a Site drives.
type httpServer interface {
	Serve(net.Listener) error
	Shutdown(context.Context) error
}

// Site is a running Agartha server.
type Site struct {
	log   *zap.Logger
	srv   httpServer
	ln    net.Listener
	store Store
	hub   *Hub

	group    *errgroup.Group
	groupCtx context.Context
	stopCtx  context.Context
	stop     context.CancelFunc
}

// StartServer parses args, opens the store and starts serving in the
// background. Listen errors are returned before anything is served.
func StartServer(args []string) (*Site, error) {
	cfg, err := parseArgs(args)
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	api := NewAPI(NewService(store, cfg), logger)

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("listen %s: %w", cfg.Addr(), err)
	}

	srv := &http.Server{
		Handler:           api.Routes(cfg.StaticDir),
		ReadHeaderTimeout: 10 * time.Second,
	}
	site := newSite(srv, ln, store, api.Hub, logger)
	logger.Info("agartha site listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("environment", cfg.Environment),
		zap.String("store", cfg.Store),
	)
	return site, nil
}

func parseArgs(args []string) (*shared.SiteConfig, error) {
	fs := pflag.NewFlagSet("agartha-site", pflag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	port := fs.Int("port", 0, "port to listen on")
	dbPath := fs.String("db", "", "SQLite database path")
	store := fs.String("store", "", "document store: sqlite or memory")
	static := fs.String("static", "", "directory served at /")
	env := fs.String("env", "", "environment, development enables /v1/dev")
	level := fs.String("log-level", "", "log level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := shared.LoadSiteConfig(*configPath)
	if err != nil {
		return nil, err
	}
	if fs.Changed("port") {
		cfg.Port = *port
	}
	if fs.Changed("db") {
		cfg.DBPath = *dbPath
	}
	if fs.Changed("store") {
		cfg.Store = *store
	}
	if fs.Changed("static") {
		cfg.StaticDir = *static
	}
	if fs.Changed("env") {
		cfg.Environment = *env
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *level
	}
	return cfg, cfg.Validate()
}

func openStore(cfg *shared.SiteConfig, logger *zap.Logger) (Store, error) {
	if cfg.Store == shared.StoreMemory {
		return NewMemoryStore(), nil
	}
	db, err := OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db %s: %w", cfg.DBPath, err)
	}
	if err := RunMigrations(db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return NewSQLiteStore(db), nil
}

func newSite(srv httpServer, ln net.Listener, store Store, hub *Hub, logger *zap.Logger) *Site {
	s := &Site{log: logger, srv: srv, ln: ln, store: store, hub: hub}
	s.group, s.groupCtx = errgroup.WithContext(context.Background())
	s.stopCtx, s.stop = context.WithCancel(context.Background())
	s.group.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	return s
}

// Addr is the address the site listens on.
func (s *Site) Addr() net.Addr {
	return s.ln.Addr()
}

// Shutdown asks a waiting site to stop.
func (s *Site) Shutdown() {
	s.stop()
}

// Wait blocks until ctx is done, Shutdown is called or serving fails, then
// shuts the server down and releases the store.
func (s *Site) Wait(ctx context.Context) error {
	s.group.Go(func() error {
		select {
		case <-ctx.Done():
		case <-s.stopCtx.Done():
		case <-s.groupCtx.Done():
		}
		s.log.Info("agartha site shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := s.srv.Shutdown(shutdownCtx)
		if s.hub != nil {
			s.hub.Close()
		}
		if cerr := s.store.Close(); err == nil {
			err = cerr
		}
		return err
	})
	err := s.group.Wait()
	_ = s.log.Sync()
	return err
}

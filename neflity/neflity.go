package neflity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/neflity/neflity-site/neflity/internal"
	"github.com/neflity/neflity-site/neflity/locale"
	"github.com/neflity/neflity-site/neflity/srv"
	"github.com/neflity/neflity-site/neflity/srv/query"
	"github.com/neflity/neflity-site/neflity/status"
	"github.com/neflity/neflity-site/neflity/web"
)

// Site represents the community website.
// It holds configuration, logging, and wires the status poller to the pages.
type Site struct {
	log  *slog.Logger
	conf Config

	provider *status.Provider
	hub      *status.Hub
	poller   *srv.Poller
	srv      *http.Server

	sentry bool
	once   sync.Once
	c      chan struct{}
}

// NewSite creates a new instance of Site.
func NewSite(log *slog.Logger, conf Config) (*Site, error) {
	site := &Site{
		log:  log,
		conf: conf,
		c:    make(chan struct{}),
	}
	site.setupSentry()

	catalog := locale.NewCatalog()
	if err := catalog.Load(conf.Site.LocalePath); err != nil {
		return nil, err
	}

	serverConf := conf.ServerConfig()
	site.provider = status.NewProvider(serverConf)
	site.hub = status.NewHub(log, site.provider)
	site.poller = srv.NewPoller(log, serverConf,
		query.NewClient(serverConf.QueryURL, serverConf.RequestTimeout),
		site.provider, site.hub,
	)

	gin.SetMode(gin.ReleaseMode)
	router, err := web.New(log, conf.WebConfig(), site.provider, site.hub, catalog)
	if err != nil {
		return nil, err
	}
	site.srv = &http.Server{
		Addr:              conf.Service.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return site, nil
}

// setupSentry enables error reporting when a DSN is configured.
func (s *Site) setupSentry() {
	dsn := s.conf.Site.SentryDsn
	if dsn == "" {
		return
	}
	if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
		s.log.Error("failed to initialise sentry", "error", err)
		return
	}
	s.sentry = true
}

// Start begins polling the game server and serving the site.
// It blocks until the site is closed or the process is interrupted.
func (s *Site) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sub := s.poller.Start(ctx)

	errs := make(chan error, 1)
	go func() {
		s.log.Info("Serving site", "address", s.srv.Addr, "server", s.conf.Server.Name)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("http server failed: %w", err)
		}
	}()

	var err error
	select {
	case <-ctx.Done():
		s.log.Info("Received shutdown signal")
	case <-s.c:
	case err = <-errs:
	}

	s.poller.Stop(sub)
	s.shutdown()
	return err
}

// Handler returns the HTTP handler serving the site.
func (s *Site) Handler() http.Handler {
	return s.srv.Handler
}

// shutdown drains the HTTP server and disconnects the status stream.
func (s *Site) shutdown() {
	s.log.Debug("Closing status stream...")
	s.hub.Close()

	s.log.Debug("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), internal.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.log.Error("failed to shut down http server", "error", err)
	}

	if s.sentry {
		sentry.Flush(internal.SentryFlushTimeout)
	}
}

// Close makes Start return.
func (s *Site) Close() {
	s.once.Do(func() {
		close(s.c)
	})
}

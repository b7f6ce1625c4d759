package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-kronometer/internal/config"
	"github.com/tartampluch/go-kronometer/internal/engine"
)

// cacheItem stores the rendered calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// liveView is the formatter and wall-clock mapping behind /now. Both are
// swapped together on reload.
type liveView struct {
	formatter *engine.Formatter
	game      engine.GameClock
}

// CalendarServer serves the generated ICS feed and the live calendar date.
type CalendarServer struct {
	// cache uses atomic.Pointer for lock-free reads: the feed is read often
	// and replaced only on refresh.
	cache atomic.Pointer[cacheItem]
	view  atomic.Pointer[liveView]

	Listen string
	Clock  engine.Clock
}

// NewCalendarServer creates a new instance of the server.
func NewCalendarServer(listen string, clock engine.Clock) *CalendarServer {
	if clock == nil {
		clock = engine.RealClock{}
	}
	return &CalendarServer{
		Listen: listen,
		Clock:  clock,
	}
}

// Handler returns the routes served by the server.
func (s *CalendarServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleCalendarRequest)
	mux.HandleFunc(config.RouteNow, s.handleNowRequest)
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.Listen == "" {
		return errors.New(config.ErrListenRequired)
	}

	srv := &http.Server{
		Addr:         s.Listen,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyListen, s.Listen,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served feed.
func (s *CalendarServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	item := &cacheItem{
		data:         data,
		etag:         etag,
		lastModified: s.Clock.Now().UTC().Format(http.TimeFormat),
	}

	// Concurrent readers see either the old or the new complete item.
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// SetFormatter atomically replaces the formatter and clock mapping used by /now.
func (s *CalendarServer) SetFormatter(f *engine.Formatter, game engine.GameClock) {
	s.view.Store(&liveView{formatter: f, game: game})
	slog.Debug(config.MsgFormatterSwap,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyLeap, f.LeapYears(),
	)
}

// allowRead rejects anything but GET and HEAD.
func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func unavailable(w http.ResponseWriter) {
	w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
	http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
}

// handleCalendarRequest serves the ICS content with HTTP caching support.
func (s *CalendarServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	item := s.cache.Load()
	if item == nil {
		unavailable(w)
		return
	}

	w.Header().Set(config.HeaderServer, config.UserAgent)
	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// handleNowRequest renders the current calendar date as plain text.
func (s *CalendarServer) handleNowRequest(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	view := s.view.Load()
	if view == nil {
		unavailable(w)
		return
	}

	now := view.game.Seconds(s.Clock.Now())

	w.Header().Set(config.HeaderServer, config.UserAgent)
	w.Header().Set(config.HeaderContentType, config.MimeTextPlain)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)

	if r.Method == http.MethodGet {
		if _, err := io.WriteString(w, view.formatter.PrintDate(now, true, true)+"\n"); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

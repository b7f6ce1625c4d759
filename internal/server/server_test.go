package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-kronometer/internal/config"
	"github.com/tartampluch/go-kronometer/internal/engine"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// -----------------------------------------------------------------------------
// Unit Tests (White-Box Testing of Handler Logic)
// -----------------------------------------------------------------------------

// TestHandler_ServingContent verifies that the handler correctly writes
// the standard HTTP headers and body content when data is available.
func TestHandler_ServingContent(t *testing.T) {
	srv := NewCalendarServer("", nil)
	expectedICS := []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR")
	srv.Update(expectedICS)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.handleCalendarRequest(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.Equal(t, config.UserAgent, resp.Header.Get(config.HeaderServer))
	assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, expectedICS, body)
}

// TestHandler_Caching verifies that the server respects ETag and
// If-Modified-Since headers and returns 304 Not Modified.
func TestHandler_Caching(t *testing.T) {
	updated := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	srv := NewCalendarServer("", MockClock{CurrentTime: updated})
	srv.Update([]byte("DATA_VERSION_1"))

	w1 := httptest.NewRecorder()
	srv.handleCalendarRequest(w1, httptest.NewRequest(http.MethodGet, "/", nil))
	etag := w1.Result().Header.Get(config.HeaderETag)
	require.NotEmpty(t, etag, "Server must provide an ETag")
	assert.Equal(t, updated.Format(http.TimeFormat), w1.Result().Header.Get(config.HeaderLastModified))

	tests := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{name: "Matching ETag", header: config.HeaderIfNoneMatch, value: etag, want: http.StatusNotModified},
		{name: "Stale ETag", header: config.HeaderIfNoneMatch, value: `"old"`, want: http.StatusOK},
		{name: "Cache newer than feed", header: config.HeaderIfModifiedSince, value: updated.Add(time.Hour).Format(http.TimeFormat), want: http.StatusNotModified},
		{name: "Cache older than feed", header: config.HeaderIfModifiedSince, value: updated.Add(-time.Hour).Format(http.TimeFormat), want: http.StatusOK},
		{name: "Malformed date", header: config.HeaderIfModifiedSince, value: "yesterday", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(tt.header, tt.value)
			w := httptest.NewRecorder()
			srv.handleCalendarRequest(w, req)

			resp := w.Result()
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.want, resp.StatusCode)
			if tt.want == http.StatusNotModified {
				body, _ := io.ReadAll(resp.Body)
				assert.Empty(t, body, "Body must be empty on 304 Not Modified")
			}
		})
	}
}

// TestHandler_MethodNotAllowed ensures strictly GET and HEAD are accepted.
func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := NewCalendarServer("", nil)

	for _, route := range []string{config.RouteRoot, config.RouteNow} {
		req := httptest.NewRequest(http.MethodPost, route, nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		resp := w.Result()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, route)
		assert.Equal(t, config.AllowedMethods, resp.Header.Get(config.HeaderAllow), route)
		_ = resp.Body.Close()
	}
}

// TestHandler_Initializing verifies the 503 behavior when data is not yet ready.
func TestHandler_Initializing(t *testing.T) {
	srv := NewCalendarServer("", nil)

	for _, route := range []string{config.RouteRoot, config.RouteNow} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, route, nil))

		resp := w.Result()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, route)
		assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter), route)
		_ = resp.Body.Close()
	}
}

// TestHandler_Now renders the current calendar date from the mocked wall clock.
func TestHandler_Now(t *testing.T) {
	// Year 2, day 3, 01:01:40 at one calendar second per real second.
	elapsed := time.Duration(2*9201600+3*21600+3700) * time.Second
	srv := NewCalendarServer("", MockClock{CurrentTime: epoch.Add(elapsed)})
	srv.SetFormatter(engine.NewDefaultFormatter(), engine.GameClock{Epoch: epoch, Rate: 1})

	w := httptest.NewRecorder()
	srv.handleNowRequest(w, httptest.NewRequest(http.MethodGet, config.RouteNow, nil))

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextPlain, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.CacheControlNoStore, resp.Header.Get(config.HeaderCacheControl))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Year 3, Day 4 - 1h1m, 40s\n", string(body))

	// A swapped formatter takes effect on the next request.
	displays := engine.DefaultDisplays()
	displays.PrintDate.Date = "<Y>"
	displays.PrintDate.Time = ""
	displays.PrintDate.Seconds = ""
	f, err := engine.NewFormatter(engine.Options{Units: engine.DefaultUnits(true), Displays: displays})
	require.NoError(t, err)
	srv.SetFormatter(f, engine.GameClock{Epoch: epoch, Rate: 1})

	w = httptest.NewRecorder()
	srv.handleNowRequest(w, httptest.NewRequest(http.MethodHead, config.RouteNow, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String(), "HEAD has no body")

	w = httptest.NewRecorder()
	srv.handleNowRequest(w, httptest.NewRequest(http.MethodGet, config.RouteNow, nil))
	assert.Equal(t, "3\n", w.Body.String())
}

// -----------------------------------------------------------------------------
// Concurrency Tests (Race Detection)
// -----------------------------------------------------------------------------

// TestServer_RaceCondition validates the thread-safety of the atomic pointers.
// Run this with `go test -race`.
func TestServer_RaceCondition(t *testing.T) {
	srv := NewCalendarServer("", nil)
	var wg sync.WaitGroup
	end := time.Now().Add(500 * time.Millisecond)

	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			i := 0
			for time.Now().Before(end) {
				srv.Update([]byte(fmt.Sprintf("VERSION:%d-%d", id, i)))
				srv.SetFormatter(engine.NewDefaultFormatter(), engine.GameClock{Epoch: epoch, Rate: float64(i + 1)})
				i++
				time.Sleep(1 * time.Microsecond)
			}
		}(w)
	}

	for r := 0; r < 20; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := srv.Handler()
			for time.Now().Before(end) {
				for _, route := range []string{config.RouteRoot, config.RouteNow} {
					w := httptest.NewRecorder()
					h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, route, nil))
					if w.Code != http.StatusOK && w.Code != http.StatusServiceUnavailable {
						t.Errorf("Unexpected status code during race test: %d", w.Code)
					}
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Integration Tests (Real TCP Lifecycle)
// -----------------------------------------------------------------------------

// TestServer_Lifecycle spins up the actual TCP listener to verify network binding
// and graceful shutdown logic.
func TestServer_Lifecycle(t *testing.T) {
	const listen = "127.0.0.1:18099"

	srv := NewCalendarServer(listen, nil)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://" + listen + "/"

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	// 1. Check Initial State (503)
	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	// 2. Update Data
	srv.Update([]byte(config.StubVCalendar))

	// 3. Check Served Content (200)
	resp, err = http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "BEGIN:VCALENDAR")

	// 4. Test Shutdown
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

func TestServer_ListenRequired(t *testing.T) {
	err := NewCalendarServer("", nil).Start(context.Background())
	assert.EqualError(t, err, config.ErrListenRequired)
}

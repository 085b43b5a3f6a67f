package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-dashtyar/internal/calendar"
	"github.com/tartampluch/go-dashtyar/internal/config"
	"github.com/tartampluch/go-dashtyar/internal/notes"
)

// cacheItem stores the rendered feed, its HTTP caching metadata and the notes
// snapshot it was built from.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
	notes        *notes.Snapshot
}

// DashboardServer serves the month API and the notes feed on localhost.
type DashboardServer struct {
	// cache uses atomic.Pointer for lock-free reads: requests are frequent,
	// updates only happen on a notes refresh.
	cache atomic.Pointer[cacheItem]
	Port  string

	// Clock decides "today" for the month API.
	Clock calendar.Clock

	// DefaultSystem is used when the request does not name a calendar.
	DefaultSystem calendar.System

	listening chan string
}

// NewDashboardServer creates a new instance of the server.
func NewDashboardServer(port string, sys calendar.System) *DashboardServer {
	return &DashboardServer{
		Port:          port,
		Clock:         calendar.RealClock{},
		DefaultSystem: sys,
		listening:     make(chan string, config.ChannelBufferSize),
	}
}

// Handler returns the routes of the server.
func (s *DashboardServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteFeed, s.handleFeedRequest)
	mux.HandleFunc(config.RouteMonth, s.handleMonthRequest)
	mux.HandleFunc(config.RouteHealth, s.handleHealth)
	return mux
}

// Listening delivers the bound address once Start is serving.
func (s *DashboardServer) Listening() <-chan string {
	return s.listening
}

// Start binds to localhost and blocks until the context is cancelled.
func (s *DashboardServer) Start(ctx context.Context) error {
	if err := config.ValidatePort(s.Port); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", config.LocalhostBindAddr+config.AddrSeparator+s.Port)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, ln.Addr().String(),
		)
		select {
		case s.listening <- ln.Addr().String():
		default:
		}
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Update atomically replaces the served feed and the notes used by the month API.
func (s *DashboardServer) Update(feed []byte, snap *notes.Snapshot) {
	hash := sha256.Sum256(feed)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	item := &cacheItem{
		data:         feed,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
		notes:        snap,
	}

	// Any concurrent reader sees either the old or the new complete item.
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(feed),
		config.LogKeyETag, etag,
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

// handleFeedRequest serves the ICS content with HTTP caching support.
func (s *DashboardServer) handleFeedRequest(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderServer, config.UserAgent)
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

// handleMonthRequest answers GET /api/month?calendar=&date=&delta= with a MonthView.
// The month is computed without notes until the first snapshot arrives.
func (s *DashboardServer) handleMonthRequest(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	q := r.URL.Query()

	sys := s.DefaultSystem
	if v := q.Get(config.QueryCalendar); v != "" {
		parsed, err := calendar.ParseSystem(v)
		if err != nil {
			http.Error(w, fmt.Sprintf("%s: %s", config.ErrBadQuery, config.QueryCalendar), http.StatusBadRequest)
			return
		}
		sys = parsed
	}

	ref := calendar.Today(s.Clock)
	if v := q.Get(config.QueryDate); v != "" {
		parsed, err := calendar.ParseDateKey(v)
		if err != nil {
			http.Error(w, fmt.Sprintf("%s: %s", config.ErrBadQuery, config.QueryDate), http.StatusBadRequest)
			return
		}
		ref = parsed
	}

	if v := q.Get(config.QueryDelta); v != "" {
		delta, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, fmt.Sprintf("%s: %s", config.ErrBadQuery, config.QueryDelta), http.StatusBadRequest)
			return
		}
		if delta != 0 {
			moved, err := calendar.Advance(ref, sys, delta)
			if err != nil {
				http.Error(w, fmt.Sprintf("%s: %v", config.ErrMonthNavigate, err), http.StatusBadRequest)
				return
			}
			ref = moved
		}
	}

	var hasNotes calendar.NotePredicate
	if item := s.cache.Load(); item != nil {
		hasNotes = item.notes.HasNotes
	}

	view, err := calendar.Builder{Clock: s.Clock}.Build(ref, sys, hasNotes)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, calendar.ErrInvalidDate) || errors.Is(err, calendar.ErrOutOfRange) {
			status = http.StatusBadRequest
		}
		http.Error(w, fmt.Sprintf("%s: %v", config.ErrMonthBuild, err), status)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
	w.Header().Set(config.HeaderServer, config.UserAgent)
	if r.Method == http.MethodHead {
		return
	}
	if err := json.NewEncoder(w).Encode(view); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

func (s *DashboardServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	_, _ = io.WriteString(w, config.HTTPMsgOK)
}

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fredcamaral/deckmd/internal/domain/entities"
	"github.com/fredcamaral/deckmd/internal/domain/ports"
	"github.com/fredcamaral/deckmd/pkg/logger"
)

// PreviewServer serves the converted document over loopback HTTP: the
// raw markdown, its derived HTML view, and a websocket progress feed.
type PreviewServer struct {
	cfg      entities.PreviewConfig
	renderer ports.HTMLRenderer
	logger   logger.Logger
	hub      *Hub

	server *http.Server

	mu       sync.RWMutex
	markdown []byte
	page     string
	running  bool
}

// NewPreviewServer creates a preview server
func NewPreviewServer(cfg entities.PreviewConfig, renderer ports.HTMLRenderer, log logger.Logger) *PreviewServer {
	if log == nil {
		log = logger.NewNop()
	}
	return &PreviewServer{
		cfg:      cfg,
		renderer: renderer,
		logger:   log,
		hub:      NewHub(),
	}
}

// Addr returns the address the server binds to
func (s *PreviewServer) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// SetDocument replaces the served document. Connected clients receive a
// reload event.
func (s *PreviewServer) SetDocument(markdown []byte) error {
	page, err := s.renderer.Render(markdown)
	if err != nil {
		return err
	}
	if s.cfg.Sanitize {
		page = s.renderer.Sanitize(page)
	}

	s.mu.Lock()
	s.markdown = append([]byte(nil), markdown...)
	s.page = page
	s.mu.Unlock()

	s.hub.Broadcast(Event{Type: EventTypeReload, Timestamp: time.Now()})
	return nil
}

// BroadcastProgress pushes a conversion progress value to all clients
func (s *PreviewServer) BroadcastProgress(percent int) {
	s.hub.Broadcast(Event{
		Type:      EventTypeProgress,
		Percent:   percent,
		Timestamp: time.Now(),
	})
}

// BroadcastComplete announces the finished conversion and its output path
func (s *PreviewServer) BroadcastComplete(outputPath string) {
	s.hub.Broadcast(Event{
		Type:      EventTypeComplete,
		Percent:   100,
		Path:      outputPath,
		Timestamp: time.Now(),
	})
}

// Start starts the HTTP server
func (s *PreviewServer) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("preview server already running")
	}

	go s.hub.Run(ctx)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	s.server = &http.Server{
		Addr:         s.Addr(),
		Handler:      c.Handler(s.routes()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		s.logger.Info("preview server starting", logger.String("addr", s.Addr()))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("preview server error", logger.Error(err))
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *PreviewServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("preview server not running")
	}

	s.hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("preview server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// routes configures the HTTP routes
func (s *PreviewServer) routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/ws", s.handleWebSocket)
	r.HandleFunc("/markdown", s.handleMarkdown).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	return r
}

// handleIndex serves the derived HTML view
func (s *PreviewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	page := s.page
	s.mu.RUnlock()

	if page == "" {
		http.Error(w, "no document loaded", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// handleMarkdown serves the raw converted document
func (s *PreviewServer) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	markdown := s.markdown
	s.mu.RUnlock()

	if markdown == nil {
		http.Error(w, "no document loaded", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write(markdown)
}

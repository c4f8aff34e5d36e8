package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"promto/internal/affiliate"
	"promto/internal/campaign"
	"promto/internal/logging"
	"promto/internal/products"
	"promto/internal/services"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	// Campaign builds run ffmpeg and several generative calls in-request.
	writeTimeout    = 5 * time.Minute
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 5 * time.Second

	requestIDHeader = "X-Request-Id"
)

// ProductFinder ranks products for a keyword and exposes the raw probe.
type ProductFinder interface {
	Find(ctx context.Context, keyword string) (products.Match, error)
	Debug(ctx context.Context, keywords string) (map[string]any, error)
}

// LinkResolver turns a product URL into a tracked affiliate link.
type LinkResolver interface {
	Resolve(ctx context.Context, productURL string) (affiliate.Link, error)
}

// CampaignComposer builds the full promotional artifact bundle.
type CampaignComposer interface {
	Compose(ctx context.Context, req campaign.Request) (*campaign.Artifact, error)
}

// IdeaGenerator suggests a fresh product search phrase.
type IdeaGenerator interface {
	ViralIdea(ctx context.Context, exclude []string) (string, error)
}

// Options carries the wiring for a Server.
type Options struct {
	Bind      string
	PublicDir string
	VideoDir  string

	Finder   ProductFinder
	Resolver LinkResolver
	Composer CampaignComposer
	Ideas    IdeaGenerator

	Logger *slog.Logger
}

// Server owns the listener lifecycle and the route table.
type Server struct {
	bind      string
	publicDir string
	videoDir  string

	finder   ProductFinder
	resolver LinkResolver
	composer CampaignComposer
	ideas    IdeaGenerator

	logger *slog.Logger
	server *http.Server

	// mu guards listener; Stop can arrive from the ctx watcher and the
	// caller's defer at the same time.
	mu       sync.Mutex
	listener net.Listener
	stopOnce sync.Once
}

func New(opts Options) (*Server, error) {
	bind := strings.TrimSpace(opts.Bind)
	if bind == "" {
		return nil, services.Wrap(services.ErrConfiguration, "server", "new", "bind address required", nil)
	}
	srv := &Server{
		bind:      bind,
		publicDir: opts.PublicDir,
		videoDir:  opts.VideoDir,
		finder:    opts.Finder,
		resolver:  opts.Resolver,
		composer:  opts.Composer,
		ideas:     opts.Ideas,
		logger:    logging.NewComponentLogger(opts.Logger, "server"),
	}
	srv.server = &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
	return srv, nil
}

// Handler builds the route table. Exposed for in-process tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/find-by-name", s.handleFindByName)
	mux.HandleFunc("/api/make-affiliate-link", s.handleAffiliateLink)
	mux.HandleFunc("/api/make-campaign", s.handleCampaign)
	mux.HandleFunc("/api/viral-idea", s.handleViralIdea)
	mux.HandleFunc("/api/ali-debug", s.handleDebug)
	mux.HandleFunc("/health", s.handleHealth)

	if s.videoDir != "" {
		mux.Handle("/videos/", http.StripPrefix("/videos/", http.FileServer(http.Dir(s.videoDir))))
	}
	if s.publicDir != "" {
		if _, err := os.Stat(filepath.Join(s.publicDir, "index.html")); err == nil {
			mux.Handle("/", http.FileServer(http.Dir(s.publicDir)))
		}
	}
	return s.withRequestID(mux)
}

// Start binds the listener and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.bind, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr reports the bound address, empty before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop drains in-flight requests within the shutdown window. Safe to
// call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
		s.mu.Lock()
		if s.listener != nil {
			_ = s.listener.Close()
			s.listener = nil
		}
		s.mu.Unlock()
	})
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(services.WithRequestID(r.Context(), id)))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return services.Wrap(services.ErrValidation, "server", "decode", "invalid JSON body", err)
	}
	return nil
}

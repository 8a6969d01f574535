package inspect

import (
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rendertree-dev/rendertree/pkg/protocol"
)

// Provider supplies the frames the inspector displays. It is called on every
// request, so a live source reflects changes immediately.
type Provider func() ([]protocol.WireFrame, error)

// FileProvider reads and decodes a snapshot file on each call.
func FileProvider(path string) Provider {
	return func() ([]protocol.WireFrame, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return protocol.DecodeSnapshot(data)
	}
}

// Config configures the inspector server.
type Config struct {
	// Logger for request and watcher events. Default: slog.Default().
	Logger *slog.Logger

	// Gatherer backs the /metrics endpoint.
	// Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// WatchPath is an optional file whose modification triggers reload
	// pushes to WebSocket clients.
	WatchPath string

	// WatchInterval is the mtime poll interval (default: 500ms).
	WatchInterval time.Duration
}

// Server is the inspector HTTP server.
type Server struct {
	provider Provider
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	hub      *hub
}

// NewServer creates an inspector over the given frame provider.
func NewServer(provider Provider, config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "inspect")

	gatherer := config.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		provider: provider,
		logger:   logger,
		gatherer: gatherer,
		hub:      newHub(logger),
	}
	if config.WatchPath != "" {
		interval := config.WatchInterval
		if interval <= 0 {
			interval = 500 * time.Millisecond
		}
		go s.hub.watch(config.WatchPath, interval)
	}
	return s
}

// Close stops the watcher and disconnects WebSocket clients.
func (s *Server) Close() {
	s.hub.close()
}

// Router returns the inspector's HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/api/frames", s.handleFrames)
	r.Get("/ws", s.hub.handleWS)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	frames, err := s.provider()
	if err != nil {
		s.logger.Error("load frames failed", "error", err)
		http.Error(w, "failed to load frames", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	tree, err := BuildTree(frames)
	if err != nil {
		fmt.Fprintf(w, indexPage, fmt.Sprintf("<p class=%q>%s</p>", "error", html.EscapeString(err.Error())))
		return
	}
	fmt.Fprintf(w, indexPage, RenderHTML(tree))
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	frames, err := s.provider()
	if err != nil {
		s.logger.Error("load frames failed", "error", err)
		http.Error(w, "failed to load frames", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if frames == nil {
		frames = []protocol.WireFrame{}
	}
	if err := json.NewEncoder(w).Encode(frames); err != nil {
		s.logger.Error("encode frames failed", "error", err)
	}
}

const indexPage = `<!DOCTYPE html>
<html>
<head>
<title>rendertree inspector</title>
<style>
body { font-family: ui-monospace, monospace; margin: 2rem; }
ul { list-style: none; padding-left: 1.25rem; border-left: 1px solid #ddd; }
li { margin: 0.15rem 0; }
.seq { color: #999; font-size: 0.8em; }
.attribute > .label { color: #0a6; }
.text > .label, .markup > .label { color: #666; }
.error { color: #c00; }
</style>
<script>
(function () {
  var ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = function () { location.reload(); };
})();
</script>
</head>
<body>
<h1>rendertree inspector</h1>
%s
</body>
</html>
`

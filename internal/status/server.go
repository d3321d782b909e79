// internal/status/server.go
package status

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	sloghttp "github.com/samber/slog-http"
)

// Server exposes the status snapshot over HTTP.
type Server struct {
	tracker *Tracker
	srv     *http.Server
}

func NewServer(listen string, tracker *Tracker, logger *slog.Logger) *Server {
	s := &Server{tracker: tracker}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /healthz", handleHealthz)

	s.srv = &http.Server{
		Addr:              listen,
		Handler:           sloghttp.New(logger)(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) ListenAndServe() error { return s.srv.ListenAndServe() }

func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	body, err := sonic.Marshal(s.tracker.Snapshot())
	if err != nil {
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, "ok\n")
}

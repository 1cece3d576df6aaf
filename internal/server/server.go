// Package server renders the latest analysis report as an HTML page and
// exposes the manual refresh trigger. It is a thin view over the analyzer's
// output; nothing here touches venues or the cache directly.
package server

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"TrendBoard/internal/model"
)

// Server serves the dashboard and the refresh endpoint.
type Server struct {
	srv     *http.Server
	refresh func() *model.AnalysisReport
	tmpl    *template.Template

	mu     sync.RWMutex
	report *model.AnalysisReport
}

// New creates a Server. refresh runs one analysis cycle now and returns the
// fresh report; the server stores whatever it is handed.
func New(addr string, refresh func() *model.AnalysisReport) *Server {
	s := &Server{
		refresh: refresh,
		tmpl:    template.Must(template.New("page").Funcs(templateFuncs).Parse(pageHTML)),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/refresh", s.handleRefresh)
	s.srv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// SetReport replaces the displayed report. Called by whoever ran a cycle
// (scheduler or refresh endpoint).
func (s *Server) SetReport(r *model.AnalysisReport) {
	s.mu.Lock()
	s.report = r
	s.mu.Unlock()
}

// Start blocks serving HTTP until Shutdown.
func (s *Server) Start() error {
	log.Printf("[INFO] http server listening on %s", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()

	if report == nil {
		// First visit before any scheduled cycle: run one now.
		report = s.refresh()
		s.SetReport(report)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, report); err != nil {
		log.Printf("[ERROR] render page: %v", err)
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	report := s.refresh()
	s.SetReport(report)
	log.Printf("[INFO] manual refresh completed in %s", time.Since(start).Round(time.Millisecond))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"ok":           true,
		"generated_at": report.GeneratedAt.Format(time.RFC3339),
	})
}

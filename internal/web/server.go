package web

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"time"
)

// Server serves the two static portal pages.
type Server struct {
	templates *template.Template
	staticDir string
	server    *http.Server
}

// NewServer loads the page templates and prepares the HTTP server.
func NewServer(addr, templatesDir string) (*Server, error) {
	templates, err := template.ParseGlob(filepath.Join(templatesDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates: templates,
		staticDir: filepath.Join(templatesDir, "static"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", s.servePage("invest.html"))
	mux.HandleFunc("/retirement", s.servePage("retirement.html"))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))

	s.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// servePage renders one template with no parameters.
func (s *Server) servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.templates.ExecuteTemplate(w, name, nil); err != nil {
			log.Printf("[ERROR] render %s: %v", name, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler { return s.server.Handler }

// Start blocks serving HTTP until Shutdown.
func (s *Server) Start() error {
	log.Printf("[INFO] web server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

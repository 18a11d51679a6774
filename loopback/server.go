// Package loopback implements the redirect-and-return half of the login flow
// for embeddings without a browser history to resume from: a small localhost
// server listens on the registered redirect URI, feeds the callback into the
// auth controller and shows the outcome.
package loopback

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-fotoware-picker/auth"
	"github.com/jrsteele09/go-fotoware-picker/config"
)

// Server serves the OAuth2 redirect URI on the local loopback interface.
type Server struct {
	controller *auth.Controller
	path       string
	httpServer *http.Server
}

// New builds a loopback server from the configured redirect URI. The URI's
// host decides the listen address, its path the callback route.
func New(cfg config.Config, controller *auth.Controller) (*Server, error) {
	redirect, err := url.Parse(cfg.RedirectURI)
	if err != nil {
		return nil, fmt.Errorf("parsing redirect URI: %w", err)
	}
	path := redirect.Path
	if path == "" {
		path = "/"
	}

	s := &Server{
		controller: controller,
		path:       path,
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get(path, s.handleCallback())

	s.httpServer = &http.Server{
		Addr:              redirect.Host,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Addr is the listen address derived from the redirect URI.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler exposes the callback router so hosts that already run an HTTP
// server can mount it instead of listening separately.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe blocks serving the callback route until Shutdown.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.httpServer.Addr).Str("path", s.path).Msg("waiting for authorization callback")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("loopback ListenAndServe: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleCallback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.controller.Resume(r.Context(), r.URL.String())

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if s.controller.Session().Authenticated() {
			fmt.Fprint(w, "<html><body><p>Login complete. You can return to the studio.</p></body></html>")
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "<html><body><p>Login failed. Return to the studio and try again.</p></body></html>")
	}
}

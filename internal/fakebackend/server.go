// Package fakebackend is an in-memory stand-in for the NuuR REST backend. It
// covers the auth, profile, contact and path endpoints and issues real
// short-lived JWTs so token refresh can be exercised end to end.
package fakebackend

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/nuur-client/internal/config"
	"github.com/rs/zerolog/log"
)

type Config interface {
	config.EnvConfig
	config.BackendConfig
}

type Server struct {
	env    string
	mux    *http.ServeMux
	routes []string
	repo   *Repo
	tokens *Tokens
}

func New(cfg Config) *Server {
	s := &Server{
		env:    cfg.GetEnv(),
		mux:    http.NewServeMux(),
		repo:   NewRepo(),
		tokens: NewTokens(cfg.GetJWTSecret(), cfg.GetAccessTokenExpiry(), cfg.GetRefreshTokenExpiry()),
	}
	s.initRoutes()
	s.logRoutes()
	return s
}

// Repo exposes the data store, e.g. for seeding accounts.
func (s *Server) Repo() *Repo {
	return s.repo
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler http.HandlerFunc) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		method, path, ok := strings.Cut(route, " ")
		if !ok {
			method, path = "", route
		}
		logRoute(method, path)
	}
}

func displayMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", displayMethod(method), path)
}

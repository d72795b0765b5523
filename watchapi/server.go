// Package watchapi is the HTTP admin API of the monitor.
package watchapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// ServerConfig contains the base Server configuration
type ServerConfig struct {
	BindAddr string
	Port     int
	Token    string
}

// A Server runs the HTTP admin API.
type Server struct {
	http.Server
	sc ServerConfig
}

// NewServer creates a Server
func NewServer(sc ServerConfig, reg registry) *Server {
	s := Server{
		Server: http.Server{
			Addr:              fmt.Sprintf("%s:%d", sc.BindAddr, sc.Port),
			ReadHeaderTimeout: 10 * time.Second,
		},
		sc: sc,
	}
	s.Handler = newRouter(sc.Token, reg)
	return &s
}

func newRouter(token string, reg registry) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(requestUUID{}.handle)
	api.Use(apiAuth{token: token, minVersion: MinClientVersion}.handle)

	initServers(api, "/servers", reg)

	return r
}

// Start starts the HTTP server
func (s *Server) Start() error {
	go func() {
		log.Infof("Starting HTTP Server on %s", s.Addr)
		if err := s.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Warn("HTTP server died with error")
		} else {
			log.Info("HTTP server graceful shutdown")
		}
	}()
	return nil
}

// Stop stops the http server
func (s *Server) Stop() {
	log.Warn("Shutting down HTTP server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("Shutdown request error")
	}
}

// Package server hosts the submission endpoint: CORS negotiation, request
// decoding and the relay of each submission as email. The server holds no
// state between requests.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alper-collab/tasarim-anketi/internal/config"
	"github.com/alper-collab/tasarim-anketi/internal/mail"
)

// Server wires the router, the CORS policy and the mail sender together.
type Server struct {
	logger         *log.Logger
	sender         mail.Sender
	operator       string
	allowedOrigins []string
	addr           string
}

// New builds a Server from configuration and a mail sender.
func New(cfg config.Config, sender mail.Sender) *Server {
	return &Server{
		logger:         cfg.ServerLog,
		sender:         sender,
		operator:       cfg.OperatorAddress,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		addr:           cfg.Addr,
	}
}

// Handler assembles the router. Exposed separately from Run so tests can
// drive it with httptest.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	router.Post("/api/send-email", s.submitHandler())
	router.MethodNotAllowed(s.methodNotAllowedHandler())

	return router
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP sunucusu başlatıldı: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s.logger)
	return nil
}

// withCORS applies the origin policy: recognized origins (exact entries or
// suffix entries starting with ".") get the access-control headers echoed
// back; preflights are answered 204 either way; an actual request carrying
// an unknown Origin is rejected outright.
func withCORS(origins []string) func(http.Handler) http.Handler {
	exact := make(map[string]struct{})
	var suffixes []string
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		switch {
		case origin == "":
		case origin == "*":
			allowAll = true
		case strings.HasPrefix(origin, "."):
			suffixes = append(suffixes, origin)
		default:
			exact[origin] = struct{}{}
		}
	}

	allowed := func(origin string) bool {
		if allowAll {
			return true
		}
		if _, ok := exact[origin]; ok {
			return true
		}
		for _, suffix := range suffixes {
			if strings.HasSuffix(origin, suffix) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin != "" && allowed(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "300")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if origin != "" && !allowed(origin) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Origin not allowed"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// healthHandler answers liveness probes. There is no backing store to
// check, so reachability is the whole story.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func (s *Server) methodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", "POST, OPTIONS")
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
			"error": fmt.Sprintf("Method %s Not Allowed", r.Method),
		})
	}
}

// writeJSON is the shared response writer; it sets the content type and
// logs encode failures instead of surfacing them.
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && s.logger != nil {
		s.logger.Printf("JSON yanıtı yazılamadı: %v", err)
	}
}

// waitForShutdown watches ListenAndServe and OS signals, draining in-flight
// requests before exit.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, logger *log.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("sunucu beklenmedik şekilde durdu: %v", err)
		}
	case sig := <-sigChan:
		logger.Printf("%s sinyali alındı, sunucu kapatılıyor", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Printf("sunucu kapatılırken hata: %v", err)
		}
	}
}

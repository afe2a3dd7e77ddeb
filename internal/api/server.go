package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wheelibin/lumen/internal/models"
)

type ServerSettings interface {
	Server() string
	SetServer(server string) error
}

type Refresher interface {
	Refresh() error
}

type LightSource interface {
	Lights() []models.Light
}

type configBody struct {
	Server string `json:"server"`
}

type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Server is the HTTP surface of the bridge: the wearable link and the
// configuration flow
type Server struct {
	logger    *log.Logger
	link      http.Handler
	settings  ServerSettings
	refresher Refresher
	lights    LightSource
}

func NewServer(logger *log.Logger, link http.Handler, settings ServerSettings, refresher Refresher, lights LightSource) *Server {
	return &Server{
		logger:    logger,
		link:      link,
		settings:  settings,
		refresher: refresher,
		lights:    lights,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)

	r.Handle("/ws", s.link)
	r.Get("/config", s.handleGetConfig)
	r.Put("/config", s.handlePutConfig)
	r.Get("/lights", s.handleListLights)

	return r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start))
	})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, configBody{Server: s.settings.Server()})
}

func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	body := configBody{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.settings.SetServer(body.Server); err != nil {
		s.logger.Error("Unable to save server address", "err", err)
		writeError(w, http.StatusInternalServerError, "unable to save configuration")
		return
	}

	// the new address applies from the next request, show its lights now
	if err := s.refresher.Refresh(); err != nil {
		s.logger.Warn("Unable to queue refresh after configuration change", "err", err)
	}

	writeJSON(w, http.StatusOK, configBody{Server: s.settings.Server()})
}

func (s *Server) handleListLights(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.lights.Lights())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Status: status, Message: message})
}

// Package api serves the analysis methods over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lifestat/adapters/methods"
	"lifestat/adapters/plot"
	"lifestat/adapters/report"
	"lifestat/domain/core"
	"lifestat/domain/lifedata"
	"lifestat/internal"
	"lifestat/internal/config"
	"lifestat/internal/errors"
)

// maxBodyBytes bounds a calculate request body.
const maxBodyBytes = 1 << 20

// Server is the HTTP surface over the method contract. Every request builds
// its own method value, so handlers share no analysis state.
type Server struct {
	router   *chi.Mux
	cfg      *config.Config
	metrics  *Metrics
	renderer *plot.Renderer
	logger   *internal.Logger
}

// NewServer creates a server with its routes installed.
func NewServer(cfg *config.Config, logger *internal.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		cfg:      cfg,
		metrics:  NewMetrics(),
		renderer: plot.NewRenderer(cfg.Plot, logger),
		logger:   logger.Named("api"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	if s.cfg.Server.MetricsEnabled {
		s.router.Use(s.metrics.Middleware)
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	if s.cfg.Server.MetricsEnabled {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	s.router.Route("/api/methods", func(r chi.Router) {
		r.Get("/", s.handleListMethods)
		r.Post("/{kind}/calculate", s.handleCalculate)
		r.Post("/{kind}/plot", s.handlePlot)
	})
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrap(err, "http server failed")
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleListMethods(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, methods.Catalogue())
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	kind, req, ok := s.decodeCall(w, r)
	if !ok {
		return
	}

	resp := CalculateResponse{
		RunID:      core.NewRunID(),
		Kind:       kind,
		InputHash:  core.ComputeInputHash(string(kind), req.Values, req.Censored),
		ComputedAt: core.Now(),
		Series:     []lifedata.GraphSeries{},
	}
	log := s.logger.Named(string(kind))

	res, err := methods.Fit(kind, req.Values, req.Censored, s.fitOptions())
	if err != nil {
		appErr := errors.FromDomain(err)
		s.metrics.ObserveCalculation(string(kind), appErr.Code)
		log.Info("run %s failed: %v", resp.RunID, err)

		resp.Report = "Error: " + err.Error()
		resp.ErrorCode = appErr.Code
		if wantsHTML(r) {
			s.writeHTML(w, statusFor(appErr.Code), resp.Report)
			return
		}
		s.writeJSON(w, statusFor(appErr.Code), resp)
		return
	}

	s.metrics.ObserveCalculation(string(kind), "ok")
	log.Debug("run %s input %s", resp.RunID, core.Hash(resp.InputHash).Short())

	resp.Report = res.Report()
	resp.Series = methods.Plot(res)
	if wantsHTML(r) {
		s.writeHTML(w, http.StatusOK, resp.Report)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	kind, req, ok := s.decodeCall(w, r)
	if !ok {
		return
	}
	if !kind.HasGraph() {
		s.writeError(w, errors.InvalidInput(fmt.Sprintf("method %s has no graph", kind)))
		return
	}

	res, err := methods.Fit(kind, req.Values, req.Censored, s.fitOptions())
	if err != nil {
		s.metrics.ObserveCalculation(string(kind), errors.GetCode(err))
		s.writeError(w, err)
		return
	}
	s.metrics.ObserveCalculation(string(kind), "ok")

	var buf bytes.Buffer
	chart := plot.Chart{Title: kind.DisplayName(), Series: methods.Plot(res), LogScaleX: kind.LogScaleX()}
	if err := s.renderer.Render(&buf, chart); err != nil {
		s.writeError(w, err)
		return
	}

	contentType := "image/png"
	if s.renderer.Format() == "svg" {
		contentType = "image/svg+xml"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// decodeCall resolves the {kind} parameter and the JSON body, writing the
// error response itself when either is unusable.
func (s *Server) decodeCall(w http.ResponseWriter, r *http.Request) (methods.Kind, CalculateRequest, bool) {
	var req CalculateRequest

	kind, err := methods.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, err)
		return "", req, false
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errors.InvalidInput("request body must be JSON {\"values\": [...], \"censored\": [...]}: "+err.Error()))
		return "", req, false
	}
	return kind, req, true
}

func (s *Server) fitOptions() methods.Options {
	return methods.Options{
		Tolerance: s.cfg.Analysis.NelderMeadTolerance,
		Logger:    s.logger,
	}
}

func wantsHTML(r *http.Request) bool {
	return r.URL.Query().Get("format") == "html"
}

// statusFor maps an application error code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeInsufficientData, errors.CodeMalformedInput, errors.CodeDegenerate, errors.CodeNonConvergence:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	appErr := errors.FromDomain(err)
	s.writeJSON(w, statusFor(appErr.Code), ErrorResponse{Error: appErr.Error(), ErrorCode: appErr.Code})
}

// writeJSON encodes before writing so an encoding failure can still become
// a 500 response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.Error("failed to encode response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"failed to encode response","error_code":"INTERNAL_ERROR"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) writeHTML(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(report.HTML(text))
}

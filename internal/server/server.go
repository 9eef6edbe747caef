// Package server exposes the theme engine over HTTP. The API is the
// boundary layer: it parses and validates wire input, delegates to the
// engine packages, and maps typed engine errors onto JSON error bodies.
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmylchreest/themelab/internal/bundle"
	"github.com/jmylchreest/themelab/internal/colorspace"
	"github.com/jmylchreest/themelab/internal/config"
	"github.com/jmylchreest/themelab/internal/fault"
	"github.com/jmylchreest/themelab/internal/figures"
	"github.com/jmylchreest/themelab/internal/fonts"
	"github.com/jmylchreest/themelab/internal/palette"
	"github.com/jmylchreest/themelab/internal/render"
	"github.com/jmylchreest/themelab/internal/theme"
)

const maxBodyBytes = 256 * 1024

// Server wires the engine packages behind an HTTP API. The renderer and
// font registry are optional capabilities; endpoints that need them
// degrade gracefully when they are absent.
type Server struct {
	cfg      *config.Config
	gen      *theme.Generator
	catalog  *figures.Catalog
	fonts    *fonts.Registry
	renderer render.Renderer
	logger   *slog.Logger
}

// Option configures optional Server capabilities.
type Option func(*Server)

// WithRenderer injects an external figure renderer.
func WithRenderer(r render.Renderer) Option {
	return func(s *Server) { s.renderer = r }
}

// WithFonts injects a font registry.
func WithFonts(reg *fonts.Registry) Option {
	return func(s *Server) { s.fonts = reg }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New builds a Server. cfg, gen and catalog are required.
func New(cfg *config.Config, gen *theme.Generator, catalog *figures.Catalog, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		gen:     gen,
		catalog: catalog,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the API handler with logging middleware applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/themes/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/render", s.handleRender)
	mux.HandleFunc("POST /api/download", s.handleDownload)
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/fonts", s.handleFonts)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		observer := &statusObserver{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(observer, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", observer.status,
			"duration_ms", time.Since(started).Milliseconds(),
			"remote", r.RemoteAddr)
	})
}

type statusObserver struct {
	http.ResponseWriter
	status int
}

func (o *statusObserver) WriteHeader(status int) {
	o.status = status
	o.ResponseWriter.WriteHeader(status)
}

// generateRequest is the wire shape for a carousel refresh. Empty color
// fields fall back to the configured defaults; an empty token mints a
// fresh one.
type generateRequest struct {
	LightFG    string   `json:"light_fg"`
	LightBG    string   `json:"light_bg"`
	DarkFG     string   `json:"dark_fg"`
	DarkBG     string   `json:"dark_bg"`
	Accent     string   `json:"accent"`
	Palette    []string `json:"palette"`
	Count      int      `json:"count"`
	DPI        float64  `json:"dpi"`
	FontFamily []string `json:"font_family"`
	Token      string   `json:"token"`
}

type generateResponse struct {
	Token  string         `json:"token"`
	Themes []*theme.Theme `json:"themes"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	creq, err := s.buildCarouselRequest(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	themes, err := s.gen.Carousel(creq)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, generateResponse{Token: creq.Token, Themes: themes})
}

func (s *Server) buildCarouselRequest(req generateRequest) (theme.CarouselRequest, error) {
	var creq theme.CarouselRequest
	var err error

	if creq.LightFG, err = s.pickColor(req.LightFG, s.cfg.Colors.LightFG); err != nil {
		return creq, err
	}
	if creq.LightBG, err = s.pickColor(req.LightBG, s.cfg.Colors.LightBG); err != nil {
		return creq, err
	}
	if creq.DarkFG, err = s.pickColor(req.DarkFG, s.cfg.Colors.DarkFG); err != nil {
		return creq, err
	}
	if creq.DarkBG, err = s.pickColor(req.DarkBG, s.cfg.Colors.DarkBG); err != nil {
		return creq, err
	}
	if creq.Accent, err = s.pickColor(req.Accent, s.cfg.Colors.Accent); err != nil {
		return creq, err
	}
	if len(req.Palette) > 0 {
		if creq.Palette, err = palette.ParseList(req.Palette); err != nil {
			return creq, err
		}
	}

	creq.Count = req.Count
	if creq.Count == 0 {
		creq.Count = s.cfg.Engine.Count
	}
	creq.DPI = req.DPI
	if creq.DPI == 0 {
		creq.DPI = s.cfg.Engine.DPI
	}
	creq.FontFamily = req.FontFamily
	creq.Token = req.Token
	if creq.Token == "" {
		creq.Token = theme.NewToken()
	}
	return creq, nil
}

// renderRequest carries a previously generated theme record back in.
type renderRequest struct {
	Theme *theme.Theme `json:"theme"`
}

type renderedFigure struct {
	figures.Assembly
	Image string `json:"image_b64,omitempty"`
	Error string `json:"error,omitempty"`
}

type renderResponse struct {
	Slug    string           `json:"slug"`
	Figures []renderedFigure `json:"figures"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	th, err := s.recomposeTheme(req.Theme)
	if err != nil {
		s.writeError(w, err)
		return
	}

	assemblies := s.catalog.AssembleAll(th)
	out := make([]renderedFigure, len(assemblies))
	for i, asm := range assemblies {
		out[i] = renderedFigure{Assembly: asm}
	}

	if s.renderer != nil {
		for i, o := range render.All(r.Context(), s.renderer, assemblies, s.cfg.Server.RenderWorkers) {
			if o.OK() {
				out[i].Image = base64.StdEncoding.EncodeToString(o.Data)
			} else {
				out[i].Error = o.Err.Error()
			}
		}
	}

	s.writeJSON(w, http.StatusOK, renderResponse{Slug: th.Slug, Figures: out})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	th, err := s.recomposeTheme(req.Theme)
	if err != nil {
		s.writeError(w, err)
		return
	}

	assemblies := s.catalog.AssembleAll(th)
	var outcomes []render.Outcome
	if s.renderer != nil {
		outcomes = render.All(r.Context(), s.renderer, assemblies, s.cfg.Server.RenderWorkers)
	}

	data, err := bundle.Build(bundle.Input{Theme: th, Assemblies: assemblies, Outcomes: outcomes})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", bundle.Filename(th)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type catalogResponse struct {
	Figures []figures.Spec `json:"figures"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, catalogResponse{Figures: s.catalog.Specs()})
}

type fontsResponse struct {
	Fonts []string `json:"fonts"`
}

func (s *Server) handleFonts(w http.ResponseWriter, _ *http.Request) {
	names := []string{}
	if s.fonts != nil {
		names = s.fonts.Names()
	}
	s.writeJSON(w, http.StatusOK, fontsResponse{Fonts: names})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recomposeTheme re-validates a wire theme record through Compose so a
// tampered or hand-built record cannot smuggle in colors the engine
// would reject.
func (s *Server) recomposeTheme(t *theme.Theme) (*theme.Theme, error) {
	if t == nil {
		return nil, fault.Validationf(fault.KindInvalidHex, "request is missing the theme record")
	}
	fg, err := colorspace.ParseHex(string(t.FG))
	if err != nil {
		return nil, err
	}
	bg, err := colorspace.ParseHex(string(t.BG))
	if err != nil {
		return nil, err
	}
	accent, err := colorspace.ParseHex(string(t.Accent))
	if err != nil {
		return nil, err
	}
	pal, err := palette.ParseList(t.Palette.Strings())
	if err != nil {
		return nil, err
	}

	// DPI and font stack live only inside the record's global mapping;
	// carry them through so recomposition matches the original.
	var dpi float64
	if v, ok := t.RCGlobal["figure.dpi"].(float64); ok {
		dpi = v
	}
	var family []string
	if vs, ok := t.RCGlobal["font.family"].([]any); ok {
		for _, v := range vs {
			if s, ok := v.(string); ok {
				family = append(family, s)
			}
		}
	}

	return theme.Compose(theme.ComposeInput{
		Name:       t.Name,
		Mode:       t.Mode,
		FG:         fg,
		BG:         bg,
		Accent:     accent,
		Palette:    pal,
		DPI:        dpi,
		FontFamily: family,
		Seed:       t.Seed,
	})
}

func (s *Server) pickColor(value, fallback string) (colorspace.Color, error) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	return colorspace.ParseHex(value)
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(target); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge,
				errorBody{Code: "body_too_large", Message: "request body exceeds max size"})
			return false
		}
		s.writeJSON(w, http.StatusBadRequest,
			errorBody{Code: "bad_json", Message: "request body must be valid JSON"})
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		s.writeJSON(w, http.StatusBadRequest,
			errorBody{Code: "bad_json", Message: "request body must contain exactly one JSON object"})
		return false
	}
	return true
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps typed engine errors onto HTTP statuses. Validation
// failures are the caller's fault; configuration defects and everything
// else are ours.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *fault.ValidationError
	if errors.As(err, &verr) {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Code: verr.Kind, Message: verr.Message})
		return
	}
	var cerr *fault.ConfigError
	if errors.As(err, &cerr) {
		s.logger.Error("configuration defect", "error", cerr)
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Code: cerr.Kind, Message: cerr.Message})
		return
	}
	s.logger.Error("request failed", "error", err)
	s.writeJSON(w, http.StatusInternalServerError, errorBody{Code: "internal_error", Message: "internal error"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// ListenAndServe runs the API until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Listen,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.logger.Info("listening", "addr", s.cfg.Server.Listen)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		return err
	}
}

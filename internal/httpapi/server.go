// Package httpapi serves stored frames and the active colormap over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/borepix/borepix"
	"github.com/borepix/borepix/internal/store"
)

// Server exposes the frame store over HTTP:
//
//	GET /healthz                  liveness plus frame count
//	GET /api/frames               frame metadata as JSON
//	GET /api/frames/{depth}/image stored PNG for one depth
//	GET /api/colormap             256x1 PNG legend of the active LUT
type Server struct {
	st  *store.Store
	lut *borepix.LUT
	mux *http.ServeMux
}

// New builds a Server around an open store and a built lookup table.
func New(st *store.Store, lut *borepix.LUT) *Server {
	s := &Server{st: st, lut: lut, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/frames", s.handleList)
	s.mux.HandleFunc("GET /api/frames/{depth}/image", s.handleImage)
	s.mux.HandleFunc("GET /api/colormap", s.handleColormap)
	return s
}

// ServeHTTP implements http.Handler with request logging.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	borepix.Logger().Debug("http request",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Duration("elapsed", time.Since(start)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := s.st.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "frames": n})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	metas, err := s.st.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if metas == nil {
		metas = []store.Meta{}
	}
	writeJSON(w, http.StatusOK, metas)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("depth")
	depth, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad depth %q", raw))
		return
	}
	f, err := s.st.Get(r.Context(), depth)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(f.PNG)))
	_, _ = w.Write(f.PNG)
}

// handleColormap renders the active lookup table as a 256x1 PNG strip, one
// pixel per intensity. Clients stretch it for display.
func (s *Server) handleColormap(w http.ResponseWriter, _ *http.Request) {
	row := make([]uint8, 256)
	for i := range row {
		row[i] = uint8(i)
	}
	png, err := borepix.EncodePNG(borepix.Colorize(row, s.lut), len(row))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		borepix.Logger().Warn("writing response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/laserfinity/laserfinity/pkg/baseplate"
	"github.com/laserfinity/laserfinity/pkg/errors"
	"github.com/laserfinity/laserfinity/pkg/pipeline"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type profileBody struct {
	Name      string              `json:"name"`
	Default   bool                `json:"default"`
	Constants baseplate.Constants `json:"constants"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	cfg := s.runner.Config
	def := cfg.DefaultProfile()
	var out []profileBody
	for _, name := range cfg.Names() {
		c, err := cfg.Profile(name)
		if err != nil {
			s.writeErr(w, r, err)
			return
		}
		out = append(out, profileBody{Name: name, Default: name == def, Constants: c})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func (s *Server) handleBaseplate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Width:   q.Get("width"),
		Height:  q.Get("height"),
		Profile: q.Get("profile"),
		Title:   q.Get("title"),
		Format:  chi.URLParam(r, "format"),
		Logger:  s.logger.With("request_id", RequestIDFrom(r.Context())),
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || !(scale > 0) {
			s.writeErr(w, r, errors.New(errors.ErrCodeInvalidConfig, "scale must be a positive number, got %q", v))
			return
		}
		opts.Scale = scale
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", result.ContentType)
	h.Set("Content-Length", strconv.Itoa(len(result.Artifact)))
	h.Set("Content-Disposition", `inline; filename="gridfinity_baseplate.`+result.Format+`"`)
	h.Set("X-Grid-Columns", strconv.Itoa(result.Layout.Columns))
	h.Set("X-Grid-Rows", strconv.Itoa(result.Layout.Rows))
	if result.CacheHit {
		h.Set("X-Cache", "HIT")
	} else {
		h.Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifact)
}

// writeErr maps coded errors onto HTTP statuses.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "error", err, "request_id", RequestIDFrom(r.Context()))
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	}
	writeError(w, status, code, msg)
}

func statusFor(err error) int {
	switch {
	case errors.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

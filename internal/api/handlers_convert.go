package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/alnah/go-specmark"
)

// PermalinkCountHeader reports how many permalinks a conversion inserted.
const PermalinkCountHeader = "X-Permalink-Count"

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.jsonError(w, r, fmt.Sprintf("body exceeds max size (%d bytes)", MaxBodyBytes), http.StatusRequestEntityTooLarge)
			return
		}
		s.jsonError(w, r, "failed to read body", http.StatusBadRequest)
		return
	}

	permalinks, err := s.permalinksFromQuery(r.URL.Query())
	if err != nil {
		s.jsonError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	input := specmark.Input{Permalinks: permalinks}
	switch mediaType(r.Header.Get("Content-Type")) {
	case "", "text/html":
		input.HTML = string(data)
	case "text/markdown", "text/x-markdown":
		input.Markdown = string(data)
	default:
		s.jsonError(w, r, "unsupported content type: use text/html or text/markdown", http.StatusBadRequest)
		return
	}

	conv, err := s.pool.Acquire()
	if err != nil {
		s.log.Error("acquiring converter", "error", err)
		s.jsonError(w, r, "converter unavailable", http.StatusInternalServerError)
		return
	}
	defer s.pool.Release(conv)

	result, err := conv.Convert(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, specmark.ErrEmptyInput), errors.Is(err, specmark.ErrInvalidSymbol):
			s.jsonError(w, r, err.Error(), http.StatusBadRequest)
		case errors.Is(err, context.Canceled):
			s.log.Debug("client went away", "error", err)
		default:
			s.log.Error("conversion failed", "error", err)
			s.jsonError(w, r, "conversion failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(PermalinkCountHeader, strconv.Itoa(result.Permalinks))
	if _, err := w.Write(result.HTML); err != nil {
		s.logWriteError(r, err)
	}
}

// permalinksFromQuery overlays query parameters on the server defaults.
func (s *Server) permalinksFromQuery(q url.Values) (*specmark.Permalinks, error) {
	p := s.defaults

	for _, flag := range []struct {
		key string
		dst *bool
	}{
		{"permalinks", &p.Include},
		{"edge", &p.Edge},
		{"hide", &p.Hide},
	} {
		v := q.Get(flag.key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid boolean %q", flag.key, v)
		}
		*flag.dst = b
	}

	if q.Has("symbol") {
		p.Symbol = q.Get("symbol")
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// mediaType returns the lowercased media type without parameters.
func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType
	}
	return mt
}

func (s *Server) jsonError(w http.ResponseWriter, r *http.Request, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		s.logWriteError(r, err)
	}
}

// logWriteError records a response the client did not receive, usually
// because it went away.
func (s *Server) logWriteError(r *http.Request, err error) {
	s.log.Debug("writing response failed",
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
}

package server

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gaurav-prasanna/clipmark/core/output"
	"github.com/gaurav-prasanna/clipmark/core/render"
	"github.com/gaurav-prasanna/clipmark/internal/cache"
)

//go:embed static/index.html
var static embed.FS

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// handleConvert converts the HTML request body. Query parameters:
// format (markdown, json or html), reader=1 and download=1.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "pdf" {
		http.Error(w, "pdf output is only available from the CLI", http.StatusBadRequest)
		return
	}
	renderer, err := render.ForFormat(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reader := isTrue(q.Get("reader"))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("body exceeds %d bytes", s.maxBody), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "reading body failed", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())

	key := cache.Key(renderer.Extension(), strconv.FormatBool(reader), string(body))
	if s.cache != nil {
		if cached, ok := s.cache.Get(r.Context(), key); ok {
			name, data := splitCached(cached)
			if isTrue(q.Get("download")) {
				setDownload(w, name+renderer.Extension())
			}
			w.Header().Set("X-Cache", "hit")
			w.Write(data)
			return
		}
	}

	res, err := s.pipelineFor(reader).Run("paste", string(body), renderer)
	if err != nil {
		logRequestError(r, "conversion failed", err)
		http.Error(w, "conversion failed", http.StatusUnprocessableEntity)
		return
	}

	if s.cache != nil {
		s.cache.Set(r.Context(), key, joinCached(res.Meta.Filename, res.Data))
	}
	if isTrue(q.Get("download")) {
		setDownload(w, res.Meta.Filename+renderer.Extension())
	}
	w.Header().Set("X-Cache", "miss")
	w.Write(res.Data)
}

func setDownload(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

func isTrue(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Cached values carry the download name ahead of the rendered bytes,
// separated by a NUL. Filenames never contain NUL.
func joinCached(name string, data []byte) []byte {
	out := make([]byte, 0, len(name)+1+len(data))
	out = append(out, name...)
	out = append(out, 0)
	return append(out, data...)
}

func splitCached(v []byte) (string, []byte) {
	for i, b := range v {
		if b == 0 {
			return string(v[:i]), v[i+1:]
		}
	}
	return output.DefaultName, v
}

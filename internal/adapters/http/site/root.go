// Package site serves the embedded single-page web UI.
package site

import (
	"context"
	"errors"
	"io"
	"net/http"
)

// ErrServe is reported when the embedded index page cannot be read.
var ErrServe = errors.New("web ui serve failed")

const indexFile = "index.html"

// Register attaches the web UI to mux at GET /.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /", NewRootHandler())
}

// RootHandler serves index.html at / and embedded assets elsewhere.
type RootHandler struct {
	files  http.FileSystem
	assets http.Handler
}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	files := FS()
	return &RootHandler{files: files, assets: http.FileServer(files)}
}

func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.assets.ServeHTTP(w, r)
		return
	}
	h.HandleRoot(w, r)
}

// HandleRoot writes the index page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	f, err := h.files.Open(indexFile)
	if err != nil {
		http.Error(w, ErrServe.Error(), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, f)
}

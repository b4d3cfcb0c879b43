package handlers

import (
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

var staticContentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
}

// StaticHandler serves files below a root directory of fs.
type StaticHandler struct {
	fs   afero.Fs
	root string
}

// NewStaticHandler creates a static handler rooted at root on fs.
func NewStaticHandler(fs afero.Fs, root string) *StaticHandler {
	return &StaticHandler{fs: fs, root: filepath.Clean(root)}
}

// ServeHTTP serves r.URL.Path, mapping "/" to "/index.html".
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Path
	if urlPath == "" || urlPath == "/" {
		urlPath = "/index.html"
	}

	target := filepath.Join(h.root, filepath.FromSlash(urlPath))
	if rel, err := filepath.Rel(h.root, target); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	info, err := h.fs.Stat(target)
	if err != nil || info.IsDir() {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	f, err := h.fs.Open(target)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	contentType, ok := staticContentTypes[strings.ToLower(filepath.Ext(target))]
	if !ok {
		contentType = sniffContentType(f)
	}
	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// sniffContentType detects the type from the file head and rewinds f.
func sniffContentType(f afero.File) string {
	mtype, err := mimetype.DetectReader(f)
	if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
		log.Printf("[http] rewind %s: %v", f.Name(), seekErr)
	}
	if err != nil {
		return "application/octet-stream"
	}
	return mtype.String()
}

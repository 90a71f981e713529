package server

import (
	"html/template"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
)

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               margin: 0; padding: 2rem; background: #f5f5f5; }
        h1 { color: #7D56F4; margin: 0 0 1.5rem 0; }
        .grid { display: flex; flex-wrap: wrap; gap: 1.5rem; }
        figure { margin: 0; background: white; padding: 1rem; border-radius: 8px;
                 box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        img { max-width: 320px; display: block; }
        figcaption { color: #626262; margin-top: 0.5rem; font-size: 0.9rem; }
        p { color: #666; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    {{if .Images}}
    <div class="grid">
        {{range .Images}}
        <figure>
            <a href="/images/{{.}}"><img src="/images/{{.}}" alt="{{.}}"></a>
            <figcaption>{{.}}</figcaption>
        </figure>
        {{end}}
    </div>
    {{else}}
    <p>No images yet. Run <code>sleeve make</code> first.</p>
    {{end}}
</body>
</html>
`))

// PreviewHandler serves an index page and the named images from a directory.
// Implements the Handler interface for registration with a Router.
type PreviewHandler struct {
	dir   string
	title string
	names []string
}

// NewPreviewHandler creates a handler for dir that exposes only names.
func NewPreviewHandler(dir, title string, names []string) *PreviewHandler {
	if title == "" {
		title = "CD Sleeve Preview"
	}
	return &PreviewHandler{dir: dir, title: title, names: names}
}

// Routes returns the HTTP routes this handler serves.
func (h *PreviewHandler) Routes() []string {
	return []string{"/", "/images/"}
}

// ServeHTTP renders the index at "/" and image files under "/images/".
func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/":
		h.index(w)
	case path.Dir(r.URL.Path) == "/images":
		h.image(w, r, path.Base(r.URL.Path))
	default:
		http.NotFound(w, r)
	}
}

// Available returns the known images present in the directory, in order.
func (h *PreviewHandler) Available() []string {
	var found []string
	for _, name := range h.names {
		if info, err := os.Stat(filepath.Join(h.dir, name)); err == nil && info.Mode().IsRegular() {
			found = append(found, name)
		}
	}
	return found
}

func (h *PreviewHandler) index(w http.ResponseWriter) {
	data := struct {
		Title  string
		Images []string
	}{Title: h.title, Images: h.Available()}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := previewTemplate.Execute(w, data); err != nil {
		http.Error(w, "Failed to render preview", http.StatusInternalServerError)
	}
}

func (h *PreviewHandler) image(w http.ResponseWriter, r *http.Request, name string) {
	if !slices.Contains(h.names, name) {
		http.NotFound(w, r)
		return
	}

	p := filepath.Join(h.dir, name)
	if _, err := os.Stat(p); err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	http.ServeFile(w, r, p)
}

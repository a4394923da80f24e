package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// handleSPA serves the web front end from dir. Paths that are not real
// files get index.html so the client-side router can take over; /api paths
// never fall back.
func handleSPA(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		clean := path.Clean("/" + r.URL.Path)
		if clean == "/api" || len(clean) > 5 && clean[:5] == "/api/" {
			writeError(w, http.StatusNotFound, "not found")
			return
		}

		if info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean))); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, index)
	}
}

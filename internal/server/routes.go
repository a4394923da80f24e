package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, spaDir string, mount func(chi.Router)) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Professorlocke API", "/openapi.json", "/docs"))

	if mount != nil {
		mount(r)
	}

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		} else {
			logger.Warn("SPA directory not found", "dir", spaDir)
		}
	}
}

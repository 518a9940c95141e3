package httpapi

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
)

// Renderer renders every post of a feed to disk; FeedService implements
// it.
type Renderer interface {
	RenderFeed(ctx context.Context, outputDir, template string, bypassCache bool, filename string) error
}

// RebuildHandler triggers a full re-render with cache bypass when hit
// with the shared secret. Unauthorized requests are rejected before the
// feed is touched.
type RebuildHandler struct {
	renderer  Renderer
	secret    string
	outputDir string
	template  string
	filename  string
	log       *slog.Logger
}

func NewRebuildHandler(renderer Renderer, secret, outputDir, template, filename string, logger *slog.Logger) *RebuildHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RebuildHandler{
		renderer:  renderer,
		secret:    secret,
		outputDir: outputDir,
		template:  template,
		filename:  filename,
		log:       logger,
	}
}

func (h *RebuildHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	given := r.URL.Query().Get("secret")
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(h.secret)) != 1 {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := h.renderer.RenderFeed(r.Context(), h.outputDir, h.template, true, h.filename); err != nil {
		h.log.Error("rebuild failed", "err", err)
		http.Error(w, "Rebuild failed", http.StatusInternalServerError)
		return
	}

	h.log.Info("feed rebuilt", "output_dir", h.outputDir)
	fmt.Fprintln(w, "OK")
}

package handlers

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"healbuddy-web/internal/config"
	"healbuddy-web/internal/shell"
	"healbuddy-web/pkg/navigation"
)

const defaultTailwindURL = "https://cdn.tailwindcss.com"

// PageCache stores rendered shell variants keyed by route and menu state.
type PageCache interface {
	GetCachedPage(ctx context.Context, route string, menuOpen bool) ([]byte, error)
	CachePage(ctx context.Context, route string, menuOpen bool, html []byte, ttl time.Duration) error
}

type TemplateHandler struct {
	templates   *template.Template
	navigation  *navigation.Table
	config      *config.Config
	site        shell.Site
	cache       PageCache
	cacheTTL    time.Duration
	tailwindURL string
}

func NewTemplateHandler(cfg *config.Config, templates *template.Template, table *navigation.Table) (*TemplateHandler, error) {
	if templates == nil {
		return nil, fmt.Errorf("templates are required")
	}
	if table == nil {
		return nil, fmt.Errorf("navigation table is required")
	}
	if cfg == nil {
		cfg = config.New()
	}

	handler := &TemplateHandler{
		templates:  templates,
		navigation: table,
		config:     cfg,
		site: shell.Site{
			Name:            cfg.SiteName,
			Tagline:         cfg.SiteTagline,
			EmergencyNumber: cfg.EmergencyNumber,
			Disclaimer:      cfg.DisclaimerText,
		},
		tailwindURL: defaultTailwindURL,
	}

	if cfg.CacheTTLSeconds > 0 {
		handler.cacheTTL = time.Duration(cfg.CacheTTLSeconds) * time.Second
	}

	return handler, nil
}

// SetCache enables caching of rendered pages. A nil cache disables it.
func (h *TemplateHandler) SetCache(cache PageCache) {
	h.cache = cache
}

// TailwindURL is the stylesheet script the layout loads; the security
// middleware must allow it.
func (h *TemplateHandler) TailwindURL() string {
	return h.tailwindURL
}

func (h *TemplateHandler) Navigation() *navigation.Table {
	return h.navigation
}

package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"healbuddy-web/internal/middleware"
	"healbuddy-web/internal/shell"
	"healbuddy-web/internal/templates"
	"healbuddy-web/pkg/cache"
	"healbuddy-web/pkg/logger"
	"healbuddy-web/pkg/navigation"
)

// RenderPage serves the page behind a navigation entry inside the shell.
func (h *TemplateHandler) RenderPage(c *gin.Context) {
	route := c.Request.URL.Path
	item, ok := h.navigation.Lookup(route)
	if !ok {
		h.RenderNotFound(c)
		return
	}

	h.renderShell(c, http.StatusOK, item.Title, ContentTemplateName(item.Path), h.pageData())
}

// RedirectHome sends the bare root to the first navigation entry.
func (h *TemplateHandler) RedirectHome(c *gin.Context) {
	items := h.navigation.Items()
	if len(items) == 0 {
		h.RenderNotFound(c)
		return
	}
	c.Redirect(http.StatusFound, items[0].Path)
}

func (h *TemplateHandler) RenderNotFound(c *gin.Context) {
	h.renderError(c, http.StatusNotFound, "Page not found", "The requested page could not be found.")
}

func (h *TemplateHandler) renderError(c *gin.Context, status int, heading, message string) {
	h.renderShell(c, status, heading, "error.html", gin.H{
		"Heading": heading,
		"Message": message,
	})
}

func (h *TemplateHandler) renderShell(c *gin.Context, status int, pageName, content string, contentData gin.H) {
	route := c.Request.URL.Path
	menuOpen := shell.MenuOpenFromQuery(c.Request.URL.Query())
	log := logger.FromContext(c.Request.Context())

	cacheable := status == http.StatusOK && h.cache != nil
	if cacheable {
		cached, err := h.cache.GetCachedPage(c.Request.Context(), route, menuOpen)
		switch {
		case err == nil:
			c.Header("X-Cache", "HIT")
			c.Data(status, "text/html; charset=utf-8", cached)
			return
		case !errors.Is(err, cache.ErrCacheMiss) && !errors.Is(err, cache.ErrCacheDisabled):
			log.WithError(err).WithField("route", route).Warn("Failed to read cached page")
		}
	}

	output, err := h.renderRoute(route, pageName, menuOpen, content, contentData)
	if err != nil {
		log.WithError(err).WithField("template", content).Error("Failed to render page")
		if content == "error.html" {
			c.String(http.StatusInternalServerError, "500 - Server Error")
			return
		}
		h.renderError(c, http.StatusInternalServerError, "Server error", "Something went wrong while rendering this page.")
		return
	}

	if cacheable {
		c.Header("X-Cache", "MISS")
		if err := h.cache.CachePage(c.Request.Context(), route, menuOpen, output, h.cacheTTL); err != nil {
			log.WithError(err).WithField("route", route).Warn("Failed to cache page")
		}
	}

	c.Data(status, "text/html; charset=utf-8", output)
}

// WarmPage renders a navigation entry in the given menu state and stores it
// in the page cache ahead of the first request.
func (h *TemplateHandler) WarmPage(ctx context.Context, item navigation.Item, menuOpen bool) error {
	if h.cache == nil {
		return cache.ErrCacheDisabled
	}

	output, err := h.renderRoute(item.Path, item.Title, menuOpen, ContentTemplateName(item.Path), h.pageData())
	if err != nil {
		return err
	}
	return h.cache.CachePage(ctx, item.Path, menuOpen, output, h.cacheTTL)
}

func (h *TemplateHandler) pageData() gin.H {
	return gin.H{"EmergencyNumber": h.site.EmergencyNumber}
}

func (h *TemplateHandler) renderRoute(route, pageName string, menuOpen bool, content string, contentData gin.H) ([]byte, error) {
	sh := shell.New(h.navigation, route, pageName)
	if menuOpen {
		sh.OpenMobileMenu()
	}

	output, err := h.renderWithLayout(sh, content, contentData)
	if err != nil {
		return nil, err
	}
	middleware.RecordShellRender(pageName, menuOpen)
	return output, nil
}

// renderWithLayout renders the content template and places it in the main
// area of the shell layout.
func (h *TemplateHandler) renderWithLayout(sh *shell.Shell, content string, contentData gin.H) ([]byte, error) {
	contentTmpl := h.templates.Lookup(content)
	if contentTmpl == nil {
		return nil, fmt.Errorf("content template %q not found", content)
	}

	body, err := executeTemplate(contentTmpl, contentData)
	if err != nil {
		return nil, fmt.Errorf("render content %q: %w", content, err)
	}

	layoutTmpl := h.templates.Lookup(templates.Layout)
	if layoutTmpl == nil {
		return nil, fmt.Errorf("layout template %q not found", templates.Layout)
	}

	data := gin.H{
		"Title":       fmt.Sprintf("%s - %s", sh.PageName(), h.site.Name),
		"Description": h.site.Tagline,
		"Language":    "en",
		"TailwindURL": h.tailwindURL,
		"Shell":       sh.View(h.site),
		"Content":     template.HTML(body),
	}

	output, err := executeTemplate(layoutTmpl, data)
	if err != nil {
		return nil, fmt.Errorf("render layout: %w", err)
	}
	return output, nil
}

// ContentTemplateName maps a navigation path to its page template file. The
// root path has no page template.
func ContentTemplateName(path string) string {
	name := strings.Trim(path, "/")
	if name == "" {
		return ""
	}
	return strings.ReplaceAll(name, "/", "-") + ".html"
}

func executeTemplate(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

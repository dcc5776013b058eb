package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healbuddy-web/pkg/navigation"
)

type navigationEntry struct {
	navigation.Item
	Active bool `json:"active"`
}

type navigationResponse struct {
	Items  []navigationEntry `json:"items"`
	Active string            `json:"active"`
}

// GetNavigation returns the navigation table with the entry matching the
// path query parameter marked active.
func (h *TemplateHandler) GetNavigation(c *gin.Context) {
	active := h.navigation.ActiveIndex(c.Query("path"))

	items := h.navigation.Items()
	resp := navigationResponse{Items: make([]navigationEntry, 0, len(items))}
	for i, item := range items {
		if i == active {
			resp.Active = item.Title
		}
		resp.Items = append(resp.Items, navigationEntry{Item: item, Active: i == active})
	}

	c.JSON(http.StatusOK, resp)
}

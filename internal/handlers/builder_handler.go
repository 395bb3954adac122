package handlers

import (
	"net/http"

	"clinicsite-backend/internal/builder"
	"clinicsite-backend/internal/sections"

	"github.com/gin-gonic/gin"
)

// BuilderHandler serves the static editor metadata: which section types exist,
// their defaults and style options, and the page templates.
type BuilderHandler struct {
	registry *sections.Registry
}

func NewBuilderHandler(registry *sections.Registry) *BuilderHandler {
	return &BuilderHandler{registry: registry}
}

func (h *BuilderHandler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Config())
}

func (h *BuilderHandler) Templates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": builder.Templates()})
}

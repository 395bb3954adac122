package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clinicsite-backend/internal/models"
	"clinicsite-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type SiteHandler struct {
	siteService *service.SiteService
}

func NewSiteHandler(siteService *service.SiteService) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

func clinicIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("clinicId"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid clinic id"})
		return 0, false
	}
	return uint(id), true
}

// Get returns the clinic's draft document and its current revision.
func (h *SiteHandler) Get(c *gin.Context) {
	clinicID, ok := clinicIDParam(c)
	if !ok {
		return
	}

	record, err := h.siteService.Load(clinicID)
	if err != nil {
		if errors.Is(err, service.ErrSiteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load site"})
		return
	}

	c.JSON(http.StatusOK, models.SiteResponse{
		ClinicID:    record.ClinicID,
		Revision:    record.Revision,
		Document:    json.RawMessage(record.Document),
		PublishedAt: record.PublishedAt,
	})
}

// Save replaces the draft document. A stale revision gets 409 with the
// server's current revision so the client can reload.
func (h *SiteHandler) Save(c *gin.Context) {
	clinicID, ok := clinicIDParam(c)
	if !ok {
		return
	}

	var req models.SaveSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.siteService.Save(clinicID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRevisionConflict):
			current, loadErr := h.siteService.Load(clinicID)
			response := gin.H{"error": "site was modified by another session"}
			if loadErr == nil {
				response["revision"] = current.Revision
			}
			c.JSON(http.StatusConflict, response)
		case errors.Is(err, service.ErrInvalidDocument):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrSiteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save site"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"revision": record.Revision})
}

// Publish freezes the saved draft as the live site.
func (h *SiteHandler) Publish(c *gin.Context) {
	clinicID, ok := clinicIDParam(c)
	if !ok {
		return
	}

	record, err := h.siteService.Publish(clinicID)
	if err != nil {
		if errors.Is(err, service.ErrSiteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to publish site"})
		return
	}

	c.JSON(http.StatusOK, models.PublishResponse{
		ClinicID:    record.ClinicID,
		Revision:    record.PublishedRevision,
		PublishedAt: record.PublishedAt,
	})
}

// Published serves the live document for the public renderer. With
// ?preview=true it serves the saved draft instead, so an editor can preview
// unpublished work through the same render path.
func (h *SiteHandler) Published(c *gin.Context) {
	clinicID, ok := clinicIDParam(c)
	if !ok {
		return
	}

	if c.Query("preview") == "true" {
		record, err := h.siteService.Load(clinicID)
		if err != nil {
			if errors.Is(err, service.ErrSiteNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load site"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"clinic_id": clinicID, "document": record.Document, "preview": true})
		return
	}

	document, publishedAt, err := h.siteService.Published(clinicID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSiteNotFound), errors.Is(err, service.ErrNotPublished):
			c.JSON(http.StatusNotFound, gin.H{"error": "site not published"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load site"})
		}
		return
	}

	response := gin.H{"clinic_id": clinicID, "document": document}
	if publishedAt != nil {
		response["published_at"] = publishedAt
	}
	c.JSON(http.StatusOK, response)
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"clinicsite-backend/internal/service"
	"clinicsite-backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		file, err = c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
			return
		}
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing Content-Type header"})
		return
	}
	if !validator.ValidateContentType(contentType, []string{"image/*"}) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid Content-Type header - images only"})
		return
	}

	preferredName := strings.TrimSpace(c.PostForm("name"))

	upload, err := h.uploadService.Upload(file, preferredName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedUpload),
			errors.Is(err, service.ErrUploadTooLarge),
			errors.Is(err, service.ErrUploadMissing):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":      upload.URL,
		"filename": upload.Filename,
		"size":     upload.Size,
	})
}

func (h *UploadHandler) List(c *gin.Context) {
	uploads, err := h.uploadService.ListUploads()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"uploads": uploads})
}

func (h *UploadHandler) Delete(c *gin.Context) {
	var request struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.uploadService.IsManagedURL(request.URL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is not a managed upload"})
		return
	}

	if err := h.uploadService.Delete(request.URL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

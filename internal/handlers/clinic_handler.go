package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"clinicsite-backend/internal/models"
	"clinicsite-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ClinicHandler struct {
	clinicService *service.ClinicService
}

func NewClinicHandler(clinicService *service.ClinicService) *ClinicHandler {
	return &ClinicHandler{clinicService: clinicService}
}

func (h *ClinicHandler) Create(c *gin.Context) {
	var req models.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clinic, err := h.clinicService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClinic), errors.Is(err, service.ErrSubdomainInUse):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create clinic"})
		}
		return
	}

	c.JSON(http.StatusCreated, clinic)
}

func (h *ClinicHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("clinicId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid clinic id"})
		return
	}

	clinic, err := h.clinicService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrClinicNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "clinic not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load clinic"})
		return
	}

	c.JSON(http.StatusOK, clinic)
}

func (h *ClinicHandler) List(c *gin.Context) {
	clinics, err := h.clinicService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clinics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clinics": clinics})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bayanihan-ph/relief-backend/internal/services"
)

type RegistryHandler struct {
	registryService services.RegistryService
}

func NewRegistryHandler(registryService services.RegistryService) *RegistryHandler {
	return &RegistryHandler{registryService: registryService}
}

func (rh *RegistryHandler) CreateBarangay(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := rh.registryService.CreateBarangay(c.Request.Context(), req.Name)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, created)
}

func (rh *RegistryHandler) ListBarangays(c *gin.Context) {
	summaries, err := rh.registryService.ListBarangays(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"barangays": summaries})
}

func (rh *RegistryHandler) DeleteBarangay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barangay id"})
		return
	}
	removed, err := rh.registryService.DeleteBarangay(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"removed_beneficiaries": removed})
}

func (rh *RegistryHandler) CreateCalamity(c *gin.Context) {
	var req struct {
		Name         string `json:"name"`
		CalamityType string `json:"calamity_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := rh.registryService.CreateCalamity(c.Request.Context(), req.Name, req.CalamityType)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, created)
}

func (rh *RegistryHandler) ListCalamities(c *gin.Context) {
	calamities, err := rh.registryService.ListCalamities(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"calamities": calamities})
}

func (rh *RegistryHandler) DeleteCalamity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calamity id"})
		return
	}
	if err := rh.registryService.DeleteCalamity(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "calamity deleted"})
}

func (rh *RegistryHandler) QualifyBeneficiary(c *gin.Context) {
	calamityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calamity id"})
		return
	}
	var req struct {
		BeneficiaryID uuid.UUID `json:"beneficiary_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	record, err := rh.registryService.QualifyBeneficiary(c.Request.Context(), calamityID, req.BeneficiaryID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, record)
}

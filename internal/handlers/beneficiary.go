package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bayanihan-ph/relief-backend/internal/intake"
	"github.com/bayanihan-ph/relief-backend/internal/services"
)

type BeneficiaryHandler struct {
	beneficiaryService services.BeneficiaryService
	registryService    services.RegistryService
}

func NewBeneficiaryHandler(beneficiaryService services.BeneficiaryService, registryService services.RegistryService) *BeneficiaryHandler {
	return &BeneficiaryHandler{beneficiaryService: beneficiaryService, registryService: registryService}
}

func (bh *BeneficiaryHandler) resolveBarangay(c *gin.Context) (uuid.UUID, bool) {
	brgy, err := bh.registryService.GetBarangayByName(c.Request.Context(), c.Param("brgy"))
	if err != nil {
		RespondError(c, err)
		return uuid.Nil, false
	}
	return brgy.ID, true
}

func (bh *BeneficiaryHandler) List(c *gin.Context) {
	barangayID, ok := bh.resolveBarangay(c)
	if !ok {
		return
	}
	beneficiaries, err := bh.beneficiaryService.List(c.Request.Context(), barangayID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"beneficiaries": beneficiaries})
}

func (bh *BeneficiaryHandler) Get(c *gin.Context) {
	barangayID, ok := bh.resolveBarangay(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid beneficiary id"})
		return
	}
	beneficiary, err := bh.beneficiaryService.Get(c.Request.Context(), barangayID, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, beneficiary)
}

func (bh *BeneficiaryHandler) UpdateFamily(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid beneficiary id"})
		return
	}
	var req struct {
		Family []intake.Row `json:"family"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated, err := bh.beneficiaryService.UpdateFamily(c.Request.Context(), id, req.Family)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, updated)
}

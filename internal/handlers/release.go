package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bayanihan-ph/relief-backend/internal/services"
)

type ReleaseHandler struct {
	releaseService services.ReleaseService
}

func NewReleaseHandler(releaseService services.ReleaseService) *ReleaseHandler {
	return &ReleaseHandler{releaseService: releaseService}
}

// Verify takes the scanned QR payload verbatim; the service owns decoding so
// a malformed scan is rejected with field errors rather than a 500.
func (rh *ReleaseHandler) Verify(c *gin.Context) {
	calamityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calamity id"})
		return
	}
	var req struct {
		Payload string `json:"payload"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := rh.releaseService.Verify(c.Request.Context(), calamityID, []byte(req.Payload))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (rh *ReleaseHandler) Release(c *gin.Context) {
	calamityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calamity id"})
		return
	}
	beneficiaryID, err := uuid.Parse(c.Param("beneficiary"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid beneficiary id"})
		return
	}
	var req services.ReleaseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	record, err := rh.releaseService.Release(c.Request.Context(), calamityID, beneficiaryID, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, record)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bayanihan-ph/relief-backend/internal/services"
)

type DonorHandler struct {
	donorService services.DonorService
}

func NewDonorHandler(donorService services.DonorService) *DonorHandler {
	return &DonorHandler{donorService: donorService}
}

func (dh *DonorHandler) Create(c *gin.Context) {
	var req services.DonorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := dh.donorService.Create(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, created)
}

func (dh *DonorHandler) List(c *gin.Context) {
	donors, err := dh.donorService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"donors": donors})
}

func (dh *DonorHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donor id"})
		return
	}
	donor, err := dh.donorService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, donor)
}

func (dh *DonorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donor id"})
		return
	}
	var req services.DonorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated, err := dh.donorService.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (dh *DonorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donor id"})
		return
	}
	if err := dh.donorService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "donor deleted"})
}

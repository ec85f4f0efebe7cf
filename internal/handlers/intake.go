package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bayanihan-ph/relief-backend/internal/intake"
	"github.com/bayanihan-ph/relief-backend/internal/services"
)

type IntakeHandler struct {
	intakeService services.IntakeService
}

func NewIntakeHandler(intakeService services.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

func (ih *IntakeHandler) StartSession(c *gin.Context) {
	sessionID, machine, err := ih.intakeService.StartSession(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"session_id": sessionID, "machine": machine})
}

func (ih *IntakeHandler) GetSession(c *gin.Context) {
	machine, err := ih.intakeService.GetSession(c.Request.Context(), c.Param("session"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"machine": machine})
}

func (ih *IntakeHandler) SaveDraft(c *gin.Context) {
	var req intake.Draft
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	machine, err := ih.intakeService.SaveDraft(c.Request.Context(), c.Param("session"), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"machine": machine})
}

func (ih *IntakeHandler) Advance(c *gin.Context) {
	machine, err := ih.intakeService.Advance(c.Request.Context(), c.Param("session"))
	if err != nil {
		// A failed step validation still returns the machine so the client
		// can render the field errors it carries.
		if machine != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"machine": machine, "fields": machine.Errors})
			return
		}
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"machine": machine})
}

func (ih *IntakeHandler) Retreat(c *gin.Context) {
	machine, err := ih.intakeService.Retreat(c.Request.Context(), c.Param("session"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"machine": machine})
}

func (ih *IntakeHandler) Submit(c *gin.Context) {
	var req struct {
		ConfirmedLivingAlone bool `json:"confirmed_living_alone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, machine, err := ih.intakeService.Submit(c.Request.Context(), c.Param("session"), req.ConfirmedLivingAlone)
	if err != nil {
		if errors.Is(err, intake.ErrConfirmationRequired) {
			c.JSON(http.StatusConflict, gin.H{
				"confirmation_required": true,
				"prompt":                intake.ConfirmLivingAlonePrompt,
				"machine":               machine,
			})
			return
		}
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"beneficiary": created})
}

func (ih *IntakeHandler) ReissueQR(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid beneficiary id"})
		return
	}
	beneficiary, err := ih.intakeService.ReissueQR(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"beneficiary": beneficiary})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bayanihan-ph/relief-backend/internal/services"
)

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(eventService services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (eh *EventHandler) ListByDay(c *gin.Context) {
	events, err := eh.eventService.ListByDay(c.Request.Context(), c.Param("day"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"events": events})
}

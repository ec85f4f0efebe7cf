package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bayanihan-ph/relief-backend/internal/services"
)

type RosterHandler struct {
	rosterService services.RosterService
}

func NewRosterHandler(rosterService services.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// List serves the dashboard table: the full roster is loaded (or taken from
// cache), then filtered and paginated per the query string.
func (rh *RosterHandler) List(c *gin.Context) {
	calamityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calamity id"})
		return
	}

	rows, err := rh.rosterService.Load(c.Request.Context(), calamityID)
	if err != nil {
		RespondError(c, err)
		return
	}

	status := c.DefaultQuery("status", services.StatusAll)
	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "5"))

	filtered := services.FilterRows(rows, search, status)
	pageRows, totalPages, currentPage := services.Paginate(filtered, page, size)

	RespondOK(c, gin.H{
		"rows":        pageRows,
		"total":       len(filtered),
		"total_pages": totalPages,
		"page":        currentPage,
	})
}

func (rh *RosterHandler) Print(c *gin.Context) {
	calamityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calamity id"})
		return
	}
	doc, err := rh.rosterService.RenderPrint(c.Request.Context(), calamityID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bayanihan-ph/relief-backend/internal/services"
)

type DocumentationHandler struct {
	documentationService services.DocumentationService
}

func NewDocumentationHandler(documentationService services.DocumentationService) *DocumentationHandler {
	return &DocumentationHandler{documentationService: documentationService}
}

func (dh *DocumentationHandler) CreateFolder(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	folder, err := dh.documentationService.CreateFolder(c.Request.Context(), req.Name)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, folder)
}

func (dh *DocumentationHandler) ListFolders(c *gin.Context) {
	folders, err := dh.documentationService.ListFolders(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"folders": folders})
}

func (dh *DocumentationHandler) DeleteFolder(c *gin.Context) {
	if err := dh.documentationService.DeleteFolder(c.Request.Context(), c.Param("folder")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "folder deleted"})
}

func (dh *DocumentationHandler) UploadMedia(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	media, err := dh.documentationService.UploadMedia(c.Request.Context(),
		c.Param("folder"), header.Filename, contentType, header.Size, file)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, media)
}

func (dh *DocumentationHandler) ListMedia(c *gin.Context) {
	media, err := dh.documentationService.ListMedia(c.Request.Context(), c.Param("folder"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"media": media})
}

func (dh *DocumentationHandler) DeleteMedia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}
	if err := dh.documentationService.DeleteMedia(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "media deleted"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bayanihan-ph/relief-backend/internal/requestdata"
	"github.com/bayanihan-ph/relief-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, tokens, err := ah.authService.Register(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"user": user, "tokens": tokens})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, tokens, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"user": user, "tokens": tokens})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	tokens, err := ah.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"tokens": tokens})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := ah.authService.Logout(c.Request.Context(), rd.UserID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "logged out"})
}

func (ah *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := ah.authService.ChangePassword(c.Request.Context(), rd.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "password changed"})
}

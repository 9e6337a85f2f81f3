package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/middleware"
	"github.com/sortmyai/sortmyai-backend/internal/service"
)

// AuthHandler handles registration, login and account HTTP requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: result})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: tokens})
}

// GetMe handles GET /me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	creator, err := h.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: creator})
}

// UpdateProfile handles PATCH /me
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	creator, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: creator})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/middleware"
	"github.com/sortmyai/sortmyai-backend/internal/service"
)

// GamificationHandler handles XP, badge and streak HTTP requests
type GamificationHandler struct {
	service service.GamificationService
}

// NewGamificationHandler creates a new GamificationHandler
func NewGamificationHandler(service service.GamificationService) *GamificationHandler {
	return &GamificationHandler{service: service}
}

// GetSummary handles GET /me/xp
func (h *GamificationHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	summary, err := h.service.GetSummary(c.Request.Context(), userID)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: summary})
}

// GetBadges handles GET /me/badges
func (h *GamificationHandler) GetBadges(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	badges, err := h.service.GetBadges(c.Request.Context(), userID)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: badges})
}

// GetHistory handles GET /me/xp/history
func (h *GamificationHandler) GetHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	page, limit := parsePagination(c)
	events, meta, err := h.service.GetHistory(c.Request.Context(), userID, page, limit)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: events, Meta: meta})
}

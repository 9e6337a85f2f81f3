package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/middleware"
	"github.com/sortmyai/sortmyai-backend/internal/service"
)

// FollowHandler handles follow graph HTTP requests
type FollowHandler struct {
	service service.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(service service.FollowService) *FollowHandler {
	return &FollowHandler{service: service}
}

// Follow handles POST /follows/:uid
func (h *FollowHandler) Follow(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	targetUID := c.Param("uid")
	result, err := h.service.Follow(c.Request.Context(), userID, targetUID)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// Unfollow handles DELETE /follows/:uid
func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	targetUID := c.Param("uid")
	result, err := h.service.Unfollow(c.Request.Context(), userID, targetUID)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// GetStatus handles GET /follows/:uid/status
func (h *FollowHandler) GetStatus(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	targetUID := c.Param("uid")
	following, err := h.service.IsFollowing(c.Request.Context(), userID, targetUID)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{
		"target_uid": targetUID,
		"following":  following,
	}})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/middleware"
	"github.com/sortmyai/sortmyai-backend/internal/service"
)

// CreatorHandler handles public creator profile HTTP requests
type CreatorHandler struct {
	creators service.CreatorService
	follows  service.FollowService
}

// NewCreatorHandler creates a new CreatorHandler
func NewCreatorHandler(creators service.CreatorService, follows service.FollowService) *CreatorHandler {
	return &CreatorHandler{creators: creators, follows: follows}
}

// GetProfile handles GET /creators/:handle
func (h *CreatorHandler) GetProfile(c *gin.Context) {
	handle := c.Param("handle")
	viewerUID := middleware.GetUserID(c)

	profile, err := h.creators.GetProfile(c.Request.Context(), handle, viewerUID)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: profile})
}

// GetFollowers handles GET /creators/:handle/followers
func (h *CreatorHandler) GetFollowers(c *gin.Context) {
	handle := c.Param("handle")
	page, limit := parsePagination(c)

	profile, err := h.creators.GetProfile(c.Request.Context(), handle, "")
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	followers, meta, err := h.follows.GetFollowers(c.Request.Context(), profile.UID, page, limit)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: followers, Meta: meta})
}

// GetFollowing handles GET /creators/:handle/following
func (h *CreatorHandler) GetFollowing(c *gin.Context) {
	handle := c.Param("handle")
	page, limit := parsePagination(c)

	profile, err := h.creators.GetProfile(c.Request.Context(), handle, "")
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	following, meta, err := h.follows.GetFollowing(c.Request.Context(), profile.UID, page, limit)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: following, Meta: meta})
}

// Recount handles POST /creators/:handle/recount
func (h *CreatorHandler) Recount(c *gin.Context) {
	handle := c.Param("handle")

	profile, err := h.creators.GetProfile(c.Request.Context(), handle, "")
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	result, err := h.follows.Recount(c.Request.Context(), profile.UID)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// parsePagination reads page/limit query parameters with defaults
func parsePagination(c *gin.Context) (int, int) {
	page := 1
	if val, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		page = val
	}
	limit := 20
	if val, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		limit = val
	}
	return page, limit
}

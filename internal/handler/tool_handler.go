package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/middleware"
	"github.com/sortmyai/sortmyai-backend/internal/service"
)

// ToolHandler handles AI tool catalog HTTP requests
type ToolHandler struct {
	service service.ToolService
}

// NewToolHandler creates a new ToolHandler
func NewToolHandler(service service.ToolService) *ToolHandler {
	return &ToolHandler{service: service}
}

// Submit handles POST /tools
func (h *ToolHandler) Submit(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req domain.SubmitToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tool, err := h.service.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: tool})
}

// Get handles GET /tools/:slug
func (h *ToolHandler) Get(c *gin.Context) {
	slug := c.Param("slug")
	viewerUID := middleware.GetUserID(c)

	tool, err := h.service.GetBySlug(c.Request.Context(), slug, viewerUID)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: tool})
}

// List handles GET /tools
func (h *ToolHandler) List(c *gin.Context) {
	category := strings.ToLower(c.Query("category"))
	page, limit := parsePagination(c)

	tools, meta, err := h.service.List(c.Request.Context(), category, page, limit)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: tools, Meta: meta})
}

// Search handles GET /tools/search
func (h *ToolHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Query parameter q is required", nil)
		return
	}
	page, limit := parsePagination(c)

	tools, meta, err := h.service.Search(c.Request.Context(), query, page, limit)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: tools, Meta: meta})
}

// Upvote handles POST /tools/:slug/upvote
func (h *ToolHandler) Upvote(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	if err := h.service.Upvote(c.Request.Context(), c.Param("slug"), userID); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{"upvoted": true}})
}

// RemoveUpvote handles DELETE /tools/:slug/upvote
func (h *ToolHandler) RemoveUpvote(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	if err := h.service.RemoveUpvote(c.Request.Context(), c.Param("slug"), userID); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{"upvoted": false}})
}

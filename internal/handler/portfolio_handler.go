package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/middleware"
	"github.com/sortmyai/sortmyai-backend/internal/service"
)

// PortfolioHandler handles portfolio HTTP requests
type PortfolioHandler struct {
	service  service.PortfolioService
	creators service.CreatorService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(service service.PortfolioService, creators service.CreatorService) *PortfolioHandler {
	return &PortfolioHandler{service: service, creators: creators}
}

// Create handles POST /portfolio
func (h *PortfolioHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req domain.CreatePortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), userID, &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: item})
}

// ListByCreator handles GET /creators/:handle/portfolio
func (h *PortfolioHandler) ListByCreator(c *gin.Context) {
	handle := c.Param("handle")
	page, limit := parsePagination(c)

	profile, err := h.creators.GetProfile(c.Request.Context(), handle, "")
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	items, meta, err := h.service.ListItems(c.Request.Context(), profile.UID, page, limit)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: items, Meta: meta})
}

// Update handles PATCH /portfolio/:id
func (h *PortfolioHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req domain.UpdatePortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: item})
}

// Delete handles DELETE /portfolio/:id
func (h *PortfolioHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), userID, c.Param("id")); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{"deleted": true}})
}

// PrepareUpload handles POST /portfolio/upload-url, issuing a pre-signed direct
// upload grant
func (h *PortfolioHandler) PrepareUpload(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req struct {
		Filename    string `json:"filename" binding:"required"`
		ContentType string `json:"content_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ticket, err := h.service.PrepareUpload(c.Request.Context(), userID, req.Filename, req.ContentType)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: ticket})
}

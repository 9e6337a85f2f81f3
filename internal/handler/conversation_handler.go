package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/middleware"
	"github.com/sortmyai/sortmyai-backend/internal/service"
)

// ConversationHandler handles messaging HTTP requests
type ConversationHandler struct {
	service service.ConversationService
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(service service.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: service}
}

// SendMessage handles POST /messages
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	message, err := h.service.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: message})
}

// GetPreviews handles GET /conversations
func (h *ConversationHandler) GetPreviews(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	previews, err := h.service.GetMessagePreviews(c.Request.Context(), userID)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: previews})
}

// GetMessages handles GET /conversations/:id/messages
func (h *ConversationHandler) GetMessages(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	conversationID := c.Param("id")
	page, limit := parsePagination(c)

	messages, meta, err := h.service.GetMessages(c.Request.Context(), conversationID, userID, page, limit)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: messages, Meta: meta})
}

// Respond handles POST /conversations/:id/respond. The receiver accepts
// or rejects a pending request
func (h *ConversationHandler) Respond(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req domain.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	conversationID := c.Param("id")
	conv, err := h.service.RespondToRequest(c.Request.Context(), conversationID, userID, req.Decision)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: conv})
}

// MarkRead handles POST /conversations/:id/read
func (h *ConversationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	conversationID := c.Param("id")
	flipped, err := h.service.MarkConversationRead(c.Request.Context(), conversationID, userID)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{"marked_read": flipped}})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/middleware"
	"github.com/sortmyai/sortmyai-backend/internal/service"
)

// NotificationHandler handles notification summary HTTP requests
type NotificationHandler struct {
	service service.NotifierService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service service.NotifierService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GetSummary handles GET /notifications/summary. The same summary the
// websocket pushes, for clients that poll or need an initial value.
func (h *NotificationHandler) GetSummary(c *gin.Context) {
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

package notification

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// RegisterRoutes expects rg to be behind the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications/ws", h.Connect)
}

// Connect godoc
// @Summary Подписка на уведомления
// @Tags Уведомления
// @Security CookieAuth
// @Router /notifications/ws [get]
func (h *Handler) Connect(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if err := h.hub.Serve(c.Writer, c.Request, userID); err != nil {
		// Upgrade already wrote the HTTP error
		h.hub.log.Warn("websocket upgrade failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}

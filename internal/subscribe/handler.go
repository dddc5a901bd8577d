package subscribe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trendlens/trendlens/internal/errors"
	"github.com/trendlens/trendlens/internal/types"
)

// Handler serves POST /api/subscribe.
type Handler struct {
	client *Client
}

// NewHandler creates the subscription handler.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes mounts the subscription endpoint.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/subscribe", h.Subscribe)
}

// Subscribe handles a signup request.
func (h *Handler) Subscribe(c *gin.Context) {
	var req types.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please enter a valid email address"})
		return
	}

	if err := h.client.Subscribe(c.Request.Context(), req.Email); err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.ErrBuilder.Msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You've successfully subscribed!"})
}

package npc

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/jogjachat/internal/domain"
	"github.com/liliang-cn/jogjachat/internal/service"
)

// Handler handles the shop assistant's API requests
type Handler struct {
	npcService *service.NPCService
}

// NewHandler creates a new NPC handler
func NewHandler(npcService *service.NPCService) *Handler {
	return &Handler{npcService: npcService}
}

// RegisterRoutes registers NPC routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/ask-npc", h.Ask)
	r.GET("/conversation/:sessionId", h.GetConversation)
	r.DELETE("/conversation/:sessionId", h.DeleteConversation)
}

// Ask answers a visitor's message
func (h *Handler) Ask(c *gin.Context) {
	var req domain.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.npcService.Ask(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetConversation lists a session's stored history
func (h *Handler) GetConversation(c *gin.Context) {
	sessionID := c.Param("sessionId")

	entries, err := h.npcService.History(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "messages": entries})
}

// DeleteConversation drops a session's stored history
func (h *Handler) DeleteConversation(c *gin.Context) {
	sessionID := c.Param("sessionId")

	removed, err := h.npcService.Forget(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}

package api

import (
	"net/http"
	"strconv"

	"tactical-server/internal/services"
	"tactical-server/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChatHandler struct {
	chatService *services.ChatService
	wsHub       *websocket.Hub
}

func NewChatHandler(chatService *services.ChatService, wsHub *websocket.Hub) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		wsHub:       wsHub,
	}
}

// List returns messages newest first, scoped to a channel when one is given.
func (h *ChatHandler) List(c *gin.Context) {
	channelID := c.Query("channelId")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	messages, err := h.chatService.List(channelID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    len(messages),
	})
}

func (h *ChatHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	message, err := h.chatService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

func (h *ChatHandler) Create(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	message, err := h.chatService.Create(payload)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.BroadcastToChannel(message.ChannelID, "chat_message", map[string]interface{}{
		"message_id": message.ID,
		"channel_id": message.ChannelID,
		"handle":     message.Handle,
		"message":    message.Message,
		"timestamp":  message.Timestamp,
	})

	c.JSON(http.StatusCreated, message)
}

func (h *ChatHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	message, err := h.chatService.Update(id, payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

func (h *ChatHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if err := h.chatService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

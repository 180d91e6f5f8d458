package api

import (
	"net/http"
	"strconv"

	"tactical-server/internal/services"
	"tactical-server/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *services.UserService
	wsHub       *websocket.Hub
}

func NewUserHandler(userService *services.UserService, wsHub *websocket.Hub) *UserHandler {
	return &UserHandler{
		userService: userService,
		wsHub:       wsHub,
	}
}

// List returns users, optionally filtered by role and active flag.
func (h *UserHandler) List(c *gin.Context) {
	role := c.Query("role")

	var isActive *bool
	if raw := c.Query("isActive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid isActive"})
			return
		}
		isActive = &parsed
	}

	users, err := h.userService.List(role, isActive)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": len(users),
	})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	user, err := h.userService.Create(payload)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("user_created", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	user, err := h.userService.Update(id, payload)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("user_updated", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.userService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	h.wsHub.Broadcast("user_deleted", map[string]interface{}{
		"user_id": id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

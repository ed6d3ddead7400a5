package handler

import (
	"net/http"
	"strconv"

	"djibtrade/internal/middleware"
	"djibtrade/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.svc.ListMine(middleware.GetUserID(c), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

// MarkRead reports not-found both for missing notifications and for someone
// else's: the lookup is scoped to the caller.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	if err := h.svc.MarkRead(id, middleware.GetUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	count, err := h.svc.MarkAllRead(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "all notifications marked as read", "updated": count})
}

func (h *NotificationHandler) GetPreferences(c *gin.Context) {
	pref, err := h.svc.GetPreferences(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "preferences unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": pref})
}

// UpdatePreferences accepts a partial payload; omitted flags keep their
// stored value.
func (h *NotificationHandler) UpdatePreferences(c *gin.Context) {
	var req service.PreferencesInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pref, err := h.svc.UpdatePreferences(middleware.GetUserID(c), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": pref})
}

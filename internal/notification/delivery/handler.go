package delivery

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"aiready-notifier/internal/notification/domain"
	"aiready-notifier/internal/notification/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NotificationHandler handles trigger deliveries and notification log reads
type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
	}
}

// ReceiveEvent runs the pipeline for one Firestore change delivered over HTTP.
// A 5xx response makes the push subscription redeliver the event.
// POST /api/events
func (h *NotificationHandler) ReceiveEvent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	eventID := c.GetHeader("Ce-Id")
	if eventID == "" {
		eventID = uuid.New().String()
	}

	event, err := DecodeEvent(body, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownTrigger) {
			logrus.Warnf("[Events] Ignoring event %s: %v", eventID, err)
			c.JSON(http.StatusAccepted, gin.H{"status": "ignored"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.notificationUsecase.Handle(c.Request.Context(), event); err != nil {
		logrus.Errorf("[Events] %s %s failed: %v", event.Trigger, eventID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "handler failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "event_id": eventID})
}

// ListNotifications returns a recipient's in-app notifications
// GET /api/notifications/:uid?limit=50
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	uid := c.Param("uid")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.notificationUsecase.ListNotifications(c.Request.Context(), uid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": records,
		"total":         len(records),
	})
}

// UnreadCount returns how many notifications of a recipient are unread
// GET /api/notifications/:uid/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	uid := c.Param("uid")

	count, err := h.notificationUsecase.UnreadCount(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

package api

import (
	"net/http"

	notificationDelivery "aiready-notifier/internal/notification/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, notificationHandler *notificationDelivery.NotificationHandler) {
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Firestore change events (push subscription / Eventarc target)
		api.POST("/events", notificationHandler.ReceiveEvent)

		// In-app notification log
		notifications := api.Group("/notifications")
		{
			notifications.GET("/:uid", notificationHandler.ListNotifications)
			notifications.GET("/:uid/unread-count", notificationHandler.UnreadCount)
		}
	}
}

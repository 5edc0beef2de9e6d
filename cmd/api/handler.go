package api

import (
	notificationDelivery "aiready-notifier/internal/notification/delivery"
	notificationUsecase "aiready-notifier/internal/notification/usecase"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	notificationHandler *notificationDelivery.NotificationHandler
}

func NewHandler(notificationUc notificationUsecase.NotificationUsecase) *Handler {
	return &Handler{
		notificationHandler: notificationDelivery.NewNotificationHandler(notificationUc),
	}
}

// Router builds the gin engine with every route registered
func (h *Handler) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	SetupRoutes(r, h.notificationHandler)
	return r
}

func (h *Handler) Start(addr string) error {
	return h.Router().Run(addr)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	api "aiready-notifier/cmd/api"
	notificationdomain "aiready-notifier/internal/notification/domain"
	notificationDelivery "aiready-notifier/internal/notification/delivery"
	notificationRepo "aiready-notifier/internal/notification/repository"
	notificationUsecase "aiready-notifier/internal/notification/usecase"
	"aiready-notifier/pkg/config"
	"aiready-notifier/pkg/database"
	"aiready-notifier/pkg/fcm"
	"aiready-notifier/pkg/firebaseapp"
	"aiready-notifier/pkg/logging"

	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Firebase app backs both Firestore and FCM
	app, err := firebaseapp.NewApp(ctx, cfg.GoogleProjectID, cfg.FirebaseCredentials)
	if err != nil {
		logrus.Fatalf("Failed to initialize Firebase: %v", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		logrus.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	fcmClient, err := fcm.NewClient(ctx, app)
	if err != nil {
		logrus.Fatalf("Failed to initialize FCM client: %v", err)
	}

	// Initialize repositories (dependency injection)
	tokenRepo := notificationRepo.NewFirestoreTokenRepository(firestoreClient, cfg.UsersCollection)
	contentRepo := notificationRepo.NewFirestoreContentRepository(firestoreClient, cfg.PostsCollection)

	var recordRepo notificationRepo.NotificationRepository
	switch cfg.NotificationLogBackend {
	case config.LogBackendPostgres:
		db, err := database.NewPostgresConnection(cfg)
		if err != nil {
			logrus.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&notificationdomain.NotificationRecord{}); err != nil {
			logrus.Fatalf("Failed to migrate database: %v", err)
		}
		recordRepo = notificationRepo.NewGormNotificationRepository(db)
	default:
		recordRepo = notificationRepo.NewFirestoreNotificationRepository(firestoreClient, cfg.NotificationsCollection)
	}
	logrus.Infof("Notification log backend: %s", cfg.NotificationLogBackend)

	notificationUc := notificationUsecase.NewNotificationUsecase(tokenRepo, contentRepo, recordRepo, fcmClient)

	// Pub/Sub trigger transport is optional; HTTP delivery is always on
	if cfg.PubSubSubscription != "" {
		subscriber, err := notificationDelivery.NewSubscriber(ctx, notificationDelivery.SubscriberConfig{
			ProjectID:       cfg.GoogleProjectID,
			Subscription:    cfg.PubSubSubscription,
			CredentialsFile: cfg.PubSubCredentials,
			MaxOutstanding:  cfg.PubSubMaxOutstanding,
			NumGoroutines:   cfg.PubSubNumGoroutines,
		}, notificationUc)
		if err != nil {
			logrus.Fatalf("Failed to initialize Pub/Sub subscriber: %v", err)
		}
		defer subscriber.Close()

		go func() {
			if err := subscriber.Start(ctx); err != nil {
				logrus.Errorf("[PubSub] Subscriber stopped: %v", err)
			}
		}()
	} else {
		logrus.Warn("PUBSUB_SUBSCRIPTION not configured, Pub/Sub trigger disabled")
	}

	handler := api.NewHandler(notificationUc)

	go func() {
		logrus.Infof("Server starting on port %s", cfg.Port)
		if err := handler.Start(":" + cfg.Port); err != nil {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")
}

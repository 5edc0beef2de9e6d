package usecase

import (
	"context"

	"aiready-notifier/internal/notification/domain"
	"aiready-notifier/pkg/fcm"
)

// NotificationUsecase defines the notification pipeline
type NotificationUsecase interface {
	// Handle routes a change event to the handler registered for its trigger
	Handle(ctx context.Context, event domain.ChangeEvent) error

	// HandleUserUpdated notifies a corporate user and the admins of an approval decision
	HandleUserUpdated(ctx context.Context, event domain.ChangeEvent) error

	// HandlePostUpdated notifies an author whose post was hidden by an admin
	HandlePostUpdated(ctx context.Context, event domain.ChangeEvent) error

	// HandlePostLikeCreated notifies a post author of a new like
	HandlePostLikeCreated(ctx context.Context, event domain.ChangeEvent) error

	// HandleCommentLikeCreated notifies a comment author of a new like
	HandleCommentLikeCreated(ctx context.Context, event domain.ChangeEvent) error

	// HandleSignupCreated notifies every admin of a corporate signup request
	HandleSignupCreated(ctx context.Context, event domain.ChangeEvent) error

	// ListNotifications returns a recipient's in-app notifications, newest first
	ListNotifications(ctx context.Context, recipientID string, limit int) ([]domain.NotificationRecord, error)

	// UnreadCount returns the number of unread in-app notifications of a recipient
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
}

// PushDispatcher delivers a multicast push
type PushDispatcher interface {
	Dispatch(ctx context.Context, tokens []string, notification fcm.NotificationData) (fcm.DispatchResult, error)
}

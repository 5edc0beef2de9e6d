package usecase

import (
	"context"
	"fmt"

	"aiready-notifier/internal/notification/domain"
	"aiready-notifier/internal/notification/repository"
	"aiready-notifier/pkg/fcm"

	"github.com/sirupsen/logrus"
)

type notificationUsecase struct {
	tokenRepo        repository.TokenRepository
	contentRepo      repository.ContentRepository
	notificationRepo repository.NotificationRepository
	dispatcher       PushDispatcher
}

// NewNotificationUsecase creates a new NotificationUsecase. The clients are
// built once at startup and shared by every invocation; the usecase keeps
// no other state.
func NewNotificationUsecase(
	tokenRepo repository.TokenRepository,
	contentRepo repository.ContentRepository,
	notificationRepo repository.NotificationRepository,
	dispatcher PushDispatcher,
) NotificationUsecase {
	return &notificationUsecase{
		tokenRepo:        tokenRepo,
		contentRepo:      contentRepo,
		notificationRepo: notificationRepo,
		dispatcher:       dispatcher,
	}
}

func (u *notificationUsecase) Handle(ctx context.Context, event domain.ChangeEvent) error {
	switch event.Trigger {
	case domain.TriggerUserUpdated:
		return u.HandleUserUpdated(ctx, event)
	case domain.TriggerPostUpdated:
		return u.HandlePostUpdated(ctx, event)
	case domain.TriggerPostLikeCreated:
		return u.HandlePostLikeCreated(ctx, event)
	case domain.TriggerCommentLikeCreated:
		return u.HandleCommentLikeCreated(ctx, event)
	case domain.TriggerSignupCreated:
		return u.HandleSignupCreated(ctx, event)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownTrigger, event.Trigger)
	}
}

func (u *notificationUsecase) HandleUserUpdated(ctx context.Context, event domain.ChangeEvent) error {
	uid := event.Param(domain.ParamUID)
	before := domain.DecodeUser(uid, event.Before)
	after := domain.DecodeUser(uid, event.After)

	// Skip the admin query when nothing changed.
	if _, ok := ClassifyApproval(before, after); !ok {
		return nil
	}

	userTokens, err := u.userTokens(ctx, after)
	if err != nil {
		return fmt.Errorf("approval notification for %s: %w", uid, err)
	}
	adminTokens, err := u.tokenRepo.TokensForRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("approval notification for %s: %w", uid, err)
	}
	return u.execute(ctx, event, PlanApproval(event, userTokens, adminTokens))
}

// userTokens takes the tokens carried by the changed snapshot and falls
// back to a fresh read of the user when the snapshot has none.
func (u *notificationUsecase) userTokens(ctx context.Context, user domain.UserRecord) (domain.TokenSet, error) {
	if len(user.FCMTokens) > 0 {
		return domain.NewTokenSet(user.FCMTokens...), nil
	}
	return u.tokenRepo.TokensForUser(ctx, user.UID)
}

func (u *notificationUsecase) HandlePostUpdated(ctx context.Context, event domain.ChangeEvent) error {
	return u.execute(ctx, event, PlanAdminHide(event))
}

func (u *notificationUsecase) HandlePostLikeCreated(ctx context.Context, event domain.ChangeEvent) error {
	postID := event.Param(domain.ParamPostID)
	doc, err := u.contentRepo.GetPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("post like notification for %s: %w", postID, err)
	}
	return u.execute(ctx, event, PlanPostLike(event.Param(domain.ParamUserID), domain.DecodePost(postID, doc)))
}

func (u *notificationUsecase) HandleCommentLikeCreated(ctx context.Context, event domain.ChangeEvent) error {
	postID := event.Param(domain.ParamPostID)
	commentID := event.Param(domain.ParamCommentID)
	doc, err := u.contentRepo.GetComment(ctx, postID, commentID)
	if err != nil {
		return fmt.Errorf("comment like notification for %s/%s: %w", postID, commentID, err)
	}
	return u.execute(ctx, event, PlanCommentLike(event.Param(domain.ParamUserID), domain.DecodeComment(postID, commentID, doc)))
}

func (u *notificationUsecase) HandleSignupCreated(ctx context.Context, event domain.ChangeEvent) error {
	adminTokens, err := u.tokenRepo.TokensForRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("signup notification for %s: %w", event.Param(domain.ParamDocID), err)
	}
	return u.execute(ctx, event, PlanSignup(event, adminTokens))
}

func (u *notificationUsecase) ListNotifications(ctx context.Context, recipientID string, limit int) ([]domain.NotificationRecord, error) {
	return u.notificationRepo.List(ctx, recipientID, limit)
}

func (u *notificationUsecase) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return u.notificationRepo.UnreadCount(ctx, recipientID)
}

// execute runs effects in order. Each effect commits on its own; the first
// failure is returned so the trigger source retries the whole event.
func (u *notificationUsecase) execute(ctx context.Context, event domain.ChangeEvent, effects []domain.Effect) error {
	if len(effects) == 0 {
		logrus.Debugf("[Notify] %s %s: nothing to notify", event.Trigger, event.ID)
		return nil
	}

	for _, effect := range effects {
		switch effect.Kind {
		case domain.EffectWriteNotification:
			id, err := u.notificationRepo.Write(ctx, effect.RecipientID, effect.Record)
			if err != nil {
				return fmt.Errorf("%s %s: %w", event.Trigger, event.ID, err)
			}
			if id == "" {
				logrus.Infof("[Notify] %s %s: no recipient, record skipped", event.Trigger, event.ID)
				continue
			}
			logrus.Infof("[Notify] %s %s: %s notification %s written for %s", event.Trigger, event.ID, effect.Record.Type, id, effect.RecipientID)

		case domain.EffectSendPush:
			result, err := u.dispatcher.Dispatch(ctx, effect.Tokens, fcm.NotificationData{
				Title: effect.Push.Title,
				Body:  effect.Push.Body,
				Data:  effect.Push.Data,
			})
			if err != nil {
				return fmt.Errorf("%s %s: %w", event.Trigger, event.ID, err)
			}
			logrus.Infof("[Notify] %s %s: push to %d tokens, %d success, %d failures",
				event.Trigger, event.ID, len(effect.Tokens), result.SuccessCount, result.FailureCount)

		default:
			return fmt.Errorf("%s %s: unknown effect %q", event.Trigger, event.ID, effect.Kind)
		}
	}
	return nil
}

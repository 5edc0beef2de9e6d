package usecase

import (
	"fmt"

	"aiready-notifier/internal/notification/domain"
)

// The Plan functions hold all decision logic of the handlers. They are
// pure: every input the store would provide is passed in, and the result
// is the list of side effects to execute.

// PlanApproval builds the push for a corporate approval decision. The
// recipients are the changed user's own devices plus every admin device.
func PlanApproval(event domain.ChangeEvent, userTokens, adminTokens domain.TokenSet) []domain.Effect {
	uid := event.Param(domain.ParamUID)
	before := domain.DecodeUser(uid, event.Before)
	after := domain.DecodeUser(uid, event.After)

	decision, ok := ClassifyApproval(before, after)
	if !ok {
		return nil
	}

	tokens := domain.Union(userTokens, adminTokens)
	if len(tokens) == 0 {
		return nil
	}

	push := domain.PushMessage{
		Title: msgRejectedTitle,
		Body:  msgRejectedBody,
		Data: map[string]string{
			dataKeyUID:            uid,
			dataKeyApprovalStatus: approvalStatusRejected,
		},
	}
	if decision.Approved {
		push.Title = msgApprovedTitle
		push.Body = msgApprovedBody
		push.Data[dataKeyApprovalStatus] = approvalStatusApproved
	}
	return []domain.Effect{domain.SendPush(tokens, push)}
}

// PlanAdminHide builds the in-app record telling an author their post was
// taken down.
func PlanAdminHide(event domain.ChangeEvent) []domain.Effect {
	postID := event.Param(domain.ParamPostID)
	decision, ok := ClassifyAdminHide(domain.DecodePost(postID, event.Before), domain.DecodePost(postID, event.After))
	if !ok {
		return nil
	}

	return []domain.Effect{domain.WriteNotification(decision.RecipientID, domain.NotificationRecord{
		Type:    domain.NotificationTypeDelete,
		Title:   msgPostHiddenTitle,
		Message: decision.Message,
	})}
}

// PlanPostLike builds the in-app record for a like on a post.
func PlanPostLike(likerID string, post domain.Post) []domain.Effect {
	if !ClassifyLike(post.AuthorID, likerID) {
		return nil
	}

	title := post.Title
	if title == "" {
		title = msgPostLikeFallback
	}
	return []domain.Effect{domain.WriteNotification(post.AuthorID, domain.NotificationRecord{
		Type:    domain.NotificationTypeLike,
		Title:   msgPostLikeTitle,
		Message: fmt.Sprintf(msgPostLikeFormat, title),
	})}
}

// PlanCommentLike builds the in-app record for a like on a comment.
func PlanCommentLike(likerID string, comment domain.Comment) []domain.Effect {
	if !ClassifyLike(comment.AuthorID, likerID) {
		return nil
	}

	message := msgCommentLikeFallback
	if comment.Content != "" {
		message = fmt.Sprintf(msgCommentLikeFormat, comment.Content)
	}
	return []domain.Effect{domain.WriteNotification(comment.AuthorID, domain.NotificationRecord{
		Type:    domain.NotificationTypeLike,
		Title:   msgCommentLikeTitle,
		Message: message,
	})}
}

// PlanSignup builds the push telling every admin about a new corporate
// signup request.
func PlanSignup(event domain.ChangeEvent, adminTokens domain.TokenSet) []domain.Effect {
	if len(adminTokens) == 0 {
		return nil
	}

	signup := domain.DecodeSignup(event.Param(domain.ParamDocID), event.After)
	applicant := signup.Applicant(msgSignupApplicantDefault)

	return []domain.Effect{domain.SendPush(adminTokens, domain.PushMessage{
		Title: msgSignupTitle,
		Body:  fmt.Sprintf(msgSignupFormat, applicant),
		Data: map[string]string{
			dataKeyApplicant: applicant,
			dataKeyType:      dataTypeSignup,
		},
	})}
}

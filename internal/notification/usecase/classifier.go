package usecase

import "aiready-notifier/internal/notification/domain"

// ApprovalDecision is the outcome of an approval-status change.
type ApprovalDecision struct {
	Approved bool
}

// ClassifyApproval reports whether a user update is an approval decision
// on a corporate account. Only a real change of the stored isApproved
// value counts; an absent field is a value of its own, so rewriting the
// same value (or leaving it unset) never notifies.
func ClassifyApproval(before, after domain.UserRecord) (ApprovalDecision, bool) {
	if sameOptionalBool(before.IsApproved, after.IsApproved) {
		return ApprovalDecision{}, false
	}
	if !after.Role.IsCorporate() {
		return ApprovalDecision{}, false
	}
	return ApprovalDecision{Approved: after.Approved()}, true
}

func sameOptionalBool(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// HideDecision is the outcome of a moderator hiding a post.
type HideDecision struct {
	RecipientID string
	Message     string
}

// ClassifyAdminHide reports whether a post update is an admin takedown:
// the post went from visible to explicitly hidden with deletedByAdmin set.
func ClassifyAdminHide(before, after domain.Post) (HideDecision, bool) {
	turnedHidden := before.IsVisible() && after.IsHidden()
	if !turnedHidden || !after.DeletedByAdmin {
		return HideDecision{}, false
	}

	message := after.BlockedReason
	if message == "" {
		message = msgPostHiddenDefault
	}
	return HideDecision{RecipientID: after.AuthorID, Message: message}, true
}

// ClassifyLike reports whether a like should notify the content author.
// Likes on content without an author and self-likes never notify.
func ClassifyLike(authorID, likerID string) bool {
	return authorID != "" && authorID != likerID
}

package domain

import "errors"

// Trigger identifies which watched document path and change kind produced
// a ChangeEvent.
type Trigger string

const (
	TriggerUserUpdated        Trigger = "user.updated"
	TriggerPostUpdated        Trigger = "post.updated"
	TriggerPostLikeCreated    Trigger = "post_like.created"
	TriggerCommentLikeCreated Trigger = "comment_like.created"
	TriggerSignupCreated      Trigger = "corporate_signup.created"
)

// Path parameter names.
const (
	ParamUID       = "uid"
	ParamPostID    = "postId"
	ParamCommentID = "commentId"
	ParamUserID    = "userId"
	ParamDocID     = "docId"
)

var (
	// ErrMalformedEvent marks a trigger payload that cannot be decoded.
	ErrMalformedEvent = errors.New("malformed change event")
	// ErrUnknownTrigger marks a payload for a path or change kind no
	// handler is registered for.
	ErrUnknownTrigger = errors.New("unknown trigger")
)

// ChangeEvent is a single document change delivered by the trigger source.
// Before is nil for creates, After is nil for deletes.
type ChangeEvent struct {
	ID      string
	Trigger Trigger
	Before  Document
	After   Document
	Params  map[string]string
}

// Param returns a path parameter, or "" when absent.
func (e ChangeEvent) Param(name string) string {
	return e.Params[name]
}

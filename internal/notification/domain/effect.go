package domain

// EffectKind tags the variant held by an Effect.
type EffectKind string

const (
	EffectWriteNotification EffectKind = "write_notification"
	EffectSendPush          EffectKind = "send_push"
)

// PushMessage is the payload of a multicast push.
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// Effect is a side effect decided by a handler. Only the fields belonging
// to Kind are set.
type Effect struct {
	Kind EffectKind

	// EffectWriteNotification
	RecipientID string
	Record      NotificationRecord

	// EffectSendPush
	Tokens []string
	Push   PushMessage
}

// WriteNotification builds an EffectWriteNotification.
func WriteNotification(recipientID string, record NotificationRecord) Effect {
	return Effect{Kind: EffectWriteNotification, RecipientID: recipientID, Record: record}
}

// SendPush builds an EffectSendPush. Tokens are taken in sorted order so
// the effect is deterministic.
func SendPush(tokens TokenSet, push PushMessage) Effect {
	return Effect{Kind: EffectSendPush, Tokens: tokens.Sorted(), Push: push}
}

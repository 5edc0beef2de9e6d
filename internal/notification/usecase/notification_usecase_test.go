package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"aiready-notifier/internal/notification/domain"
	"aiready-notifier/pkg/fcm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenRepo struct {
	byRole      map[domain.Role][]string
	byUser      map[string][]string
	err         error
	queries     int
	userQueries int
}

func (f *fakeTokenRepo) TokensForRole(_ context.Context, role domain.Role) (domain.TokenSet, error) {
	f.queries++
	if f.err != nil {
		return nil, f.err
	}
	return domain.NewTokenSet(f.byRole[role]...), nil
}

func (f *fakeTokenRepo) TokensForUser(_ context.Context, uid string) (domain.TokenSet, error) {
	f.userQueries++
	if f.err != nil {
		return nil, f.err
	}
	return domain.NewTokenSet(f.byUser[uid]...), nil
}

type fakeContentRepo struct {
	posts    map[string]domain.Document
	comments map[string]domain.Document
	err      error
}

func (f *fakeContentRepo) GetPost(_ context.Context, postID string) (domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	if doc, ok := f.posts[postID]; ok {
		return doc, nil
	}
	return domain.Document{}, nil
}

func (f *fakeContentRepo) GetComment(_ context.Context, postID, commentID string) (domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	if doc, ok := f.comments[postID+"/"+commentID]; ok {
		return doc, nil
	}
	return domain.Document{}, nil
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	records map[string][]domain.NotificationRecord
	err     error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{records: make(map[string][]domain.NotificationRecord)}
}

func (f *fakeNotificationRepo) Write(_ context.Context, recipientID string, record domain.NotificationRecord) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if recipientID == "" {
		return "", nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	record.RecipientID = recipientID
	record.ID = fmt.Sprintf("n-%d", len(f.records[recipientID])+1)
	f.records[recipientID] = append(f.records[recipientID], record)
	return record.ID, nil
}

func (f *fakeNotificationRepo) List(_ context.Context, recipientID string, _ int) ([]domain.NotificationRecord, error) {
	return f.records[recipientID], nil
}

func (f *fakeNotificationRepo) UnreadCount(_ context.Context, recipientID string) (int64, error) {
	var n int64
	for _, r := range f.records[recipientID] {
		if !r.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationRepo) total() int {
	n := 0
	for _, recs := range f.records {
		n += len(recs)
	}
	return n
}

type dispatchCall struct {
	tokens       []string
	notification fcm.NotificationData
}

type fakeDispatcher struct {
	calls []dispatchCall
	err   error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, tokens []string, notification fcm.NotificationData) (fcm.DispatchResult, error) {
	f.calls = append(f.calls, dispatchCall{tokens: tokens, notification: notification})
	if f.err != nil {
		return fcm.DispatchResult{}, f.err
	}
	return fcm.DispatchResult{SuccessCount: len(tokens)}, nil
}

type fixture struct {
	tokens  *fakeTokenRepo
	content *fakeContentRepo
	records *fakeNotificationRepo
	push    *fakeDispatcher
	usecase NotificationUsecase
}

func newFixture() *fixture {
	f := &fixture{
		tokens:  &fakeTokenRepo{byRole: map[domain.Role][]string{}, byUser: map[string][]string{}},
		content: &fakeContentRepo{posts: map[string]domain.Document{}, comments: map[string]domain.Document{}},
		records: newFakeNotificationRepo(),
		push:    &fakeDispatcher{},
	}
	f.usecase = NewNotificationUsecase(f.tokens, f.content, f.records, f.push)
	return f
}

func TestHandle_ApprovalScenario(t *testing.T) {
	f := newFixture()
	f.tokens.byRole[domain.RoleAdmin] = []string{"A1", "A2"}

	err := f.usecase.Handle(context.Background(), domain.ChangeEvent{
		ID:      "evt-1",
		Trigger: domain.TriggerUserUpdated,
		Before:  domain.Document{"role": "corporate", "isApproved": false, "fcmTokens": []interface{}{"U1"}},
		After:   domain.Document{"role": "corporate", "isApproved": true, "fcmTokens": []interface{}{"U1"}},
		Params:  map[string]string{domain.ParamUID: "corp-1"},
	})

	require.NoError(t, err)
	require.Len(t, f.push.calls, 1)
	assert.ElementsMatch(t, []string{"A1", "A2", "U1"}, f.push.calls[0].tokens)
	assert.Equal(t, "approved", f.push.calls[0].notification.Data["approvalStatus"])
	assert.Zero(t, f.records.total())
}

func TestHandle_ApprovalDeduplicatesSharedToken(t *testing.T) {
	f := newFixture()
	f.tokens.byRole[domain.RoleAdmin] = []string{"SHARED", "A1"}

	err := f.usecase.HandleUserUpdated(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerUserUpdated,
		Before:  domain.Document{"role": "corporate"},
		After:   domain.Document{"role": "corporate", "isApproved": true, "fcmTokens": []interface{}{"SHARED", "SHARED"}},
		Params:  map[string]string{domain.ParamUID: "corp-1"},
	})

	require.NoError(t, err)
	require.Len(t, f.push.calls, 1)
	assert.Equal(t, []string{"A1", "SHARED"}, f.push.calls[0].tokens)
}

func TestHandle_ApprovalReadsUserTokensWhenSnapshotHasNone(t *testing.T) {
	f := newFixture()
	f.tokens.byRole[domain.RoleAdmin] = []string{"A1"}
	f.tokens.byUser["corp-1"] = []string{"U9"}

	err := f.usecase.HandleUserUpdated(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerUserUpdated,
		Before:  domain.Document{"role": "corporate", "isApproved": false},
		After:   domain.Document{"role": "corporate", "isApproved": true},
		Params:  map[string]string{domain.ParamUID: "corp-1"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, f.tokens.userQueries)
	require.Len(t, f.push.calls, 1)
	assert.Equal(t, []string{"A1", "U9"}, f.push.calls[0].tokens)
}

func TestHandle_ApprovalSnapshotTokensSkipUserRead(t *testing.T) {
	f := newFixture()
	f.tokens.byUser["corp-1"] = []string{"STALE"}

	err := f.usecase.HandleUserUpdated(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerUserUpdated,
		Before:  domain.Document{"role": "corporate", "isApproved": false},
		After:   domain.Document{"role": "corporate", "isApproved": true, "fcmTokens": []interface{}{"U1"}},
		Params:  map[string]string{domain.ParamUID: "corp-1"},
	})

	require.NoError(t, err)
	assert.Zero(t, f.tokens.userQueries)
	require.Len(t, f.push.calls, 1)
	assert.Equal(t, []string{"U1"}, f.push.calls[0].tokens)
}

func TestHandle_ApprovalUnchangedSkipsIO(t *testing.T) {
	f := newFixture()
	f.tokens.byRole[domain.RoleAdmin] = []string{"A1"}

	err := f.usecase.HandleUserUpdated(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerUserUpdated,
		Before:  domain.Document{"role": "corporate", "isApproved": false},
		After:   domain.Document{"role": "corporate", "isApproved": false},
		Params:  map[string]string{domain.ParamUID: "corp-1"},
	})

	require.NoError(t, err)
	assert.Zero(t, f.tokens.queries)
	assert.Zero(t, f.tokens.userQueries)
	assert.Empty(t, f.push.calls)
}

func TestHandle_ApprovalTokenQueryFailurePropagates(t *testing.T) {
	f := newFixture()
	f.tokens.err = errors.New("deadline exceeded")

	err := f.usecase.HandleUserUpdated(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerUserUpdated,
		Before:  domain.Document{"role": "corporate", "isApproved": false},
		After:   domain.Document{"role": "corporate", "isApproved": true},
		Params:  map[string]string{domain.ParamUID: "corp-1"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadline exceeded")
	assert.Empty(t, f.push.calls)
}

func TestHandle_AdminHideScenario(t *testing.T) {
	f := newFixture()

	err := f.usecase.Handle(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerPostUpdated,
		Before:  domain.Document{"authorId": "u1", "visible": true},
		After:   domain.Document{"authorId": "u1", "visible": false, "deletedByAdmin": true, "blockedReason": "spam"},
		Params:  map[string]string{domain.ParamPostID: "p1"},
	})

	require.NoError(t, err)
	require.Len(t, f.records.records["u1"], 1)
	rec := f.records.records["u1"][0]
	assert.Equal(t, domain.NotificationTypeDelete, rec.Type)
	assert.Equal(t, "spam", rec.Message)
	assert.False(t, rec.IsRead)
	assert.Empty(t, f.push.calls)
}

func TestHandle_HideWithoutAdminFlagWritesNothing(t *testing.T) {
	f := newFixture()

	err := f.usecase.Handle(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerPostUpdated,
		Before:  domain.Document{"authorId": "u1", "visible": true},
		After:   domain.Document{"authorId": "u1", "visible": false, "deletedByAdmin": false},
		Params:  map[string]string{domain.ParamPostID: "p1"},
	})

	require.NoError(t, err)
	assert.Zero(t, f.records.total())
}

func TestHandle_CommentLikeScenario(t *testing.T) {
	f := newFixture()
	f.content.comments["p1/c1"] = domain.Document{"authorId": "u1", "content": "great"}

	likeBy := func(liker string) domain.ChangeEvent {
		return domain.ChangeEvent{
			Trigger: domain.TriggerCommentLikeCreated,
			After:   domain.Document{},
			Params: map[string]string{
				domain.ParamPostID:    "p1",
				domain.ParamCommentID: "c1",
				domain.ParamUserID:    liker,
			},
		}
	}

	require.NoError(t, f.usecase.Handle(context.Background(), likeBy("u2")))
	require.Len(t, f.records.records["u1"], 1)
	assert.Equal(t, domain.NotificationTypeLike, f.records.records["u1"][0].Type)

	f2 := newFixture()
	f2.content.comments["p1/c1"] = domain.Document{"authorId": "u1"}
	require.NoError(t, f2.usecase.Handle(context.Background(), likeBy("u1")))
	assert.Zero(t, f2.records.total())
}

func TestHandle_PostLike(t *testing.T) {
	f := newFixture()
	f.content.posts["p1"] = domain.Document{"authorId": "u1", "title": "Hello"}

	err := f.usecase.Handle(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerPostLikeCreated,
		After:   domain.Document{},
		Params:  map[string]string{domain.ParamPostID: "p1", domain.ParamUserID: "u2"},
	})

	require.NoError(t, err)
	require.Len(t, f.records.records["u1"], 1)
	assert.Equal(t, msgPostLikeTitle, f.records.records["u1"][0].Title)
}

func TestHandle_LikeOnMissingPostIsNoop(t *testing.T) {
	f := newFixture()

	err := f.usecase.Handle(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerPostLikeCreated,
		Params:  map[string]string{domain.ParamPostID: "gone", domain.ParamUserID: "u2"},
	})

	require.NoError(t, err)
	assert.Zero(t, f.records.total())
}

func TestHandle_LikeLookupFailurePropagates(t *testing.T) {
	f := newFixture()
	f.content.err = errors.New("unavailable")

	err := f.usecase.Handle(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerPostLikeCreated,
		Params:  map[string]string{domain.ParamPostID: "p1", domain.ParamUserID: "u2"},
	})

	require.Error(t, err)
}

func TestHandle_SignupScenario(t *testing.T) {
	f := newFixture()
	f.tokens.byRole[domain.RoleAdmin] = []string{"A1"}

	err := f.usecase.Handle(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerSignupCreated,
		After:   domain.Document{"companyName": "Acme"},
		Params:  map[string]string{domain.ParamDocID: "s1"},
	})

	require.NoError(t, err)
	require.Len(t, f.push.calls, 1)
	assert.Equal(t, []string{"A1"}, f.push.calls[0].tokens)
	assert.Equal(t, "corporate_signup", f.push.calls[0].notification.Data["type"])
	assert.Equal(t, "Acme", f.push.calls[0].notification.Data["applicant"])
}

func TestHandle_SignupWithoutAdminsSendsNothing(t *testing.T) {
	f := newFixture()

	err := f.usecase.Handle(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerSignupCreated,
		After:   domain.Document{"companyName": "Acme"},
	})

	require.NoError(t, err)
	assert.Empty(t, f.push.calls)
}

func TestHandle_PushFailurePropagates(t *testing.T) {
	f := newFixture()
	f.tokens.byRole[domain.RoleAdmin] = []string{"A1"}
	f.push.err = errors.New("fcm outage")

	err := f.usecase.Handle(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerSignupCreated,
		After:   domain.Document{"companyName": "Acme"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fcm outage")
}

func TestHandle_WriteFailurePropagates(t *testing.T) {
	f := newFixture()
	f.records.err = errors.New("write failed")

	err := f.usecase.Handle(context.Background(), domain.ChangeEvent{
		Trigger: domain.TriggerPostUpdated,
		Before:  domain.Document{"authorId": "u1"},
		After:   domain.Document{"authorId": "u1", "visible": false, "deletedByAdmin": true},
	})

	require.Error(t, err)
}

func TestHandle_RetriedEventDuplicatesRecord(t *testing.T) {
	f := newFixture()
	event := domain.ChangeEvent{
		ID:      "evt-dup",
		Trigger: domain.TriggerPostUpdated,
		Before:  domain.Document{"authorId": "u1"},
		After:   domain.Document{"authorId": "u1", "visible": false, "deletedByAdmin": true},
	}

	require.NoError(t, f.usecase.Handle(context.Background(), event))
	require.NoError(t, f.usecase.Handle(context.Background(), event))

	assert.Len(t, f.records.records["u1"], 2)
}

func TestHandle_UnknownTrigger(t *testing.T) {
	f := newFixture()

	err := f.usecase.Handle(context.Background(), domain.ChangeEvent{Trigger: "user.deleted"})

	assert.ErrorIs(t, err, domain.ErrUnknownTrigger)
}

func TestUnreadCount(t *testing.T) {
	f := newFixture()
	_, err := f.records.Write(context.Background(), "u1", domain.NotificationRecord{Type: domain.NotificationTypeLike})
	require.NoError(t, err)

	count, err := f.usecase.UnreadCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	records, err := f.usecase.ListNotifications(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

package repository

import (
	"context"
	"fmt"

	"aiready-notifier/internal/notification/domain"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
)

// TokenRepository resolves push tokens registered on user records
type TokenRepository interface {
	// TokensForRole returns the union of fcmTokens of every user with the
	// given role. No match yields an empty set, not an error.
	TokensForRole(ctx context.Context, role domain.Role) (domain.TokenSet, error)

	// TokensForUser returns the fcmTokens of a single user. A missing user
	// yields an empty set.
	TokensForUser(ctx context.Context, uid string) (domain.TokenSet, error)
}

// firestoreTokenRepository implements TokenRepository over the users collection
type firestoreTokenRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreTokenRepository creates a new instance of firestoreTokenRepository
func NewFirestoreTokenRepository(client *firestore.Client, collection string) TokenRepository {
	return &firestoreTokenRepository{
		client:     client,
		collection: collection,
	}
}

func (r *firestoreTokenRepository) TokensForRole(ctx context.Context, role domain.Role) (domain.TokenSet, error) {
	iter := r.client.Collection(r.collection).Where("role", "==", string(role)).Documents(ctx)
	defer iter.Stop()

	var docs []domain.Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query %s users: %w", role, err)
		}
		docs = append(docs, domain.Document(snap.Data()))
	}

	tokens := collectTokens(docs)
	logrus.Debugf("[Tokens] %d %s users, %d distinct tokens", len(docs), role, len(tokens))
	return tokens, nil
}

func (r *firestoreTokenRepository) TokensForUser(ctx context.Context, uid string) (domain.TokenSet, error) {
	if uid == "" {
		return domain.NewTokenSet(), nil
	}

	doc, err := getDocument(ctx, r.client.Collection(r.collection).Doc(uid))
	if err != nil {
		return nil, fmt.Errorf("failed to read tokens of user %s: %w", uid, err)
	}
	return collectTokens([]domain.Document{doc}), nil
}

// collectTokens unions the fcmTokens of every document. Documents with a
// missing or malformed fcmTokens field contribute nothing.
func collectTokens(docs []domain.Document) domain.TokenSet {
	tokens := domain.NewTokenSet()
	for _, doc := range docs {
		tokens.Add(domain.TokensFromDocument(doc)...)
	}
	return tokens
}

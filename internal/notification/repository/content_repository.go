package repository

import (
	"context"
	"fmt"

	"aiready-notifier/internal/notification/domain"

	"cloud.google.com/go/firestore"
)

// ContentRepository reads the community documents a like points at
type ContentRepository interface {
	// GetPost returns the post document, or an empty document when it
	// does not exist.
	GetPost(ctx context.Context, postID string) (domain.Document, error)
	// GetComment returns the comment document, or an empty document when
	// it does not exist.
	GetComment(ctx context.Context, postID, commentID string) (domain.Document, error)
}

type firestoreContentRepository struct {
	client          *firestore.Client
	postsCollection string
}

// NewFirestoreContentRepository creates a ContentRepository over the posts collection
func NewFirestoreContentRepository(client *firestore.Client, postsCollection string) ContentRepository {
	return &firestoreContentRepository{
		client:          client,
		postsCollection: postsCollection,
	}
}

func (r *firestoreContentRepository) GetPost(ctx context.Context, postID string) (domain.Document, error) {
	return getDocument(ctx, r.client.Collection(r.postsCollection).Doc(postID))
}

func (r *firestoreContentRepository) GetComment(ctx context.Context, postID, commentID string) (domain.Document, error) {
	ref := r.client.Collection(r.postsCollection).Doc(postID).Collection("comments").Doc(commentID)
	return getDocument(ctx, ref)
}

func getDocument(ctx context.Context, ref *firestore.DocumentRef) (domain.Document, error) {
	snap, err := ref.Get(ctx)
	// Get returns a non-nil snapshot with Exists() == false alongside NotFound.
	if snap != nil && !snap.Exists() {
		return domain.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ref.Path, err)
	}
	return domain.Document(snap.Data()), nil
}

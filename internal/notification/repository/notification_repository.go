package repository

import (
	"context"
	"fmt"

	"aiready-notifier/internal/notification/domain"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// List page sizes. Non-positive limits get DefaultListLimit; larger ones
// are capped at MaxListLimit.
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}

// NotificationRepository is the per-recipient append-only notification log
type NotificationRepository interface {
	// Write appends record to the recipient's log with isRead=false and a
	// server-assigned creation time. An empty recipientID is a no-op and
	// returns "".
	Write(ctx context.Context, recipientID string, record domain.NotificationRecord) (string, error)

	// List returns the newest records of a recipient first.
	List(ctx context.Context, recipientID string, limit int) ([]domain.NotificationRecord, error)

	// UnreadCount returns how many records of a recipient are unread.
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
}

// firestoreNotificationRepository stores records under
// notifications/{recipientId}/items/{id}
type firestoreNotificationRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreNotificationRepository creates a Firestore-backed NotificationRepository
func NewFirestoreNotificationRepository(client *firestore.Client, collection string) NotificationRepository {
	return &firestoreNotificationRepository{
		client:     client,
		collection: collection,
	}
}

func (r *firestoreNotificationRepository) items(recipientID string) *firestore.CollectionRef {
	return r.client.Collection(r.collection).Doc(recipientID).Collection("items")
}

func (r *firestoreNotificationRepository) Write(ctx context.Context, recipientID string, record domain.NotificationRecord) (string, error) {
	if recipientID == "" {
		return "", nil
	}

	ref, _, err := r.items(recipientID).Add(ctx, map[string]interface{}{
		"type":      string(record.Type),
		"title":     record.Title,
		"message":   record.Message,
		"isRead":    false,
		"createdAt": firestore.ServerTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("failed to append notification for %s: %w", recipientID, err)
	}
	return ref.ID, nil
}

func (r *firestoreNotificationRepository) List(ctx context.Context, recipientID string, limit int) ([]domain.NotificationRecord, error) {
	limit = normalizeLimit(limit)

	snaps, err := r.items(recipientID).OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for %s: %w", recipientID, err)
	}

	records := make([]domain.NotificationRecord, 0, len(snaps))
	for _, snap := range snaps {
		var rec domain.NotificationRecord
		if err := snap.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode notification %s: %w", snap.Ref.ID, err)
		}
		rec.ID = snap.Ref.ID
		rec.RecipientID = recipientID
		records = append(records, rec)
	}
	return records, nil
}

func (r *firestoreNotificationRepository) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	unread := r.items(recipientID).Where("isRead", "==", false)
	result, err := unread.NewAggregationQuery().WithCount("unread").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications for %s: %w", recipientID, err)
	}

	value, ok := result["unread"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count result for %s", recipientID)
	}
	return value.GetIntegerValue(), nil
}

// gormNotificationRepository stores records in the notification_records table
type gormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a Postgres-backed NotificationRepository
func NewGormNotificationRepository(db *gorm.DB) NotificationRepository {
	return &gormNotificationRepository{db: db}
}

func (r *gormNotificationRepository) Write(ctx context.Context, recipientID string, record domain.NotificationRecord) (string, error) {
	if recipientID == "" {
		return "", nil
	}

	// created_at and is_read are left to the column defaults
	row := domain.NotificationRecord{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		Type:        record.Type,
		Title:       record.Title,
		Message:     record.Message,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("failed to append notification for %s: %w", recipientID, err)
	}
	return row.ID, nil
}

func (r *gormNotificationRepository) List(ctx context.Context, recipientID string, limit int) ([]domain.NotificationRecord, error) {
	limit = normalizeLimit(limit)

	var records []domain.NotificationRecord
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for %s: %w", recipientID, err)
	}
	return records, nil
}

func (r *gormNotificationRepository) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.NotificationRecord{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications for %s: %w", recipientID, err)
	}
	return count, nil
}

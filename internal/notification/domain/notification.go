package domain

import "time"

// NotificationType classifies an in-app notification record.
type NotificationType string

const (
	NotificationTypeApproval NotificationType = "approval"
	NotificationTypeDelete   NotificationType = "delete"
	NotificationTypeLike     NotificationType = "like"
	NotificationTypeSignup   NotificationType = "signup"
)

// NotificationRecord is one entry of a recipient's in-app notification log.
// Records are appended once and only ever flipped to read by the client.
type NotificationRecord struct {
	ID          string           `json:"id" gorm:"primaryKey" firestore:"-"`
	RecipientID string           `json:"recipientId" gorm:"index;not null" firestore:"-"`
	Type        NotificationType `json:"type" gorm:"not null" firestore:"type"`
	Title       string           `json:"title" firestore:"title"`
	Message     string           `json:"message" firestore:"message"`
	IsRead      bool             `json:"isRead" gorm:"index;default:false" firestore:"isRead"`
	CreatedAt   time.Time        `json:"createdAt" gorm:"index;autoCreateTime:false;default:CURRENT_TIMESTAMP" firestore:"createdAt"`
}

// TableName pins the Postgres table name.
func (NotificationRecord) TableName() string {
	return "notification_records"
}

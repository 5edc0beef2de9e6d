package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"
)

// MaxMulticastTokens is the FCM limit on tokens per multicast request.
const MaxMulticastTokens = 500

// multicastSender is the subset of *messaging.Client used by Client.
type multicastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// Client wraps Firebase Cloud Messaging functionality
type Client struct {
	messagingClient multicastSender
}

// NewClient creates a new FCM client from an initialized Firebase app
func NewClient(ctx context.Context, app *firebase.App) (*Client, error) {
	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	logrus.Info("[FCM] Client initialized successfully")
	return &Client{
		messagingClient: messagingClient,
	}, nil
}

// NotificationData contains the data to send in a push notification
type NotificationData struct {
	Title string
	Body  string
	Data  map[string]string // Custom data payload
}

// DispatchResult reports per-token delivery outcome of a multicast.
type DispatchResult struct {
	SuccessCount int
	FailureCount int
	FailedTokens []string
}

// Dispatch sends the same notification to every token. An empty token list
// is a no-op. Per-token failures are counted, not returned as errors; an
// error means a whole request could not be sent.
func (c *Client) Dispatch(ctx context.Context, tokens []string, notification NotificationData) (DispatchResult, error) {
	var result DispatchResult
	if len(tokens) == 0 {
		return result, nil
	}

	for start := 0; start < len(tokens); start += MaxMulticastTokens {
		end := start + MaxMulticastTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		chunk := tokens[start:end]

		response, err := c.messagingClient.SendEachForMulticast(ctx, buildMulticast(chunk, notification))
		if err != nil {
			return result, fmt.Errorf("failed to send FCM multicast message: %w", err)
		}

		result.SuccessCount += response.SuccessCount
		result.FailureCount += response.FailureCount
		for i, resp := range response.Responses {
			if resp == nil || resp.Success || i >= len(chunk) {
				continue
			}
			result.FailedTokens = append(result.FailedTokens, chunk[i])
			logrus.Debugf("[FCM] Failed to send to token %s: %v", truncateToken(chunk[i]), resp.Error)
		}
	}

	logrus.Infof("[FCM] Multicast sent: %d success, %d failures", result.SuccessCount, result.FailureCount)
	return result, nil
}

func buildMulticast(tokens []string, notification NotificationData) *messaging.MulticastMessage {
	return &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data: notification.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
}

func truncateToken(token string) string {
	if len(token) <= 20 {
		return token
	}
	return token[:20] + "..."
}

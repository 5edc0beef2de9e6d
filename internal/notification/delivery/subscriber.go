package delivery

import (
	"context"
	"errors"
	"fmt"

	"aiready-notifier/internal/notification/domain"
	"aiready-notifier/internal/notification/usecase"

	"cloud.google.com/go/pubsub"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// SubscriberConfig configures the Pub/Sub trigger transport
type SubscriberConfig struct {
	ProjectID       string
	Subscription    string
	CredentialsFile string
	MaxOutstanding  int
	NumGoroutines   int
}

// Subscriber receives Firestore change events published to Pub/Sub and
// feeds them to the pipeline
type Subscriber struct {
	pubsubClient        *pubsub.Client
	notificationUsecase usecase.NotificationUsecase
	subName             string
	maxOutstanding      int
	numGoroutines       int
}

func NewSubscriber(ctx context.Context, cfg SubscriberConfig, notificationUsecase usecase.NotificationUsecase) (*Subscriber, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	return &Subscriber{
		pubsubClient:        client,
		notificationUsecase: notificationUsecase,
		subName:             cfg.Subscription,
		maxOutstanding:      cfg.MaxOutstanding,
		numGoroutines:       cfg.NumGoroutines,
	}, nil
}

// Start blocks receiving messages until ctx is cancelled or the
// subscription fails.
func (s *Subscriber) Start(ctx context.Context) error {
	logrus.Infof("[PubSub] Starting event subscriber on subscription: %s", s.subName)

	sub := s.pubsubClient.Subscription(s.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check subscription %s: %w", s.subName, err)
	}
	if !exists {
		return fmt.Errorf("subscription %s does not exist", s.subName)
	}

	sub.ReceiveSettings.MaxOutstandingMessages = s.maxOutstanding
	sub.ReceiveSettings.NumGoroutines = s.numGoroutines

	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if processMessage(ctx, s.notificationUsecase, msg.ID, msg.Data) {
			msg.Ack()
			return
		}
		msg.Nack()
	})
	if err != nil {
		return fmt.Errorf("error receiving messages: %w", err)
	}
	return nil
}

// Close releases the Pub/Sub client
func (s *Subscriber) Close() error {
	return s.pubsubClient.Close()
}

// processMessage handles one message and reports whether it should be
// acked. Payloads that can never succeed are acked; handler failures are
// nacked so Pub/Sub redelivers them.
func processMessage(ctx context.Context, uc usecase.NotificationUsecase, id string, data []byte) bool {
	event, err := DecodeEvent(data, id)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownTrigger) {
			logrus.Warnf("[PubSub] Ignoring message %s: %v", id, err)
		} else {
			logrus.Errorf("[PubSub] Dropping undecodable message %s: %v", id, err)
		}
		return true
	}

	if err := uc.Handle(ctx, event); err != nil {
		logrus.Errorf("[PubSub] %s %s failed, will be redelivered: %v", event.Trigger, id, err)
		return false
	}
	return true
}

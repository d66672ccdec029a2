// Package inbox queues inbound mail notifications on Redis for the external
// extraction pipeline. Payloads are sealed before they touch the wire so the
// queue never holds plaintext mail.
package inbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	goRedis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/studentos/backend/pkg/secretbox"
)

const defaultQueueKey = "inbox:notifications"

// Notification is the envelope around one inbound delivery.
type Notification struct {
	ID         string          `json:"id"`
	Source     string          `json:"source"`
	UserID     string          `json:"user_id,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt time.Time       `json:"received_at"`
}

// Inbox is a sealed Redis list queue.
type Inbox struct {
	client *goRedis.Client
	box    *secretbox.Box
	key    string
	logger *zap.Logger
}

func New(client *goRedis.Client, box *secretbox.Box, logger *zap.Logger) *Inbox {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inbox{
		client: client,
		box:    box,
		key:    defaultQueueKey,
		logger: logger,
	}
}

// Enqueue seals the notification and pushes it onto the queue. The userID is
// empty for deliveries that carry their own routing inside the payload.
func (i *Inbox) Enqueue(ctx context.Context, source, userID string, payload json.RawMessage) error {
	envelope := Notification{
		ID:         uuid.NewString(),
		Source:     source,
		UserID:     userID,
		Payload:    payload,
		ReceivedAt: time.Now().UTC(),
	}

	plain, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	sealed, err := i.box.Seal(plain)
	if err != nil {
		return err
	}

	if err := i.client.LPush(ctx, i.key, sealed).Err(); err != nil {
		return err
	}
	i.logger.Debug("notification enqueued",
		zap.String("id", envelope.ID),
		zap.String("source", source))
	return nil
}

// Size returns the current queue depth.
func (i *Inbox) Size(ctx context.Context) (int64, error) {
	return i.client.LLen(ctx, i.key).Result()
}

package notify

import (
	"context"
	"encoding/json"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/foodfetch/storefront-backend/pkg/logger"
	"github.com/foodfetch/storefront-backend/pkg/metrics"
)

const publishTimeout = 5 * time.Second

type publisher interface {
	Publish(context.Context, *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(context.Context) (string, error)
}

// NotificationEvent is the payload published on the notification topic.
type NotificationEvent struct {
	Level      string    `json:"level"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PubSubNotifier publishes notification events on a Pub/Sub topic. Publishes
// run detached from the request; failures are counted and dropped.
type PubSubNotifier struct {
	pub     publisher
	logg    *logger.Logger
	metrics *metrics.CartMetrics
	now     func() time.Time
	// sync forces in-request publishing; tests use it to observe results.
	sync bool
}

// NewPubSubNotifier wraps a Pub/Sub publisher handle.
func NewPubSubNotifier(pub *gcppubsub.Publisher, logg *logger.Logger, met *metrics.CartMetrics) *PubSubNotifier {
	return &PubSubNotifier{
		pub:     newGCPPublisher(pub),
		logg:    logg,
		metrics: met,
		now:     time.Now,
	}
}

func (n *PubSubNotifier) Success(ctx context.Context, message string) {
	n.publish(ctx, "success", message)
}

func (n *PubSubNotifier) Info(ctx context.Context, message string) {
	n.publish(ctx, "info", message)
}

func (n *PubSubNotifier) publish(ctx context.Context, level, message string) {
	if n == nil || n.pub == nil {
		return
	}

	event := NotificationEvent{
		Level:      level,
		Message:    message,
		OccurredAt: n.now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		n.dropped(ctx, err)
		return
	}

	msg := &gcppubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_type": "storefront.notification",
			"level":      level,
		},
	}

	if n.sync {
		n.send(msg)
		return
	}
	go n.send(msg)
}

// send runs outside the request context: the request may already be done by
// the time the broker acks.
func (n *PubSubNotifier) send(msg *gcppubsub.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	result := n.pub.Publish(ctx, msg)
	if result == nil {
		return
	}
	if _, err := result.Get(ctx); err != nil {
		n.dropped(ctx, err)
	}
}

func (n *PubSubNotifier) dropped(ctx context.Context, err error) {
	n.metrics.IncNotifyFailure()
	if n.logg != nil {
		n.logg.Warn(n.logg.WithField(ctx, "error", err.Error()), "notification publish dropped")
	}
}

func newGCPPublisher(p *gcppubsub.Publisher) publisher {
	if p == nil {
		return nil
	}
	return &gcpPublisher{pub: p}
}

type gcpPublisher struct {
	pub *gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.pub == nil {
		return nil
	}
	return p.pub.Publish(ctx, msg)
}

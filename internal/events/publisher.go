package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"ethiqia/internal/logging"
)

// Subjects published by the services.
const (
	PostCreated   = "post.created"
	LikeCreated   = "like.created"
	FollowCreated = "follow.created"
	StrikeIssued  = "strike.issued"
)

const subjectPrefix = "ethiqia."

type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// Envelope is the JSON body of every published message.
type Envelope struct {
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

// Connect dials NATS. An empty url yields a no-op publisher.
func Connect(url string) (Publisher, func(), error) {
	if url == "" {
		logging.WithComponent("events").Info("NATS_URL not set, events disabled")
		return NopPublisher{}, func() {}, nil
	}

	nc, err := nats.Connect(url, nats.Name("ethiqia-api"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to nats: %w", err)
	}

	return NewNatsPublisher(nc), func() { nc.Drain() }, nil
}

func (p *NatsPublisher) Publish(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(Envelope{Subject: subject, OccurredAt: time.Now().UTC(), Data: payload})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &nats.Msg{
		Subject: subjectPrefix + subject,
		Data:    data,
		Header:  nats.Header{},
	}
	msg.Header.Set("Content-Type", "application/json")

	logging.WithComponent("events").Debug("publishing event", zap.String("subject", msg.Subject))

	return p.nc.PublishMsg(msg)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// PublishQuietly logs instead of returning publish failures.
func PublishQuietly(ctx context.Context, p Publisher, subject string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, subject, payload); err != nil {
		logging.WithComponent("events").Warn("publish failed", zap.String("subject", subject), zap.Error(err))
	}
}

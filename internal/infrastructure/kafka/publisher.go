package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/application"
	"github.com/Na-Rajan/compareremittance/internal/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var _ application.ProbePublisher = (*ProbePublisher)(nil)

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ProbeEvent is the JSON payload of one probe result, keyed by pair.
type ProbeEvent struct {
	Pair       string    `json:"pair"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Rate       float64   `json:"rate"`
	Source     string    `json:"source"`
	Degraded   bool      `json:"degraded"`
	ObservedAt time.Time `json:"observed_at"`
}

type ProbePublisher struct {
	writer messageWriter
	topic  string
	log    *zap.Logger
}

func NewProbePublisher(brokers []string, topic string, log *zap.Logger) *ProbePublisher {
	return newProbePublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}, topic, log)
}

func newProbePublisher(w messageWriter, topic string, log *zap.Logger) *ProbePublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProbePublisher{writer: w, topic: topic, log: log}
}

// Publish writes one message per result in a single batch.
func (p *ProbePublisher) Publish(ctx context.Context, results []domain.ProbeResult) error {
	if len(results) == 0 {
		return nil
	}
	msgs, err := toMessages(p.topic, results)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write %s: %w", p.topic, err)
	}
	p.log.Debug("kafka.probe_published", zap.String("topic", p.topic), zap.Int("messages", len(msgs)))
	return nil
}

func (p *ProbePublisher) Close() error { return p.writer.Close() }

func toMessages(topic string, results []domain.ProbeResult) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(results))
	for _, r := range results {
		v, err := json.Marshal(ProbeEvent{
			Pair:       r.Pair.Key(),
			From:       r.Pair.From,
			To:         r.Pair.To,
			Rate:       r.Rate,
			Source:     string(r.Source),
			Degraded:   r.Degraded,
			ObservedAt: r.ObservedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal probe %s: %w", r.Pair.Key(), err)
		}
		msgs = append(msgs, kafka.Message{
			Topic: topic,
			Key:   []byte(r.Pair.Key()),
			Value: v,
			Time:  r.ObservedAt,
		})
	}
	return msgs, nil
}

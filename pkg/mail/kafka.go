package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/taskmanager/pkg/config"
)

// Event is the payload published for the mail worker that performs the actual delivery.
type Event struct {
	From    string    `json:"from"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaSender struct {
	from   string
	writer messageWriter
}

func NewKafkaSender(from string, cfg config.Kafka) (*KafkaSender, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return nil, fmt.Errorf("kafka mail driver needs brokers and a topic")
	}
	return &KafkaSender{
		from: from,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			WriteTimeout: 10 * time.Second,
		},
	}, nil
}

func (k *KafkaSender) Send(ctx context.Context, to, subject, body string) error {
	value, err := json.Marshal(Event{
		From:    k.from,
		To:      to,
		Subject: subject,
		Body:    body,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode mail event: %w", err)
	}

	if err := k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(to),
		Value: value,
		Time:  time.Now(),
	}); err != nil {
		return fmt.Errorf("publish mail event: %w", err)
	}
	return nil
}

func (k *KafkaSender) Close() error {
	return k.writer.Close()
}

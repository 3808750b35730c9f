package sink

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/normalize"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes one message per line, keyed by event ordinal so that
// records of one event land on the same partition in order.
type KafkaSink struct {
	writer messageWriter
}

func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka sink requires output.kafka.brokers")
	}
	if topic == "" {
		return nil, errors.New("kafka sink requires output.kafka.topic")
	}
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}, nil
}

func (k *KafkaSink) Write(ctx context.Context, line normalize.Line) error {
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(line.EventOrdinal)),
		Value: []byte(line.Text),
		Time:  time.Now(),
	})
}

func (k *KafkaSink) Close() error {
	return k.writer.Close()
}

package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"dineroCheck/internal/modules/dinero/application/port"
	"dineroCheck/internal/modules/dinero/domain"
)

const (
	runEntity = "dinero-connectivity"

	// DefaultPublishTimeout bounds one Publish call, retries included.
	DefaultPublishTimeout = 5 * time.Second
	publishMaxAttempts    = 3
)

// KafkaRunPublisher writes run results to a Kafka topic, keyed by run id.
type KafkaRunPublisher struct {
	writer  *kafka.Writer
	topic   string
	timeout time.Duration
}

func NewKafkaRunPublisher(brokers []string, topic string) *KafkaRunPublisher {
	return &KafkaRunPublisher{
		writer: &kafka.Writer{
			Addr:            kafka.TCP(brokers...),
			Topic:           topic,
			Balancer:        &kafka.Hash{},
			RequiredAcks:    kafka.RequireOne,
			MaxAttempts:     publishMaxAttempts,
			WriteBackoffMax: 500 * time.Millisecond,
			WriteTimeout:    DefaultPublishTimeout,
			ReadTimeout:     DefaultPublishTimeout,
			Transport:       &kafka.Transport{DialTimeout: 2 * time.Second},
		},
		topic:   topic,
		timeout: DefaultPublishTimeout,
	}
}

// Publish gives up after the publisher timeout even when ctx has no deadline.
func (p *KafkaRunPublisher) Publish(ctx context.Context, result domain.RunResult) error {
	payload, err := encodeRunResult(result, p.topic)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(result.RunID),
		Value: payload,
		Time:  result.FinishedAt,
	})
	if err != nil {
		slog.Warn("kafka publish failed", slog.String("topic", p.topic), slog.Any("error", err))
		return err
	}
	slog.Debug("kafka run result published", slog.String("topic", p.topic), slog.String("runId", result.RunID))
	return nil
}

func (p *KafkaRunPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.RunResult) error { return nil }

func (NopPublisher) Close() error { return nil }

// Publisher is a RunPublisher that owns resources.
type Publisher interface {
	port.RunPublisher
	Close() error
}

// NewRunPublisher returns a Kafka publisher, or a no-op one when brokers is empty.
// kafka.Writer with an empty address list would fail on every write.
func NewRunPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaRunPublisher(brokers, topic)
}

type runEvent struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata"`
	Data       runEventData      `json:"data"`
}

type runEventData struct {
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	VoucherGUID string    `json:"voucherGuid,omitempty"`
	FinishedAt  time.Time `json:"finishedAt"`
}

func encodeRunResult(result domain.RunResult, topic string) ([]byte, error) {
	action := string(result.Mode)
	if !result.Success {
		action = "failed"
	}
	event := runEvent{
		Entity:     runEntity,
		Action:     action,
		ResourceID: result.OrganizationID,
		Topic:      topic,
		Metadata: map[string]string{
			"runId": result.RunID,
			"mode":  string(result.Mode),
		},
		Data: runEventData{
			Success:     result.Success,
			Error:       result.Error,
			VoucherGUID: result.VoucherGUID,
			FinishedAt:  result.FinishedAt,
		},
	}
	return json.Marshal(event)
}

var _ port.RunPublisher = (*KafkaRunPublisher)(nil)

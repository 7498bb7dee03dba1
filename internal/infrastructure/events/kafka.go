package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

// DefaultTopic tópico por defecto de los eventos del libro mayor.
const DefaultTopic = "inventory.ledger"

var _ inventory.EventPublisher = (*KafkaPublisher)(nil)

// KafkaConfig conexión al clúster.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// KafkaPublisher escribe cada evento como un mensaje con clave = productId,
// de modo que los eventos de un mismo producto conservan el orden en su partición.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher construye el writer. No abre conexiones hasta el primer Publish.
func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: se requiere al menos un broker")
	}
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
			WriteTimeout: 5 * time.Second,
		},
	}, nil
}

// Topic devuelve el tópico configurado.
func (p *KafkaPublisher) Topic() string { return p.writer.Topic }

// Publish escribe el evento de forma síncrona.
func (p *KafkaPublisher) Publish(ctx context.Context, event dto.LedgerEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: serializar evento: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.ProductID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: escribir mensaje: %w", err)
	}
	return nil
}

// Close vacía los mensajes pendientes y cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

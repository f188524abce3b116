// Package kafka publica las notificaciones de dominio en un tópico de Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/rs/zerolog"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier envía cada notificación como un mensaje JSON. La clave es el destinatario,
// así los eventos de un mismo técnico conservan el orden dentro de su partición.
type Notifier struct {
	producer sarama.SyncProducer
	topic    string
	log      zerolog.Logger
}

// NewNotifier construye el publicador sobre un SyncProducer ya conectado.
func NewNotifier(producer sarama.SyncProducer, topic string, log zerolog.Logger) *Notifier {
	return &Notifier{
		producer: producer,
		topic:    topic,
		log:      log.With().Str("component", "kafka_notifier").Str("topic", topic).Logger(),
	}
}

// NewSyncProducer abre un productor síncrono que espera el ack de todas las réplicas.
func NewSyncProducer(brokers []string, clientID string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Timeout = 5 * time.Second

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka sync producer: %w", err)
	}
	return p, nil
}

// Notify publica el evento. El contexto no cancela el envío: sarama no lo admite.
func (n *Notifier) Notify(_ context.Context, msg ports.Notification) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	partition, offset, err := n.producer.SendMessage(&sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(msg.RecipientID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("evento"), Value: []byte(msg.Event)},
		},
	})
	if err != nil {
		return fmt.Errorf("send notification %s: %w", msg.Event, err)
	}
	n.log.Debug().Str("evento", msg.Event).Int32("partition", partition).Int64("offset", offset).
		Msg("notificación publicada")
	return nil
}

// Close cierra el productor.
func (n *Notifier) Close() error {
	return n.producer.Close()
}

package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/kafka"
)

func newMockProducer(t *testing.T) *mocks.SyncProducer {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	return mocks.NewSyncProducer(t, cfg)
}

func TestNotifier_PublicaJSON(t *testing.T) {
	producer := newMockProducer(t)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got ports.Notification
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.Event != ports.EventLowStock || got.RecipientID != "tec-1" {
			return errors.New("payload inesperado: " + string(val))
		}
		return nil
	})

	n := kafka.NewNotifier(producer, "material.notificaciones", zerolog.Nop())
	err := n.Notify(context.Background(), ports.Notification{
		Event:       ports.EventLowStock,
		RecipientID: "tec-1",
		Message:     "Stock bajo de Cable UTP",
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, n.Close())
}

func TestNotifier_ErrorDelBroker(t *testing.T) {
	producer := newMockProducer(t)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	n := kafka.NewNotifier(producer, "material.notificaciones", zerolog.Nop())
	err := n.Notify(context.Background(), ports.Notification{Event: ports.EventDiscrepancyCreated})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, n.Close())
}

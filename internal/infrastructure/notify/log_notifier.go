// Package notify contiene el notificador por defecto cuando no hay broker configurado.
package notify

import (
	"context"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/rs/zerolog"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier escribe cada notificación en el log estructurado.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Notify(_ context.Context, msg ports.Notification) error {
	n.log.Info().
		Str("evento", msg.Event).
		Str("destinatario_id", msg.RecipientID).
		Interface("datos", msg.Data).
		Msg(msg.Message)
	return nil
}

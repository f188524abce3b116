package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Eventos publicados hacia el servicio de notificaciones.
const (
	EventRequestApproved    = "solicitud_aprobada"
	EventRequestRejected    = "solicitud_rechazada"
	EventLowStock           = "stock_bajo"
	EventCriticalStock      = "stock_critico"
	EventDiscrepancyCreated = "descuadre_creado"
)

// Notification evento de dominio para el servicio de notificaciones.
type Notification struct {
	Event       string         `json:"evento"`
	RecipientID string         `json:"destinatario_id,omitempty"`
	Message     string         `json:"mensaje"`
	Data        map[string]any `json:"datos,omitempty"`
	CreatedAt   time.Time      `json:"fecha"`
}

// Notifier define el puerto de salida para notificaciones.
// La entrega (push, correo, websocket) es responsabilidad del consumidor del evento.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifyBestEffort publica las notificaciones después del commit.
// Un fallo se registra y no se propaga: la operación ya quedó persistida.
func NotifyBestEffort(ctx context.Context, log zerolog.Logger, notifier Notifier, list ...Notification) {
	if notifier == nil {
		return
	}
	for _, n := range list {
		if err := notifier.Notify(ctx, n); err != nil {
			log.Warn().Err(err).Str("evento", n.Event).Str("destinatario_id", n.RecipientID).
				Msg("no se pudo publicar la notificación")
		}
	}
}

package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/primemotors/inventory-service/internal/events"
)

// StartAuditWorker subscribes an audit logger to every inventory mutation event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")
	handler := func(_ context.Context, e events.Event) error {
		fields := []zap.Field{
			zap.String("event_id", e.ID),
			zap.String("event", string(e.Type)),
			zap.String("unit_id", e.UnitID),
			zap.String("actor_id", e.Actor.UserID),
			zap.String("actor_username", e.Actor.Username),
			zap.String("actor_role", string(e.Actor.Role)),
			zap.Time("at", e.Timestamp),
		}
		if p, ok := e.Payload.(events.UnitTransferredPayload); ok {
			fields = append(fields, zap.String("from", p.From), zap.String("to", p.To))
		}
		audit.Info("inventory mutation", fields...)
		return nil
	}

	for _, t := range []events.EventType{
		events.EventUnitCreated,
		events.EventUnitUpdated,
		events.EventUnitTransferred,
		events.EventUnitDeleted,
	} {
		dispatcher.Subscribe(t, handler)
	}
}

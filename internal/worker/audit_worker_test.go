package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/primemotors/inventory-service/internal/domain"
	"github.com/primemotors/inventory-service/internal/events"
)

func TestAuditWorker_LogsTransfers(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := events.NewInMemoryDispatcher()
	StartAuditWorker(d, zap.New(core))

	err := d.Publish(context.Background(), events.Event{
		ID:        "evt-1",
		Type:      events.EventUnitTransferred,
		UnitID:    "unit-9",
		Actor:     events.Actor{UserID: "user-1", Username: "nsm1", Role: domain.RoleNSM},
		Timestamp: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Payload:   events.UnitTransferredPayload{From: "Makati", To: "Pasig"},
	})
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "inventory.transferred", fields["event"])
	assert.Equal(t, "unit-9", fields["unit_id"])
	assert.Equal(t, "nsm", fields["actor_role"])
	assert.Equal(t, "Pasig", fields["to"])
}

func TestAuditWorker_NilDispatcher(t *testing.T) {
	assert.NotPanics(t, func() { StartAuditWorker(nil, zap.NewNop()) })
}

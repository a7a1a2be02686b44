package events

import (
	"time"

	"github.com/primemotors/inventory-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUnitCreated     EventType = "inventory.created"
	EventUnitUpdated     EventType = "inventory.updated"
	EventUnitTransferred EventType = "inventory.transferred"
	EventUnitDeleted     EventType = "inventory.deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// ActorFrom copies the audit-relevant fields of a verified identity.
func ActorFrom(identity *domain.Identity) Actor {
	if identity == nil {
		return Actor{}
	}
	return Actor{UserID: identity.UserID, Username: identity.Username, Role: identity.Role}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	UnitID    string    `json:"unit_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// UnitTransferredPayload payload.
type UnitTransferredPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

package auth

import "github.com/primemotors/inventory-service/internal/config"

// Operation names a mutating inventory action.
type Operation string

const (
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpTransfer Operation = "transfer"
	OpDelete   Operation = "delete"
)

// EditPolicy records which operations need the rotating edit password on top of a valid token.
type EditPolicy struct {
	Create   bool
	Update   bool
	Transfer bool
	Delete   bool
}

// DefaultEditPolicy gates every mutation, deletion included.
func DefaultEditPolicy() EditPolicy {
	return EditPolicy{Create: true, Update: true, Transfer: true, Delete: true}
}

// EditPolicyFromConfig maps the env-driven flags.
func EditPolicyFromConfig(cfg config.EditPolicyConfig) EditPolicy {
	return EditPolicy{
		Create:   cfg.Create,
		Update:   cfg.Update,
		Transfer: cfg.Transfer,
		Delete:   cfg.Delete,
	}
}

// Requires reports whether op must pass the edit-password guard.
// Unknown operations are gated.
func (p EditPolicy) Requires(op Operation) bool {
	switch op {
	case OpCreate:
		return p.Create
	case OpUpdate:
		return p.Update
	case OpTransfer:
		return p.Transfer
	case OpDelete:
		return p.Delete
	default:
		return true
	}
}

// Guards returns the ordered guard list for a mutating operation.
func (p EditPolicy) Guards(op Operation, authn *AuthMiddleware, edit *EditPasswordGuard) []Guard {
	guards := []Guard{authn.Authenticate}
	if p.Requires(op) {
		guards = append(guards, edit.Check)
	}
	return guards
}

package domain

import "time"

// UnitStatus tracks where an inventory unit currently is.
type UnitStatus string

const (
	UnitStatusInStock     UnitStatus = "IN_STOCK"
	UnitStatusTransferred UnitStatus = "TRANSFERRED"
)

// InventoryUnit is a single stocked vehicle.
type InventoryUnit struct {
	ID            string
	Model         string
	Variant       string
	Color         string
	EngineNumber  string
	ChassisNumber string
	Branch        string
	Status        UnitStatus
	SIPhoto       *string
	TransferredTo *string
	TransferredAt *time.Time
	TransferredBy *string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Transfer moves a unit to another branch.
type Transfer struct {
	UnitID      string
	Destination string
	Remarks     string
	ActorID     string
	At          time.Time
}

package dto

import (
	"time"

	"github.com/primemotors/inventory-service/internal/domain"
)

// UnitRequest is accepted as JSON or multipart form. EditPassword is consumed by the
// edit-password guard and ignored by handlers.
type UnitRequest struct {
	Model         string `json:"model" form:"model" validate:"max=100"`
	Variant       string `json:"variant" form:"variant" validate:"max=100"`
	Color         string `json:"color" form:"color" validate:"max=100"`
	EngineNumber  string `json:"engine_number" form:"engine_number" validate:"max=100"`
	ChassisNumber string `json:"chassis_number" form:"chassis_number" validate:"max=100"`
	Branch        string `json:"branch" form:"branch" validate:"max=100"`
	EditPassword  string `json:"editPassword" form:"editPassword"`
}

// TransferRequest payload for POST /api/inventory/transfer.
type TransferRequest struct {
	UnitID       string `json:"unit_id" form:"unit_id" validate:"required"`
	Destination  string `json:"destination" form:"destination" validate:"required,max=100"`
	Remarks      string `json:"remarks" form:"remarks" validate:"max=500"`
	EditPassword string `json:"editPassword" form:"editPassword"`
}

// UnitResponse is the public view of an inventory unit.
type UnitResponse struct {
	ID            string            `json:"id"`
	Model         string            `json:"model"`
	Variant       string            `json:"variant"`
	Color         string            `json:"color"`
	EngineNumber  string            `json:"engine_number"`
	ChassisNumber string            `json:"chassis_number"`
	Branch        string            `json:"branch"`
	Status        domain.UnitStatus `json:"status"`
	SIPhotoURL    *string           `json:"si_photo_url,omitempty"`
	TransferredTo *string           `json:"transferred_to,omitempty"`
	TransferredAt *time.Time        `json:"transferred_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/primemotors/inventory-service/internal/api/dto"
	"github.com/primemotors/inventory-service/internal/auth"
	"github.com/primemotors/inventory-service/internal/domain"
	"github.com/primemotors/inventory-service/internal/service"
	"github.com/primemotors/inventory-service/internal/storage"
	apperrors "github.com/primemotors/inventory-service/pkg/util"
)

const siPhotoField = "si_photo"

// InventoryHandler exposes inventory endpoints. Mutating routes are wrapped in guards
// by the router, so handlers can assume an authorized caller.
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// List handles GET /api/inventory.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	units, err := h.inventory.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": unitResponses(units)})
}

// ListTransferred handles GET /api/inventory/transferred.
func (h *InventoryHandler) ListTransferred(c *fiber.Ctx) error {
	units, err := h.inventory.ListTransferred(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": unitResponses(units)})
}

// Create handles POST /api/inventory.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	actor, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}
	photo, err := optionalFile(c, siPhotoField)
	if err != nil {
		return err
	}

	unit, err := h.inventory.Create(c.UserContext(), actor, unitInput(req), photo)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": unitResponse(unit)})
}

// Update handles PUT /api/inventory/:id.
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	actor, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.UnitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}
	photo, err := optionalFile(c, siPhotoField)
	if err != nil {
		return err
	}

	unit, err := h.inventory.Update(c.UserContext(), actor, c.Params("id"), unitInput(req), photo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": unitResponse(unit)})
}

// Transfer handles POST /api/inventory/transfer.
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	actor, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	unit, err := h.inventory.Transfer(c.UserContext(), actor, service.TransferInput{
		UnitID:      req.UnitID,
		Destination: req.Destination,
		Remarks:     req.Remarks,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": unitResponse(unit)})
}

// Delete handles DELETE /api/inventory/:id.
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	actor, err := requireIdentity(c)
	if err != nil {
		return err
	}
	if err := h.inventory.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func requireIdentity(c *fiber.Ctx) (*domain.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthenticated("authentication required")
	}
	return identity, nil
}

// optionalFile returns the named upload, or nil when the request is not multipart
// or carries no such file.
func optionalFile(c *fiber.Ctx, field string) (*multipart.FileHeader, error) {
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperrors.NewValidationError("invalid upload", map[string]any{"field": field})
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	return files[0], nil
}

func unitInput(req dto.UnitRequest) service.UnitInput {
	return service.UnitInput{
		Model:         req.Model,
		Variant:       req.Variant,
		Color:         req.Color,
		EngineNumber:  req.EngineNumber,
		ChassisNumber: req.ChassisNumber,
		Branch:        req.Branch,
	}
}

func unitResponses(units []domain.InventoryUnit) []dto.UnitResponse {
	resp := make([]dto.UnitResponse, 0, len(units))
	for i := range units {
		resp = append(resp, unitResponse(&units[i]))
	}
	return resp
}

func unitResponse(unit *domain.InventoryUnit) dto.UnitResponse {
	resp := dto.UnitResponse{
		ID:            unit.ID,
		Model:         unit.Model,
		Variant:       unit.Variant,
		Color:         unit.Color,
		EngineNumber:  unit.EngineNumber,
		ChassisNumber: unit.ChassisNumber,
		Branch:        unit.Branch,
		Status:        unit.Status,
		TransferredTo: unit.TransferredTo,
		TransferredAt: unit.TransferredAt,
		CreatedAt:     unit.CreatedAt,
		UpdatedAt:     unit.UpdatedAt,
	}
	if unit.SIPhoto != nil {
		url := storage.PublicPath(*unit.SIPhoto)
		resp.SIPhotoURL = &url
	}
	return resp
}

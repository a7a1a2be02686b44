package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/primemotors/inventory-service/internal/clock"
	"github.com/primemotors/inventory-service/internal/domain"
	"github.com/primemotors/inventory-service/internal/events"
	"github.com/primemotors/inventory-service/internal/repository"
	"github.com/primemotors/inventory-service/internal/storage"
	apperrors "github.com/primemotors/inventory-service/pkg/util"
)

// FileStore keeps SI photo uploads.
type FileStore interface {
	SaveSIPhoto(file *multipart.FileHeader) (string, error)
	Delete(name string) error
}

// InventoryService coordinates inventory mutations. It is only reached after the
// request has passed authentication and, where required, the edit-password check.
type InventoryService struct {
	units      repository.InventoryRepository
	files      FileStore
	dispatcher events.Dispatcher
	clock      clock.Clock
	logger     *zap.Logger
}

// InventoryDependencies bundles collaborators for the inventory service.
type InventoryDependencies struct {
	UnitRepo   repository.InventoryRepository
	Files      FileStore
	Dispatcher events.Dispatcher
	Clock      clock.Clock
	Logger     *zap.Logger
}

// UnitInput describes the editable fields of a unit.
type UnitInput struct {
	Model         string
	Variant       string
	Color         string
	EngineNumber  string
	ChassisNumber string
	Branch        string
}

// TransferInput describes a branch transfer.
type TransferInput struct {
	UnitID      string
	Destination string
	Remarks     string
}

// NewInventoryService constructs the service.
func NewInventoryService(deps InventoryDependencies) *InventoryService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.System()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		units:      deps.UnitRepo,
		files:      deps.Files,
		dispatcher: deps.Dispatcher,
		clock:      clk,
		logger:     logger,
	}
}

// List returns units still in stock.
func (s *InventoryService) List(ctx context.Context) ([]domain.InventoryUnit, error) {
	return s.units.List(ctx, domain.UnitStatusInStock)
}

// ListTransferred returns units that have left for another branch.
func (s *InventoryService) ListTransferred(ctx context.Context) ([]domain.InventoryUnit, error) {
	return s.units.List(ctx, domain.UnitStatusTransferred)
}

// Create stores a new unit and its optional SI photo.
func (s *InventoryService) Create(ctx context.Context, actor *domain.Identity, input UnitInput, photo *multipart.FileHeader) (*domain.InventoryUnit, error) {
	input = input.trimmed()
	if err := input.validate(); err != nil {
		return nil, err
	}

	unit := &domain.InventoryUnit{
		ID:            uuid.NewString(),
		Model:         input.Model,
		Variant:       input.Variant,
		Color:         input.Color,
		EngineNumber:  input.EngineNumber,
		ChassisNumber: input.ChassisNumber,
		Branch:        input.Branch,
		Status:        domain.UnitStatusInStock,
		CreatedBy:     actor.UserID,
	}

	if photo != nil {
		name, err := s.savePhoto(photo)
		if err != nil {
			return nil, err
		}
		unit.SIPhoto = &name
	}

	if err := s.units.Create(ctx, unit); err != nil {
		s.discardPhoto(unit.SIPhoto)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("chassis number already registered", map[string]any{"chassis_number": unit.ChassisNumber})
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publishEvent(ctx, events.Event{Type: events.EventUnitCreated, UnitID: unit.ID, Actor: events.ActorFrom(actor)})
	return unit, nil
}

// Update changes the non-empty fields of input and optionally replaces the SI photo.
func (s *InventoryService) Update(ctx context.Context, actor *domain.Identity, id string, input UnitInput, photo *multipart.FileHeader) (*domain.InventoryUnit, error) {
	unit, err := s.getUnit(ctx, id)
	if err != nil {
		return nil, err
	}

	input = input.trimmed()
	applyIfSet(&unit.Model, input.Model)
	applyIfSet(&unit.Variant, input.Variant)
	applyIfSet(&unit.Color, input.Color)
	applyIfSet(&unit.EngineNumber, input.EngineNumber)
	applyIfSet(&unit.ChassisNumber, input.ChassisNumber)
	applyIfSet(&unit.Branch, input.Branch)

	previous := unit.SIPhoto
	if photo != nil {
		name, err := s.savePhoto(photo)
		if err != nil {
			return nil, err
		}
		unit.SIPhoto = &name
	}

	if err := s.units.Update(ctx, unit); err != nil {
		if photo != nil {
			s.discardPhoto(unit.SIPhoto)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("inventory unit", map[string]any{"id": id})
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("chassis number already registered", map[string]any{"chassis_number": unit.ChassisNumber})
		}
		return nil, apperrors.NewInternalError(err)
	}
	if photo != nil {
		s.discardPhoto(previous)
	}

	s.publishEvent(ctx, events.Event{Type: events.EventUnitUpdated, UnitID: unit.ID, Actor: events.ActorFrom(actor)})
	return unit, nil
}

// Transfer marks an in-stock unit as moved to another branch.
func (s *InventoryService) Transfer(ctx context.Context, actor *domain.Identity, input TransferInput) (*domain.InventoryUnit, error) {
	input.UnitID = strings.TrimSpace(input.UnitID)
	input.Destination = strings.TrimSpace(input.Destination)
	if input.UnitID == "" || input.Destination == "" {
		return nil, apperrors.NewValidationError("unit_id and destination required", nil)
	}

	current, err := s.getUnit(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.UnitStatusTransferred {
		return nil, apperrors.NewConflict("unit already transferred", map[string]any{"id": current.ID})
	}
	if strings.EqualFold(current.Branch, input.Destination) {
		return nil, apperrors.NewValidationError("destination must differ from current branch", nil)
	}

	unit, err := s.units.Transfer(ctx, domain.Transfer{
		UnitID:      input.UnitID,
		Destination: input.Destination,
		Remarks:     strings.TrimSpace(input.Remarks),
		ActorID:     actor.UserID,
		At:          s.clock.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("unit already transferred", map[string]any{"id": input.UnitID})
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUnitTransferred,
		UnitID:  unit.ID,
		Actor:   events.ActorFrom(actor),
		Payload: events.UnitTransferredPayload{From: current.Branch, To: input.Destination},
	})
	return unit, nil
}

// Delete removes a unit and its stored SI photo.
func (s *InventoryService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	unit, err := s.getUnit(ctx, id)
	if err != nil {
		return err
	}
	if err := s.units.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("inventory unit", map[string]any{"id": id})
		}
		return apperrors.NewInternalError(err)
	}
	s.discardPhoto(unit.SIPhoto)

	s.publishEvent(ctx, events.Event{Type: events.EventUnitDeleted, UnitID: id, Actor: events.ActorFrom(actor)})
	return nil
}

func (s *InventoryService) getUnit(ctx context.Context, id string) (*domain.InventoryUnit, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("inventory unit", map[string]any{"id": id})
	}
	unit, err := s.units.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("inventory unit", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return unit, nil
}

func (s *InventoryService) savePhoto(photo *multipart.FileHeader) (string, error) {
	name, err := s.files.SaveSIPhoto(photo)
	switch {
	case err == nil:
		return name, nil
	case errors.Is(err, storage.ErrUnsupportedType), errors.Is(err, storage.ErrTooLarge):
		return "", apperrors.NewValidationError(err.Error(), map[string]any{"field": "si_photo"})
	default:
		return "", apperrors.NewInternalError(err)
	}
}

func (s *InventoryService) discardPhoto(name *string) {
	if name == nil || *name == "" {
		return
	}
	if err := s.files.Delete(*name); err != nil {
		s.logger.Warn("failed to delete SI photo", zap.String("file", *name), zap.Error(err))
	}
}

func (s *InventoryService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}

func (in UnitInput) trimmed() UnitInput {
	return UnitInput{
		Model:         strings.TrimSpace(in.Model),
		Variant:       strings.TrimSpace(in.Variant),
		Color:         strings.TrimSpace(in.Color),
		EngineNumber:  strings.TrimSpace(in.EngineNumber),
		ChassisNumber: strings.TrimSpace(in.ChassisNumber),
		Branch:        strings.TrimSpace(in.Branch),
	}
}

func (in UnitInput) validate() error {
	missing := make([]string, 0, 4)
	if in.Model == "" {
		missing = append(missing, "model")
	}
	if in.EngineNumber == "" {
		missing = append(missing, "engine_number")
	}
	if in.ChassisNumber == "" {
		missing = append(missing, "chassis_number")
	}
	if in.Branch == "" {
		missing = append(missing, "branch")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields", map[string]any{"fields": missing})
	}
	return nil
}

func applyIfSet(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}


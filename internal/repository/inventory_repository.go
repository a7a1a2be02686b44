package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/primemotors/inventory-service/internal/domain"
)

// InventoryRepository persists inventory units.
type InventoryRepository interface {
	List(ctx context.Context, status domain.UnitStatus) ([]domain.InventoryUnit, error)
	GetByID(ctx context.Context, id string) (*domain.InventoryUnit, error)
	Create(ctx context.Context, unit *domain.InventoryUnit) error
	Update(ctx context.Context, unit *domain.InventoryUnit) error
	Transfer(ctx context.Context, transfer domain.Transfer) (*domain.InventoryUnit, error)
	Delete(ctx context.Context, id string) error
}

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository returns a Postgres-backed implementation.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

const unitColumns = `id, model, variant, color, engine_number, chassis_number, branch, status,
        si_photo, transferred_to, transferred_at, transferred_by, created_by, created_at, updated_at`

func (r *inventoryRepository) List(ctx context.Context, status domain.UnitStatus) ([]domain.InventoryUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM inventory_units WHERE status=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.InventoryUnit
	for rows.Next() {
		var unit domain.InventoryUnit
		if err := scanUnit(rows, &unit); err != nil {
			return nil, err
		}
		result = append(result, unit)
	}
	return result, rows.Err()
}

func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*domain.InventoryUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM inventory_units WHERE id=$1`
	var unit domain.InventoryUnit
	if err := scanUnit(r.pool.QueryRow(ctx, query, id), &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *inventoryRepository) Create(ctx context.Context, unit *domain.InventoryUnit) error {
	const query = `
        INSERT INTO inventory_units (id, model, variant, color, engine_number, chassis_number, branch, status, si_photo, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		unit.ID,
		unit.Model,
		unit.Variant,
		unit.Color,
		unit.EngineNumber,
		unit.ChassisNumber,
		unit.Branch,
		unit.Status,
		unit.SIPhoto,
		unit.CreatedBy,
	).Scan(&unit.CreatedAt, &unit.UpdatedAt)
	return mapWriteError(err)
}

func (r *inventoryRepository) Update(ctx context.Context, unit *domain.InventoryUnit) error {
	const query = `
        UPDATE inventory_units
        SET model=$1, variant=$2, color=$3, engine_number=$4, chassis_number=$5, branch=$6, si_photo=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		unit.Model,
		unit.Variant,
		unit.Color,
		unit.EngineNumber,
		unit.ChassisNumber,
		unit.Branch,
		unit.SIPhoto,
		unit.ID,
	).Scan(&unit.UpdatedAt)
	return mapWriteError(err)
}

func (r *inventoryRepository) Transfer(ctx context.Context, transfer domain.Transfer) (*domain.InventoryUnit, error) {
	query := `
        UPDATE inventory_units
        SET status=$1, transferred_to=$2, transferred_at=$3, transferred_by=$4, remarks=$5, updated_at=NOW()
        WHERE id=$6 AND status=$7
        RETURNING ` + unitColumns
	var unit domain.InventoryUnit
	err := scanUnit(r.pool.QueryRow(ctx, query,
		domain.UnitStatusTransferred,
		transfer.Destination,
		transfer.At,
		transfer.ActorID,
		transfer.Remarks,
		transfer.UnitID,
		domain.UnitStatusInStock,
	), &unit)
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM inventory_units WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanUnit(row pgx.Row, unit *domain.InventoryUnit) error {
	return row.Scan(
		&unit.ID,
		&unit.Model,
		&unit.Variant,
		&unit.Color,
		&unit.EngineNumber,
		&unit.ChassisNumber,
		&unit.Branch,
		&unit.Status,
		&unit.SIPhoto,
		&unit.TransferredTo,
		&unit.TransferredAt,
		&unit.TransferredBy,
		&unit.CreatedBy,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	)
}

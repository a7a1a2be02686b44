package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapWriteError(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "inventory_units_chassis_number_key"}
	err := mapWriteError(unique)
	assert.ErrorIs(t, err, ErrDuplicate)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))

	fk := &pgconn.PgError{Code: "23503"}
	assert.NotErrorIs(t, mapWriteError(fk), ErrDuplicate)

	assert.ErrorIs(t, mapWriteError(pgx.ErrNoRows), pgx.ErrNoRows)
	assert.NoError(t, mapWriteError(nil))
}

package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	badUUID := fmt.Errorf("get: %w", &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation})
	dup := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}

	assert.True(t, IsNotFound(pgx.ErrNoRows))
	assert.True(t, IsNotFound(badUUID))
	assert.False(t, IsNotFound(errors.New("timeout")))

	assert.True(t, IsUniqueViolation(dup))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
}

func TestConstraintName(t *testing.T) {
	fk := fmt.Errorf("create: %w", &pgconn.PgError{
		Code:           pgerrcode.ForeignKeyViolation,
		ConstraintName: "scheduled_seats_seat_id_fkey",
	})

	assert.Equal(t, "scheduled_seats_seat_id_fkey", ConstraintName(fk))
	assert.Empty(t, ConstraintName(errors.New("timeout")))
}

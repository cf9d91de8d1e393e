package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeNumericOutOfRange    = "22003"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeRaiseException       = "P0001"

	ledgerSequenceConstraint = "inventory_adjustments_product_sequence_key"
)

// mapError traduce errores de PostgreSQL a errores de dominio. Lo no reconocido es ErrPersistence.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return domain.Persistence(op, err)
	}
	switch pgErr.Code {
	case codeCheckViolation, codeNumericOutOfRange, codeRaiseException:
		field := pgErr.ConstraintName
		if field == "" {
			field = pgErr.ColumnName
		}
		return fmt.Errorf("%s: %w", op, domain.ConstraintViolation(field, "%s", pgErr.Message))
	case codeForeignKeyViolation:
		return fmt.Errorf("%s: %w: %s", op, domain.ErrNotFound, pgErr.Detail)
	case codeUniqueViolation:
		if pgErr.ConstraintName == ledgerSequenceConstraint {
			return fmt.Errorf("%s: %w: %s", op, domain.ErrConflict, pgErr.Detail)
		}
		return fmt.Errorf("%s: %w: %s", op, domain.ErrDuplicate, pgErr.Detail)
	case codeSerializationFailure, codeDeadlockDetected:
		return fmt.Errorf("%s: %w: %s", op, domain.ErrConflict, pgErr.Message)
	}
	return domain.Persistence(op, err)
}

// validUUIDs descarta los IDs que no son UUID: no pueden existir en la base
// y PostgreSQL los rechazaría con 22P02.
func validUUIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			out = append(out, id)
		}
	}
	return out
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio. Los errores estructurados de abajo envuelven a estos centinelas,
// así que la clasificación siempre se hace con errors.Is.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConstraintViolation = errors.New("restricción de datos violada")
	ErrInvalidRange        = errors.New("rango de fechas inválido")
	ErrPersistence         = errors.New("error de persistencia")

	// ErrNoStockRecord el producto no tiene historial de inventario (stock indefinido, no cero).
	ErrNoStockRecord = fmt.Errorf("%w: el producto no tiene registros de inventario", ErrNotFound)

	// ErrDuplicateRequest la Idempotency-Key ya fue usada por otro pedido.
	ErrDuplicateRequest = fmt.Errorf("%w: solicitud repetida", ErrConflict)
)

// NotFoundError lista todos los IDs que no existen (reporte agregado, no solo el primero).
type NotFoundError struct {
	Resource string
	IDs      []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Resource, strings.Join(e.IDs, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StockShortage describe una línea que no puede cubrirse con el stock actual.
// HasRecord es false cuando el producto nunca tuvo movimientos.
type StockShortage struct {
	ProductID string
	Requested decimal.Decimal
	Available decimal.Decimal
	HasRecord bool
}

// InsufficientStockError agrupa los productos sin stock suficiente de un pedido.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	ids := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		ids = append(ids, s.ProductID)
	}
	return fmt.Sprintf("stock insuficiente para: %s", strings.Join(ids, ", "))
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ProductIDs devuelve los IDs de producto afectados, en el orden del pedido.
func (e *InsufficientStockError) ProductIDs() []string {
	ids := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		ids = append(ids, s.ProductID)
	}
	return ids
}

// ConstraintViolation construye un ErrConstraintViolation con el campo y el motivo.
func ConstraintViolation(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrConstraintViolation, field, fmt.Sprintf(format, args...))
}

// Persistence envuelve un fallo de infraestructura conservando la causa.
func Persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

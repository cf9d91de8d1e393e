// Package memstore implementa los puertos de repositorio en memoria para tests.
// Las transacciones se serializan con un mutex global y se revierten restaurando una copia
// del estado, lo que equivale al bloqueo de filas de PostgreSQL para un solo proceso.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Nombres de operación para InjectFailure y Calls.
const (
	OpProductLock       = "products.LockByIDs"
	OpLedgerAppend      = "ledger.Append"
	OpLedgerLatest      = "ledger.Latest"
	OpOrderCreate       = "orders.Create"
	OpOrderCreateLine   = "orders.CreateLine"
	OpOrderUpdateTotal  = "orders.UpdateTotal"
	OpRevenueTotals     = "revenue.SumOrderTotals"
	OpRevenueByCategory = "revenue.SumLineTotalsByCategory"
)

// Failure falla programada: se activa después de After llamadas exitosas y dura Times llamadas
// (Times = 0: para siempre).
type Failure struct {
	After int
	Times int
	Err   error
}

type state struct {
	categories map[string]*entity.Category
	platforms  map[string]*entity.Platform
	products   map[string]*entity.Product
	ledger     []*entity.InventoryAdjustment
	orders     map[string]*entity.Order
	lines      []*entity.OrderLine
	nextAdjID  int64
	nextLineID int64
}

func newState() state {
	return state{
		categories: map[string]*entity.Category{},
		platforms:  map[string]*entity.Platform{},
		products:   map[string]*entity.Product{},
		orders:     map[string]*entity.Order{},
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.categories {
		cp := *v
		c.categories[k] = &cp
	}
	for k, v := range s.platforms {
		cp := *v
		c.platforms[k] = &cp
	}
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.orders {
		cp := *v
		cp.Lines = nil
		c.orders[k] = &cp
	}
	c.ledger = make([]*entity.InventoryAdjustment, len(s.ledger))
	for i, v := range s.ledger {
		cp := *v
		c.ledger[i] = &cp
	}
	c.lines = make([]*entity.OrderLine, len(s.lines))
	for i, v := range s.lines {
		cp := *v
		c.lines[i] = &cp
	}
	c.nextAdjID = s.nextAdjID
	c.nextLineID = s.nextLineID
	return c
}

// Store base de datos en memoria.
type Store struct {
	txMu sync.Mutex

	mu       sync.RWMutex
	data     state
	calls    map[string]int
	failures map[string]*Failure
	fired    map[string]int
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		data:     newState(),
		calls:    map[string]int{},
		failures: map[string]*Failure{},
		fired:    map[string]int{},
	}
}

// InjectFailure programa un error para la operación op.
func (s *Store) InjectFailure(op string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = &f
	s.fired[op] = 0
	s.calls[op] = 0
}

// Calls cuántas veces se invocó op (incluye las que fallaron).
func (s *Store) Calls(op string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[op]
}

// hit registra la llamada y devuelve el error programado, si corresponde. Requiere s.mu tomado.
func (s *Store) hit(op string) error {
	s.calls[op]++
	f, ok := s.failures[op]
	if !ok || s.calls[op] <= f.After {
		return nil
	}
	if f.Times > 0 && s.fired[op] >= f.Times {
		return nil
	}
	s.fired[op]++
	return f.Err
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Categories repositorio de categorías.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s: s} }

// Platforms repositorio de plataformas.
func (s *Store) Platforms() repository.PlatformRepository { return &platformRepo{s: s} }

// Ledger repositorio del ledger fuera de transacción.
func (s *Store) Ledger() repository.InventoryAdjustmentRepository { return &ledgerRepo{s: s} }

// Orders repositorio de pedidos fuera de transacción.
func (s *Store) Orders() repository.OrderRepository { return &orderRepo{s: s} }

// Revenue repositorio de agregados de ingresos.
func (s *Store) Revenue() repository.RevenueRepository { return &revenueRepo{s: s} }

// Run transacción de inventario (producto + ledger).
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	ledgerRepo repository.InventoryAdjustmentRepository,
) error) error {
	return s.inTx(ctx, func() error {
		return fn(&productRepo{s: s}, &ledgerRepo{s: s})
	})
}

// RunOrder transacción de pedido (producto + ledger + pedidos).
func (s *Store) RunOrder(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	ledgerRepo repository.InventoryAdjustmentRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return s.inTx(ctx, func() error {
		return fn(&productRepo{s: s}, &ledgerRepo{s: s}, &orderRepo{s: s})
	})
}

func (s *Store) inTx(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// StockOf cantidad vigente del producto (false si no tiene historial).
func (s *Store) StockOf(productID string) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e := s.latest(productID); e != nil {
		return e.QuantityAfter, true
	}
	return decimal.Zero, false
}

// LedgerOf entradas del producto en orden de sequence.
func (s *Store) LedgerOf(productID string) []*entity.InventoryAdjustment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.InventoryAdjustment
	for _, e := range s.data.ledger {
		if e.ProductID == productID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out
}

// Counts cantidad de pedidos, líneas y entradas de ledger.
func (s *Store) Counts() (orders, lines, ledger int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.orders), len(s.data.lines), len(s.data.ledger)
}

// AllOrders todos los pedidos con sus líneas.
func (s *Store) AllOrders() []*entity.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Order, 0, len(s.data.orders))
	for id := range s.data.orders {
		out = append(out, s.orderWithLines(id))
	}
	return out
}

// AddCategory fixture: crea una categoría o hace panic.
func (s *Store) AddCategory(name string) *entity.Category {
	c := &entity.Category{ID: uuid.NewString(), Name: name, SKU: name}
	must(s.Categories().Create(context.Background(), c))
	return c
}

// AddPlatform fixture: crea una plataforma o hace panic.
func (s *Store) AddPlatform(name string) *entity.Platform {
	p := &entity.Platform{ID: uuid.NewString(), Name: name}
	must(s.Platforms().Create(context.Background(), p))
	return p
}

// AddProduct fixture: crea un producto publicado con el precio dado.
func (s *Store) AddProduct(categoryID, name, price string) *entity.Product {
	p := &entity.Product{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		SKU:        name,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Published:  true,
	}
	must(s.Products().Create(context.Background(), p))
	return p
}

// AddStock fixture: agrega una entrada al ledger encadenada a la última.
func (s *Store) AddStock(productID string, changed, threshold int64) *entity.InventoryAdjustment {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.latest(productID)
	e := &entity.InventoryAdjustment{
		ProductID:       productID,
		Sequence:        1,
		QuantityChanged: decimal.NewFromInt(changed),
		QuantityAfter:   decimal.NewFromInt(changed),
		Threshold:       decimal.NewFromInt(threshold),
		Reason:          "fixture",
		CreatedAt:       time.Now().UTC(),
	}
	if prev != nil {
		e.Sequence = prev.Sequence + 1
		e.QuantityBefore = prev.QuantityAfter
		e.QuantityAfter = prev.QuantityAfter.Add(e.QuantityChanged)
	}
	must(s.appendLocked(e))
	return e
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("memstore fixture: %v", err))
	}
}

// latest requiere s.mu tomado.
func (s *Store) latest(productID string) *entity.InventoryAdjustment {
	var out *entity.InventoryAdjustment
	for _, e := range s.data.ledger {
		if e.ProductID == productID && (out == nil || e.Sequence > out.Sequence) {
			out = e
		}
	}
	return out
}

func (s *Store) orderWithLines(id string) *entity.Order {
	o, ok := s.data.orders[id]
	if !ok {
		return nil
	}
	cp := *o
	cp.Lines = nil
	for _, l := range s.data.lines {
		if l.OrderID == id {
			lc := *l
			cp.Lines = append(cp.Lines, &lc)
		}
	}
	return &cp
}

func notFound(resource, id string) error {
	return &domain.NotFoundError{Resource: resource, IDs: []string{id}}
}

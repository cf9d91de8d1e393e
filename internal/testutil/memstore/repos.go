package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.categories[p.CategoryID]; !ok {
		return notFound("categoría", p.CategoryID)
	}
	for _, x := range r.s.data.products {
		if x.Name == p.Name || x.SKU == p.SKU {
			return fmt.Errorf("%w: producto %s", domain.ErrDuplicate, p.SKU)
		}
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	r.s.data.products[p.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.data.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *productRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.byIDs(ids), nil
}

func (r *productRepo) LockByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpProductLock); err != nil {
		return nil, err
	}
	return r.byIDs(ids), nil
}

func (r *productRepo) byIDs(ids []string) map[string]*entity.Product {
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.data.products[id]; ok {
			cp := *p
			out[id] = &cp
		}
	}
	return out
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.data.products[p.ID]
	if !ok {
		return notFound("producto", p.ID)
	}
	if _, ok := r.s.data.categories[p.CategoryID]; !ok {
		return notFound("categoría", p.CategoryID)
	}
	for _, x := range r.s.data.products {
		if x.ID != p.ID && (x.Name == p.Name || x.SKU == p.SKU) {
			return fmt.Errorf("%w: producto %s", domain.ErrDuplicate, p.SKU)
		}
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	r.s.data.products[p.ID] = &cp
	return nil
}

func (r *productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.Product, 0, len(r.s.data.products))
	for _, p := range r.s.data.products {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r *productRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.data.products), nil
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.data.categories {
		if x.Name == c.Name || x.SKU == c.SKU {
			return fmt.Errorf("%w: categoría %s", domain.ErrDuplicate, c.Name)
		}
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	cp := *c
	r.s.data.categories[c.ID] = &cp
	return nil
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.data.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *categoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.data.categories))
	for _, c := range r.s.data.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type platformRepo struct{ s *Store }

func (r *platformRepo) Create(_ context.Context, p *entity.Platform) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.data.platforms {
		if x.Name == p.Name {
			return fmt.Errorf("%w: plataforma %s", domain.ErrDuplicate, p.Name)
		}
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	r.s.data.platforms[p.ID] = &cp
	return nil
}

func (r *platformRepo) GetByID(_ context.Context, id string) (*entity.Platform, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.data.platforms[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *platformRepo) List(_ context.Context) ([]*entity.Platform, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Platform, 0, len(r.s.data.platforms))
	for _, p := range r.s.data.platforms {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type ledgerRepo struct{ s *Store }

func (r *ledgerRepo) Append(_ context.Context, e *entity.InventoryAdjustment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpLedgerAppend); err != nil {
		return err
	}
	return r.s.appendLocked(e)
}

// appendLocked aplica las mismas restricciones que el esquema SQL. Requiere s.mu tomado.
func (s *Store) appendLocked(e *entity.InventoryAdjustment) error {
	if _, ok := s.data.products[e.ProductID]; !ok {
		return notFound("producto", e.ProductID)
	}
	if err := inventory.ValidateEntry(e); err != nil {
		return err
	}
	for _, x := range s.data.ledger {
		if x.ProductID == e.ProductID && x.Sequence == e.Sequence {
			return fmt.Errorf("%w: secuencia %d ya existe para el producto %s", domain.ErrConflict, e.Sequence, e.ProductID)
		}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.data.nextAdjID++
	e.ID = s.data.nextAdjID
	cp := *e
	s.data.ledger = append(s.data.ledger, &cp)
	return nil
}

func (r *ledgerRepo) Latest(_ context.Context, productID string) (*entity.InventoryAdjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpLedgerLatest); err != nil {
		return nil, err
	}
	if e := r.s.latest(productID); e != nil {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (r *ledgerRepo) LatestByProducts(_ context.Context, productIDs []string) (map[string]*entity.InventoryAdjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpLedgerLatest); err != nil {
		return nil, err
	}
	out := make(map[string]*entity.InventoryAdjustment, len(productIDs))
	for _, id := range productIDs {
		if e := r.s.latest(id); e != nil {
			cp := *e
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *ledgerRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.InventoryAdjustment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.InventoryAdjustment
	for _, e := range r.s.data.ledger {
		if e.ProductID == productID {
			cp := *e
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Sequence > all[j].Sequence })
	return page(all, limit, offset), nil
}

func (r *ledgerRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, e := range r.s.data.ledger {
		if e.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *ledgerRepo) lowStock() []*entity.InventoryAdjustment {
	var out []*entity.InventoryAdjustment
	for id := range r.s.data.products {
		if e := r.s.latest(id); e != nil && inventory.IsLowStock(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].QuantityAfter.Cmp(out[j].QuantityAfter); c != 0 {
			return c < 0
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

func (r *ledgerRepo) ListLowStock(_ context.Context, limit, offset int) ([]*entity.InventoryAdjustment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.lowStock(), limit, offset), nil
}

func (r *ledgerRepo) CountLowStock(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.lowStock()), nil
}

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpOrderCreate); err != nil {
		return err
	}
	if _, ok := r.s.data.platforms[o.PlatformID]; !ok {
		return notFound("plataforma", o.PlatformID)
	}
	if _, ok := r.s.data.orders[o.ID]; ok {
		return fmt.Errorf("%w: pedido %s", domain.ErrDuplicate, o.ID)
	}
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now
	cp := *o
	cp.Lines = nil
	r.s.data.orders[o.ID] = &cp
	return nil
}

func (r *orderRepo) CreateLine(_ context.Context, l *entity.OrderLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpOrderCreateLine); err != nil {
		return err
	}
	if _, ok := r.s.data.orders[l.OrderID]; !ok {
		return notFound("pedido", l.OrderID)
	}
	if !l.LineTotal.Equal(l.Quantity.Mul(l.UnitPrice)) {
		return domain.ConstraintViolation("line_total", "%s != %s × %s", l.LineTotal, l.Quantity, l.UnitPrice)
	}
	for _, x := range r.s.data.lines {
		if x.AdjustmentID == l.AdjustmentID {
			return fmt.Errorf("%w: ajuste %d ya vinculado", domain.ErrDuplicate, l.AdjustmentID)
		}
	}
	l.CreatedAt = time.Now().UTC()
	r.s.data.nextLineID++
	l.ID = r.s.data.nextLineID
	cp := *l
	r.s.data.lines = append(r.s.data.lines, &cp)
	return nil
}

func (r *orderRepo) UpdateTotal(_ context.Context, orderID string, total decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpOrderUpdateTotal); err != nil {
		return err
	}
	o, ok := r.s.data.orders[orderID]
	if !ok {
		return notFound("pedido", orderID)
	}
	if total.IsNegative() {
		return domain.ConstraintViolation("total_amount", "no puede ser negativo")
	}
	o.TotalAmount = total
	o.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.orderWithLines(id), nil
}

type revenueRepo struct{ s *Store }

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func (r *revenueRepo) SumOrderTotals(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpRevenueTotals); err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, o := range r.s.data.orders {
		if inWindow(o.OrderDate, start, end) {
			sum = sum.Add(o.TotalAmount)
		}
	}
	return sum, nil
}

func (r *revenueRepo) SumLineTotalsByCategory(_ context.Context, start, end time.Time, categories []string) (map[string]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpRevenueByCategory); err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}
	out := map[string]decimal.Decimal{}
	for _, l := range r.s.data.lines {
		o := r.s.data.orders[l.OrderID]
		if o == nil || !inWindow(o.OrderDate, start, end) {
			continue
		}
		p := r.s.data.products[l.ProductID]
		if p == nil {
			continue
		}
		c := r.s.data.categories[p.CategoryID]
		if c == nil || !wanted[c.Name] {
			continue
		}
		out[c.Name] = out[c.Name].Add(l.LineTotal)
	}
	return out, nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}

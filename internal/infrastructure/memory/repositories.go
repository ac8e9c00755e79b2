package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/purchasing"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository         = (*ProductRepo)(nil)
	_ repository.PurchaseOrderRepository   = (*OrderRepo)(nil)
	_ repository.MovementRepository        = (*MovementRepo)(nil)
	_ repository.SupplierRepository        = (*SupplierRepo)(nil)
	_ repository.EquipmentRepository       = (*EquipmentRepo)(nil)
	_ repository.MaterialRequestRepository = (*RequestRepo)(nil)
	_ repository.AlertRepository           = (*AlertRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct{ base }

func (r *ProductRepo) GetByID(_ context.Context, id string) (p *entity.Product, _ error) {
	r.read(func(st *state) { p = copyProduct(st.products[id]) })
	return p, nil
}

// GetForUpdate la transacción ya es exclusiva; equivale a GetByID.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) FindByCodeOrName(_ context.Context, text string) (p *entity.Product, _ error) {
	key := purchasing.NormalizeKey(text)
	if key == "" {
		return nil, nil
	}
	r.read(func(st *state) {
		for _, match := range []func(*entity.Product) string{
			func(x *entity.Product) string { return x.Code },
			func(x *entity.Product) string { return x.Name },
		} {
			for _, cand := range sortedProducts(st) {
				if purchasing.NormalizeKey(match(cand)) == key {
					p = copyProduct(cand)
					return
				}
			}
		}
	})
	return p, nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, p *entity.Product) error {
	return r.write(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return fmt.Errorf("update product stock: producto %s no existe", p.ID)
		}
		cur.Stock = p.Stock
		cur.PurchasePrice = p.PurchasePrice
		cur.UpdatedAt = p.UpdatedAt
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) (list []*entity.Product, _ error) {
	r.read(func(st *state) {
		all := sortedProducts(st)
		list = page(all, limit, offset)
		for i := range list {
			list[i] = copyProduct(list[i])
		}
	})
	return list, nil
}

func (r *ProductRepo) ListBelowMinimum(_ context.Context) (list []*entity.Product, _ error) {
	r.read(func(st *state) {
		for _, p := range sortedProducts(st) {
			if p.IsBelowMinimum() {
				list = append(list, copyProduct(p))
			}
		}
	})
	return list, nil
}

func sortedProducts(st *state) []*entity.Product {
	out := make([]*entity.Product, 0, len(st.products))
	for _, p := range st.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// OrderRepo órdenes de compra en memoria.
type OrderRepo struct{ base }

func (r *OrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	return r.write(func(st *state) error {
		for _, cur := range st.orders {
			if cur.Company == o.Company && cur.Number == o.Number {
				return domain.ErrConcurrencyConflict
			}
		}
		st.orders[o.ID] = copyOrder(o)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (o *entity.PurchaseOrder, _ error) {
	r.read(func(st *state) { o = copyOrder(st.orders[id]) })
	return o, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) Update(_ context.Context, o *entity.PurchaseOrder) error {
	return r.write(func(st *state) error {
		cur, ok := st.orders[o.ID]
		if !ok || cur.Version != o.Version {
			return domain.ErrConcurrencyConflict
		}
		o.Version++
		st.orders[o.ID] = copyOrder(o)
		return nil
	})
}

func (r *OrderRepo) ListByStatus(_ context.Context, statuses ...entity.OrderStatus) (list []*entity.PurchaseOrder, _ error) {
	want := make(map[entity.OrderStatus]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}
	r.read(func(st *state) {
		for _, o := range st.orders {
			if len(want) == 0 || want[o.Status] {
				list = append(list, copyOrder(o))
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *OrderRepo) ListOpenOlderThan(_ context.Context, before time.Time) (list []*entity.PurchaseOrder, _ error) {
	r.read(func(st *state) {
		for _, o := range st.orders {
			if o.Status.IsOpen() && o.UpdatedAt.Before(before) {
				list = append(list, copyOrder(o))
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].UpdatedAt.Before(list[j].UpdatedAt) })
	return list, nil
}

func (r *OrderRepo) LastNumber(_ context.Context, company string) (last int, _ error) {
	r.read(func(st *state) {
		for _, o := range st.orders {
			if o.Company != company {
				continue
			}
			if n, err := strconv.Atoi(o.Number); err == nil && n > last {
				last = n
			}
		}
	})
	return last, nil
}

// MovementRepo libro de movimientos en memoria.
type MovementRepo struct{ base }

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.write(func(st *state) error {
		st.movements = append(st.movements, copyMovement(m))
		return nil
	})
}

func (r *MovementRepo) List(_ context.Context, f entity.MovementFilter) (list []*entity.Movement, _ error) {
	r.read(func(st *state) {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.Kind == "entry" && !m.IsEntry() || f.Kind == "exit" && m.IsEntry() {
				continue
			}
			if f.From != nil && m.CreatedAt.Before(*f.From) || f.To != nil && m.CreatedAt.After(*f.To) {
				continue
			}
			if f.Consignment {
				p := st.products[m.ProductID]
				if p == nil || !p.Consignment {
					continue
				}
			}
			list = append(list, copyMovement(m))
		}
	})
	if f.Limit > 0 {
		list = page(list, f.Limit, f.Offset)
	}
	return list, nil
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct{ base }

func (r *SupplierRepo) GetByID(_ context.Context, id string) (s *entity.Supplier, _ error) {
	r.read(func(st *state) {
		if cur, ok := st.suppliers[id]; ok {
			c := *cur
			s = &c
		}
	})
	return s, nil
}

// EquipmentRepo equipos en memoria.
type EquipmentRepo struct{ base }

func (r *EquipmentRepo) GetByID(_ context.Context, id string) (e *entity.Equipment, _ error) {
	r.read(func(st *state) {
		if cur, ok := st.equipment[id]; ok {
			c := *cur
			e = &c
		}
	})
	return e, nil
}

// RequestRepo solicitudes de materiales en memoria.
type RequestRepo struct{ base }

func (r *RequestRepo) Create(_ context.Context, req *entity.MaterialRequest) error {
	return r.write(func(st *state) error {
		st.requests[req.ID] = copyRequest(req)
		return nil
	})
}

func (r *RequestRepo) GetByID(_ context.Context, id string) (req *entity.MaterialRequest, _ error) {
	r.read(func(st *state) { req = copyRequest(st.requests[id]) })
	return req, nil
}

func (r *RequestRepo) UpdateStatus(_ context.Context, req *entity.MaterialRequest) error {
	return r.write(func(st *state) error {
		cur, ok := st.requests[req.ID]
		if !ok || cur.Status != entity.RequestStatusPending {
			return domain.ErrInvalidTransition
		}
		cur.Status = req.Status
		cur.DecidedBy = req.DecidedBy
		cur.UpdatedAt = req.UpdatedAt
		return nil
	})
}

func (r *RequestRepo) List(_ context.Context, limit, offset int) (list []*entity.MaterialRequest, _ error) {
	r.read(func(st *state) {
		for _, req := range st.requests {
			list = append(list, copyRequest(req))
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *RequestRepo) ListPendingOlderThan(_ context.Context, before time.Time) (list []*entity.MaterialRequest, _ error) {
	r.read(func(st *state) {
		for _, req := range st.requests {
			if req.Status == entity.RequestStatusPending && req.UpdatedAt.Before(before) {
				list = append(list, copyRequest(req))
			}
		}
	})
	return list, nil
}

func (r *RequestRepo) LastNumber(_ context.Context) (last int, _ error) {
	r.read(func(st *state) {
		for _, req := range st.requests {
			if n, err := strconv.Atoi(req.Number); err == nil && n > last {
				last = n
			}
		}
	})
	return last, nil
}

// AlertRepo alertas en memoria; no participa en transacciones.
type AlertRepo struct{ base }

func (r *AlertRepo) Create(_ context.Context, a *entity.Alert) error {
	return r.write(func(st *state) error {
		for _, cur := range st.alerts {
			if cur.Type == a.Type && cur.OriginID == a.OriginID && cur.Status == entity.AlertStatusPending {
				return domain.ErrDuplicate
			}
		}
		st.alerts[a.ID] = copyAlert(a)
		return nil
	})
}

func (r *AlertRepo) GetByID(_ context.Context, id string) (a *entity.Alert, _ error) {
	r.read(func(st *state) {
		if cur, ok := st.alerts[id]; ok {
			a = copyAlert(cur)
		}
	})
	return a, nil
}

func (r *AlertRepo) ExistsPending(_ context.Context, t entity.AlertType, originID string) (exists bool, _ error) {
	r.read(func(st *state) {
		for _, a := range st.alerts {
			if a.Type == t && a.OriginID == originID && a.Status == entity.AlertStatusPending {
				exists = true
				return
			}
		}
	})
	return exists, nil
}

func (r *AlertRepo) Resolve(_ context.Context, a *entity.Alert) error {
	return r.write(func(st *state) error {
		cur, ok := st.alerts[a.ID]
		if !ok || cur.Status != entity.AlertStatusPending {
			return domain.ErrInvalidTransition
		}
		st.alerts[a.ID] = copyAlert(a)
		return nil
	})
}

func (r *AlertRepo) List(_ context.Context, from, to *time.Time) (list []*entity.Alert, _ error) {
	r.read(func(st *state) {
		for _, a := range st.alerts {
			if from != nil && a.CreatedAt.Before(*from) || to != nil && a.CreatedAt.After(*to) {
				continue
			}
			list = append(list, copyAlert(a))
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

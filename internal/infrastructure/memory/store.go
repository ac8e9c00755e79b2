// Package memory implementa los repositorios y el TxRunner en memoria.
// Se usa en pruebas y con APP_STORAGE=memory.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

type state struct {
	products  map[string]*entity.Product
	orders    map[string]*entity.PurchaseOrder
	movements []*entity.Movement
	suppliers map[string]*entity.Supplier
	equipment map[string]*entity.Equipment
	requests  map[string]*entity.MaterialRequest
	alerts    map[string]*entity.Alert
}

func newState() *state {
	return &state{
		products:  map[string]*entity.Product{},
		orders:    map[string]*entity.PurchaseOrder{},
		suppliers: map[string]*entity.Supplier{},
		equipment: map[string]*entity.Equipment{},
		requests:  map[string]*entity.MaterialRequest{},
		alerts:    map[string]*entity.Alert{},
	}
}

// txClone copia lo que una transacción puede modificar.
func (s *state) txClone() *state {
	c := &state{
		products:  make(map[string]*entity.Product, len(s.products)),
		orders:    make(map[string]*entity.PurchaseOrder, len(s.orders)),
		movements: append([]*entity.Movement(nil), s.movements...),
		suppliers: s.suppliers,
		equipment: s.equipment,
		requests:  make(map[string]*entity.MaterialRequest, len(s.requests)),
		alerts:    s.alerts,
	}
	for k, v := range s.products {
		c.products[k] = copyProduct(v)
	}
	for k, v := range s.orders {
		c.orders[k] = copyOrder(v)
	}
	for k, v := range s.requests {
		c.requests[k] = copyRequest(v)
	}
	return c
}

// Store estado compartido. Las transacciones se serializan y trabajan sobre una copia
// que se publica completa al confirmar.
type Store struct {
	mu          sync.RWMutex
	st          *state
	txSem       chan struct{}
	lockTimeout time.Duration
	now         func() time.Time
}

// NewStore crea un almacén vacío. lockTimeout acota la espera por una transacción en curso.
func NewStore(lockTimeout time.Duration) *Store {
	return &Store{
		st:          newState(),
		txSem:       make(chan struct{}, 1),
		lockTimeout: lockTimeout,
		now:         time.Now,
	}
}

// AddProduct carga un producto (datos maestros).
func (s *Store) AddProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.products[p.ID] = copyProduct(p)
}

// AddSupplier carga un proveedor.
func (s *Store) AddSupplier(sp *entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *sp
	s.st.suppliers[sp.ID] = &c
}

// AddEquipment carga un equipo.
func (s *Store) AddEquipment(e *entity.Equipment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *e
	s.st.equipment[e.ID] = &c
}

// SetOrderUpdatedAt ajusta la fecha de última modificación de una orden (pruebas de antigüedad).
func (s *Store) SetOrderUpdatedAt(id string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.st.orders[id]; ok {
		o.UpdatedAt = t
	}
}

// SetRequestUpdatedAt ajusta la fecha de última modificación de una solicitud.
func (s *Store) SetRequestUpdatedAt(id string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.st.requests[id]; ok {
		r.UpdatedAt = t
	}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{base{s: s}} }

// Orders repositorio de órdenes fuera de transacción.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{base{s: s}} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{base{s: s}} }

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{base{s: s}} }

// Equipment repositorio de equipos.
func (s *Store) Equipment() *EquipmentRepo { return &EquipmentRepo{base{s: s}} }

// Requests repositorio de solicitudes fuera de transacción.
func (s *Store) Requests() *RequestRepo { return &RequestRepo{base{s: s}} }

// Alerts repositorio de alertas.
func (s *Store) Alerts() *AlertRepo { return &AlertRepo{base{s: s}} }

// base da acceso al estado: el de la transacción si existe, si no el publicado bajo mutex.
type base struct {
	s  *Store
	tx *state
}

func (b base) read(fn func(st *state)) {
	if b.tx != nil {
		fn(b.tx)
		return
	}
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	fn(b.s.st)
}

func (b base) write(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return fn(b.s.st)
}

func copyProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func copyOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	if o == nil {
		return nil
	}
	c := *o
	c.Lines = append([]entity.OrderLine(nil), o.Lines...)
	return &c
}

func copyRequest(r *entity.MaterialRequest) *entity.MaterialRequest {
	if r == nil {
		return nil
	}
	c := *r
	c.Lines = append([]entity.MaterialRequestLine(nil), r.Lines...)
	return &c
}

func copyMovement(m *entity.Movement) *entity.Movement {
	c := *m
	return &c
}

func copyAlert(a *entity.Alert) *entity.Alert {
	c := *a
	if a.ResolvedAt != nil {
		t := *a.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository  = (*SupplierRepo)(nil)
	_ repository.EquipmentRepository = (*EquipmentRepo)(nil)
)

// SupplierRepo lectura de proveedores.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// GetByID obtiene un proveedor; nil si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `SELECT id, name, tax_id, address, location, email, phone FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.TaxID, &s.Address, &s.Location, &s.Email, &s.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// EquipmentRepo lectura de equipos.
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador.
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

// GetByID obtiene un equipo; nil si no existe.
func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	query := `SELECT id, number, type, plate FROM equipment WHERE id = $1`
	var e entity.Equipment
	err := r.q.QueryRow(ctx, query, id).Scan(&e.ID, &e.Number, &e.Type, &e.Plate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return &e, nil
}

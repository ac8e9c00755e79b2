package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// SupplierRepository lectura de proveedores (el CRUD vive fuera de este servicio).
type SupplierRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
}

// EquipmentRepository lectura de equipos/maquinaria.
type EquipmentRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Equipment, error)
}

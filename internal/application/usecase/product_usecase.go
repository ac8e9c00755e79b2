package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ProductUseCase consultas de productos. Stock y precio solo cambian vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Lookup busca por código y, si no hay coincidencia, por nombre.
func (uc *ProductUseCase) Lookup(ctx context.Context, q string) (*dto.ProductResponse, error) {
	if strings.TrimSpace(q) == "" {
		return nil, domain.NewValidationError("q", "es requerido")
	}
	product, err := uc.repo.FindByCodeOrName(ctx, q)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

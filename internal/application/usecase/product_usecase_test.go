package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
)

func newProductUseCase() *usecase.ProductUseCase {
	store := memory.NewStore(time.Second)
	store.AddProduct(&entity.Product{ID: "p-1", Code: "FLT-001", Name: "Filtro de aceite", PurchasePrice: decimal.NewFromInt(8500), Stock: decimal.NewFromInt(3), MinStock: decimal.NewFromInt(5)})
	store.AddProduct(&entity.Product{ID: "p-2", Code: "GUA-010", Name: "Guantes", PurchasePrice: decimal.NewFromInt(1200), Stock: decimal.NewFromInt(40)})
	return usecase.NewProductUseCase(store.Products())
}

func TestProductGetByID(t *testing.T) {
	uc := newProductUseCase()
	out, err := uc.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.True(t, out.BelowMinimum)
	assert.True(t, out.StockValue.Equal(decimal.NewFromInt(25500)))

	_, err = uc.GetByID(context.Background(), "p-99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductLookup(t *testing.T) {
	uc := newProductUseCase()
	out, err := uc.Lookup(context.Background(), " flt-001")
	require.NoError(t, err)
	assert.Equal(t, "p-1", out.ID)

	out, err = uc.Lookup(context.Background(), "GUANTES")
	require.NoError(t, err)
	assert.Equal(t, "p-2", out.ID)

	_, err = uc.Lookup(context.Background(), "tornillo")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Lookup(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductList(t *testing.T) {
	uc := newProductUseCase()
	out, err := uc.List(context.Background(), dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "FLT-001", out.Items[0].Code)
	assert.Equal(t, 1, out.Page.Limit)
}

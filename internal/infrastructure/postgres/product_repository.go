package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, code, name, description, category, type, purchase_price, stock, min_stock,
	location, consignment, consignment_name, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.Category, &p.Type, &p.PurchasePrice, &p.Stock, &p.MinStock,
		&p.Location, &p.Consignment, &p.ConsignmentName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "lock product", `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// FindByCodeOrName busca por código exacto (sin mayúsculas ni espacios) y luego por nombre.
func (r *ProductRepo) FindByCodeOrName(ctx context.Context, text string) (*entity.Product, error) {
	p, err := r.getOne(ctx, "find product by code",
		`SELECT `+productColumns+` FROM products WHERE lower(btrim(code)) = lower(btrim($1)) LIMIT 1`, text)
	if err != nil || p != nil {
		return p, err
	}
	return r.getOne(ctx, "find product by name",
		`SELECT `+productColumns+` FROM products WHERE lower(btrim(name)) = lower(btrim($1)) ORDER BY code LIMIT 1`, text)
}

// UpdateStock persiste stock y precio de compra.
func (r *ProductRepo) UpdateStock(ctx context.Context, product *entity.Product) error {
	query := `UPDATE products SET stock = $2, purchase_price = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, product.ID, product.Stock, product.PurchasePrice, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update product stock: producto %s no existe", product.ID)
	}
	return nil
}

// List lista productos ordenados por código.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
}

// ListBelowMinimum productos con mínimo configurado y stock bajo él.
func (r *ProductRepo) ListBelowMinimum(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE min_stock > 0 AND stock < min_stock ORDER BY code`)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

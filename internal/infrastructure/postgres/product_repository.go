package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/repository"
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

const productColumns = `id, name, vehicle_type, category, brand, country, purchase_price, pricing, selling_price, quantity, created_at, updated_at`

func scanProduct(row scanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Category, &p.Brand, &p.Country,
		&p.PurchasePrice, &p.Pricing, &p.SellingPrice, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func productArgs(p *entity.Product) []any {
	return []any{p.ID, p.Name, p.Type, p.Category, p.Brand, p.Country,
		p.PurchasePrice, p.Pricing, p.SellingPrice, p.Quantity, p.CreatedAt, p.UpdatedAt}
}

// List devuelve todos los productos ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list, err := collect(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return list, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "get product")
	}
	return p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`, productArgs(p)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Upsert inserta o reemplaza por ID (sincronización).
func (r *ProductRepo) Upsert(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, vehicle_type = EXCLUDED.vehicle_type, category = EXCLUDED.category,
			brand = EXCLUDED.brand, country = EXCLUDED.country, purchase_price = EXCLUDED.purchase_price,
			pricing = EXCLUDED.pricing, selling_price = EXCLUDED.selling_price, quantity = EXCLUDED.quantity,
			updated_at = EXCLUDED.updated_at`, productArgs(p)...)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

// Update actualiza un producto existente (incluida la cantidad).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, vehicle_type = $3, category = $4, brand = $5, country = $6,
			purchase_price = $7, pricing = $8, selling_price = $9, quantity = $10, updated_at = $12
		WHERE id = $1`, productArgs(p)...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return expectOne(tag)
}

// DecrementQuantity descuenta stock en una sola sentencia; la condición evita stock negativo
// aunque dos ventas compitan por el mismo producto.
func (r *ProductRepo) DecrementQuantity(ctx context.Context, productID string, sold int) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2`, productID, sold)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("decrement product quantity: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInsufficientStock
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return expectOne(tag)
}

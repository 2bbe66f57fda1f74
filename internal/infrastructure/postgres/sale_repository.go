package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas sobre PostgreSQL. Los ítems van embebidos como JSONB (snapshot, no FK a products).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, sale_date, items, total_revenue, total_profit, buyer_name, cash_amount, credit_amount, total_amount`

func scanSale(row scanner) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.Date, &s.Items, &s.TotalRevenue, &s.TotalProfit, &s.BuyerName,
		&s.CreditInfo.CashAmount, &s.CreditInfo.CreditAmount, &s.CreditInfo.TotalAmount)
	if err != nil {
		return nil, err
	}
	if s.Items == nil {
		s.Items = []entity.SaleItem{}
	}
	return &s, nil
}

func saleArgs(s *entity.Sale) []any {
	items := s.Items
	if items == nil {
		items = []entity.SaleItem{}
	}
	return []any{s.ID, s.Date, items, s.TotalRevenue, s.TotalProfit, s.BuyerName,
		s.CreditInfo.CashAmount, s.CreditInfo.CreditAmount, s.CreditInfo.TotalAmount}
}

// List devuelve las ventas en orden cronológico (el orden de colección del ledger).
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY sale_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list, err := collect(rows, scanSale)
	if err != nil {
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	return list, nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "get sale")
	}
	return s, nil
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, saleArgs(s)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) Upsert(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			sale_date = EXCLUDED.sale_date, items = EXCLUDED.items, total_revenue = EXCLUDED.total_revenue,
			total_profit = EXCLUDED.total_profit, buyer_name = EXCLUDED.buyer_name,
			cash_amount = EXCLUDED.cash_amount, credit_amount = EXCLUDED.credit_amount,
			total_amount = EXCLUDED.total_amount`, saleArgs(s)...)
	if err != nil {
		return fmt.Errorf("upsert sale: %w", err)
	}
	return nil
}

// Delete elimina la venta. No repone stock.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return expectOne(tag)
}

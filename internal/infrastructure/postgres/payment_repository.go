package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos sobre PostgreSQL. sale_id y credit_id son referencias informativas, sin FK:
// la venta o el crédito pueden borrarse sin tocar el pago.
type PaymentRepo struct {
	q Querier
}

func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, buyer_name, amount, payment_date, description, sale_id, credit_id`

func scanPayment(row scanner) (*entity.Payment, error) {
	var p entity.Payment
	if err := row.Scan(&p.ID, &p.BuyerName, &p.Amount, &p.Date, &p.Description, &p.SaleID, &p.CreditID); err != nil {
		return nil, err
	}
	return &p, nil
}

func paymentArgs(p *entity.Payment) []any {
	return []any{p.ID, p.BuyerName, p.Amount, p.Date, p.Description, p.SaleID, p.CreditID}
}

func (r *PaymentRepo) List(ctx context.Context) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY payment_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	list, err := collect(rows, scanPayment)
	if err != nil {
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	return list, nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "get payment")
	}
	return p, nil
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, paymentArgs(p)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) Upsert(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			buyer_name = EXCLUDED.buyer_name, amount = EXCLUDED.amount, payment_date = EXCLUDED.payment_date,
			description = EXCLUDED.description, sale_id = EXCLUDED.sale_id, credit_id = EXCLUDED.credit_id`,
		paymentArgs(p)...)
	if err != nil {
		return fmt.Errorf("upsert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return expectOne(tag)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/repository"
)

var _ repository.CreditRepository = (*CreditRepo)(nil)

// CreditRepo créditos independientes sobre PostgreSQL.
type CreditRepo struct {
	q Querier
}

func NewCreditRepository(q Querier) *CreditRepo {
	return &CreditRepo{q: q}
}

const creditColumns = `id, buyer_name, credit_amount, description, credit_date, is_standalone`

func scanCredit(row scanner) (*entity.StandaloneCredit, error) {
	var c entity.StandaloneCredit
	if err := row.Scan(&c.ID, &c.BuyerName, &c.CreditAmount, &c.Description, &c.Date, &c.IsStandalone); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CreditRepo) List(ctx context.Context) ([]*entity.StandaloneCredit, error) {
	rows, err := r.q.Query(ctx, `SELECT `+creditColumns+` FROM standalone_credits ORDER BY credit_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list credits: %w", err)
	}
	list, err := collect(rows, scanCredit)
	if err != nil {
		return nil, fmt.Errorf("scan credit: %w", err)
	}
	return list, nil
}

func (r *CreditRepo) GetByID(ctx context.Context, id string) (*entity.StandaloneCredit, error) {
	c, err := scanCredit(r.q.QueryRow(ctx, `SELECT `+creditColumns+` FROM standalone_credits WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "get credit")
	}
	return c, nil
}

func (r *CreditRepo) Create(ctx context.Context, c *entity.StandaloneCredit) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO standalone_credits (`+creditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.BuyerName, c.CreditAmount, c.Description, c.Date, c.IsStandalone)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert credit: %w", err)
	}
	return nil
}

func (r *CreditRepo) Upsert(ctx context.Context, c *entity.StandaloneCredit) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO standalone_credits (`+creditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			buyer_name = EXCLUDED.buyer_name, credit_amount = EXCLUDED.credit_amount,
			description = EXCLUDED.description, credit_date = EXCLUDED.credit_date`,
		c.ID, c.BuyerName, c.CreditAmount, c.Description, c.Date, c.IsStandalone)
	if err != nil {
		return fmt.Errorf("upsert credit: %w", err)
	}
	return nil
}

func (r *CreditRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM standalone_credits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete credit: %w", err)
	}
	return expectOne(tag)
}

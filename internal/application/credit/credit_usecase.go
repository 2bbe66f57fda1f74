// Package credit casos de uso de créditos independientes, pagos y vistas del ledger de compradores.
package credit

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/autoparts-ledger/internal/application/dto"
	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/validation"
	"github.com/jhoicas/autoparts-ledger/pkg/logger"
	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

// CreditUseCase alta, listado y baja de créditos independientes.
type CreditUseCase struct {
	credits Store[*entity.StandaloneCredit]
	log     *logger.Logger
	now     func() time.Time
}

// NewCreditUseCase construye el caso de uso.
func NewCreditUseCase(credits Store[*entity.StandaloneCredit], log *logger.Logger) *CreditUseCase {
	return &CreditUseCase{credits: credits, log: log.Component("credits"), now: time.Now}
}

// CreateStandaloneCredit valida y registra un crédito fuera de venta.
func (uc *CreditUseCase) CreateStandaloneCredit(ctx context.Context, in dto.CreateCreditRequest) (*entity.StandaloneCredit, error) {
	now := uc.now()
	date, err := dateOrNow(in.Date, now)
	if err != nil {
		return nil, err
	}
	c := &entity.StandaloneCredit{
		ID:           uuid.New().String(),
		BuyerName:    strings.TrimSpace(in.BuyerName),
		CreditAmount: money.Round(in.CreditAmount),
		Description:  strings.TrimSpace(in.Description),
		Date:         date,
		IsStandalone: true,
	}
	if res := validation.ValidateStandaloneCredit(c, now); !res.Valid {
		return nil, res.Err()
	}
	if err := uc.credits.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("credit_id", c.ID).Str("buyer", c.BuyerName).
		Str("amount", money.Format(c.CreditAmount)).Msg("crédito registrado")
	return c, nil
}

// ListCredits créditos en orden cronológico.
func (uc *CreditUseCase) ListCredits(ctx context.Context) ([]*entity.StandaloneCredit, error) {
	list, err := uc.credits.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

// DeleteCredit elimina un crédito. Los pagos que lo referencian quedan como están.
func (uc *CreditUseCase) DeleteCredit(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	return uc.credits.Delete(ctx, id)
}

// dateOrNow fecha de entrada o now si viene vacía. Una fecha ilegible es error de validación.
func dateOrNow(raw string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return now, nil
	}
	d, err := validation.ParseDate(raw)
	if err != nil {
		return time.Time{}, &validation.Error{Messages: []string{"Date is required and must be a valid date"}}
	}
	return d, nil
}

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
	"github.com/jhoicas/autoparts-ledger/internal/domain/ledger"
	"github.com/jhoicas/autoparts-ledger/internal/domain/validation"
	"github.com/jhoicas/autoparts-ledger/pkg/logger"
	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

// Snapshotter foto actual del ledger.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*ledger.Ledger, error)
}

// PaymentUseCase registro de abonos contra el crédito pendiente.
type PaymentUseCase struct {
	payments Store[*entity.Payment]
	ledger   Snapshotter
	log      *logger.Logger
	now      func() time.Time
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(payments Store[*entity.Payment], snapshots Snapshotter, log *logger.Logger) *PaymentUseCase {
	return &PaymentUseCase{payments: payments, ledger: snapshots, log: log.Component("payments"), now: time.Now}
}

// RecordPayment valida el abono contra el saldo pendiente actual del comprador (nombre exacto).
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, in dto.RecordPaymentRequest) (*entity.Payment, error) {
	now := uc.now()
	date, err := dateOrNow(in.Date, now)
	if err != nil {
		return nil, err
	}
	p := &entity.Payment{
		ID:          uuid.New().String(),
		BuyerName:   strings.TrimSpace(in.BuyerName),
		Amount:      money.Round(in.Amount),
		Date:        date,
		Description: strings.TrimSpace(in.Description),
		SaleID:      strings.TrimSpace(in.SaleID),
		CreditID:    strings.TrimSpace(in.CreditID),
	}

	snap, err := uc.ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	available := snap.AvailableCredit(p.BuyerName)
	if res := validation.ValidatePayment(p, available, now); !res.Valid {
		return nil, res.Err()
	}
	if err := uc.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("payment_id", p.ID).Str("buyer", p.BuyerName).
		Str("amount", money.Format(p.Amount)).
		Str("remaining", money.Format(money.EnsureNonNegative(money.Sub(available, p.Amount)))).
		Msg("pago registrado")
	return p, nil
}

// ListPayments pagos en orden cronológico.
func (uc *PaymentUseCase) ListPayments(ctx context.Context) ([]*entity.Payment, error) {
	list, err := uc.payments.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

// DeletePayment elimina un pago; el saldo del comprador vuelve a subir.
func (uc *PaymentUseCase) DeletePayment(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	return uc.payments.Delete(ctx, id)
}

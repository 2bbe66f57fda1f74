package repository

import "github.com/jhoicas/autoparts-ledger/internal/domain/entity"

// CreditRepository puerto de persistencia para créditos independientes.
type CreditRepository interface {
	Store[*entity.StandaloneCredit]
}

// PaymentRepository puerto de persistencia para pagos.
type PaymentRepository interface {
	Store[*entity.Payment]
}

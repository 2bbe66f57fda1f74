package repository

import "github.com/jhoicas/autoparts-ledger/internal/domain/entity"

// SaleRepository puerto de persistencia para ventas (ítems y crédito embebidos).
type SaleRepository interface {
	Store[*entity.Sale]
}

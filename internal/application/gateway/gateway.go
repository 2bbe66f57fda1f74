package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/repository"
	"github.com/jhoicas/autoparts-ledger/pkg/logger"
)

// Remote repositorios del almacén remoto. Un Remote nil (o con campos nil) deja la app en modo solo local.
// Los campos deben ser interfaces nil, no punteros nil tipados.
type Remote struct {
	Products repository.ProductRepository
	Sales    repository.SaleRepository
	Credits  repository.CreditRepository
	Payments repository.PaymentRepository
	Tx       TxRunner
}

// Gateway agrupa las cuatro colecciones y las operaciones que cruzan más de una.
type Gateway struct {
	Products *Products
	Sales    *Collection[*entity.Sale]
	Credits  *Collection[*entity.StandaloneCredit]
	Payments *Collection[*entity.Payment]

	tx     TxRunner
	locker Locker
	log    *logger.Logger
}

// Option configura el Gateway.
type Option func(*Gateway)

// WithLocker usa locker para que Sync no corra en paralelo entre instancias.
func WithLocker(l Locker) Option {
	return func(g *Gateway) { g.locker = l }
}

// New construye el gateway. remote puede ser nil.
func New(remote *Remote, cache repository.LocalCache, log *logger.Logger, opts ...Option) *Gateway {
	if remote == nil {
		remote = &Remote{}
	}
	log = log.Component("gateway")
	g := &Gateway{
		Products: NewProducts(remote.Products, cache, log),
		Sales:    NewCollection[*entity.Sale](repository.CacheKeySales, remote.Sales, cache, log),
		Credits:  NewCollection[*entity.StandaloneCredit](repository.CacheKeyStandaloneCredits, remote.Credits, cache, log),
		Payments: NewCollection[*entity.Payment](repository.CacheKeyPayments, remote.Payments, cache, log),
		tx:       remote.Tx,
		log:      log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// StockAdjustment unidades vendidas de un producto.
type StockAdjustment struct {
	ProductID string
	Sold      int
}

// CommitSale registra la venta y descuenta el stock como una sola unidad.
// Remoto: una transacción (todo o nada). Sin remoto o si la tx falla: se construyen y verifican
// todas las mutaciones sobre la caché y recién entonces se escriben.
func (g *Gateway) CommitSale(ctx context.Context, sale *entity.Sale, adjustments []StockAdjustment) error {
	sale.Normalize()
	if g.tx != nil {
		err := g.tx.RunSale(ctx, func(sales repository.SaleRepository, products repository.ProductRepository) error {
			if err := sales.Create(ctx, sale); err != nil {
				return err
			}
			for _, adj := range adjustments {
				if err := products.DecrementQuantity(ctx, adj.ProductID, adj.Sold); err != nil {
					return fmt.Errorf("producto %s: %w", adj.ProductID, err)
				}
			}
			return nil
		})
		if err == nil {
			g.Sales.mirror(ctx, "commit_sale", sale.ID, upsertInto(sale))
			g.Products.mirror(ctx, "commit_sale", sale.ID, func(recs []*entity.Product) ([]*entity.Product, error) {
				// en caché puede faltar el producto; el próximo List lo trae
				_, _ = applyStock(recs, adjustments, false)
				return recs, nil
			})
			return nil
		}
		// rechazos de negocio del remoto son definitivos
		if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrInsufficientStock) {
			return err
		}
		g.Sales.fallback("commit_sale", sale.ID, err)
	}
	return g.commitSaleLocal(ctx, sale, adjustments)
}

func (g *Gateway) commitSaleLocal(ctx context.Context, sale *entity.Sale, adjustments []StockAdjustment) error {
	// orden fijo de locks: ventas y luego productos
	g.Sales.mu.Lock()
	defer g.Sales.mu.Unlock()
	g.Products.mu.Lock()
	defer g.Products.mu.Unlock()

	sales, err := g.Sales.loadLocked(ctx)
	if err != nil {
		return err
	}
	if indexOf(sales, sale.ID) >= 0 {
		return domain.ErrDuplicate
	}
	original, err := g.Products.loadLocked(ctx)
	if err != nil {
		return err
	}
	products, err := applyStock(original, adjustments, true)
	if err != nil {
		return err
	}
	sales = append(sales, sale)

	if err := g.Products.saveLocked(ctx, products); err != nil {
		return err
	}
	if err := g.Sales.saveLocked(ctx, sales); err != nil {
		// sin venta no hay descuento de stock: se reponen los productos
		if rerr := g.Products.saveLocked(ctx, original); rerr != nil {
			return errors.Join(err, fmt.Errorf("reponer stock: %w", rerr))
		}
		return err
	}
	return nil
}

// applyStock descuenta sobre copias de los productos: si algo falla, recs queda intacto.
// strict exige que cada producto exista y alcance el stock.
func applyStock(recs []*entity.Product, adjustments []StockAdjustment, strict bool) ([]*entity.Product, error) {
	next := make(map[int]*entity.Product)
	for _, adj := range adjustments {
		i := indexOf(recs, adj.ProductID)
		if i < 0 {
			if strict {
				return nil, fmt.Errorf("producto %s: %w", adj.ProductID, domain.ErrNotFound)
			}
			continue
		}
		p, ok := next[i]
		if !ok {
			cp := *recs[i]
			p = &cp
			next[i] = p
		}
		if strict && p.Quantity < adj.Sold {
			return nil, fmt.Errorf("producto %s: %w", adj.ProductID, domain.ErrInsufficientStock)
		}
		p.Quantity -= adj.Sold
		if p.Quantity < 0 {
			p.Quantity = 0
		}
	}
	for i, p := range next {
		recs[i] = p
	}
	return recs, nil
}

// Package sales caso de uso de registro de ventas con crédito embebido.
package sales

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/autoparts-ledger/internal/application/dto"
	"github.com/jhoicas/autoparts-ledger/internal/application/gateway"
	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/validation"
	"github.com/jhoicas/autoparts-ledger/pkg/logger"
	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

// RecordSaleUseCase arma la venta desde el stock actual, la valida y la confirma junto con el descuento de stock.
type RecordSaleUseCase struct {
	products  ProductLister
	sales     SaleStore
	committer SaleCommitter
	log       *logger.Logger
	now       func() time.Time
}

// NewRecordSaleUseCase construye el caso de uso.
func NewRecordSaleUseCase(products ProductLister, sales SaleStore, committer SaleCommitter, log *logger.Logger) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		products:  products,
		sales:     sales,
		committer: committer,
		log:       log.Component("sales"),
		now:       time.Now,
	}
}

// Record valida y registra una venta. Los ítems guardan un snapshot de nombre, precio y ganancia
// del producto; cambios posteriores del producto no alteran la venta.
func (uc *RecordSaleUseCase) Record(ctx context.Context, in dto.RecordSaleRequest) (*entity.Sale, error) {
	date := uc.now()
	if strings.TrimSpace(in.Date) != "" {
		d, err := validation.ParseDate(in.Date)
		if err != nil {
			return nil, &validation.Error{Messages: []string{"Date is required and must be a valid date"}}
		}
		date = d
	}

	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar productos: %w", err)
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]entity.SaleItem, 0, len(in.Items))
	for _, req := range in.Items {
		items = append(items, snapshotItem(req, byID[req.ProductID]))
	}

	credit := entity.CreditInfo{
		CashAmount:   money.Round(in.CashAmount),
		CreditAmount: money.Round(in.CreditAmount),
	}
	if in.TotalAmount != nil {
		credit.TotalAmount = money.Round(*in.TotalAmount)
	} else {
		credit.TotalAmount = money.Add(credit.CashAmount, credit.CreditAmount)
	}

	buyer := strings.TrimSpace(in.BuyerName)
	if res := validation.ValidateSale(items, buyer, credit, products); !res.Valid {
		return nil, res.Err()
	}

	sale := entity.NewSale(uuid.New().String(), date, buyer, items, credit)
	if err := uc.committer.CommitSale(ctx, sale, stockAdjustments(items)); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("buyer", sale.BuyerName).
		Str("total", money.Format(sale.TotalRevenue)).
		Str("credit", money.Format(sale.CreditInfo.CreditAmount)).
		Msg("venta registrada")
	return sale, nil
}

// snapshotItem copia los datos del producto en la línea. Sin producto deja el ID para que la
// validación informe "Product not found".
func snapshotItem(req dto.SaleItemRequest, p *entity.Product) entity.SaleItem {
	item := entity.SaleItem{ProductID: req.ProductID, Quantity: req.Quantity}
	if p != nil {
		item.ProductName = p.Name
		item.SellingPrice = p.SellingPrice
	}
	if req.SellingPrice != nil {
		item.SellingPrice = money.Round(*req.SellingPrice)
	}
	switch {
	case req.Profit != nil:
		item.Profit = money.Round(*req.Profit)
	case p != nil:
		item.Profit = money.Sub(item.SellingPrice, p.UnitCost())
	}
	return item
}

// stockAdjustments agrupa por producto en orden estable.
func stockAdjustments(items []entity.SaleItem) []gateway.StockAdjustment {
	sold := make(map[string]int)
	for _, it := range items {
		sold[it.ProductID] += it.Quantity
	}
	out := make([]gateway.StockAdjustment, 0, len(sold))
	for id, qty := range sold {
		out = append(out, gateway.StockAdjustment{ProductID: id, Sold: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// List ventas en orden cronológico.
func (uc *RecordSaleUseCase) List(ctx context.Context) ([]*entity.Sale, error) {
	list, err := uc.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

// Get una venta por ID.
func (uc *RecordSaleUseCase) Get(ctx context.Context, id string) (*entity.Sale, error) {
	return uc.sales.GetByID(ctx, id)
}

// Delete elimina la venta. El stock descontado NO se repone.
func (uc *RecordSaleUseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.sales.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("sale_id", id).Msg("venta eliminada (stock sin reponer)")
	return nil
}

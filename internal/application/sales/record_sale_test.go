package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoparts-ledger/internal/application/dto"
	"github.com/jhoicas/autoparts-ledger/internal/application/gateway"
	"github.com/jhoicas/autoparts-ledger/internal/application/sales"
	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/validation"
	"github.com/jhoicas/autoparts-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/autoparts-ledger/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func setup(t *testing.T, products ...*entity.Product) (*sales.RecordSaleUseCase, *gateway.Gateway) {
	t.Helper()
	gw := gateway.New(nil, cache.NewMemoryCache(), logger.Nop())
	for _, p := range products {
		require.NoError(t, gw.Products.Create(context.Background(), p))
	}
	return sales.NewRecordSaleUseCase(gw.Products, gw.Sales, gw, logger.Nop()), gw
}

func brakePad(qty int) *entity.Product {
	return &entity.Product{
		ID: "p1", Name: "Brake pad", Type: entity.VehicleTATA, Category: "Brake", Brand: "Bosch",
		Country: entity.CountryIndia, PurchasePrice: dec("100"), SellingPrice: dec("150"), Quantity: qty,
	}
}

func TestRecord_VentaConCredito(t *testing.T) {
	uc, gw := setup(t, brakePad(10))
	ctx := context.Background()

	sale, err := uc.Record(ctx, dto.RecordSaleRequest{
		BuyerName:    "  Rahim  ",
		Date:         "2024-01-10",
		Items:        []dto.SaleItemRequest{{ProductID: "p1", Quantity: 2}},
		CashAmount:   dec("100"),
		CreditAmount: dec("200"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rahim", sale.BuyerName)
	assert.True(t, dec("300").Equal(sale.TotalRevenue))
	assert.True(t, dec("100").Equal(sale.TotalProfit))
	assert.True(t, dec("300").Equal(sale.CreditInfo.TotalAmount))
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Brake pad", sale.Items[0].ProductName)

	p, err := gw.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 8, p.Quantity)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sale.ID, list[0].ID)
}

func TestRecord_SnapshotNoCambiaConElProducto(t *testing.T) {
	uc, gw := setup(t, brakePad(10))
	ctx := context.Background()

	sale, err := uc.Record(ctx, dto.RecordSaleRequest{
		BuyerName:  "Karim",
		Items:      []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		CashAmount: dec("150"),
	})
	require.NoError(t, err)
	assert.False(t, sale.Date.IsZero())

	p, err := gw.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	p.Name = "Brake pad v2"
	p.SellingPrice = dec("999")
	require.NoError(t, gw.Products.Update(ctx, p))

	got, err := uc.Get(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brake pad", got.Items[0].ProductName)
	assert.True(t, dec("150").Equal(got.Items[0].SellingPrice))
}

func TestRecord_PrecioYGananciaExplicitos(t *testing.T) {
	uc, _ := setup(t, brakePad(10))

	sale, err := uc.Record(context.Background(), dto.RecordSaleRequest{
		BuyerName: "Karim",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1, SellingPrice: decPtr("120")},
			{ProductID: "p1", Quantity: 1, SellingPrice: decPtr("130"), Profit: decPtr("5")},
		},
		CashAmount: dec("250"),
	})
	require.NoError(t, err)
	assert.True(t, dec("20").Equal(sale.Items[0].Profit), "precio - costo")
	assert.True(t, dec("5").Equal(sale.Items[1].Profit))
	assert.True(t, dec("25").Equal(sale.TotalProfit))
}

func TestRecord_StockAcumuladoInsuficiente(t *testing.T) {
	uc, gw := setup(t, brakePad(3))
	ctx := context.Background()

	_, err := uc.Record(ctx, dto.RecordSaleRequest{
		BuyerName: "Karim",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p1", Quantity: 2},
		},
		CashAmount: dec("600"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "Insufficient inventory for Brake pad: requested 4, available 3")

	p, err := gw.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Quantity)
	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecord_Invalida(t *testing.T) {
	uc, _ := setup(t, brakePad(5))
	ctx := context.Background()

	_, err := uc.Record(ctx, dto.RecordSaleRequest{
		BuyerName:    " ",
		Items:        []dto.SaleItemRequest{{ProductID: "ghost", Quantity: 1, SellingPrice: decPtr("10")}},
		CashAmount:   dec("5"),
		CreditAmount: dec("1"),
		TotalAmount:  decPtr("10"),
	})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "Buyer name is required")
	assert.Contains(t, verr.Messages, "Product not found: ghost")
	assert.Contains(t, verr.Messages, "Total amount (10.00) must equal cash (5.00) plus credit (1.00)")

	_, err = uc.Record(ctx, dto.RecordSaleRequest{
		BuyerName:  "Karim",
		Date:       "yesterday",
		Items:      []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		CashAmount: dec("150"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_NoReponeStock(t *testing.T) {
	uc, gw := setup(t, brakePad(5))
	ctx := context.Background()

	sale, err := uc.Record(ctx, dto.RecordSaleRequest{
		BuyerName:  "Karim",
		Items:      []dto.SaleItemRequest{{ProductID: "p1", Quantity: 2}},
		CashAmount: dec("300"),
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, sale.ID))
	_, err = uc.Get(ctx, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := gw.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Quantity)

	assert.ErrorIs(t, uc.Delete(ctx, ""), domain.ErrInvalidInput)
}

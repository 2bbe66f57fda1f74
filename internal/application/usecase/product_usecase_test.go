package usecase_test

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoparts-ledger/internal/application/dto"
	"github.com/jhoicas/autoparts-ledger/internal/application/gateway"
	"github.com/jhoicas/autoparts-ledger/internal/application/usecase"
	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/validation"
	"github.com/jhoicas/autoparts-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/autoparts-ledger/pkg/logger"
)

// newProductUseCase caso de uso sobre el gateway en modo solo local (caché en memoria).
func newProductUseCase() *usecase.ProductUseCase {
	gw := gateway.New(nil, cache.NewMemoryCache(), logger.Nop())
	return usecase.NewProductUseCase(gw.Products)
}

func validRequest(name string) dto.ProductRequest {
	return dto.ProductRequest{
		Name:          name,
		Type:          entity.VehicleTATA,
		Category:      "Brake",
		Brand:         "Bosch",
		Country:       entity.CountryIndia,
		PurchasePrice: decimal.NewFromInt(100),
		SellingPrice:  decimal.NewFromInt(150),
		Quantity:      10,
	}
}

func TestProductUseCase_CreateValido(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, validRequest("  Brake pad  "))
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Brake pad", p.Name)
	assert.True(t, decimal.NewFromInt(50).Equal(p.UnitProfit))

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestProductUseCase_CreateInvalidoNoPersiste(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()

	in := validRequest("Clutch plate")
	in.PurchasePrice = decimal.Zero
	in.Quantity = -1
	_, err := uc.Create(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "Purchase price must be greater than 0")
	assert.Contains(t, verr.Messages, "Quantity cannot be negative")

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductUseCase_UpdateYDelete(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, validRequest("Air filter"))
	require.NoError(t, err)

	in := validRequest("Air filter XL")
	in.Quantity = 3
	updated, err := uc.Update(ctx, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 3, updated.Quantity)

	in.SellingPrice = decimal.Zero
	_, err = uc.Update(ctx, p.ID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "missing", validRequest("x"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, p.ID))
	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestProductUseCase_ImportCSVParcial(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	csvData := strings.Join([]string{
		"name,type,category,brand,country,purchasePrice,sellingPrice,quantity",
		"Brake pad,TATA,Brake,Bosch,India,100,150,10",
		"Bad price,TATA,Brake,Bosch,India,abc,150,1",
		"Zero price,Leyland,Engine,SKF,China,0,150,1",
		"",
		`"Clutch plate, heavy",Bedford,Clutch,Valeo,China,"1,200.50",1500,2`,
	}, "\n")

	report, err := uc.ImportCSV(ctx, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	require.Len(t, report.Failed, 2)
	assert.Equal(t, 3, report.Failed[0].Row)
	assert.Contains(t, report.Failed[0].Errors[0], "purchasePrice")
	assert.Equal(t, 4, report.Failed[1].Row)
	assert.Contains(t, report.Failed[1].Errors, "Purchase price must be greater than 0")

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Brake pad", list[0].Name)
	assert.True(t, decimal.RequireFromString("1200.50").Equal(list[1].PurchasePrice))
}

func TestProductUseCase_ImportCSVEncabezadoObligatorio(t *testing.T) {
	uc := newProductUseCase()
	_, err := uc.ImportCSV(context.Background(), strings.NewReader("Brake pad,TATA,Brake,Bosch,India,100,150,10\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ImportCSV(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type productKey struct {
	Name, Type, Category, Brand, Country, Purchase, Selling string
	Quantity                                                int
}

func keys(list []dto.ProductResponse) []productKey {
	out := make([]productKey, 0, len(list))
	for _, p := range list {
		out = append(out, productKey{
			Name: p.Name, Type: string(p.Type), Category: string(p.Category), Brand: string(p.Brand),
			Country: string(p.Country), Purchase: p.PurchasePrice.StringFixed(2), Selling: p.SellingPrice.StringFixed(2),
			Quantity: p.Quantity,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func seed(t *testing.T, uc *usecase.ProductUseCase) []dto.ProductResponse {
	t.Helper()
	ctx := context.Background()
	a := validRequest("Brake pad")
	b := validRequest("Oil filter")
	b.Type, b.Category, b.Brand, b.Country = entity.VehicleLeyland, "Filter", "Mann-Filter", entity.CountryChina
	b.PurchasePrice = decimal.RequireFromString("12.35")
	b.SellingPrice = decimal.RequireFromString("19.99")
	b.Quantity = 0
	for _, in := range []dto.ProductRequest{a, b} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}
	list, err := uc.List(ctx)
	require.NoError(t, err)
	return list
}

func TestProductUseCase_RoundTripCSV(t *testing.T) {
	ctx := context.Background()
	src := newProductUseCase()
	original := seed(t, src)

	var buf bytes.Buffer
	require.NoError(t, src.ExportCSV(ctx, &buf))

	dst := newProductUseCase()
	report, err := dst.ImportCSV(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, len(original), report.Imported)
	assert.Empty(t, report.Failed)

	imported, err := dst.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, keys(original), keys(imported), "mismo conjunto salvo IDs")
}

func TestProductUseCase_RoundTripXLSX(t *testing.T) {
	ctx := context.Background()
	src := newProductUseCase()
	original := seed(t, src)

	var buf bytes.Buffer
	require.NoError(t, src.ExportXLSX(ctx, &buf))

	dst := newProductUseCase()
	report, err := dst.ImportXLSX(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, len(original), report.Imported)

	imported, err := dst.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, keys(original), keys(imported))
}

func TestProductUseCase_ImportXLSXInvalido(t *testing.T) {
	uc := newProductUseCase()
	_, err := uc.ImportXLSX(context.Background(), strings.NewReader("not a zip"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_ValidaMontosRedondeados(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()

	in := validRequest("Wiper blade")
	in.SellingPrice = decimal.RequireFromString("0.004")
	_, err := uc.Create(ctx, in)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "Selling price must be greater than 0")

	rate := decimal.NewFromInt(100)
	in = validRequest("Imported bearing")
	in.Pricing = &entity.Pricing{
		OriginalAmount:     decimal.RequireFromString("1.234"),
		Currency:           "USD",
		ExchangeRate:       &rate,
		FinalPurchasePrice: decimal.RequireFromString("123.40"),
	}
	_, err = uc.Create(ctx, in)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "Final purchase price (123.40) does not match computed value (123.00)")

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	p, err := uc.Create(ctx, validRequest("Spark plug"))
	require.NoError(t, err)
	upd := validRequest("Spark plug")
	upd.PurchasePrice = decimal.RequireFromString("0.001")
	_, err = uc.Update(ctx, p.ID, upd)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "Purchase price must be greater than 0")
}

package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoparts-ledger/internal/application/gateway"
	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/repository"
	"github.com/jhoicas/autoparts-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/autoparts-ledger/pkg/logger"
)

var errOffline = errors.New("dial tcp: connection refused")

// fakeStore almacén remoto en memoria; down simula caída de red.
type fakeStore[T entity.Record] struct {
	mu    sync.Mutex
	down  bool
	items map[string]T
	order []string
}

func newFakeStore[T entity.Record]() *fakeStore[T] {
	return &fakeStore[T]{items: make(map[string]T)}
}

func (f *fakeStore[T]) setDown(v bool) {
	f.mu.Lock()
	f.down = v
	f.mu.Unlock()
}

func (f *fakeStore[T]) List(context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, errOffline
	}
	out := make([]T, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.items[id])
	}
	return out, nil
}

func (f *fakeStore[T]) GetByID(_ context.Context, id string) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	if f.down {
		return zero, errOffline
	}
	rec, ok := f.items[id]
	if !ok {
		return zero, domain.ErrNotFound
	}
	return rec, nil
}

func (f *fakeStore[T]) Create(_ context.Context, rec T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errOffline
	}
	if _, ok := f.items[rec.GetID()]; ok {
		return domain.ErrDuplicate
	}
	f.items[rec.GetID()] = rec
	f.order = append(f.order, rec.GetID())
	return nil
}

func (f *fakeStore[T]) Upsert(_ context.Context, rec T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errOffline
	}
	if _, ok := f.items[rec.GetID()]; !ok {
		f.order = append(f.order, rec.GetID())
	}
	f.items[rec.GetID()] = rec
	return nil
}

func (f *fakeStore[T]) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errOffline
	}
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeProducts struct {
	*fakeStore[*entity.Product]
}

func (f fakeProducts) Update(ctx context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errOffline
	}
	if _, ok := f.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.items[p.ID] = p
	return nil
}

func (f fakeProducts) DecrementQuantity(_ context.Context, id string, sold int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errOffline
	}
	p, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Quantity < sold {
		return domain.ErrInsufficientStock
	}
	cp := *p
	cp.Quantity -= sold
	f.items[id] = &cp
	return nil
}

type fakeSales struct{ *fakeStore[*entity.Sale] }
type fakeCredits struct {
	*fakeStore[*entity.StandaloneCredit]
}
type fakePayments struct{ *fakeStore[*entity.Payment] }

// fakeTx aplica sobre los fakes y deshace si fn falla (snapshot simple).
type fakeTx struct {
	products fakeProducts
	sales    fakeSales
	fail     bool
}

func (t *fakeTx) RunSale(ctx context.Context, fn func(repository.SaleRepository, repository.ProductRepository) error) error {
	if t.fail {
		return errOffline
	}
	prodSnap := snapshot(t.products.fakeStore)
	saleSnap := snapshot(t.sales.fakeStore)
	if err := fn(t.sales, t.products); err != nil {
		restore(t.products.fakeStore, prodSnap)
		restore(t.sales.fakeStore, saleSnap)
		return err
	}
	return nil
}

type snap[T entity.Record] struct {
	items map[string]T
	order []string
}

func snapshot[T entity.Record](f *fakeStore[T]) snap[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := snap[T]{items: make(map[string]T, len(f.items)), order: append([]string(nil), f.order...)}
	for k, v := range f.items {
		s.items[k] = v
	}
	return s
}

func restore[T entity.Record](f *fakeStore[T], s snap[T]) {
	f.mu.Lock()
	f.items, f.order = s.items, s.order
	f.mu.Unlock()
}

type busyLocker struct{}

func (busyLocker) Lock(context.Context, string) (func(), error) { return nil, domain.ErrBusy }

type fixture struct {
	gw       *gateway.Gateway
	cache    *cache.MemoryCache
	products fakeProducts
	sales    fakeSales
	credits  fakeCredits
	payments fakePayments
	tx       *fakeTx
}

func newFixture(opts ...gateway.Option) *fixture {
	f := &fixture{
		cache:    cache.NewMemoryCache(),
		products: fakeProducts{newFakeStore[*entity.Product]()},
		sales:    fakeSales{newFakeStore[*entity.Sale]()},
		credits:  fakeCredits{newFakeStore[*entity.StandaloneCredit]()},
		payments: fakePayments{newFakeStore[*entity.Payment]()},
	}
	f.tx = &fakeTx{products: f.products, sales: f.sales}
	f.gw = gateway.New(&gateway.Remote{
		Products: f.products,
		Sales:    f.sales,
		Credits:  f.credits,
		Payments: f.payments,
		Tx:       f.tx,
	}, f.cache, logger.Nop(), opts...)
	return f
}

func (f *fixture) allDown() {
	f.products.setDown(true)
	f.sales.setDown(true)
	f.credits.setDown(true)
	f.payments.setDown(true)
}

func (f *fixture) allUp() {
	f.products.setDown(false)
	f.sales.setDown(false)
	f.credits.setDown(false)
	f.payments.setDown(false)
}

func cachedIDs(t *testing.T, c repository.LocalCache, key string) []string {
	t.Helper()
	data, err := c.Load(context.Background(), key)
	require.NoError(t, err)
	if data == nil {
		return nil
	}
	var recs []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &recs))
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	return ids
}

func product(id string, qty int) *entity.Product {
	return &entity.Product{
		ID: id, Name: "Brake pad " + id, Type: entity.VehicleTATA, Category: entity.Categories[0],
		Brand: entity.Brands[0], Country: entity.CountryIndia,
		PurchasePrice: decimal.NewFromInt(100), SellingPrice: decimal.NewFromInt(150), Quantity: qty,
	}
}

func credit(id string) *entity.StandaloneCredit {
	return &entity.StandaloneCredit{ID: id, BuyerName: "Shohag", CreditAmount: decimal.NewFromInt(20000), Date: time.Now().Add(-time.Hour)}
}

// ── Colecciones ───────────────────────────────────────────────────────────────

func TestCollection_RemotoOKSeReflejaEnCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.gw.Credits.Create(ctx, credit("c-1")))
	assert.Equal(t, []string{"c-1"}, cachedIDs(t, f.cache, repository.CacheKeyStandaloneCredits))

	got, err := f.gw.Credits.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.True(t, got.IsStandalone, "Normalize marca el crédito como independiente")

	require.NoError(t, f.gw.Credits.Delete(ctx, "c-1"))
	assert.Empty(t, cachedIDs(t, f.cache, repository.CacheKeyStandaloneCredits))
}

func TestCollection_RemotoCaidoOperaSobreCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.allDown()

	require.NoError(t, f.gw.Credits.Create(ctx, credit("c-1")))
	require.NoError(t, f.gw.Credits.Create(ctx, credit("c-2")))
	assert.Empty(t, f.credits.items, "nada llegó al remoto")

	list, err := f.gw.Credits.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, f.gw.Credits.Delete(ctx, "c-2"))
	err = f.gw.Credits.Delete(ctx, "c-2")
	assert.ErrorIs(t, err, domain.ErrNotFound, "borrar algo ausente en caché se informa")

	err = f.gw.Credits.Create(ctx, credit("c-1"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCollection_SinRemoto(t *testing.T) {
	c := cache.NewMemoryCache()
	gw := gateway.New(nil, c, logger.Nop())
	ctx := context.Background()

	require.NoError(t, gw.Products.Create(ctx, product("p-1", 5)))
	p, err := gw.Products.GetByID(ctx, "p-1")
	require.NoError(t, err)
	p.Quantity = 9
	require.NoError(t, gw.Products.Update(ctx, p))

	p, err = gw.Products.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 9, p.Quantity)

	err = gw.Products.Update(ctx, product("p-404", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = gw.Sync(ctx)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}

func TestCollection_DuplicadoRemotoEsDefinitivo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.credits.Create(ctx, credit("c-1")))

	err := f.gw.Credits.Create(ctx, credit("c-1"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Nil(t, cachedIDs(t, f.cache, repository.CacheKeyStandaloneCredits))
}

func TestCollection_GetByIDPendienteDeSync(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.allDown()
	require.NoError(t, f.gw.Credits.Create(ctx, credit("offline-1")))
	f.allUp()

	got, err := f.gw.Credits.GetByID(ctx, "offline-1")
	require.NoError(t, err, "el remoto no lo tiene pero la caché sí")
	assert.Equal(t, "offline-1", got.ID)

	_, err = f.gw.Credits.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollection_ListConservaPendientes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.gw.Credits.Create(ctx, credit("c-1")))

	f.allDown()
	require.NoError(t, f.gw.Credits.Create(ctx, credit("offline-1")))
	f.allUp()

	list, err := f.gw.Credits.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c-1", list[0].ID)
	assert.Equal(t, "offline-1", list[1].ID)
	assert.ElementsMatch(t, []string{"c-1", "offline-1"}, cachedIDs(t, f.cache, repository.CacheKeyStandaloneCredits))
}

// ── Sync ──────────────────────────────────────────────────────────────────────

func TestSync_EmpujaLaCacheConUpsert(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.allDown()
	require.NoError(t, f.gw.Products.Create(ctx, product("p-1", 3)))
	require.NoError(t, f.gw.Credits.Create(ctx, credit("c-1")))
	require.NoError(t, f.gw.Payments.Create(ctx, &entity.Payment{ID: "pay-1", BuyerName: "Shohag", Amount: decimal.NewFromInt(5000), Date: time.Now()}))
	f.allUp()

	report, err := f.gw.Sync(ctx)
	require.NoError(t, err)
	require.Len(t, report.Collections, 4)
	assert.Zero(t, report.Failed())

	pushed := map[string]int{}
	for _, c := range report.Collections {
		pushed[c.Collection] = c.Pushed
	}
	assert.Equal(t, 1, pushed[repository.CacheKeyProducts])
	assert.Equal(t, 0, pushed[repository.CacheKeySales])
	assert.Equal(t, 1, pushed[repository.CacheKeyStandaloneCredits])
	assert.Equal(t, 1, pushed[repository.CacheKeyPayments])

	assert.Contains(t, f.products.items, "p-1")
	assert.Contains(t, f.credits.items, "c-1")
	assert.Contains(t, f.payments.items, "pay-1")

	// idempotente: un segundo sync sobrescribe sin duplicar
	_, err = f.gw.Sync(ctx)
	require.NoError(t, err)
	assert.Len(t, f.credits.order, 1)
}

func TestSync_FallosPorRegistroNoDetienenElResto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.allDown()
	require.NoError(t, f.gw.Credits.Create(ctx, credit("c-1")))
	require.NoError(t, f.gw.Products.Create(ctx, product("p-1", 1)))
	f.products.setDown(false)

	report, err := f.gw.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed())
	assert.Contains(t, f.products.items, "p-1")
}

func TestSync_LockTomado(t *testing.T) {
	f := newFixture(gateway.WithLocker(busyLocker{}))
	_, err := f.gw.Sync(context.Background())
	assert.ErrorIs(t, err, domain.ErrBusy)
}

// ── CommitSale ────────────────────────────────────────────────────────────────

func sale(id string) *entity.Sale {
	items := []entity.SaleItem{{ProductID: "p-1", ProductName: "Brake pad p-1", Quantity: 2, Profit: decimal.NewFromInt(50), SellingPrice: decimal.NewFromInt(150)}}
	return entity.NewSale(id, time.Now(), "Karim", items, entity.CreditInfo{
		CashAmount: decimal.NewFromInt(200), CreditAmount: decimal.NewFromInt(100), TotalAmount: decimal.NewFromInt(300),
	})
}

func TestCommitSale_TransaccionRemota(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.gw.Products.Create(ctx, product("p-1", 10)))

	err := f.gw.CommitSale(ctx, sale("s-1"), []gateway.StockAdjustment{{ProductID: "p-1", Sold: 2}})
	require.NoError(t, err)

	assert.Equal(t, 8, f.products.items["p-1"].Quantity)
	assert.Contains(t, f.sales.items, "s-1")
	assert.Equal(t, []string{"s-1"}, cachedIDs(t, f.cache, repository.CacheKeySales))

	f.allDown()
	p, err := f.gw.Products.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 8, p.Quantity, "la caché refleja el descuento")
}

func TestCommitSale_RemotoRechazaStockTodoONada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.gw.Products.Create(ctx, product("p-1", 1)))

	err := f.gw.CommitSale(ctx, sale("s-1"), []gateway.StockAdjustment{{ProductID: "p-1", Sold: 2}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.sales.items, "la venta se deshizo con la transacción")
	assert.Nil(t, cachedIDs(t, f.cache, repository.CacheKeySales))
}

func TestCommitSale_FallbackLocal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.gw.Products.Create(ctx, product("p-1", 10)))
	f.tx.fail = true
	f.allDown()

	err := f.gw.CommitSale(ctx, sale("s-1"), []gateway.StockAdjustment{{ProductID: "p-1", Sold: 2}, {ProductID: "p-1", Sold: 3}})
	require.NoError(t, err)

	p, err := f.gw.Products.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)
	assert.Equal(t, []string{"s-1"}, cachedIDs(t, f.cache, repository.CacheKeySales))
	assert.Equal(t, 10, f.products.items["p-1"].Quantity, "el remoto no se tocó")
}

func TestCommitSale_FallbackLocalSinEscriturasParciales(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.gw.Products.Create(ctx, product("p-1", 10)))
	f.tx.fail = true
	f.allDown()

	err := f.gw.CommitSale(ctx, sale("s-1"), []gateway.StockAdjustment{{ProductID: "p-1", Sold: 2}, {ProductID: "p-404", Sold: 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := f.gw.Products.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity, "ningún descuento aplicado")
	assert.Nil(t, cachedIDs(t, f.cache, repository.CacheKeySales))
}

// failingSaveCache caché en memoria cuyo Save falla para una clave.
type failingSaveCache struct {
	*cache.MemoryCache
	key string
}

func (c failingSaveCache) Save(ctx context.Context, key string, data []byte) error {
	if key == c.key {
		return errors.New("disco lleno")
	}
	return c.MemoryCache.Save(ctx, key, data)
}

func TestCommitSale_FalloAlGuardarVentaRepoStock(t *testing.T) {
	mem := cache.NewMemoryCache()
	gw := gateway.New(nil, failingSaveCache{MemoryCache: mem, key: repository.CacheKeySales}, logger.Nop())
	ctx := context.Background()
	require.NoError(t, gw.Products.Create(ctx, product("p-1", 10)))

	err := gw.CommitSale(ctx, sale("s-1"), []gateway.StockAdjustment{{ProductID: "p-1", Sold: 4}})
	require.Error(t, err)

	p, err := gw.Products.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity, "sin venta guardada el stock queda intacto")
	assert.Nil(t, cachedIDs(t, mem, repository.CacheKeySales))
}

package usecase

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
)

// ProductStore lo que el caso de uso necesita de la persistencia de productos.
type ProductStore interface {
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}

// ProductUseCase casos de uso CRUD, importación y exportación de productos.
// Toda escritura pasa antes por validation.ValidateProduct.
type ProductUseCase struct {
	store ProductStore
	now   func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store ProductStore) *ProductUseCase {
	return &ProductUseCase{store: store, now: time.Now}
}

// Create valida y crea un producto nuevo con ID generado.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	now := uc.now()
	product := fromProductRequest(in)
	product.ID = uuid.New().String()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := uc.create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func (uc *ProductUseCase) create(ctx context.Context, product *entity.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	// se valida lo que se va a guardar: montos ya redondeados a centavos
	product.Normalize()
	if res := validation.ValidateProduct(product); !res.Valid {
		return res.Err()
	}
	return uc.store.Create(ctx, product)
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista los productos ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.listSorted(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

func (uc *ProductUseCase) listSorted(ctx context.Context) ([]*entity.Product, error) {
	list, err := uc.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})
	return list, nil
}

// Update reemplaza los datos de un producto existente (conserva ID y CreatedAt).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	current, err := uc.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product := fromProductRequest(in)
	product.ID = current.ID
	product.CreatedAt = current.CreatedAt
	product.UpdatedAt = uc.now()
	product.Name = strings.TrimSpace(product.Name)
	product.Normalize()
	if res := validation.ValidateProduct(product); !res.Valid {
		return nil, res.Err()
	}
	if err := uc.store.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Las ventas ya registradas conservan su snapshot.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	return uc.store.Delete(ctx, id)
}

// Catalog valores admitidos para los campos enumerados.
func (uc *ProductUseCase) Catalog() dto.CatalogResponse {
	return dto.CatalogResponse{
		VehicleTypes: entity.VehicleTypes,
		Categories:   entity.Categories,
		Brands:       entity.Brands,
		Countries:    entity.Countries,
	}
}

func fromProductRequest(in dto.ProductRequest) *entity.Product {
	return &entity.Product{
		Name:          in.Name,
		Type:          in.Type,
		Category:      in.Category,
		Brand:         in.Brand,
		Country:       in.Country,
		PurchasePrice: in.PurchasePrice,
		Pricing:       in.Pricing,
		SellingPrice:  in.SellingPrice,
		Quantity:      in.Quantity,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Type:          p.Type,
		Category:      p.Category,
		Brand:         p.Brand,
		Country:       p.Country,
		PurchasePrice: p.PurchasePrice,
		Pricing:       p.Pricing,
		SellingPrice:  p.SellingPrice,
		Quantity:      p.Quantity,
		UnitProfit:    p.UnitProfit(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

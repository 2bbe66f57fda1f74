package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/autoparts-ledger/internal/application/dto"
	"github.com/jhoicas/autoparts-ledger/internal/domain"
	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/internal/domain/validation"
	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

// ProductColumns columnas de importación/exportación, en este orden y con encabezado obligatorio.
var ProductColumns = []string{"name", "type", "category", "brand", "country", "purchasePrice", "sellingPrice", "quantity"}

const xlsxSheet = "Products"

// ImportCSV importa productos desde CSV. Cada fila se valida y crea por separado:
// las filas inválidas se informan en el reporte y no detienen al resto.
func (uc *ProductUseCase) ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w: %v", domain.ErrInvalidInput, err)
	}
	return uc.importRows(ctx, rows)
}

// ImportXLSX importa desde la primera hoja de un libro Excel, con las mismas reglas que ImportCSV.
func (uc *ProductUseCase) ImportXLSX(ctx context.Context, r io.Reader) (*dto.ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir XLSX: %w: %v", domain.ErrInvalidInput, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX sin hojas: %w", domain.ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheets[0], err)
	}
	return uc.importRows(ctx, rows)
}

func (uc *ProductUseCase) importRows(ctx context.Context, rows [][]string) (*dto.ImportReport, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("falta el encabezado: %w", domain.ErrInvalidInput)
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	report := &dto.ImportReport{Failed: []dto.ImportFailure{}}
	now := uc.now()
	for i, row := range rows[1:] {
		line := i + 2
		if blankRow(row) {
			continue
		}
		product, parseErrs := parseProductRow(row)
		if len(parseErrs) > 0 {
			report.Failed = append(report.Failed, dto.ImportFailure{Row: line, Errors: parseErrs})
			continue
		}
		product.ID = uuid.New().String()
		product.CreatedAt = now
		product.UpdatedAt = now
		if err := uc.create(ctx, product); err != nil {
			report.Failed = append(report.Failed, dto.ImportFailure{Row: line, Errors: errorMessages(err)})
			continue
		}
		report.Imported++
	}
	return report, nil
}

func checkHeader(header []string) error {
	if len(header) < len(ProductColumns) {
		return fmt.Errorf("encabezado esperado %s: %w", strings.Join(ProductColumns, ","), domain.ErrInvalidInput)
	}
	for i, col := range ProductColumns {
		got := strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
		if !strings.EqualFold(got, col) {
			return fmt.Errorf("columna %d: se esperaba %q y llegó %q: %w", i+1, col, got, domain.ErrInvalidInput)
		}
	}
	return nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseProductRow convierte una fila en Product. Solo informa errores de formato;
// las reglas de negocio las aplica ValidateProduct.
func parseProductRow(row []string) (*entity.Product, []string) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	var errs []string
	parseMoney := func(i int) decimal.Decimal {
		raw := cell(i)
		if raw == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: invalid number %q", ProductColumns[i], raw))
			return decimal.Zero
		}
		return money.Round(d)
	}

	p := &entity.Product{
		Name:          cell(0),
		Type:          entity.VehicleType(cell(1)),
		Category:      entity.Category(cell(2)),
		Brand:         entity.Brand(cell(3)),
		Country:       entity.Country(cell(4)),
		PurchasePrice: parseMoney(5),
		SellingPrice:  parseMoney(6),
	}
	if raw := cell(7); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("quantity: invalid integer %q", raw))
		}
		p.Quantity = qty
	}
	return p, errs
}

func errorMessages(err error) []string {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Messages
	}
	return []string{err.Error()}
}

func productRow(p *entity.Product) []string {
	return []string{
		p.Name, string(p.Type), string(p.Category), string(p.Brand), string(p.Country),
		money.Format(p.PurchasePrice), money.Format(p.SellingPrice), strconv.Itoa(p.Quantity),
	}
}

// ExportCSV escribe todos los productos (ordenados por nombre) con el mismo formato que ImportCSV.
func (uc *ProductUseCase) ExportCSV(ctx context.Context, w io.Writer) error {
	list, err := uc.listSorted(ctx)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ProductColumns); err != nil {
		return fmt.Errorf("escribir CSV: %w", err)
	}
	for _, p := range list {
		if err := cw.Write(productRow(p)); err != nil {
			return fmt.Errorf("escribir CSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportXLSX escribe todos los productos en la hoja "Products" de un libro nuevo.
func (uc *ProductUseCase) ExportXLSX(ctx context.Context, w io.Writer) error {
	list, err := uc.listSorted(ctx)
	if err != nil {
		return err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("crear hoja: %w", err)
	}
	header := make([]any, len(ProductColumns))
	for i, c := range ProductColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("escribir encabezado: %w", err)
	}
	for i, p := range list {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			p.Name, string(p.Type), string(p.Category), string(p.Brand), string(p.Country),
			p.PurchasePrice.InexactFloat64(), p.SellingPrice.InexactFloat64(), p.Quantity,
		}
		if err := f.SetSheetRow(xlsxSheet, cellRef, &row); err != nil {
			return fmt.Errorf("escribir fila %d: %w", i+2, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("escribir XLSX: %w", err)
	}
	return nil
}

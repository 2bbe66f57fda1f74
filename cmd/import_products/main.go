// import_products carga productos en bloque desde un CSV o XLSX con encabezado
// (name,type,category,brand,country,purchasePrice,sellingPrice,quantity).
//
// Uso: go run ./cmd/import_products [-latin1] ruta/productos.csv|.xlsx
// Usa la misma configuración que la API (remoto si está configurado, si no la caché local).
// -latin1 decodifica CSV exportados en ISO-8859-1 (planillas viejas de Excel).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/autoparts-ledger/internal/application/dto"
	"github.com/jhoicas/autoparts-ledger/internal/application/usecase"
	"github.com/jhoicas/autoparts-ledger/internal/bootstrap"
	"github.com/jhoicas/autoparts-ledger/pkg/config"
	"github.com/jhoicas/autoparts-ledger/pkg/logger"
)

func main() {
	args := os.Args[1:]
	latin1 := false
	if len(args) > 0 && args[0] == "-latin1" {
		latin1 = true
		args = args[1:]
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_products [-latin1] archivo.csv|archivo.xlsx")
		os.Exit(2)
	}
	path := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	store, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Almacenamiento: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir archivo: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	uc := usecase.NewProductUseCase(store.Gateway.Products)
	var report *dto.ImportReport
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		var r io.Reader = f
		if latin1 {
			r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
		}
		report, err = uc.ImportCSV(ctx, r)
	case ".xlsx":
		report, err = uc.ImportXLSX(ctx, f)
	default:
		err = fmt.Errorf("extensión no soportada %q (se admite .csv o .xlsx)", filepath.Ext(path))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Importar: %v\n", err)
		os.Exit(1)
	}

	for _, fail := range report.Failed {
		fmt.Printf("fila %d: %s\n", fail.Row, strings.Join(fail.Errors, "; "))
	}
	fmt.Printf("Importados %d productos, %d filas con error\n", report.Imported, len(report.Failed))
	if len(report.Failed) > 0 {
		os.Exit(3)
	}
}

// Comando seed_stock: carga el libro de stock desde un CSV exportado de la hoja de cálculo del taller.
//
// Columnas: item_name,item_no,size,quantity,total_cost (con encabezado).
// Cada fila se aplica como una reposición, con el mismo costo promedio ponderado
// y registro en stock_additions que una reposición desde la API.
//
// Uso: go run ./cmd/seed_stock -file stock.csv [-sep ';'] [-encoding windows-1252] [-dry-run]
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/jhoicas/imprenta-api/internal/application/inventory"
	"github.com/jhoicas/imprenta-api/internal/infrastructure/postgres"
	"github.com/jhoicas/imprenta-api/pkg/config"
	"github.com/jhoicas/imprenta-api/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type stockRow struct {
	ItemName  string `csv:"item_name"`
	ItemNo    string `csv:"item_no"`
	Size      string `csv:"size"`
	Quantity  string `csv:"quantity"`
	TotalCost string `csv:"total_cost"`
}

func main() {
	file := flag.String("file", "stock.csv", "ruta del CSV")
	sep := flag.String("sep", ",", "separador de columnas")
	encoding := flag.String("encoding", "utf-8", "utf-8 | windows-1252 | iso-8859-1")
	dryRun := flag.Bool("dry-run", false, "solo valida el archivo")
	flag.Parse()

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	inputs, err := parseStockCSV(f, *sep, *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d filas válidas en %s\n", len(inputs), *file)
	if *dryRun {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema")
	}

	ledger := inventory.NewLedgerService(
		postgres.NewTxRunner(pool),
		postgres.NewStockRepository(pool),
		postgres.NewStockAdditionRepository(pool),
		postgres.NewUsageRepository(pool),
		log.Named("seed_stock"),
	)

	applied := 0
	for i, in := range inputs {
		if _, err := ledger.AddStock(ctx, in); err != nil {
			log.Error().Err(err).Int("row", i+2).Str("item_name", in.ItemName).Msg("fila rechazada")
			continue
		}
		applied++
	}
	log.Info().Int("applied", applied).Int("total", len(inputs)).Msg("carga de stock terminada")
}

// parseStockCSV decodifica el archivo y convierte cada fila en una reposición.
// Las filas sin item_name se omiten; cantidades o costos ilegibles son error.
func parseStockCSV(r io.Reader, sep, encoding string) ([]inventory.AddStockInput, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
	case "windows-1252", "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	case "iso-8859-1", "latin1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("encoding %q no soportado", encoding)
	}

	comma := ','
	if sep != "" {
		comma = []rune(sep)[0]
	}
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var rows []stockRow
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return nil, err
	}

	out := make([]inventory.AddStockInput, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row.ItemName) == "" {
			continue
		}
		qty, err := parseAmount(row.Quantity)
		if err != nil {
			return nil, fmt.Errorf("fila %d: quantity: %w", i+2, err)
		}
		cost, err := parseAmount(row.TotalCost)
		if err != nil {
			return nil, fmt.Errorf("fila %d: total_cost: %w", i+2, err)
		}
		out = append(out, inventory.AddStockInput{
			ItemName:          row.ItemName,
			ItemNo:            row.ItemNo,
			Size:              row.Size,
			AddedQuantity:     qty,
			AdditionTotalCost: cost,
		})
	}
	return out, nil
}

// parseAmount acepta "1234.5", "1.234,5" y vacío (= 0).
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/repository"
)

// Converts a product sheet into the JSON catalog the server loads via
// CATALOG_FILE. With no input file it writes the built-in dataset, which
// is handy for a fresh development environment.
//
// Expected columns: id, name, price, original_price, image, category,
// rating, review_count, description, sizes, colors, brand, material.
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path|builtin> <output_json_path>")
	}

	input := os.Args[1]
	output := os.Args[2]

	var products []model.Product
	var err error

	if input == "builtin" {
		products = repository.SeedProducts()
	} else {
		fmt.Printf("Reading XLSX file: %s\n", input)
		products, err = readProductsFromXLSX(input)
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
	}

	fmt.Printf("Total products to export: %d\n", len(products))

	raw, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		log.Fatal("Failed to encode catalog:", err)
	}
	if err := os.WriteFile(output, raw, 0o644); err != nil {
		log.Fatal("Failed to write catalog:", err)
	}

	fmt.Printf("Catalog written to %s\n", output)
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet has no data rows")
	}

	products := make([]model.Product, 0, len(rows)-1)
	for i, row := range rows[1:] {
		product, err := parseProductRow(row)
		if err != nil {
			fmt.Printf("Skipping row %d: %v\n", i+2, err)
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func parseProductRow(row []string) (model.Product, error) {
	if len(row) < 7 {
		return model.Product{}, fmt.Errorf("expected at least 7 columns, got %d", len(row))
	}

	id, err := strconv.Atoi(strings.TrimSpace(cell(row, 0)))
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid id %q", cell(row, 0))
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(cell(row, 2)), 64)
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid price %q", cell(row, 2))
	}

	product := model.Product{
		ID:          id,
		Name:        strings.TrimSpace(cell(row, 1)),
		Price:       price,
		Image:       strings.TrimSpace(cell(row, 4)),
		Category:    strings.TrimSpace(cell(row, 5)),
		Description: strings.TrimSpace(cell(row, 8)),
		Sizes:       splitList(cell(row, 9)),
		Colors:      splitList(cell(row, 10)),
		Brand:       strings.TrimSpace(cell(row, 11)),
		Material:    strings.TrimSpace(cell(row, 12)),
	}

	if raw := strings.TrimSpace(cell(row, 3)); raw != "" {
		original, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.Product{}, fmt.Errorf("invalid original_price %q", raw)
		}
		product.OriginalPrice = &original
		product.IsOnSale = original > price
	}
	if raw := strings.TrimSpace(cell(row, 6)); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.Product{}, fmt.Errorf("invalid rating %q", raw)
		}
		product.Rating = rating
	}
	if raw := strings.TrimSpace(cell(row, 7)); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return model.Product{}, fmt.Errorf("invalid review_count %q", raw)
		}
		product.ReviewCount = count
	}

	return product, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

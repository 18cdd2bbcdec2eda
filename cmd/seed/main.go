package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/storefrontlab/storefront-backend/config"
	"github.com/storefrontlab/storefront-backend/internal/app/model"
	"github.com/storefrontlab/storefront-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a product catalog from an xlsx workbook. Expected columns:
// Title | Collection | Unit Price | Inventory | Description
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, collections, err := readCatalogFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Collections to import: %d\n", len(collections))
	fmt.Printf("Products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	gdb := db.GetDB()

	// Collections first so products can reference their ids.
	collectionIDs := make(map[string]uint, len(collections))
	for _, title := range collections {
		collection := model.Collection{Title: title}
		if err := gdb.Where("title = ?", title).FirstOrCreate(&collection).Error; err != nil {
			log.Fatal("Failed to create collection:", err)
		}
		collectionIDs[title] = collection.ID
	}

	rows := make([]model.Product, 0, len(products))
	for _, p := range products {
		rows = append(rows, model.Product{
			Title:        p.title,
			Slug:         slugify(p.title),
			Description:  p.description,
			UnitPrice:    p.unitPrice,
			Inventory:    p.inventory,
			CollectionID: collectionIDs[p.collection],
		})
	}

	if err := gdb.CreateInBatches(rows, 500).Error; err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(rows))
}

type catalogRow struct {
	title       string
	collection  string
	unitPrice   float64
	inventory   int
	description string
}

func readCatalogFromXLSX(filePath string) ([]catalogRow, []string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []catalogRow
	var collections []string
	seenCollections := make(map[string]bool)
	seenTitles := make(map[string]bool)
	skipped := 0

	// Skip the header row.
	for i, row := range rows[1:] {
		if len(row) < 4 {
			skipped++
			continue
		}

		title := strings.TrimSpace(row[0])
		collection := strings.TrimSpace(row[1])
		if title == "" || collection == "" || seenTitles[title] {
			skipped++
			continue
		}

		unitPrice, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil || unitPrice <= 0 {
			fmt.Printf("Skipping row %d: invalid unit price %q\n", i+2, row[2])
			skipped++
			continue
		}

		inventory, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil || inventory < 0 {
			inventory = 0
		}

		description := ""
		if len(row) > 4 {
			description = strings.TrimSpace(row[4])
		}

		if !seenCollections[collection] {
			seenCollections[collection] = true
			collections = append(collections, collection)
		}

		seenTitles[title] = true
		products = append(products, catalogRow{
			title:       title,
			collection:  collection,
			unitPrice:   unitPrice,
			inventory:   inventory,
			description: description,
		})
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d rows\n", skipped)
	}

	return products, collections, nil
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	return strings.Trim(slug, "-")
}

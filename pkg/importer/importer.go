// Package importer loads items in bulk from Excel workbooks. Column
// layouts vary between labs, so the header-to-field mapping comes from a
// YAML config instead of being hardcoded.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"labtrack-api/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tealeg/xlsx/v3"
	"gopkg.in/yaml.v3"
)

// importedMessage is the fixed audit message attached to imported items.
const importedMessage = "Item created via import."

// ImportOptions defines the configuration for Excel import operations
type ImportOptions struct {
	OperatorID  uuid.UUID
	MappingPath string // empty means the built-in default mapping
	DryRun      bool
	MaxErrors   int // default 50
}

// RowError represents an error that occurred during row processing
type RowError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// SheetSummary contains the import statistics for a single sheet
type SheetSummary struct {
	Name     string     `json:"name"`
	Inserted int        `json:"inserted"`
	Skipped  int        `json:"skipped"`
	Errors   int        `json:"errors"`
	Samples  []RowError `json:"error_samples,omitempty"`
}

// ImportSummary contains the overall import statistics
type ImportSummary struct {
	Inserted int            `json:"inserted"`
	Skipped  int            `json:"skipped"`
	Errors   int            `json:"errors"`
	Sheets   []SheetSummary `json:"sheets"`
	DryRun   bool           `json:"dry_run"`
}

// MappingConfig represents the YAML mapping configuration
type MappingConfig struct {
	Version  int                    `yaml:"version"`
	Defaults DefaultsConfig         `yaml:"defaults"`
	Sheets   map[string]SheetConfig `yaml:"sheets"`
}

// DefaultsConfig carries fallback values applied to every imported row.
type DefaultsConfig struct {
	Type   string `yaml:"type"`
	Status string `yaml:"status"`
}

// SheetConfig maps one worksheet's columns onto item fields.
type SheetConfig struct {
	// Columns maps a header name to an item field: title, description,
	// type, status, or location.
	Columns map[string]string `yaml:"columns"`
	// Aliases lists alternative header spellings per header name.
	Aliases map[string][]string `yaml:"aliases"`
}

// ImportExcel reads an Excel workbook and inserts one item per data row,
// with a creation log entry each. Everything runs in one transaction; a
// dry run rolls it back at the end.
func ImportExcel(ctx context.Context, db *pgxpool.Pool, r io.Reader, opts ImportOptions) (ImportSummary, error) {
	summary := ImportSummary{
		DryRun: opts.DryRun,
		Sheets: []SheetSummary{},
	}

	if opts.MaxErrors == 0 {
		opts.MaxErrors = 50
	}

	mapping, err := loadMappingConfig(opts.MappingPath)
	if err != nil {
		return summary, fmt.Errorf("failed to load mapping config: %w", err)
	}

	// xlsx needs an io.ReaderAt, so buffer the upload first.
	data, err := io.ReadAll(r)
	if err != nil {
		return summary, fmt.Errorf("failed to read Excel file: %w", err)
	}

	xlFile, err := xlsx.OpenBinary(data)
	if err != nil {
		return summary, fmt.Errorf("failed to open Excel file: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	locations := map[string]uuid.UUID{}

	for _, sheet := range xlFile.Sheets {
		sheetConfig, exists := mapping.Sheets[sheet.Name]
		if !exists {
			continue // Skip sheets without mapping
		}

		sheetSummary := processSheet(ctx, tx, sheet, sheetConfig, mapping.Defaults, opts, locations)
		summary.Sheets = append(summary.Sheets, sheetSummary)

		summary.Inserted += sheetSummary.Inserted
		summary.Skipped += sheetSummary.Skipped
		summary.Errors += sheetSummary.Errors

		if summary.Errors > opts.MaxErrors {
			return summary, fmt.Errorf("too many errors (%d), stopping import", summary.Errors)
		}
	}

	if opts.DryRun {
		return summary, nil // deferred rollback discards everything
	}
	if err := tx.Commit(ctx); err != nil {
		return summary, fmt.Errorf("failed to commit import: %w", err)
	}
	return summary, nil
}

func loadMappingConfig(path string) (*MappingConfig, error) {
	if path == "" {
		return defaultMapping(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg MappingConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Sheets) == 0 {
		return nil, fmt.Errorf("mapping config %s defines no sheets", path)
	}
	return &cfg, nil
}

func defaultMapping() *MappingConfig {
	return &MappingConfig{
		Version: 1,
		Defaults: DefaultsConfig{
			Type:   string(models.ItemTypeOther),
			Status: string(models.ItemStatusAvailable),
		},
		Sheets: map[string]SheetConfig{
			"Items": {
				Columns: map[string]string{
					"Title":       "title",
					"Description": "description",
					"Type":        "type",
					"Status":      "status",
					"Location":    "location",
				},
				Aliases: map[string][]string{
					"Title":    {"Name", "Item"},
					"Location": {"Room", "Place"},
				},
			},
		},
	}
}

func processSheet(ctx context.Context, tx pgx.Tx, sheet *xlsx.Sheet, config SheetConfig, defaults DefaultsConfig, opts ImportOptions, locations map[string]uuid.UUID) SheetSummary {
	summary := SheetSummary{Name: sheet.Name}

	if sheet.MaxRow < 2 {
		return summary // header only, or empty
	}

	// Resolve the header row into column index -> item field.
	fieldByCol := map[int]string{}
	for col := 0; col < sheet.MaxCol; col++ {
		cell, err := sheet.Cell(0, col)
		if err != nil {
			continue
		}
		header := strings.TrimSpace(cell.String())
		if header == "" {
			continue
		}
		if field := resolveHeader(header, config); field != "" {
			fieldByCol[col] = field
		}
	}
	if len(fieldByCol) == 0 {
		summary.Errors++
		summary.Samples = append(summary.Samples, RowError{
			Sheet:   sheet.Name,
			Row:     1,
			Message: "no recognized columns in header row",
		})
		return summary
	}

	for rowIdx := 1; rowIdx < sheet.MaxRow; rowIdx++ {
		rowData := map[string]string{}
		for col, field := range fieldByCol {
			cell, err := sheet.Cell(rowIdx, col)
			if err != nil {
				continue
			}
			if v := strings.TrimSpace(cell.String()); v != "" {
				rowData[field] = v
			}
		}

		if len(rowData) == 0 {
			summary.Skipped++
			continue
		}

		if err := importRow(ctx, tx, rowData, defaults, opts, locations); err != nil {
			summary.Errors++
			summary.Samples = append(summary.Samples, RowError{
				Sheet:   sheet.Name,
				Row:     rowIdx + 1,
				Message: err.Error(),
			})
			continue
		}
		summary.Inserted++
	}

	return summary
}

func resolveHeader(header string, config SheetConfig) string {
	for name, field := range config.Columns {
		if strings.EqualFold(name, header) {
			return field
		}
		for _, alias := range config.Aliases[name] {
			if strings.EqualFold(alias, header) {
				return field
			}
		}
	}
	return ""
}

func importRow(ctx context.Context, tx pgx.Tx, rowData map[string]string, defaults DefaultsConfig, opts ImportOptions, locations map[string]uuid.UUID) error {
	title := rowData["title"]
	if title == "" {
		return errors.New("title is required")
	}
	if len(title) > models.TitleMaxLen {
		return fmt.Errorf("title exceeds %d characters", models.TitleMaxLen)
	}

	itemType := models.ItemType(rowData["type"])
	if itemType == "" {
		itemType = models.ItemType(defaults.Type)
	}
	if !itemType.Valid() {
		return fmt.Errorf("invalid item type %q", itemType)
	}

	status := models.ItemStatus(rowData["status"])
	if status == "" {
		status = models.ItemStatus(defaults.Status)
	}
	if !status.Valid() {
		return fmt.Errorf("invalid item status %q", status)
	}

	var description *string
	if v, ok := rowData["description"]; ok {
		if len(v) > models.DescriptionMaxLen {
			return fmt.Errorf("description exceeds %d characters", models.DescriptionMaxLen)
		}
		description = &v
	}

	var locationID *uuid.UUID
	if name, ok := rowData["location"]; ok {
		id, err := ensureLocation(ctx, tx, locations, name)
		if err != nil {
			return err
		}
		locationID = &id
	}

	itemID := uuid.New()
	if _, err := tx.Exec(ctx, `
		INSERT INTO items (id, title, description, type, status, location_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		itemID, title, description, string(itemType), string(status), locationID,
	); err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, `
		INSERT INTO item_logs (id, item_id, message, date, date_registered, operator_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), itemID, importedMessage, now, now, opts.OperatorID,
	); err != nil {
		return fmt.Errorf("inserting item log: %w", err)
	}
	return nil
}

// ensureLocation resolves a location name to its id, creating the
// location on first sight. The cache spans the whole import so repeated
// names hit the database once.
func ensureLocation(ctx context.Context, tx pgx.Tx, cache map[string]uuid.UUID, name string) (uuid.UUID, error) {
	if len(name) > models.LocationNameMaxLen {
		return uuid.Nil, fmt.Errorf("location name exceeds %d characters", models.LocationNameMaxLen)
	}
	if id, ok := cache[name]; ok {
		return id, nil
	}

	var id uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM locations WHERE name = $1`, name).Scan(&id)
	switch {
	case err == nil:
		cache[name] = id
		return id, nil
	case errors.Is(err, pgx.ErrNoRows):
		id = uuid.New()
		if _, err := tx.Exec(ctx, `
			INSERT INTO locations (id, name, description)
			VALUES ($1, $2, NULL)`, id, name,
		); err != nil {
			return uuid.Nil, fmt.Errorf("creating location %q: %w", name, err)
		}
		cache[name] = id
		return id, nil
	default:
		return uuid.Nil, fmt.Errorf("looking up location %q: %w", name, err)
	}
}

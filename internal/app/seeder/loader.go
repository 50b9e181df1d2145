// Package seeder loads emission factor datasets into the reference table.
//
// The expected input is a CSV export of a conversion-factor dataset with a
// header row naming at least: scope, category, level1, level2, level3, uom,
// factor, year. Unknown columns are ignored, so full vendor exports can be
// fed in unmodified.
package seeder

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carbonaegis/aegis-backend/internal/domain"
)

type factorRepo interface {
	Upsert(ctx context.Context, f *domain.EmissionFactor) error
	CountByYear(ctx context.Context, year int) (int, error)
}

// Stats summarizes one load run.
type Stats struct {
	Parsed   int
	Upserted int
	Skipped  int
}

// Loader parses factor CSV files and upserts rows into the reference table.
type Loader struct {
	factors factorRepo
	dryRun  bool
	log     *slog.Logger
}

// NewLoader creates a Loader. With dryRun set, rows are parsed and counted
// but nothing is written.
func NewLoader(log *slog.Logger, factors factorRepo, dryRun bool) *Loader {
	return &Loader{
		factors: factors,
		dryRun:  dryRun,
		log:     log.With("component", "seeder"),
	}
}

var requiredColumns = []string{"scope", "category", "uom", "factor", "year"}

// LoadCSV reads factor rows from r and upserts them. Malformed rows are
// skipped and counted, not fatal: vendor exports routinely carry note rows
// and blank sections.
func (l *Loader) LoadCSV(ctx context.Context, r io.Reader) (Stats, error) {
	var stats Stats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return stats, fmt.Errorf("read header: %w", err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return stats, err
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read row %d: %w", stats.Parsed+1, err)
		}
		stats.Parsed++

		f, err := parseRow(record, cols)
		if err != nil {
			stats.Skipped++
			l.log.WarnContext(ctx, "skipping row",
				slog.Int("row", stats.Parsed),
				slog.String("reason", err.Error()))
			continue
		}

		if !l.dryRun {
			if err := l.factors.Upsert(ctx, f); err != nil {
				return stats, fmt.Errorf("upsert row %d: %w", stats.Parsed, err)
			}
		}
		stats.Upserted++
	}

	return stats, nil
}

// indexColumns maps required and optional column names to their positions.
func indexColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int) (*domain.EmissionFactor, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	scope, ok := domain.ParseScope(field("scope"))
	if !ok {
		return nil, fmt.Errorf("invalid scope %q", field("scope"))
	}
	category := field("category")
	if category == "" {
		return nil, fmt.Errorf("empty category")
	}
	uom := field("uom")
	if uom == "" {
		return nil, fmt.Errorf("empty uom")
	}

	value, err := decimal.NewFromString(field("factor"))
	if err != nil {
		return nil, fmt.Errorf("invalid factor %q", field("factor"))
	}
	if value.IsNegative() {
		return nil, fmt.Errorf("negative factor %q", field("factor"))
	}

	year, err := strconv.Atoi(field("year"))
	if err != nil || year <= 0 {
		return nil, fmt.Errorf("invalid year %q", field("year"))
	}

	return &domain.EmissionFactor{
		ID:       uuid.New(),
		Scope:    scope,
		Category: category,
		Level1:   field("level1"),
		Level2:   field("level2"),
		Level3:   field("level3"),
		UOM:      uom,
		Factor:   value,
		Year:     year,
	}, nil
}

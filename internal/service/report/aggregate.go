// Package report aggregates persisted emission records for dashboards:
// totals by scope, by reporting month, and by category.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/internal/taxonomy"
)

// OtherCategory is the bucket for records whose category is not in the
// taxonomy (imported data, renamed categories).
const OtherCategory = "Other"

// ScopeSummary holds CO2e totals per GHG scope, in kg.
type ScopeSummary struct {
	Scope1Total decimal.Decimal
	Scope2Total decimal.Decimal
	Scope3Total decimal.Decimal
}

// Total returns the sum across all scopes.
func (s ScopeSummary) Total() decimal.Decimal {
	return s.Scope1Total.Add(s.Scope2Total).Add(s.Scope3Total)
}

// MonthSummary holds per-scope CO2e totals for one reporting month.
type MonthSummary struct {
	Month  string
	Scope1 decimal.Decimal
	Scope2 decimal.Decimal
	Scope3 decimal.Decimal
	Total  decimal.Decimal
}

// CategoryTotal holds the CO2e total for one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// SummarizeByScope sums CO2e grouped by scope. Records with an invalid
// scope are ignored; a zero-value CO2e contributes zero. Never panics.
func SummarizeByScope(records []*domain.EmissionRecord) ScopeSummary {
	var s ScopeSummary
	for _, rec := range records {
		if rec == nil {
			continue
		}
		switch rec.Scope {
		case domain.Scope1:
			s.Scope1Total = s.Scope1Total.Add(rec.CO2Equivalent)
		case domain.Scope2:
			s.Scope2Total = s.Scope2Total.Add(rec.CO2Equivalent)
		case domain.Scope3:
			s.Scope3Total = s.Scope3Total.Add(rec.CO2Equivalent)
		}
	}
	return s
}

// SummarizeByMonth sums CO2e grouped by reporting period and scope,
// ordered by month ascending. Reporting periods are "YYYY-MM", so
// lexicographic order is chronological order.
func SummarizeByMonth(records []*domain.EmissionRecord) []MonthSummary {
	byMonth := map[string]*MonthSummary{}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		m, ok := byMonth[rec.ReportingPeriod]
		if !ok {
			m = &MonthSummary{Month: rec.ReportingPeriod}
			byMonth[rec.ReportingPeriod] = m
		}
		switch rec.Scope {
		case domain.Scope1:
			m.Scope1 = m.Scope1.Add(rec.CO2Equivalent)
		case domain.Scope2:
			m.Scope2 = m.Scope2.Add(rec.CO2Equivalent)
		case domain.Scope3:
			m.Scope3 = m.Scope3.Add(rec.CO2Equivalent)
		}
		m.Total = m.Total.Add(rec.CO2Equivalent)
	}

	out := make([]MonthSummary, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// SummarizeByCategory sums CO2e grouped by category, in first-encountered
// order. Categories absent from the taxonomy land in the "Other" bucket.
func SummarizeByCategory(records []*domain.EmissionRecord) []CategoryTotal {
	index := map[string]int{}
	var out []CategoryTotal

	for _, rec := range records {
		if rec == nil {
			continue
		}

		category := rec.Category
		if _, known := taxonomy.Lookup(category); !known {
			category = OtherCategory
		}

		i, ok := index[category]
		if !ok {
			i = len(out)
			index[category] = i
			out = append(out, CategoryTotal{Category: category})
		}
		out[i].Total = out[i].Total.Add(rec.CO2Equivalent)
	}

	return out
}

// LargestSource returns the category with the highest total. Ties are
// broken by first-encountered order. Returns false for an empty input.
func LargestSource(totals []CategoryTotal) (CategoryTotal, bool) {
	if len(totals) == 0 {
		return CategoryTotal{}, false
	}
	best := totals[0]
	for _, ct := range totals[1:] {
		if ct.Total.GreaterThan(best.Total) {
			best = ct
		}
	}
	return best, true
}

// TopSources returns the n largest category totals, descending. The sort
// is stable, so equal totals keep their first-encountered order.
func TopSources(totals []CategoryTotal, n int) []CategoryTotal {
	out := make([]CategoryTotal, len(totals))
	copy(out, totals)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

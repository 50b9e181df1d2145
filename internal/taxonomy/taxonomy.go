// Package taxonomy holds the static category/fuel reference data that drives
// the emission entry forms. It is read-only after startup: every selectable
// (category, fuel type) pair is guaranteed to have a defined sub-type list and
// unit list, so the UI can never render a dead-end selection.
package taxonomy

import (
	"fmt"

	"github.com/carbonaegis/aegis-backend/internal/domain"
)

// Option is a selectable value with a human-readable label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CategoryDefinition describes one emission category: which fuel types it
// offers and, per fuel type, the permitted sub-types and units.
//
// Categories without a fuel-type level (e.g. "Refrigerant & other") keep
// their sub-type and unit lists under the empty-string key.
type CategoryDefinition struct {
	Scope      domain.Scope
	CategoryID string
	FuelTypes  []Option
	// FuelSubTypes maps fuel type value -> permitted sub-types (may be empty).
	FuelSubTypes map[string][]Option
	// Units maps fuel type value -> permitted units of measure.
	Units map[string][]Option
}

// SubTypesFor returns the sub-type options for a fuel type.
// For categories without a fuel-type level, pass the empty string.
func (d *CategoryDefinition) SubTypesFor(fuelType string) []Option {
	return d.FuelSubTypes[fuelType]
}

// UnitsFor returns the unit options for a fuel type.
func (d *CategoryDefinition) UnitsFor(fuelType string) []Option {
	return d.Units[fuelType]
}

// Lookup returns the definition for a category ID.
func Lookup(categoryID string) (*CategoryDefinition, bool) {
	for _, d := range definitions {
		if d.CategoryID == categoryID {
			return d, true
		}
	}
	return nil, false
}

// Categories returns the category definitions for a scope, in display order.
func Categories(scope domain.Scope) []*CategoryDefinition {
	var out []*CategoryDefinition
	for _, d := range definitions {
		if d.Scope == scope {
			out = append(out, d)
		}
	}
	return out
}

// All returns every category definition in display order.
func All() []*CategoryDefinition {
	out := make([]*CategoryDefinition, len(definitions))
	copy(out, definitions)
	return out
}

// Validate checks the structural invariant: every fuel type referenced by a
// category has an entry (possibly empty) in both FuelSubTypes and Units, and
// categories without fuel types carry their lists under the empty key.
// Called once at startup; a failure is a programming error in data.go.
func Validate() error {
	for _, d := range definitions {
		if !d.Scope.IsValid() {
			return fmt.Errorf("taxonomy: category %q has invalid scope %q", d.CategoryID, d.Scope)
		}

		keys := make([]string, 0, len(d.FuelTypes))
		if len(d.FuelTypes) == 0 {
			keys = append(keys, "")
		}
		for _, ft := range d.FuelTypes {
			keys = append(keys, ft.Value)
		}

		for _, key := range keys {
			if _, ok := d.FuelSubTypes[key]; !ok {
				return fmt.Errorf("taxonomy: category %q fuel type %q has no sub-type list", d.CategoryID, key)
			}
			units, ok := d.Units[key]
			if !ok {
				return fmt.Errorf("taxonomy: category %q fuel type %q has no unit list", d.CategoryID, key)
			}
			if len(units) == 0 {
				return fmt.Errorf("taxonomy: category %q fuel type %q has an empty unit list", d.CategoryID, key)
			}
		}
	}
	return nil
}

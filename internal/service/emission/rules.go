package emission

import (
	"slices"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/internal/taxonomy"
)

// RuleSet describes which form fields a category requires. Each category
// carries its own variant; unknown or unset categories require nothing.
type RuleSet struct {
	FuelTypeRequired    bool
	FuelSubTypeRequired bool
	// SubTypeRequiredWhenFuelTypeIn makes the sub-type requirement
	// conditional: required exactly when the selected fuel type is in the
	// list. Only used by "Delivery vehicles".
	SubTypeRequiredWhenFuelTypeIn []string
	UnitRequired                  bool
	QuantityRequired              bool
	EnergyTypeRequired            bool
	CountryRequired               bool
}

// RulesFor returns the validation rule set for a category.
// An empty or unknown category yields an empty rule set.
func RulesFor(category string) RuleSet {
	switch category {
	case taxonomy.CategoryFuels, taxonomy.CategoryBioenergy:
		return RuleSet{
			FuelTypeRequired:    true,
			FuelSubTypeRequired: true,
			UnitRequired:        true,
			QuantityRequired:    true,
		}
	case taxonomy.CategoryPassengerVehicles:
		return RuleSet{
			FuelTypeRequired:    true,
			FuelSubTypeRequired: true,
			UnitRequired:        true,
			QuantityRequired:    true,
		}
	case taxonomy.CategoryDeliveryVehicles:
		// Sub-type is required only for vehicle classes with
		// size-differentiated factor rows. See taxonomy.DeliverySubTypeRequired.
		return RuleSet{
			FuelTypeRequired:              true,
			SubTypeRequiredWhenFuelTypeIn: taxonomy.DeliverySubTypeRequired,
			UnitRequired:                  true,
			QuantityRequired:              true,
		}
	case taxonomy.CategoryRefrigerant:
		return RuleSet{
			FuelSubTypeRequired: true,
			QuantityRequired:    true,
		}
	case taxonomy.CategoryUKElectricity:
		return RuleSet{
			CountryRequired:  true,
			UnitRequired:     true,
			QuantityRequired: true,
		}
	case taxonomy.CategoryHeatAndSteam:
		return RuleSet{
			EnergyTypeRequired: true,
			UnitRequired:       true,
			QuantityRequired:   true,
		}
	default:
		return RuleSet{}
	}
}

// Apply checks a form against the rule set and returns all field errors.
func (r RuleSet) Apply(form FormState) []domain.FieldError {
	var errs []domain.FieldError

	if r.FuelTypeRequired && form.FuelType == "" {
		errs = append(errs, domain.FieldError{Field: "fuelType", Message: "required"})
	}

	subTypeRequired := r.FuelSubTypeRequired
	if len(r.SubTypeRequiredWhenFuelTypeIn) > 0 {
		subTypeRequired = slices.Contains(r.SubTypeRequiredWhenFuelTypeIn, form.FuelType)
	}
	if subTypeRequired && form.FuelSubType == "" {
		errs = append(errs, domain.FieldError{Field: "fuelSubType", Message: "required"})
	}

	if r.UnitRequired && form.Unit == "" {
		errs = append(errs, domain.FieldError{Field: "unit", Message: "required"})
	}
	if r.EnergyTypeRequired && form.EnergyType == "" {
		errs = append(errs, domain.FieldError{Field: "energyType", Message: "required"})
	}
	if r.CountryRequired && form.Country == "" {
		errs = append(errs, domain.FieldError{Field: "country", Message: "required"})
	}

	if r.QuantityRequired {
		switch {
		case form.Quantity == nil:
			errs = append(errs, domain.FieldError{Field: "quantity", Message: "required"})
		case form.Quantity.IsNegative():
			errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be non-negative"})
		}
	}

	return errs
}

package emission

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/carbonaegis/aegis-backend/internal/taxonomy"
)

// requiredFields applies the rule set to an empty form and returns the
// fields reported as missing.
func requiredFields(t *testing.T, category, fuelType string) map[string]bool {
	t.Helper()

	form := FormState{Category: category, FuelType: fuelType}
	missing := map[string]bool{}
	for _, fe := range RulesFor(category).Apply(form) {
		missing[fe.Field] = true
	}
	return missing
}

func TestRulesFor_RequiredFieldsPerCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category string
		want     []string
	}{
		{taxonomy.CategoryFuels, []string{"fuelType", "fuelSubType", "unit", "quantity"}},
		{taxonomy.CategoryBioenergy, []string{"fuelType", "fuelSubType", "unit", "quantity"}},
		{taxonomy.CategoryPassengerVehicles, []string{"fuelType", "fuelSubType", "unit", "quantity"}},
		{taxonomy.CategoryDeliveryVehicles, []string{"fuelType", "unit", "quantity"}},
		{taxonomy.CategoryRefrigerant, []string{"fuelSubType", "quantity"}},
		{taxonomy.CategoryUKElectricity, []string{"country", "unit", "quantity"}},
		{taxonomy.CategoryHeatAndSteam, []string{"energyType", "unit", "quantity"}},
		{"", nil},
		{"Business travel", nil},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			t.Parallel()

			got := requiredFields(t, tt.category, "")
			if len(got) != len(tt.want) {
				t.Errorf("missing fields: got %v, want %v", got, tt.want)
			}
			for _, field := range tt.want {
				if !got[field] {
					t.Errorf("field %q should be required", field)
				}
			}
		})
	}
}

// Delivery vehicles: the sub-type is required exactly when the vehicle class
// is in the size-differentiated list, and never otherwise.
func TestRulesFor_DeliveryVehiclesSubTypeConditional(t *testing.T) {
	t.Parallel()

	requiring := []string{
		"Vans",
		"Heavy Goods Vehicles (HGVs) – Rigid",
		"HGV (all diesel)",
		"Refrigerated HGVs – Rigid",
		"Refrigerated HGVs – Articulated",
	}
	for _, fuelType := range requiring {
		missing := requiredFields(t, taxonomy.CategoryDeliveryVehicles, fuelType)
		if !missing["fuelSubType"] {
			t.Errorf("%s: sub-type should be required", fuelType)
		}
	}

	notRequiring := []string{"HGVs – Articulated", "Motorbikes", "Anything else"}
	for _, fuelType := range notRequiring {
		missing := requiredFields(t, taxonomy.CategoryDeliveryVehicles, fuelType)
		if missing["fuelSubType"] {
			t.Errorf("%s: sub-type should NOT be required", fuelType)
		}
	}
}

func TestRuleSet_QuantityMustBeNonNegative(t *testing.T) {
	t.Parallel()

	neg := decimal.NewFromInt(-5)
	form := FormState{
		Category:    taxonomy.CategoryFuels,
		FuelType:    "Liquid fuels",
		FuelSubType: "Diesel (100% mineral diesel)",
		Unit:        "litres",
		Quantity:    &neg,
	}

	errs := RulesFor(taxonomy.CategoryFuels).Apply(form)
	if len(errs) != 1 || errs[0].Field != "quantity" {
		t.Fatalf("expected one quantity error, got %v", errs)
	}
}

func TestRuleSet_ZeroQuantityAllowed(t *testing.T) {
	t.Parallel()

	zero := decimal.Zero
	form := FormState{
		Category:    taxonomy.CategoryFuels,
		FuelType:    "Liquid fuels",
		FuelSubType: "Diesel (100% mineral diesel)",
		Unit:        "litres",
		Quantity:    &zero,
	}

	if errs := RulesFor(taxonomy.CategoryFuels).Apply(form); len(errs) != 0 {
		t.Fatalf("zero quantity should pass, got %v", errs)
	}
}

func TestRuleSet_OptionalFieldsDontBlock(t *testing.T) {
	t.Parallel()

	qty := decimal.NewFromInt(100)
	form := FormState{
		Category:    taxonomy.CategoryPassengerVehicles,
		FuelType:    "Cars (by size)",
		FuelSubType: "Medium car",
		Unit:        "km",
		Quantity:    &qty,
		// vehicleFuelType and country deliberately empty
	}

	if errs := RulesFor(taxonomy.CategoryPassengerVehicles).Apply(form); len(errs) != 0 {
		t.Fatalf("optional fields must not block, got %v", errs)
	}
}

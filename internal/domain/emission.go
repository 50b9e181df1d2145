package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmissionRecord is a persisted GHG emission entry owned by one organization.
// Records are immutable once created; corrections are made by deleting and
// re-entering.
type EmissionRecord struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	FacilityID     *uuid.UUID
	Scope          Scope
	Category       string
	// Source identifies what was burned or consumed, e.g. "Diesel (100%
	// mineral diesel)". Populated from the most specific selection made.
	Source       string
	ActivityData decimal.Decimal
	Unit         string
	// EmissionFactor is the conversion factor applied, in kg CO2e per Unit.
	EmissionFactor decimal.Decimal
	// CO2Equivalent = ActivityData × EmissionFactor, in kg CO2e.
	CO2Equivalent decimal.Decimal
	// ReportingPeriod is the month the activity belongs to, "YYYY-MM".
	ReportingPeriod string
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
}

// EmissionFactor is a row of the conversion-factor reference table.
// Level1/Level2 correspond to fuel type and fuel sub-type for most
// categories; vehicle class and size for vehicle categories.
type EmissionFactor struct {
	ID       uuid.UUID
	Scope    Scope
	Category string
	Level1   string
	Level2   string
	Level3   string
	// UOM is the unit of measure the factor converts from, e.g. "litres".
	UOM string
	// Factor is kg CO2e per UOM.
	Factor decimal.Decimal
	// Year is the publication year of the factor dataset.
	Year int
}

// FactorQuery is the coordinate set used to look up an emission factor.
// Empty fields match rows with empty values, not "any value".
type FactorQuery struct {
	Scope    Scope
	Category string
	Level1   string
	Level2   string
	Level3   string
	UOM      string
	Year     int
}

// Facility is a physical location emissions can be attributed to.
type Facility struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	City           string
	Country        string
	CreatedAt      time.Time
}

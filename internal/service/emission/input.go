package emission

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carbonaegis/aegis-backend/internal/domain"
)

// FormState holds the selections of one in-progress emission entry.
// Which fields are required depends on the category; see RulesFor.
type FormState struct {
	Scope           domain.Scope
	Category        string
	FuelType        string
	FuelSubType     string
	Unit            string
	VehicleFuelType string
	LadenWeight     string
	Country         string
	EnergyType      string
	Quantity        *decimal.Decimal
}

// reset clears the fields that depend on the selected category.
func (f *FormState) resetCategoryFields() {
	f.FuelType = ""
	f.FuelSubType = ""
	f.Unit = ""
	f.VehicleFuelType = ""
	f.LadenWeight = ""
	f.Country = ""
	f.EnergyType = ""
	f.Quantity = nil
}

// periodPattern matches reporting periods in "YYYY-MM" form.
var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// CreateRecordInput holds the parameters for creating an emission record.
type CreateRecordInput struct {
	Form            FormState
	ReportingPeriod string
	FacilityID      *uuid.UUID
	// ClientOrganization is the raw client selection made by a consultant:
	// an organization UUID, or one of the placeholder values "", "all",
	// "none" which do not name a concrete client.
	ClientOrganization string
}

// Validate checks scope, category, the category-specific field rules, and
// the reporting period. All violations are collected.
func (i CreateRecordInput) Validate() error {
	var errs []domain.FieldError

	if !i.Form.Scope.IsValid() {
		errs = append(errs, domain.FieldError{Field: "scope", Message: "invalid scope"})
	}
	if i.Form.Category == "" {
		errs = append(errs, domain.FieldError{Field: "category", Message: "required"})
	}

	errs = append(errs, RulesFor(i.Form.Category).Apply(i.Form)...)

	if !periodPattern.MatchString(i.ReportingPeriod) {
		errs = append(errs, domain.FieldError{Field: "reportingPeriod", Message: "must be YYYY-MM"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListRecordsInput holds the parameters for listing emission records.
type ListRecordsInput struct {
	ClientOrganization string
	Scope              *domain.Scope
	Category           *string
	ReportingPeriod    *string
	Limit              int
	Offset             int
}

// Validate checks all fields and collects all errors.
func (i ListRecordsInput) Validate() error {
	var errs []domain.FieldError

	if i.Scope != nil && !i.Scope.IsValid() {
		errs = append(errs, domain.FieldError{Field: "scope", Message: "invalid scope"})
	}
	if i.ReportingPeriod != nil && !periodPattern.MatchString(*i.ReportingPeriod) {
		errs = append(errs, domain.FieldError{Field: "reportingPeriod", Message: "must be YYYY-MM"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// concreteClient reports whether a consultant's client selection names a
// concrete organization, and parses it.
func concreteClient(selection string) (uuid.UUID, bool) {
	s := strings.TrimSpace(selection)
	switch strings.ToLower(s) {
	case "", "all", "none":
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

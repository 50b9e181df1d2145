package emission

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carbonaegis/aegis-backend/internal/domain"
	"github.com/carbonaegis/aegis-backend/internal/taxonomy"
)

// WizardState is a state of the emission entry wizard.
type WizardState string

const (
	WizardIdle             WizardState = "IDLE"
	WizardScopeSelected    WizardState = "SCOPE_SELECTED"
	WizardCategorySelected WizardState = "CATEGORY_SELECTED"
	WizardFormValid        WizardState = "FORM_VALID"
	WizardSubmitting       WizardState = "SUBMITTING"
	WizardSaved            WizardState = "SAVED"
)

// Wizard drives one emission entry through scope and category selection,
// field entry, and submission. Selecting a category resets the dependent
// fields; cancelling discards everything. A failed submission returns to
// FORM_VALID with the failure message retained, so the entry can be
// resubmitted as-is. After a successful save the form is discarded and
// selecting a scope starts the next entry.
type Wizard struct {
	state   WizardState
	form    FormState
	message string
}

// NewWizard creates a wizard in the idle state.
func NewWizard() *Wizard {
	return &Wizard{state: WizardIdle}
}

// State returns the current wizard state.
func (w *Wizard) State() WizardState { return w.state }

// Form returns a copy of the current form state.
func (w *Wizard) Form() FormState { return w.form }

// Message returns the message recorded by the last failed submission.
func (w *Wizard) Message() string { return w.message }

// SelectScope picks an emission scope. Allowed from idle, when changing the
// scope before submission, and after a save to begin a new entry; changing
// scope discards the category and all dependent fields.
func (w *Wizard) SelectScope(scope domain.Scope) error {
	if w.state == WizardSubmitting {
		return fmt.Errorf("wizard: cannot change scope while submitting")
	}
	if !scope.IsValid() {
		return domain.NewValidationError("scope", "invalid scope")
	}

	w.form = FormState{Scope: scope}
	w.state = WizardScopeSelected
	return nil
}

// SelectCategory picks a category within the selected scope and resets the
// fuel, unit, and quantity fields.
func (w *Wizard) SelectCategory(category string) error {
	switch w.state {
	case WizardIdle, WizardSaved:
		return fmt.Errorf("wizard: select a scope first")
	case WizardSubmitting:
		return fmt.Errorf("wizard: cannot change category while submitting")
	}

	def, ok := taxonomy.Lookup(category)
	if !ok {
		return domain.NewValidationError("category", "unknown category")
	}
	if def.Scope != w.form.Scope {
		return domain.NewValidationError("category", "category does not belong to the selected scope")
	}

	w.form.Category = category
	w.form.resetCategoryFields()
	w.state = WizardCategorySelected
	return nil
}

// SetFields applies field selections and re-evaluates the category's rules.
// The wizard moves to FORM_VALID when every required field passes, or back
// to CATEGORY_SELECTED when one fails.
func (w *Wizard) SetFields(fuelType, fuelSubType, unit, vehicleFuelType, country, energyType string, quantity *decimal.Decimal) error {
	switch w.state {
	case WizardIdle, WizardScopeSelected, WizardSaved:
		return fmt.Errorf("wizard: select a category first")
	case WizardSubmitting:
		return fmt.Errorf("wizard: cannot edit fields while submitting")
	}

	w.form.FuelType = fuelType
	w.form.FuelSubType = fuelSubType
	w.form.Unit = unit
	w.form.VehicleFuelType = vehicleFuelType
	w.form.Country = country
	w.form.EnergyType = energyType
	w.form.Quantity = quantity

	if len(RulesFor(w.form.Category).Apply(w.form)) == 0 {
		w.state = WizardFormValid
	} else {
		w.state = WizardCategorySelected
	}
	return nil
}

// FieldErrors returns the outstanding rule violations for the current form.
func (w *Wizard) FieldErrors() []domain.FieldError {
	if w.form.Category == "" {
		return nil
	}
	return RulesFor(w.form.Category).Apply(w.form)
}

// Submit moves a valid form into the submitting state.
func (w *Wizard) Submit() error {
	if w.state != WizardFormValid {
		return fmt.Errorf("wizard: cannot submit from state %s", w.state)
	}
	w.state = WizardSubmitting
	return nil
}

// Complete records a successful save and discards the form. SAVED behaves
// like idle for starting over: SelectScope begins the next entry.
func (w *Wizard) Complete() error {
	if w.state != WizardSubmitting {
		return fmt.Errorf("wizard: cannot complete from state %s", w.state)
	}
	w.state = WizardSaved
	w.form = FormState{}
	w.message = ""
	return nil
}

// Fail records a failed save. The wizard returns to FORM_VALID with the
// form intact so the user can retry; the message is kept for display.
func (w *Wizard) Fail(message string) error {
	if w.state != WizardSubmitting {
		return fmt.Errorf("wizard: cannot fail from state %s", w.state)
	}
	w.state = WizardFormValid
	w.message = message
	return nil
}

// Cancel discards the entry from any non-idle state.
func (w *Wizard) Cancel() error {
	if w.state == WizardIdle {
		return fmt.Errorf("wizard: nothing to cancel")
	}
	w.state = WizardIdle
	w.form = FormState{}
	w.message = ""
	return nil
}

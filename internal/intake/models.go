package intake

import (
	"strconv"
	"strings"
)

// TriState records a yes/no question that may not have been answered yet.
type TriState string

const (
	TriYes   TriState = "yes"
	TriNo    TriState = "no"
	TriUnset TriState = ""
)

// MedicalConditionEntry captures one catalog condition on the intake form.
type MedicalConditionEntry struct {
	Has           TriState `json:"has"`
	Medication    string   `json:"medication,omitempty"`
	YearDiagnosed int      `json:"year_diagnosed,omitempty"`
}

// ClientProfile is the raw intake form state. Numeric fields stay strings
// until the builder boundary; parsing there is what produces validation
// errors, mirroring how the form submits them.
//
// Invariant: when both Age and DateOfBirth are set, Age equals the value
// derived from DateOfBirth (see RecomputeAge); Age is never independently
// overridden while a DOB is present.
type ClientProfile struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	Age         string `json:"age"`
	DateOfBirth string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	State       string `json:"state"`
	Gender      string `json:"gender"`
	Height      string `json:"height,omitempty"`
	Weight      string `json:"weight,omitempty"`
	Smoker      bool   `json:"smoker"`

	CoverageType    string `json:"coverage_type"`
	DesiredCoverage string `json:"desired_coverage"`

	MonthlyIncome   string `json:"monthly_income,omitempty"`
	MonthlyExpenses string `json:"monthly_expenses,omitempty"`

	Conditions map[ConditionID]MedicalConditionEntry `json:"conditions,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// Normalize trims form whitespace and uppercases the fields the recommender
// contract requires uppercased. Called before validation; it never fails.
func (p *ClientProfile) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Age = strings.TrimSpace(p.Age)
	p.DateOfBirth = strings.TrimSpace(p.DateOfBirth)
	p.State = strings.ToUpper(strings.TrimSpace(p.State))
	p.Gender = strings.ToUpper(strings.TrimSpace(p.Gender))
	p.CoverageType = strings.TrimSpace(p.CoverageType)
	p.DesiredCoverage = strings.TrimSpace(p.DesiredCoverage)
	p.MonthlyIncome = strings.TrimSpace(p.MonthlyIncome)
	p.MonthlyExpenses = strings.TrimSpace(p.MonthlyExpenses)
	p.Notes = strings.TrimSpace(p.Notes)
}

// LeftoverFunds returns monthly income minus monthly expenses. Missing or
// unparseable fields count as zero; the result may be negative.
func (p ClientProfile) LeftoverFunds() float64 {
	return parseMoney(p.MonthlyIncome) - parseMoney(p.MonthlyExpenses)
}

func parseMoney(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// usStates is the allowlist for the two-letter state field.
var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true,
}

// coverageTypes is the allowlist for the coverage type field.
var coverageTypes = map[string]bool{
	"Term":           true,
	"Whole Life":     true,
	"IUL":            true,
	"Final Expense":  true,
	"Universal Life": true,
	"Variable Life":  true,
}

// genders is the allowlist for the gender field.
var genders = map[string]bool{"M": true, "F": true, "X": true}

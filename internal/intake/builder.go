package intake

import (
	"strconv"
	"strings"

	dErrors "advisor/pkg/domain-errors"
)

// Request is the payload sent to the external recommendation service. Field
// names follow its wire contract.
type Request struct {
	Age              int      `json:"age"`
	State            string   `json:"state"`
	Gender           string   `json:"gender"`
	Smoker           bool     `json:"smoker"`
	CoverageType     string   `json:"coverage_type"`
	DesiredCoverage  int      `json:"desired_coverage"`
	HealthConditions []string `json:"health_conditions"`
	Medications      []string `json:"medications"`
}

// BuildRequest validates a profile and assembles the recommender payload.
// Validation is fail-fast: the returned error names the first failing field
// and nothing partial is ever submitted.
//
// Condition-derived fields walk the catalog in order. Every condition marked
// yes contributes its lower-cased label to health_conditions; every such
// condition with a medication contributes the medication verbatim. Duplicate
// medications across conditions are kept.
func BuildRequest(profile ClientProfile) (Request, error) {
	p := profile
	p.Normalize()

	age, err := requiredInt("age", p.Age)
	if err != nil {
		return Request{}, err
	}
	if age < 0 || age > 120 {
		return Request{}, dErrors.New(dErrors.CodeInvalidInput, "age must be between 0 and 120")
	}

	if p.State == "" {
		return Request{}, missing("state")
	}
	if !usStates[p.State] {
		return Request{}, dErrors.Newf(dErrors.CodeInvalidInput, "state must be a two-letter US state code, got %q", p.State)
	}

	if p.Gender == "" {
		return Request{}, missing("gender")
	}
	if !genders[p.Gender] {
		return Request{}, dErrors.Newf(dErrors.CodeInvalidInput, "gender must be one of M, F, X, got %q", p.Gender)
	}

	if p.CoverageType == "" {
		return Request{}, missing("coverage_type")
	}
	if !coverageTypes[p.CoverageType] {
		return Request{}, dErrors.Newf(dErrors.CodeInvalidInput, "unknown coverage_type %q", p.CoverageType)
	}

	coverage, err := requiredInt("desired_coverage", p.DesiredCoverage)
	if err != nil {
		return Request{}, err
	}
	if coverage < 1000 {
		return Request{}, dErrors.New(dErrors.CodeInvalidInput, "desired_coverage must be at least 1000")
	}

	if len(p.Notes) > 2000 {
		return Request{}, dErrors.New(dErrors.CodeInvalidInput, "notes must not exceed 2000 characters")
	}

	conditions := make([]string, 0, len(p.Conditions))
	medications := make([]string, 0, len(p.Conditions))
	for _, id := range ConditionCatalog() {
		entry, ok := p.Conditions[id]
		if !ok || entry.Has != TriYes {
			continue
		}
		conditions = append(conditions, strings.ToLower(id.Label()))
		if med := strings.TrimSpace(entry.Medication); med != "" {
			medications = append(medications, med)
		}
	}

	return Request{
		Age:              age,
		State:            p.State,
		Gender:           p.Gender,
		Smoker:           p.Smoker,
		CoverageType:     p.CoverageType,
		DesiredCoverage:  coverage,
		HealthConditions: conditions,
		Medications:      medications,
	}, nil
}

func requiredInt(field, raw string) (int, error) {
	if raw == "" {
		return 0, missing(field)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be a number, got %q", field, raw)
	}
	return v, nil
}

func missing(field string) error {
	return dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", field)
}

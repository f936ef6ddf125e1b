package casefile

import (
	"encoding/json"
	"strings"
	"time"

	"advisor/internal/intake"
	"advisor/internal/recommend"
	pstrings "advisor/pkg/platform/strings"
)

// legacyCase is the version-0 persisted shape: a bare JSON array of records
// whose form data carried a comma-separated conditions string and a flat
// medication list instead of the condition map.
type legacyCase struct {
	ID              string           `json:"id"`
	CreatedAt       time.Time        `json:"createdAt"`
	FormData        legacyFormData   `json:"formData"`
	Recommendations []recommend.Item `json:"recommendations"`
	Leftover        float64          `json:"leftover"`
}

type legacyFormData struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Age              string   `json:"age"`
	DateOfBirth      string   `json:"date_of_birth"`
	State            string   `json:"state"`
	Gender           string   `json:"gender"`
	Height           string   `json:"height"`
	Weight           string   `json:"weight"`
	Smoker           bool     `json:"smoker"`
	CoverageType     string   `json:"coverage_type"`
	DesiredCoverage  string   `json:"desired_coverage"`
	MonthlyIncome    string   `json:"monthly_income"`
	MonthlyExpenses  string   `json:"monthly_expenses"`
	HealthConditions string   `json:"health_conditions"`
	Medications      []string `json:"medications"`
	Notes            string   `json:"notes"`
}

// migrateLegacy lifts a version-0 collection into the current shape.
// Returns false when data is not a legacy collection either.
func migrateLegacy(data []byte) ([]Case, bool) {
	var legacy []legacyCase
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, false
	}
	cases := make([]Case, 0, len(legacy))
	for _, lc := range legacy {
		cases = append(cases, lc.migrate())
	}
	return cases, true
}

// migrate converts one legacy record. Condition labels that match the
// catalog become yes-entries under their IDs; anything unmatched lands on
// the catch-all "other" entry so no reported history is dropped. Legacy
// medications were never tied to a condition, so they are joined onto the
// catch-all entry as well.
func (lc legacyCase) migrate() Case {
	conditions := make(map[intake.ConditionID]intake.MedicalConditionEntry)
	var unmatched []string

	for _, label := range pstrings.DedupeAndTrimLower(strings.Split(lc.FormData.HealthConditions, ",")) {
		if id, ok := intake.FindConditionByLabel(label); ok {
			entry := conditions[id]
			entry.Has = intake.TriYes
			conditions[id] = entry
		} else {
			unmatched = append(unmatched, label)
		}
	}

	meds := pstrings.DedupeAndTrim(lc.FormData.Medications)
	if len(unmatched) > 0 || len(meds) > 0 {
		entry := conditions[intake.ConditionOther]
		entry.Has = intake.TriYes
		entry.Medication = strings.Join(meds, ", ")
		conditions[intake.ConditionOther] = entry
	}

	notes := lc.FormData.Notes
	if len(unmatched) > 0 {
		line := "Previously reported: " + strings.Join(unmatched, ", ")
		if notes == "" {
			notes = line
		} else {
			notes = notes + "\n" + line
		}
	}

	profile := intake.ClientProfile{
		Name:            lc.FormData.Name,
		Email:           lc.FormData.Email,
		Phone:           lc.FormData.Phone,
		Age:             lc.FormData.Age,
		DateOfBirth:     lc.FormData.DateOfBirth,
		State:           lc.FormData.State,
		Gender:          lc.FormData.Gender,
		Height:          lc.FormData.Height,
		Weight:          lc.FormData.Weight,
		Smoker:          lc.FormData.Smoker,
		CoverageType:    lc.FormData.CoverageType,
		DesiredCoverage: lc.FormData.DesiredCoverage,
		MonthlyIncome:   lc.FormData.MonthlyIncome,
		MonthlyExpenses: lc.FormData.MonthlyExpenses,
		Notes:           notes,
	}
	if len(conditions) > 0 {
		profile.Conditions = conditions
	}

	return Case{
		ID:              lc.ID,
		CreatedAt:       lc.CreatedAt,
		FormData:        profile,
		Recommendations: lc.Recommendations,
		Leftover:        lc.Leftover,
	}
}

package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor/internal/casefile"
	"advisor/internal/intake"
	"advisor/internal/recommend"
)

func sampleCase() casefile.Case {
	return casefile.Case{
		ID:        "case-1",
		CreatedAt: time.Date(2024, time.June, 1, 15, 4, 0, 0, time.UTC),
		FormData: intake.ClientProfile{
			Name:            "Jane Roe",
			Email:           "jane@example.com",
			Age:             "45",
			State:           "TX",
			Gender:          "F",
			CoverageType:    "Term",
			DesiredCoverage: "250000",
			MonthlyIncome:   "5000",
			MonthlyExpenses: "3200",
			Conditions: map[intake.ConditionID]intake.MedicalConditionEntry{
				"diabetes":     {Has: intake.TriYes, Medication: "Metformin", YearDiagnosed: 2015},
				"hypertension": {Has: intake.TriYes},
				"cancer":       {Has: intake.TriNo},
			},
			Notes: "Call after 5pm",
		},
		Recommendations: []recommend.Item{
			{Carrier: "Mutual of Omaha", Product: "Term 20", Confidence: 0.92, Reason: "TX eligible"},
		},
		Leftover: 1800,
	}
}

func render(t *testing.T, c casefile.Case) string {
	t.Helper()
	doc, err := NewGenerator().Render(c)
	require.NoError(t, err)
	return string(doc)
}

func TestRender_Sections(t *testing.T) {
	doc := render(t, sampleCase())

	t.Run("client and coverage details", func(t *testing.T) {
		assert.Contains(t, doc, "Jane Roe")
		assert.Contains(t, doc, "TX")
		assert.Contains(t, doc, "Term")
		assert.Contains(t, doc, "250000")
	})

	t.Run("financial snapshot includes leftover", func(t *testing.T) {
		assert.Contains(t, doc, "$1800.00")
	})

	t.Run("only yes-conditions render, in catalog order", func(t *testing.T) {
		assert.Contains(t, doc, "Diabetes")
		assert.Contains(t, doc, "Metformin")
		assert.Contains(t, doc, "2015")
		assert.Contains(t, doc, "High Blood Pressure")
		assert.NotContains(t, doc, "Cancer")
		assert.Less(t, strings.Index(doc, "Diabetes"), strings.Index(doc, "High Blood Pressure"))
	})

	t.Run("condition without medication shows N/A", func(t *testing.T) {
		assert.Contains(t, doc, "N/A")
	})

	t.Run("recommendations show rounded percent", func(t *testing.T) {
		assert.Contains(t, doc, "Mutual of Omaha")
		assert.Contains(t, doc, "92%")
		assert.Contains(t, doc, "TX eligible")
	})

	t.Run("notes render when present", func(t *testing.T) {
		assert.Contains(t, doc, "Call after 5pm")
	})
}

func TestRender_EmptySections(t *testing.T) {
	c := sampleCase()
	c.FormData.Conditions = nil
	c.FormData.Notes = ""
	c.Recommendations = nil
	doc := render(t, c)

	assert.Contains(t, doc, "No conditions reported")
	assert.NotContains(t, doc, "<h2>Notes</h2>")
	assert.NotContains(t, doc, "Recommended Carriers")
}

func TestRender_NegativeLeftover(t *testing.T) {
	c := sampleCase()
	c.Leftover = -500
	assert.Contains(t, render(t, c), "-$500.00")
}

func TestRender_EscapesFreeformText(t *testing.T) {
	c := sampleCase()
	c.FormData.Name = `<b>Jane</b>`
	c.FormData.Notes = `<script>alert("pwnd")</script>`
	doc := render(t, c)

	assert.NotContains(t, doc, "<script>alert")
	assert.NotContains(t, doc, "<b>Jane</b>")
	assert.Contains(t, doc, "&lt;script&gt;")
}

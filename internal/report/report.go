// Package report renders a saved case into a self-contained printable HTML
// document. Rendering is a pure function of the case; handing the document
// to a printer or viewer is the caller's concern.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"advisor/internal/casefile"
	"advisor/internal/intake"
	"advisor/internal/recommend"
)

// Generator renders cases. Safe for concurrent use.
type Generator struct {
	tmpl *template.Template
}

func NewGenerator() *Generator {
	return &Generator{tmpl: template.Must(template.New("case-report").Parse(reportTemplate))}
}

// Render produces the printable document for a case. All user-supplied text
// passes through html/template's contextual escaping, so free-form notes and
// names cannot inject markup.
func (g *Generator) Render(c casefile.Case) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, buildView(c)); err != nil {
		return nil, fmt.Errorf("render case report: %w", err)
	}
	return buf.Bytes(), nil
}

type conditionRow struct {
	Label      string
	Medication string
	Year       int
}

type resultRow struct {
	Carrier string
	Product string
	Reason  string
	Percent int
}

type reportView struct {
	Case       casefile.Case
	Smoker     string
	Leftover   string
	Conditions []conditionRow
	Results    []resultRow
}

func buildView(c casefile.Case) reportView {
	view := reportView{
		Case:     c,
		Smoker:   "No",
		Leftover: formatMoney(c.Leftover),
	}
	if c.FormData.Smoker {
		view.Smoker = "Yes"
	}

	// Walk the catalog so conditions print in intake order.
	for _, id := range intake.ConditionCatalog() {
		entry, ok := c.FormData.Conditions[id]
		if !ok || entry.Has != intake.TriYes {
			continue
		}
		row := conditionRow{
			Label:      id.Label(),
			Medication: strings.TrimSpace(entry.Medication),
			Year:       entry.YearDiagnosed,
		}
		if row.Medication == "" {
			row.Medication = "N/A"
		}
		view.Conditions = append(view.Conditions, row)
	}

	for _, item := range c.Recommendations {
		view.Results = append(view.Results, resultRow{
			Carrier: item.Carrier,
			Product: item.Product,
			Reason:  item.Reason,
			Percent: recommend.Percent(item.Confidence),
		})
	}

	return view
}

func formatMoney(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Case Report</title>
<style>
body { font-family: Georgia, serif; margin: 2rem; color: #222; }
h1 { border-bottom: 2px solid #222; padding-bottom: .25rem; }
h2 { margin-top: 1.5rem; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: .35rem .6rem; border-bottom: 1px solid #ccc; }
.meta { color: #666; font-size: .9rem; }
</style>
</head>
<body>
<h1>Client Case Report</h1>
<p class="meta">Case {{.Case.ID}} &mdash; saved {{.Case.CreatedAt.Format "January 2, 2006 3:04 PM"}}</p>

<h2>Client</h2>
<table>
<tr><th>Name</th><td>{{.Case.FormData.Name}}</td></tr>
<tr><th>Email</th><td>{{.Case.FormData.Email}}</td></tr>
<tr><th>Phone</th><td>{{.Case.FormData.Phone}}</td></tr>
<tr><th>Age</th><td>{{.Case.FormData.Age}}</td></tr>
<tr><th>State</th><td>{{.Case.FormData.State}}</td></tr>
<tr><th>Gender</th><td>{{.Case.FormData.Gender}}</td></tr>
<tr><th>Smoker</th><td>{{.Smoker}}</td></tr>
</table>

<h2>Coverage</h2>
<table>
<tr><th>Coverage Type</th><td>{{.Case.FormData.CoverageType}}</td></tr>
<tr><th>Desired Coverage</th><td>{{.Case.FormData.DesiredCoverage}}</td></tr>
</table>

<h2>Financial Snapshot</h2>
<table>
<tr><th>Monthly Income</th><td>{{.Case.FormData.MonthlyIncome}}</td></tr>
<tr><th>Monthly Expenses</th><td>{{.Case.FormData.MonthlyExpenses}}</td></tr>
<tr><th>Leftover Funds</th><td>{{.Leftover}}</td></tr>
</table>

<h2>Medical Conditions</h2>
{{if .Conditions}}
<table>
<tr><th>Condition</th><th>Medication</th><th>Year Diagnosed</th></tr>
{{range .Conditions}}
<tr><td>{{.Label}}</td><td>{{.Medication}}</td><td>{{if .Year}}{{.Year}}{{end}}</td></tr>
{{end}}
</table>
{{else}}
<p>No conditions reported</p>
{{end}}

{{if .Case.FormData.Notes}}
<h2>Notes</h2>
<p>{{.Case.FormData.Notes}}</p>
{{end}}

{{if .Results}}
<h2>Recommended Carriers</h2>
<table>
<tr><th>Carrier</th><th>Product</th><th>Match</th><th>Reason</th></tr>
{{range .Results}}
<tr><td>{{.Carrier}}</td><td>{{.Product}}</td><td>{{.Percent}}%</td><td>{{.Reason}}</td></tr>
{{end}}
</table>
{{end}}
</body>
</html>
`

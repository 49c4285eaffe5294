package export

import (
	"bytes"
	"fmt"
	"html/template"

	"timekeep/internal/domain/timeentry"
	"timekeep/internal/timesheet"
)

// PrintData is the model behind the printable report page: the flat entry
// rows followed by the client→project summary.
type PrintData struct {
	Title     string
	StartDate string
	EndDate   string
	Entries   []timeentry.TimeEntry
	Summary   timesheet.Summary
}

var printTemplate = template.Must(template.New("print").Funcs(template.FuncMap{
	"hours":    func(h float64) string { return fmt.Sprintf("%.2f", h) },
	"optHours": formatHours,
	"optSales": formatSales,
	"optStr":   orString,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #1a1a1a; }
h1 { font-size: 1.4rem; margin-bottom: 0.25rem; }
h2 { font-size: 1.1rem; margin-bottom: 0.5rem; }
.range { color: #555; margin-bottom: 1.5rem; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5rem; }
th, td { text-align: left; padding: 0.35rem 0.75rem; border-bottom: 1px solid #ddd; }
th { border-bottom: 2px solid #999; }
td.num, th.num { text-align: right; }
tr.subtotal td { font-weight: 600; }
tr.grand td { font-weight: 700; border-top: 2px solid #999; }
@media print { body { margin: 0.5rem; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if or .StartDate .EndDate}}<div class="range">{{.StartDate}}{{if and .StartDate .EndDate}} &ndash; {{end}}{{.EndDate}}</div>{{end}}
<h2>Entries</h2>
<table>
<thead>
<tr><th>Date</th><th>User</th><th>Client</th><th>Project</th><th>Start</th><th>Stop</th><th class="num">Hours</th><th class="num">Sales</th><th>Notes</th></tr>
</thead>
<tbody>
{{range .Entries}}
<tr><td>{{.EntryDate}}</td><td>{{.UserName}}</td><td>{{.ClientName}}</td><td>{{.ProjectName}}</td><td>{{optStr .StartTime}}</td><td>{{optStr .StopTime}}</td><td class="num">{{optHours .DurationHours}}</td><td class="num">{{optSales .SalesCount}}</td><td>{{.Notes}}</td></tr>
{{end}}
</tbody>
</table>
<h2>Summary</h2>
<table>
<thead>
<tr><th>Client</th><th>Project</th><th class="num">Hours</th><th class="num">Sales</th></tr>
</thead>
<tbody>
{{range .Summary.Summary}}
{{$client := .}}
{{range .Projects}}
<tr><td>{{$client.Name}}</td><td>{{.Name}}</td><td class="num">{{hours .Hours}}</td><td class="num">{{.Sales}}</td></tr>
{{end}}
<tr class="subtotal"><td>{{.Name}} total</td><td></td><td class="num">{{hours .TotalHours}}</td><td class="num">{{.TotalSales}}</td></tr>
{{end}}
<tr class="grand"><td>Grand total</td><td></td><td class="num">{{hours .Summary.GrandTotalHours}}</td><td class="num">{{.Summary.GrandTotalSales}}</td></tr>
</tbody>
</table>
<script>window.print()</script>
</body>
</html>
`))

// WritePrintHTML renders the entry table and summary as a self-printing
// HTML page.
func WritePrintHTML(data PrintData) ([]byte, error) {
	if data.Title == "" {
		data.Title = "Time Report"
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render print view: %w", err)
	}

	return buf.Bytes(), nil
}

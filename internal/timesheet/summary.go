package timesheet

import (
	"github.com/google/uuid"

	"timekeep/internal/domain/timeentry"
)

const (
	fallbackClientName  = "Unknown"
	fallbackProjectName = "(No project)"
)

// ProjectTotal is the per-project leaf of the report hierarchy.
type ProjectTotal struct {
	ID    *uuid.UUID `json:"id"`
	Name  string     `json:"name"`
	Hours float64    `json:"hours"`
	Sales int        `json:"sales"`
}

// ClientTotal groups a client's projects with running client-level sums.
type ClientTotal struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Projects   []*ProjectTotal `json:"projects"`
	TotalHours float64         `json:"total_hours"`
	TotalSales int             `json:"total_sales"`
}

// Summary is the full report shape consumed by the UI and the export
// renderers. It is recomputed on every request and never persisted.
type Summary struct {
	Summary         []*ClientTotal `json:"summary"`
	GrandTotalHours float64        `json:"grand_total_hours"`
	GrandTotalSales int            `json:"grand_total_sales"`
}

// noProjectKey buckets entries without a project within a client.
const noProjectKey = "__none__"

// Summarize folds a flat, already-resolved entry list into the
// client→project hierarchy. First-seen order of clients and projects is
// preserved, so the grouping follows the query's ordering (entry date,
// client name, project name). Nil hours and sales count as zero. Entries
// without a client id are skipped; they cannot occur for well-formed rows
// since client is mandatory.
func Summarize(entries []timeentry.TimeEntry) Summary {
	result := Summary{Summary: []*ClientTotal{}}
	clientIndex := make(map[uuid.UUID]*ClientTotal)
	projectIndex := make(map[uuid.UUID]map[string]*ProjectTotal)

	for i := range entries {
		e := &entries[i]
		if e.ClientID == uuid.Nil {
			continue
		}

		ct, ok := clientIndex[e.ClientID]
		if !ok {
			name := e.ClientName
			if name == "" {
				name = fallbackClientName
			}
			ct = &ClientTotal{ID: e.ClientID, Name: name, Projects: []*ProjectTotal{}}
			clientIndex[e.ClientID] = ct
			projectIndex[e.ClientID] = make(map[string]*ProjectTotal)
			result.Summary = append(result.Summary, ct)
		}

		pKey := noProjectKey
		if e.ProjectID != nil {
			pKey = e.ProjectID.String()
		}

		pt, ok := projectIndex[e.ClientID][pKey]
		if !ok {
			name := e.ProjectName
			if name == "" {
				name = fallbackProjectName
			}
			pt = &ProjectTotal{ID: e.ProjectID, Name: name}
			projectIndex[e.ClientID][pKey] = pt
			ct.Projects = append(ct.Projects, pt)
		}

		hours := 0.0
		if e.DurationHours != nil {
			hours = *e.DurationHours
		}
		sales := 0
		if e.SalesCount != nil {
			sales = *e.SalesCount
		}

		pt.Hours += hours
		pt.Sales += sales
		ct.TotalHours += hours
		ct.TotalSales += sales
		result.GrandTotalHours += hours
		result.GrandTotalSales += sales
	}

	return result
}

package timesheet

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timekeep/internal/domain/timeentry"
)

func entry(clientID uuid.UUID, clientName string, projectID *uuid.UUID, projectName string, hours float64, sales int) timeentry.TimeEntry {
	return timeentry.TimeEntry{
		ClientID:      clientID,
		ClientName:    clientName,
		ProjectID:     projectID,
		ProjectName:   projectName,
		DurationHours: &hours,
		SalesCount:    &sales,
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)

	assert.NotNil(t, got.Summary)
	assert.Empty(t, got.Summary)
	assert.Equal(t, 0.0, got.GrandTotalHours)
	assert.Equal(t, 0, got.GrandTotalSales)
}

func TestSummarize_TwoClientsThreeProjects(t *testing.T) {
	clientA := uuid.New()
	clientB := uuid.New()
	p1 := uuid.New()
	p2 := uuid.New()

	entries := []timeentry.TimeEntry{
		entry(clientA, "Acme", &p1, "Website", 2, 1),
		entry(clientA, "Acme", &p2, "Audit", 1, 0),
		entry(clientB, "Globex", nil, "", 3, 2),
	}

	got := Summarize(entries)

	require.Len(t, got.Summary, 2)

	a := got.Summary[0]
	assert.Equal(t, clientA, a.ID)
	assert.Equal(t, "Acme", a.Name)
	require.Len(t, a.Projects, 2)
	assert.Equal(t, 3.0, a.TotalHours)
	assert.Equal(t, 1, a.TotalSales)

	b := got.Summary[1]
	assert.Equal(t, clientB, b.ID)
	require.Len(t, b.Projects, 1)
	assert.Nil(t, b.Projects[0].ID)
	assert.Equal(t, "(No project)", b.Projects[0].Name)
	assert.Equal(t, 3.0, b.TotalHours)
	assert.Equal(t, 2, b.TotalSales)

	assert.Equal(t, 6.0, got.GrandTotalHours)
	assert.Equal(t, 3, got.GrandTotalSales)
}

func TestSummarize_TotalsAreConsistent(t *testing.T) {
	clients := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	projects := []*uuid.UUID{nil, ptr(uuid.New()), ptr(uuid.New())}

	var entries []timeentry.TimeEntry
	for i, c := range clients {
		for j, p := range projects {
			entries = append(entries,
				entry(c, "C", p, "P", float64(i+j)*0.25, i*j),
				entry(c, "C", p, "P", 0.5, 1),
			)
		}
	}

	got := Summarize(entries)

	var clientHours, grandHours float64
	var clientSales, grandSales int
	for _, ct := range got.Summary {
		var projHours float64
		var projSales int
		for _, pt := range ct.Projects {
			projHours += pt.Hours
			projSales += pt.Sales
		}
		assert.Equal(t, ct.TotalHours, projHours, "client total must equal sum of its projects")
		assert.Equal(t, ct.TotalSales, projSales)
		clientHours += ct.TotalHours
		clientSales += ct.TotalSales
	}
	grandHours = got.GrandTotalHours
	grandSales = got.GrandTotalSales

	assert.Equal(t, grandHours, clientHours, "grand total must equal sum of client totals")
	assert.Equal(t, grandSales, clientSales)
}

func TestSummarize_NilMetricsCountAsZero(t *testing.T) {
	clientID := uuid.New()
	open := timeentry.TimeEntry{ClientID: clientID, ClientName: "Acme"}

	got := Summarize([]timeentry.TimeEntry{open})

	require.Len(t, got.Summary, 1)
	assert.Equal(t, 0.0, got.Summary[0].TotalHours)
	assert.Equal(t, 0, got.Summary[0].TotalSales)
}

func TestSummarize_NameFallbacks(t *testing.T) {
	clientID := uuid.New()
	projectID := uuid.New()

	got := Summarize([]timeentry.TimeEntry{
		entry(clientID, "", &projectID, "", 1, 0),
	})

	require.Len(t, got.Summary, 1)
	assert.Equal(t, "Unknown", got.Summary[0].Name)
	require.Len(t, got.Summary[0].Projects, 1)
	assert.Equal(t, "(No project)", got.Summary[0].Projects[0].Name)
}

func TestSummarize_SkipsEntriesWithoutClient(t *testing.T) {
	got := Summarize([]timeentry.TimeEntry{
		entry(uuid.Nil, "orphan", nil, "", 5, 5),
	})

	assert.Empty(t, got.Summary)
	assert.Equal(t, 0.0, got.GrandTotalHours)
}

func TestSummarize_PreservesFirstSeenOrder(t *testing.T) {
	clientA := uuid.New()
	clientB := uuid.New()
	p1 := uuid.New()
	p2 := uuid.New()

	entries := []timeentry.TimeEntry{
		entry(clientB, "Zebra", &p2, "Late", 1, 0),
		entry(clientA, "Acme", &p1, "Early", 1, 0),
		entry(clientB, "Zebra", &p1, "Other", 1, 0),
	}

	got := Summarize(entries)

	require.Len(t, got.Summary, 2)
	assert.Equal(t, "Zebra", got.Summary[0].Name)
	assert.Equal(t, "Acme", got.Summary[1].Name)
	require.Len(t, got.Summary[0].Projects, 2)
	assert.Equal(t, "Late", got.Summary[0].Projects[0].Name)
}

func ptr[T any](v T) *T { return &v }

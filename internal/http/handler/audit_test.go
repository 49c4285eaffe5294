package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timekeep/internal/audit"
)

// capturingQuerier records the filter it was asked for.
type capturingQuerier struct {
	filter audit.QueryFilter
	events []*audit.Event
}

func (q *capturingQuerier) Query(_ context.Context, filter audit.QueryFilter) ([]*audit.Event, error) {
	q.filter = filter
	return q.events, nil
}

func TestListEventsPassesFilterThrough(t *testing.T) {
	actorID := uuid.New()
	querier := &capturingQuerier{events: []*audit.Event{
		{ID: uuid.New(), ActorID: &actorID, ResourceType: audit.ResourceTypeClient, Action: audit.ActionCreate, Status: audit.StatusSuccess},
	}}
	h := NewAuditHandler(querier)

	c, rec := jsonContext(t, http.MethodGet,
		"/api/audit?actor_id="+actorID.String()+
			"&resource_type=client&action=create&status=success"+
			"&since=2026-03-01T00:00:00Z&limit=25&offset=50", nil)
	asIdentity(c, uuid.New(), true)

	require.NoError(t, h.ListEvents(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, querier.filter.ActorID)
	assert.Equal(t, actorID, *querier.filter.ActorID)
	require.NotNil(t, querier.filter.ResourceType)
	assert.Equal(t, audit.ResourceTypeClient, *querier.filter.ResourceType)
	require.NotNil(t, querier.filter.Action)
	assert.Equal(t, audit.ActionCreate, *querier.filter.Action)
	require.NotNil(t, querier.filter.Status)
	assert.Equal(t, audit.StatusSuccess, *querier.filter.Status)
	require.NotNil(t, querier.filter.StartTime)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), querier.filter.StartTime.UTC())
	assert.Equal(t, 25, querier.filter.Limit)
	assert.Equal(t, 50, querier.filter.Offset)

	var events []*audit.Event
	decodeBody(t, rec, &events)
	require.Len(t, events, 1)
	assert.Equal(t, "client", string(events[0].ResourceType))
}

func TestListEventsUnfiltered(t *testing.T) {
	querier := &capturingQuerier{}
	h := NewAuditHandler(querier)

	c, rec := jsonContext(t, http.MethodGet, "/api/audit", nil)
	asIdentity(c, uuid.New(), true)

	require.NoError(t, h.ListEvents(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, audit.QueryFilter{}, querier.filter)
}

func TestListEventsCapsLimit(t *testing.T) {
	querier := &capturingQuerier{}
	h := NewAuditHandler(querier)

	c, rec := jsonContext(t, http.MethodGet, "/api/audit?limit=10000", nil)
	asIdentity(c, uuid.New(), true)

	require.NoError(t, h.ListEvents(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, maxAuditPageSize, querier.filter.Limit)
}

func TestListEventsRejectsBadParams(t *testing.T) {
	cases := map[string]string{
		"actor_id": "/api/audit?actor_id=not-a-uuid",
		"since":    "/api/audit?since=yesterday",
		"limit":    "/api/audit?limit=zero",
		"offset":   "/api/audit?offset=-1",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			h := NewAuditHandler(&capturingQuerier{})

			c, rec := jsonContext(t, http.MethodGet, target, nil)
			asIdentity(c, uuid.New(), true)

			require.NoError(t, h.ListEvents(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timekeep/internal/domain/client"
	"timekeep/internal/domain/project"
	"timekeep/internal/domain/timeentry"
	"timekeep/internal/domain/user"
)

type entryFixture struct {
	handler *TimeEntryHandler
	entries *fakeEntryRepo
	users   *fakeUserRepo
	client  *client.Client
	project *project.Project
}

func newEntryFixture(entries ...*timeentry.TimeEntry) *entryFixture {
	cl := &client.Client{ID: uuid.New(), Name: "Acme", Active: true}
	proj := &project.Project{ID: uuid.New(), ClientID: cl.ID, Name: "Redesign", Active: true}

	entryRepo := newFakeEntryRepo(entries...)
	userRepo := newFakeUserRepo()

	return &entryFixture{
		handler: NewTimeEntryHandler(
			entryRepo,
			newFakeClientRepo(cl),
			newFakeProjectRepo(proj),
			userRepo,
			noopAudit{},
		),
		entries: entryRepo,
		users:   userRepo,
		client:  cl,
		project: proj,
	}
}

func TestCreateEntryComputesDuration(t *testing.T) {
	fx := newEntryFixture()

	c, rec := jsonContext(t, http.MethodPost, "/api/time-entries", CreateTimeEntryRequest{
		ClientID:  fx.client.ID,
		ProjectID: &fx.project.ID,
		EntryDate: "2026-03-10",
		StartTime: ptr("09:00"),
		StopTime:  ptr("11:23"),
		Notes:     "  morning block  ",
	})
	identity := asIdentity(c, uuid.New(), false)

	require.NoError(t, fx.handler.CreateEntry(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created timeentry.TimeEntry
	decodeBody(t, rec, &created)
	assert.Equal(t, identity.UserID, created.UserID)
	require.NotNil(t, created.DurationHours)
	assert.Equal(t, 2.5, *created.DurationHours) // 143 min, remainder 8 rounds up
	assert.Equal(t, "morning block", created.Notes)
}

func TestCreateEntryOpenHasNilDuration(t *testing.T) {
	fx := newEntryFixture()

	c, rec := jsonContext(t, http.MethodPost, "/api/time-entries", CreateTimeEntryRequest{
		ClientID:  fx.client.ID,
		EntryDate: "2026-03-10",
		StartTime: ptr("09:00"),
	})
	asIdentity(c, uuid.New(), false)

	require.NoError(t, fx.handler.CreateEntry(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created timeentry.TimeEntry
	decodeBody(t, rec, &created)
	assert.Nil(t, created.StopTime)
	assert.Nil(t, created.DurationHours)
}

func TestCreateEntryNonAdminCannotTargetOthers(t *testing.T) {
	fx := newEntryFixture()
	other := uuid.New()

	c, rec := jsonContext(t, http.MethodPost, "/api/time-entries", CreateTimeEntryRequest{
		UserID:    &other,
		ClientID:  fx.client.ID,
		EntryDate: "2026-03-10",
	})
	asIdentity(c, uuid.New(), false)

	require.NoError(t, fx.handler.CreateEntry(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateEntryAdminOnBehalfRequiresActiveTarget(t *testing.T) {
	fx := newEntryFixture()
	target := &user.User{ID: uuid.New(), Username: "bob", DisplayName: "Bob", Active: false}
	fx.users.users[target.ID] = target

	c, rec := jsonContext(t, http.MethodPost, "/api/time-entries", CreateTimeEntryRequest{
		UserID:    &target.ID,
		ClientID:  fx.client.ID,
		EntryDate: "2026-03-10",
	})
	asIdentity(c, uuid.New(), true)

	require.NoError(t, fx.handler.CreateEntry(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, msgTargetUserInactive, body[jsonKeyError])
}

func TestCreateEntryRejectsInactiveClient(t *testing.T) {
	fx := newEntryFixture()
	fx.client.Active = false

	c, rec := jsonContext(t, http.MethodPost, "/api/time-entries", CreateTimeEntryRequest{
		ClientID:  fx.client.ID,
		EntryDate: "2026-03-10",
	})
	asIdentity(c, uuid.New(), false)

	require.NoError(t, fx.handler.CreateEntry(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, msgClientInactive, body[jsonKeyError])
}

func TestCreateEntryRejectsProjectOfOtherClient(t *testing.T) {
	fx := newEntryFixture()
	otherClient := &client.Client{ID: uuid.New(), Name: "Beta", Active: true}
	fx.handler.clientRepo.(*fakeClientRepo).clients[otherClient.ID] = otherClient

	c, rec := jsonContext(t, http.MethodPost, "/api/time-entries", CreateTimeEntryRequest{
		ClientID:  otherClient.ID,
		ProjectID: &fx.project.ID,
		EntryDate: "2026-03-10",
	})
	asIdentity(c, uuid.New(), false)

	require.NoError(t, fx.handler.CreateEntry(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, msgProjectClientMismatch, body[jsonKeyError])
}

func TestCreateEntryRejectsBadDate(t *testing.T) {
	fx := newEntryFixture()

	c, rec := jsonContext(t, http.MethodPost, "/api/time-entries", CreateTimeEntryRequest{
		ClientID:  fx.client.ID,
		EntryDate: "03/10/2026",
	})
	asIdentity(c, uuid.New(), false)

	require.NoError(t, fx.handler.CreateEntry(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEntriesFiltersByDate(t *testing.T) {
	userID := uuid.New()
	fx := newEntryFixture()

	mk := func(date string) *timeentry.TimeEntry {
		return &timeentry.TimeEntry{ID: uuid.New(), UserID: userID, ClientID: fx.client.ID, EntryDate: date}
	}
	fx.entries.entries[uuid.New()] = mk("2026-03-10")
	e := mk("2026-03-11")
	fx.entries.entries[e.ID] = e

	c, rec := jsonContext(t, http.MethodGet, "/api/time-entries?date=2026-03-11", nil)
	asIdentity(c, userID, false)

	require.NoError(t, fx.handler.ListEntries(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []timeentry.TimeEntry
	decodeBody(t, rec, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-03-11", entries[0].EntryDate)
}

// Read queries silently scope non-admins to themselves instead of erroring
// on a foreign user_id.
func TestListEntriesNonAdminIgnoresUserIDParam(t *testing.T) {
	aliceID, bobID := uuid.New(), uuid.New()
	fx := newEntryFixture(
		&timeentry.TimeEntry{ID: uuid.New(), UserID: aliceID, ClientID: uuid.New(), EntryDate: "2026-03-10"},
		&timeentry.TimeEntry{ID: uuid.New(), UserID: bobID, ClientID: uuid.New(), EntryDate: "2026-03-10"},
	)

	c, rec := jsonContext(t, http.MethodGet, "/api/time-entries?user_id="+bobID.String(), nil)
	asIdentity(c, aliceID, false)

	require.NoError(t, fx.handler.ListEntries(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []timeentry.TimeEntry
	decodeBody(t, rec, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, aliceID, entries[0].UserID)
}

func TestListEntriesAdminMayTargetOtherUser(t *testing.T) {
	aliceID, bobID := uuid.New(), uuid.New()
	fx := newEntryFixture(
		&timeentry.TimeEntry{ID: uuid.New(), UserID: aliceID, ClientID: uuid.New(), EntryDate: "2026-03-10"},
		&timeentry.TimeEntry{ID: uuid.New(), UserID: bobID, ClientID: uuid.New(), EntryDate: "2026-03-10"},
	)

	c, rec := jsonContext(t, http.MethodGet, "/api/time-entries?user_id="+bobID.String(), nil)
	asIdentity(c, uuid.New(), true)

	require.NoError(t, fx.handler.ListEntries(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []timeentry.TimeEntry
	decodeBody(t, rec, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, bobID, entries[0].UserID)
}

func TestHistoryNonAdminIgnoresUserIDParam(t *testing.T) {
	aliceID, bobID := uuid.New(), uuid.New()
	fx := newEntryFixture(
		&timeentry.TimeEntry{ID: uuid.New(), UserID: aliceID, ClientID: uuid.New(), EntryDate: "2026-03-10", DurationHours: ptr(2.0)},
		&timeentry.TimeEntry{ID: uuid.New(), UserID: bobID, ClientID: uuid.New(), EntryDate: "2026-03-10", DurationHours: ptr(5.0)},
	)

	c, rec := jsonContext(t, http.MethodGet, "/api/time-entries/history?user_id="+bobID.String(), nil)
	asIdentity(c, aliceID, false)

	require.NoError(t, fx.handler.History(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var totals []timeentry.DayTotal
	decodeBody(t, rec, &totals)
	require.Len(t, totals, 1)
	assert.Equal(t, 2.0, totals[0].TotalHours)
}

func TestListEntriesEmptyIsArray(t *testing.T) {
	fx := newEntryFixture()

	c, rec := jsonContext(t, http.MethodGet, "/api/time-entries", nil)
	asIdentity(c, uuid.New(), false)

	require.NoError(t, fx.handler.ListEntries(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestUpdateEntryClearStopReopens(t *testing.T) {
	userID := uuid.New()
	fx := newEntryFixture()

	existing := &timeentry.TimeEntry{
		ID:            uuid.New(),
		UserID:        userID,
		ClientID:      fx.client.ID,
		EntryDate:     "2026-03-10",
		StartTime:     ptr("09:00"),
		StopTime:      ptr("11:00"),
		DurationHours: ptr(2.0),
	}
	fx.entries.entries[existing.ID] = existing

	c, rec := jsonContext(t, http.MethodPut, "/api/time-entries/"+existing.ID.String(), UpdateTimeEntryRequest{
		ClearStop: true,
	})
	c.SetParamNames(paramID)
	c.SetParamValues(existing.ID.String())
	asIdentity(c, userID, false)

	require.NoError(t, fx.handler.UpdateEntry(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated timeentry.TimeEntry
	decodeBody(t, rec, &updated)
	assert.Nil(t, updated.StopTime)
	assert.Nil(t, updated.DurationHours)
	require.NotNil(t, updated.StartTime)
	assert.Equal(t, "09:00", *updated.StartTime)
}

func TestUpdateEntryClientChangeDropsProject(t *testing.T) {
	userID := uuid.New()
	fx := newEntryFixture()
	otherClient := &client.Client{ID: uuid.New(), Name: "Beta", Active: true}
	fx.handler.clientRepo.(*fakeClientRepo).clients[otherClient.ID] = otherClient

	existing := &timeentry.TimeEntry{
		ID:        uuid.New(),
		UserID:    userID,
		ClientID:  fx.client.ID,
		ProjectID: &fx.project.ID,
		EntryDate: "2026-03-10",
	}
	fx.entries.entries[existing.ID] = existing

	c, rec := jsonContext(t, http.MethodPut, "/api/time-entries/"+existing.ID.String(), UpdateTimeEntryRequest{
		ClientID: &otherClient.ID,
	})
	c.SetParamNames(paramID)
	c.SetParamValues(existing.ID.String())
	asIdentity(c, userID, false)

	require.NoError(t, fx.handler.UpdateEntry(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated timeentry.TimeEntry
	decodeBody(t, rec, &updated)
	assert.Equal(t, otherClient.ID, updated.ClientID)
	assert.Nil(t, updated.ProjectID)
}

func TestUpdateEntryRecomputesDuration(t *testing.T) {
	userID := uuid.New()
	fx := newEntryFixture()

	existing := &timeentry.TimeEntry{
		ID:            uuid.New(),
		UserID:        userID,
		ClientID:      fx.client.ID,
		EntryDate:     "2026-03-10",
		StartTime:     ptr("09:00"),
		StopTime:      ptr("10:00"),
		DurationHours: ptr(1.0),
	}
	fx.entries.entries[existing.ID] = existing

	c, rec := jsonContext(t, http.MethodPut, "/api/time-entries/"+existing.ID.String(), UpdateTimeEntryRequest{
		StopTime: ptr("12:30"),
	})
	c.SetParamNames(paramID)
	c.SetParamValues(existing.ID.String())
	asIdentity(c, userID, false)

	require.NoError(t, fx.handler.UpdateEntry(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated timeentry.TimeEntry
	decodeBody(t, rec, &updated)
	require.NotNil(t, updated.DurationHours)
	assert.Equal(t, 3.5, *updated.DurationHours)
}

func TestUpdateEntryOfOtherUserForbidden(t *testing.T) {
	fx := newEntryFixture()

	existing := &timeentry.TimeEntry{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ClientID:  fx.client.ID,
		EntryDate: "2026-03-10",
	}
	fx.entries.entries[existing.ID] = existing

	c, rec := jsonContext(t, http.MethodPut, "/api/time-entries/"+existing.ID.String(), UpdateTimeEntryRequest{
		Notes: ptr("hijack"),
	})
	c.SetParamNames(paramID)
	c.SetParamValues(existing.ID.String())
	asIdentity(c, uuid.New(), false)

	require.NoError(t, fx.handler.UpdateEntry(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteEntry(t *testing.T) {
	userID := uuid.New()
	fx := newEntryFixture()

	existing := &timeentry.TimeEntry{
		ID:        uuid.New(),
		UserID:    userID,
		ClientID:  fx.client.ID,
		EntryDate: "2026-03-10",
	}
	fx.entries.entries[existing.ID] = existing

	c, rec := jsonContext(t, http.MethodDelete, "/api/time-entries/"+existing.ID.String(), nil)
	c.SetParamNames(paramID)
	c.SetParamValues(existing.ID.String())
	asIdentity(c, userID, false)

	require.NoError(t, fx.handler.DeleteEntry(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, fx.entries.entries)
}

func TestPurgeRequiresConfirmPhrase(t *testing.T) {
	fx := newEntryFixture(&timeentry.TimeEntry{
		ID: uuid.New(), UserID: uuid.New(), ClientID: uuid.New(), EntryDate: "2026-01-05",
	})

	c, rec := jsonContext(t, http.MethodPost, "/api/time-entries/purge", PurgeRequest{
		Confirm: "purge",
	})
	asIdentity(c, uuid.New(), true)

	require.NoError(t, fx.handler.PurgeEntries(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, msgPurgeConfirmRequired, body[jsonKeyError])
	assert.Len(t, fx.entries.entries, 1)
}

func TestPurgeScopedByDateRange(t *testing.T) {
	userID := uuid.New()
	old := &timeentry.TimeEntry{ID: uuid.New(), UserID: userID, ClientID: uuid.New(), EntryDate: "2025-06-01"}
	recent := &timeentry.TimeEntry{ID: uuid.New(), UserID: userID, ClientID: uuid.New(), EntryDate: "2026-03-01"}
	fx := newEntryFixture(old, recent)

	c, rec := jsonContext(t, http.MethodPost, "/api/time-entries/purge", PurgeRequest{
		Confirm: purgeConfirmPhrase,
		EndDate: ptr("2025-12-31"),
	})
	asIdentity(c, uuid.New(), true)

	require.NoError(t, fx.handler.PurgeEntries(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PurgeResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, int64(1), resp.Deleted)
	assert.Contains(t, fx.entries.entries, recent.ID)
	assert.NotContains(t, fx.entries.entries, old.ID)
}

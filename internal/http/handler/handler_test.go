package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"timekeep/internal/audit"
	"timekeep/internal/auth"
	"timekeep/internal/domain/client"
	"timekeep/internal/domain/payperiod"
	"timekeep/internal/domain/project"
	"timekeep/internal/domain/script"
	"timekeep/internal/domain/timeentry"
	"timekeep/internal/domain/user"
	"timekeep/internal/payroll"
	apperrors "timekeep/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

// noopAudit satisfies AuditLogger without touching a database.
type noopAudit struct{}

func (noopAudit) LogFromContext(echo.Context, audit.ResourceType, *uuid.UUID, audit.Action, audit.Status, map[string]any) error {
	return nil
}

func (noopAudit) LogError(echo.Context, audit.ResourceType, *uuid.UUID, audit.Action, error) error {
	return nil
}

func jsonContext(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	return c, rec
}

func asIdentity(c echo.Context, id uuid.UUID, admin bool) auth.Identity {
	identity := auth.Identity{
		UserID:      id,
		Username:    "tester",
		DisplayName: "Tester",
		IsAdmin:     admin,
	}
	c.Set(auth.ContextKeyIdentity, identity)
	return identity
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

// fakeUserRepo backs the auth and user handlers in tests.
type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, input user.CreateUserInput) (*user.User, error) {
	u := &user.User{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: input.PasswordHash,
		DisplayName:  input.DisplayName,
		IsAdmin:      input.IsAdmin,
		Active:       true,
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, notFoundErr("user not found")
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, notFoundErr("user not found")
}

func (r *fakeUserRepo) List(_ context.Context) ([]*user.User, error) {
	var out []*user.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id uuid.UUID, input user.UpdateUserInput) error {
	u, ok := r.users[id]
	if !ok {
		return notFoundErr("user not found")
	}
	if input.DisplayName != nil {
		u.DisplayName = *input.DisplayName
	}
	if input.IsAdmin != nil {
		u.IsAdmin = *input.IsAdmin
	}
	if input.Active != nil {
		u.Active = *input.Active
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return notFoundErr("user not found")
	}
	u.PasswordHash = hash
	return nil
}

// fakeClientRepo serves ClientGetter and ClientRepository.
type fakeClientRepo struct {
	clients map[uuid.UUID]*client.Client
}

func newFakeClientRepo(clients ...*client.Client) *fakeClientRepo {
	repo := &fakeClientRepo{clients: map[uuid.UUID]*client.Client{}}
	for _, c := range clients {
		repo.clients[c.ID] = c
	}
	return repo
}

func (r *fakeClientRepo) Create(_ context.Context, input client.CreateClientInput) (*client.Client, error) {
	c := &client.Client{ID: uuid.New(), Name: input.Name, Active: true}
	r.clients[c.ID] = c
	return c, nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id uuid.UUID) (*client.Client, error) {
	if c, ok := r.clients[id]; ok {
		return c, nil
	}
	return nil, notFoundErr("client not found")
}

func (r *fakeClientRepo) List(_ context.Context) ([]*client.Client, error) {
	var out []*client.Client
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClientRepo) Update(_ context.Context, id uuid.UUID, input client.UpdateClientInput) error {
	c, ok := r.clients[id]
	if !ok {
		return notFoundErr("client not found")
	}
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Active != nil {
		c.Active = *input.Active
	}
	return nil
}

func (r *fakeClientRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	c, ok := r.clients[id]
	if !ok {
		return notFoundErr("client not found")
	}
	c.Active = false
	return nil
}

// fakeProjectRepo serves ProjectGetter.
type fakeProjectRepo struct {
	projects map[uuid.UUID]*project.Project
}

func newFakeProjectRepo(projects ...*project.Project) *fakeProjectRepo {
	repo := &fakeProjectRepo{projects: map[uuid.UUID]*project.Project{}}
	for _, p := range projects {
		repo.projects[p.ID] = p
	}
	return repo
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*project.Project, error) {
	if p, ok := r.projects[id]; ok {
		return p, nil
	}
	return nil, notFoundErr("project not found")
}

// fakeEntryRepo is an in-memory TimeEntryRepository.
type fakeEntryRepo struct {
	entries map[uuid.UUID]*timeentry.TimeEntry
	purged  int64
}

func newFakeEntryRepo(entries ...*timeentry.TimeEntry) *fakeEntryRepo {
	repo := &fakeEntryRepo{entries: map[uuid.UUID]*timeentry.TimeEntry{}}
	for _, e := range entries {
		repo.entries[e.ID] = e
	}
	return repo
}

func (r *fakeEntryRepo) Create(_ context.Context, input timeentry.CreateTimeEntryInput) (*timeentry.TimeEntry, error) {
	e := &timeentry.TimeEntry{
		ID:            uuid.New(),
		UserID:        input.UserID,
		ClientID:      input.ClientID,
		ProjectID:     input.ProjectID,
		EntryDate:     input.EntryDate,
		StartTime:     input.StartTime,
		StopTime:      input.StopTime,
		SalesCount:    input.SalesCount,
		DurationHours: input.DurationHours,
		Notes:         input.Notes,
	}
	r.entries[e.ID] = e
	return e, nil
}

func (r *fakeEntryRepo) GetByID(_ context.Context, id uuid.UUID) (*timeentry.TimeEntry, error) {
	if e, ok := r.entries[id]; ok {
		return e, nil
	}
	return nil, notFoundErr("entry not found")
}

func (r *fakeEntryRepo) ListForDay(_ context.Context, userID uuid.UUID, date *string) ([]timeentry.TimeEntry, error) {
	var out []timeentry.TimeEntry
	for _, e := range r.entries {
		if e.UserID != userID {
			continue
		}
		if date != nil && e.EntryDate != *date {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEntryRepo) ListResolved(_ context.Context, filter timeentry.ListFilter) ([]timeentry.TimeEntry, error) {
	var out []timeentry.TimeEntry
	for _, e := range r.entries {
		if filter.UserID != nil && e.UserID != *filter.UserID {
			continue
		}
		if filter.ClientID != nil && e.ClientID != *filter.ClientID {
			continue
		}
		if filter.StartDate != nil && e.EntryDate < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && e.EntryDate > *filter.EndDate {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEntryRepo) History(_ context.Context, userID uuid.UUID) ([]timeentry.DayTotal, error) {
	totals := map[string]*timeentry.DayTotal{}
	for _, e := range r.entries {
		if e.UserID != userID {
			continue
		}
		t, ok := totals[e.EntryDate]
		if !ok {
			t = &timeentry.DayTotal{EntryDate: e.EntryDate}
			totals[e.EntryDate] = t
		}
		t.EntryCount++
		if e.DurationHours != nil {
			t.TotalHours += *e.DurationHours
		}
	}
	var out []timeentry.DayTotal
	for _, t := range totals {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeEntryRepo) Update(_ context.Context, id uuid.UUID, input timeentry.UpdateTimeEntryInput) error {
	e, ok := r.entries[id]
	if !ok {
		return notFoundErr("entry not found")
	}
	e.ClientID = input.ClientID
	e.ProjectID = input.ProjectID
	e.EntryDate = input.EntryDate
	e.StartTime = input.StartTime
	e.StopTime = input.StopTime
	e.SalesCount = input.SalesCount
	e.DurationHours = input.DurationHours
	e.Notes = input.Notes
	return nil
}

func (r *fakeEntryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.entries[id]; !ok {
		return notFoundErr("entry not found")
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeEntryRepo) Purge(_ context.Context, filter timeentry.PurgeFilter) (int64, error) {
	var count int64
	for id, e := range r.entries {
		if filter.UserID != nil && e.UserID != *filter.UserID {
			continue
		}
		if filter.StartDate != nil && e.EntryDate < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && e.EntryDate > *filter.EndDate {
			continue
		}
		delete(r.entries, id)
		count++
	}
	r.purged += count
	return count, nil
}

// fakePeriodRepo is an in-memory PayPeriodRepository.
type fakePeriodRepo struct {
	periods map[uuid.UUID]*payperiod.PayPeriod
}

func newFakePeriodRepo(periods ...*payperiod.PayPeriod) *fakePeriodRepo {
	repo := &fakePeriodRepo{periods: map[uuid.UUID]*payperiod.PayPeriod{}}
	for _, p := range periods {
		repo.periods[p.ID] = p
	}
	return repo
}

func (r *fakePeriodRepo) Create(_ context.Context, input payperiod.CreatePayPeriodInput) (*payperiod.PayPeriod, error) {
	p := &payperiod.PayPeriod{
		ID:           uuid.New(),
		PeriodNumber: input.PeriodNumber,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Label:        input.Label,
	}
	r.periods[p.ID] = p
	return p, nil
}

func (r *fakePeriodRepo) GetByID(_ context.Context, id uuid.UUID) (*payperiod.PayPeriod, error) {
	if p, ok := r.periods[id]; ok {
		return p, nil
	}
	return nil, notFoundErr("pay period not found")
}

func (r *fakePeriodRepo) List(_ context.Context) ([]*payperiod.PayPeriod, error) {
	var out []*payperiod.PayPeriod
	for _, p := range r.periods {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePeriodRepo) ForDate(_ context.Context, date string) (*payperiod.PayPeriod, error) {
	for _, p := range r.periods {
		if p.StartDate <= date && date <= p.EndDate {
			return p, nil
		}
	}
	return nil, notFoundErr("pay period not found")
}

func (r *fakePeriodRepo) Update(_ context.Context, id uuid.UUID, input payperiod.UpdatePayPeriodInput) error {
	p, ok := r.periods[id]
	if !ok {
		return notFoundErr("pay period not found")
	}
	if input.PeriodNumber != nil {
		p.PeriodNumber = *input.PeriodNumber
	}
	if input.StartDate != nil {
		p.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		p.EndDate = *input.EndDate
	}
	if input.Label != nil {
		p.Label = input.Label
	}
	return nil
}

func (r *fakePeriodRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.periods[id]; !ok {
		return notFoundErr("pay period not found")
	}
	delete(r.periods, id)
	return nil
}

func (r *fakePeriodRepo) MaxPeriodNumber(_ context.Context) (int, error) {
	max := 0
	for _, p := range r.periods {
		if p.PeriodNumber > max {
			max = p.PeriodNumber
		}
	}
	return max, nil
}

func (r *fakePeriodRepo) GenerateYear(_ context.Context, year int, specs []payroll.PeriodSpec) ([]*payperiod.PayPeriod, error) {
	prefix := fmt.Sprintf("%d-", year)
	for _, p := range r.periods {
		if strings.HasPrefix(p.StartDate, prefix) {
			return nil, apperrors.Conflict(fmt.Sprintf("pay periods for %d already exist", year))
		}
	}

	var out []*payperiod.PayPeriod
	for _, spec := range specs {
		label := spec.Label
		p := &payperiod.PayPeriod{
			ID:           uuid.New(),
			PeriodNumber: spec.Number,
			StartDate:    spec.StartDate,
			EndDate:      spec.EndDate,
			Label:        &label,
		}
		r.periods[p.ID] = p
		out = append(out, p)
	}
	return out, nil
}

// fakeScriptRepo is an in-memory ScriptRepository.
type fakeScriptRepo struct {
	scripts map[uuid.UUID]*script.Script
}

func newFakeScriptRepo(scripts ...*script.Script) *fakeScriptRepo {
	repo := &fakeScriptRepo{scripts: map[uuid.UUID]*script.Script{}}
	for _, s := range scripts {
		repo.scripts[s.ID] = s
	}
	return repo
}

func (r *fakeScriptRepo) Create(_ context.Context, input script.CreateScriptInput) (*script.Script, error) {
	s := &script.Script{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Content:     input.Content,
		FontSize:    input.FontSize,
		FgColor:     input.FgColor,
		BgColor:     input.BgColor,
		ScrollSpeed: input.ScrollSpeed,
		SortOrder:   input.SortOrder,
		Active:      true,
	}
	r.scripts[s.ID] = s
	return s, nil
}

func (r *fakeScriptRepo) GetByID(_ context.Context, id uuid.UUID) (*script.Script, error) {
	if s, ok := r.scripts[id]; ok {
		return s, nil
	}
	return nil, notFoundErr("script not found")
}

func (r *fakeScriptRepo) ListVisible(_ context.Context, viewerID uuid.UUID, isAdmin bool) ([]*script.Script, error) {
	var out []*script.Script
	for _, s := range r.scripts {
		if !s.Active {
			continue
		}
		if !isAdmin && s.OwnerID != nil && *s.OwnerID != viewerID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeScriptRepo) Update(_ context.Context, id uuid.UUID, input script.UpdateScriptInput) error {
	s, ok := r.scripts[id]
	if !ok {
		return notFoundErr("script not found")
	}
	s.OwnerID = input.OwnerID
	s.Title = input.Title
	s.Content = input.Content
	s.FontSize = input.FontSize
	s.FgColor = input.FgColor
	s.BgColor = input.BgColor
	s.ScrollSpeed = input.ScrollSpeed
	s.SortOrder = input.SortOrder
	return nil
}

func (r *fakeScriptRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	s, ok := r.scripts[id]
	if !ok {
		return notFoundErr("script not found")
	}
	s.Active = false
	return nil
}

func notFoundErr(msg string) error {
	return apperrors.NotFound(msg)
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dangerclosesec/crmboard/internal/auth"
	"github.com/dangerclosesec/crmboard/internal/database"
	"github.com/dangerclosesec/crmboard/internal/handler"
	"github.com/dangerclosesec/crmboard/internal/metrics"
	"github.com/dangerclosesec/crmboard/internal/model"
	"github.com/dangerclosesec/crmboard/internal/realtime"
	"github.com/dangerclosesec/crmboard/internal/repository"
	"github.com/dangerclosesec/crmboard/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type api struct {
	t      *testing.T
	server *httptest.Server
	tokens *auth.TokenManager
	hub    *realtime.Hub
	orgID  uuid.UUID
	token  string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	db := database.OpenTest(t)
	m := metrics.New()
	hub := realtime.NewHub(realtime.DefaultBuffer, m)
	t.Cleanup(hub.Close)

	activity := service.NewActivityService(repository.NewActivityLogRepository(db))
	cache := service.NewCacheService(service.CacheConfig{Size: 64, TTL: time.Minute})
	stages := repository.NewStageRepository(db)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := handler.NewRouter(handler.Deps{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		TokenManager: tokens,
		Metrics:      m,
		Hub:          hub,
		Pipelines: service.NewPipelineService(repository.NewPipelineRepository(db), stages,
			repository.NewBatchRepository(db), cache, hub, activity),
		Cards: service.NewCardService(repository.NewCardRepository(db), stages,
			repository.NewClientRepository(db), cache, hub, activity, m),
		Clients:     service.NewClientService(repository.NewClientRepository(db), activity),
		Calendar:    service.NewCalendarService(repository.NewCalendarRepository(db)),
		Activity:    activity,
		CORSOrigins: []string{"*"},
		Version:     "test",
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	a := &api{t: t, server: server, tokens: tokens, hub: hub}
	a.orgID, a.token = a.tenant()
	return a
}

// tenant mints a token for a fresh organization.
func (a *api) tenant() (uuid.UUID, string) {
	orgID := uuid.New()
	token, err := a.tokens.Generate("user-"+orgID.String()[:8], "ann@acme.io", orgID)
	require.NoError(a.t, err)
	return orgID, token
}

func (a *api) do(method, path string, body any) *http.Response {
	return a.doAs(a.token, method, path, body)
}

func (a *api) doAs(token, method, path string, body any) *http.Response {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.server.Client().Do(req)
	require.NoError(a.t, err)
	a.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (a *api) createPipeline(stages ...string) model.Pipeline {
	a.t.Helper()
	body := map[string]any{"name": "Sales"}
	var list []map[string]any
	for _, s := range stages {
		list = append(list, map[string]any{"name": s})
	}
	body["stages"] = list

	resp := a.do(http.MethodPost, "/api/pipeline", body)
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)
	return decode[model.Pipeline](a.t, resp)
}

func TestHealthAndMetrics(t *testing.T) {
	a := newAPI(t)

	resp := a.doAs("", http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.doAs("", http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.doAs("", http.MethodGet, "/api/pipeline", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateCardThenMove(t *testing.T) {
	a := newAPI(t)
	p := a.createPipeline("Lead", "Closed")
	lead, closed := p.Stages[0], p.Stages[1]

	resp := a.do(http.MethodPost, "/api/pipeline/cards", map[string]any{
		"title":      "Acme Deal",
		"stageId":    lead.ID,
		"pipelineId": p.ID,
		"priority":   "high",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	card := decode[model.Card](t, resp)
	assert.Equal(t, 0, card.Position)
	assert.Equal(t, model.PriorityHigh, card.Priority)

	resp = a.do(http.MethodPatch, "/api/pipeline/cards/move", map[string]any{
		"cardId":      card.ID,
		"newStageId":  closed.ID,
		"newPosition": 0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	moved := decode[model.Card](t, resp)
	assert.Equal(t, closed.ID, moved.StageID)
	assert.Equal(t, 0, moved.Position)
	assert.Nil(t, moved.ClientID)
}

func TestMoveIntoClosedStageCreatesClient(t *testing.T) {
	a := newAPI(t)
	p := a.createPipeline("Lead", "Won")

	// mark the second stage terminal
	resp := a.do(http.MethodPut, "/api/pipeline/stages", map[string]any{"id": p.Stages[1].ID, "kind": "closed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.do(http.MethodPost, "/api/pipeline/cards", map[string]any{
		"title":       "Globex renewal",
		"stageId":     p.Stages[0].ID,
		"pipelineId":  p.ID,
		"clientName":  "Hank Scorpio",
		"clientEmail": "Hank@Globex.test",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	card := decode[model.Card](t, resp)

	resp = a.do(http.MethodPost, "/api/pipeline/"+p.ID.String()+"/move", map[string]any{
		"cardId":      card.ID,
		"newStageId":  p.Stages[1].ID,
		"newPosition": 0,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[service.MoveCardResult](t, resp)
	require.NotNil(t, result.Card.ClientID)
	require.NotNil(t, result.Client)
	assert.True(t, result.ClientCreated)
	assert.Equal(t, "hank@globex.test", result.Client.Email)

	resp = a.do(http.MethodGet, "/api/clients/"+result.Client.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	client := decode[model.Client](t, resp)
	assert.Equal(t, "Hank Scorpio", client.Name)

	resp = a.do(http.MethodPost, "/api/pipeline/"+uuid.NewString()+"/move", map[string]any{
		"cardId":     card.ID,
		"newStageId": p.Stages[0].ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClientEmailUniquePerOrganization(t *testing.T) {
	a := newAPI(t)
	body := map[string]any{"name": "Ada", "email": "ada@acme.test"}

	resp := a.do(http.MethodPost, "/api/clients", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = a.do(http.MethodPost, "/api/clients", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := decode[handler.ErrorResponse](t, resp)
	assert.False(t, errBody.Ok)

	_, other := a.tenant()
	resp = a.doAs(other, http.MethodPost, "/api/clients", body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestPipelineListReturnsNestedStagesInOrder(t *testing.T) {
	a := newAPI(t)
	names := []string{"Lead", "Qualified", "Proposal", "Negotiation", "Closed"}
	a.createPipeline(names...)

	resp := a.do(http.MethodGet, "/api/pipeline?organizationId="+a.orgID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pipelines := decode[[]model.Pipeline](t, resp)
	require.Len(t, pipelines, 1)
	require.Len(t, pipelines[0].Stages, len(names))
	for i, st := range pipelines[0].Stages {
		assert.Equal(t, names[i], st.Name)
		assert.Equal(t, i, st.Position)
	}
	assert.Equal(t, model.StageClosed, pipelines[0].Stages[4].Kind)

	resp = a.do(http.MethodGet, "/api/pipeline?organizationId="+uuid.NewString(), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStageBatchAndDelete(t *testing.T) {
	a := newAPI(t)
	p := a.createPipeline("Lead")

	resp := a.do(http.MethodPost, "/api/pipeline/stages/batch", map[string]any{
		"pipelineId": p.ID,
		"stages":     []map[string]any{{"name": "Demo"}, {"name": "Trial"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[[]model.Stage](t, resp)
	require.Len(t, created, 2)
	assert.Equal(t, 1, created[0].Position)
	assert.Equal(t, 2, created[1].Position)

	resp = a.do(http.MethodPost, "/api/pipeline/cards", map[string]any{
		"title": "Deal", "stageId": created[0].ID, "pipelineId": p.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = a.do(http.MethodDelete, "/api/pipeline/stages?withCards=true&id="+created[0].ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted struct {
		Ok           bool   `json:"ok"`
		CardsRemoved *int64 `json:"cardsRemoved"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&deleted))
	assert.True(t, deleted.Ok)
	require.NotNil(t, deleted.CardsRemoved)
	assert.Equal(t, int64(1), *deleted.CardsRemoved)

	resp = a.do(http.MethodGet, "/api/pipeline/cards?stageId="+created[0].ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]model.Card](t, resp))

	resp = a.do(http.MethodGet, "/api/pipeline/stages?pipelineId="+p.ID.String(), nil)
	stages := decode[[]model.Stage](t, resp)
	require.Len(t, stages, 2)
	assert.Equal(t, "Trial", stages[1].Name)
	assert.Equal(t, 1, stages[1].Position)
}

func TestValidationErrorsCarryDetails(t *testing.T) {
	a := newAPI(t)

	resp := a.do(http.MethodPost, "/api/pipeline/cards", map[string]any{"priority": "someday"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[handler.ErrorResponse](t, resp)
	require.NotNil(t, body.Details)
	assert.Contains(t, *body.Details, "title: failed required")
	assert.Contains(t, *body.Details, "priority: failed oneof=low medium high urgent")

	resp = a.do(http.MethodGet, "/api/pipeline/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(http.MethodGet, "/api/pipeline/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalendarAcceptsObjectOrArray(t *testing.T) {
	a := newAPI(t)
	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

	resp := a.do(http.MethodPost, "/api/calendar", map[string]any{
		"title": "Kickoff", "start": start, "end": start.Add(time.Hour),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	single := decode[model.CalendarEvent](t, resp)
	assert.Equal(t, "Kickoff", single.Title)

	resp = a.do(http.MethodPost, "/api/calendar", []map[string]any{
		{"title": "Demo", "start": start.Add(24 * time.Hour), "end": start.Add(25 * time.Hour)},
		{"title": "Review", "start": start.Add(48 * time.Hour), "end": start.Add(49 * time.Hour)},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, decode[[]model.CalendarEvent](t, resp), 2)

	resp = a.do(http.MethodPost, "/api/calendar", map[string]any{
		"title": "Backwards", "start": start, "end": start.Add(-time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(http.MethodGet, "/api/calendar?start=2026-05-01T00:00:00Z&end=2026-06-01T00:00:00Z", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]model.CalendarEvent](t, resp), 3)
}

func TestActivityRecordsChanges(t *testing.T) {
	a := newAPI(t)
	a.createPipeline("Lead")

	resp := a.do(http.MethodGet, "/api/activity?entityType=pipeline", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Logs  []model.ActivityLog `json:"logs"`
		Total int64               `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, int64(1), body.Total)
	assert.Equal(t, model.ActionPipelineCreate, body.Logs[0].Action)
	assert.NotEmpty(t, body.Logs[0].RequestID)
}

func TestReferencesStayInsideOrganization(t *testing.T) {
	a := newAPI(t)
	p := a.createPipeline("Lead")

	_, other := a.tenant()
	resp := a.doAs(other, http.MethodPost, "/api/clients", map[string]any{
		"name": "Secret Corp", "email": "ceo@secret.example",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	foreign := decode[model.Client](t, resp)

	resp = a.do(http.MethodPost, "/api/pipeline/cards", map[string]any{
		"title": "Acme Deal", "stageId": p.Stages[0].ID, "pipelineId": p.ID, "clientId": foreign.ID,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(http.MethodPost, "/api/pipeline/cards", map[string]any{
		"title": "Acme Deal", "stageId": p.Stages[0].ID, "pipelineId": p.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	card := decode[model.Card](t, resp)

	resp = a.do(http.MethodPut, "/api/pipeline/cards", map[string]any{"id": card.ID, "clientId": foreign.ID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	resp = a.do(http.MethodPost, "/api/calendar", map[string]any{
		"title": "Call", "start": start, "end": start.Add(time.Hour), "clientId": foreign.ID,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(http.MethodGet, "/api/pipeline/"+p.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var raw bytes.Buffer
	_, err := raw.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, raw.String(), "ceo@secret.example")
}

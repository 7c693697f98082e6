package httpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
	"mesa-campaigns/internal/core/port/mocks"
)

var testNow = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*mocks.MockCampaignUseCase, *httptest.Server) {
	t.Helper()
	svc := mocks.NewMockCampaignUseCase(t)
	h := NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), []string{"*"})
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return svc, srv
}

func awaitingState() domain.CampaignState {
	st := domain.NewCampaignState("c1", "Spring sale", "list.csv", 2, testNow)
	st.Stage = domain.StageAwaitingDispatch
	st.Recipients = []domain.Recipient{{ID: "1", Email: "a@example.com"}, {ID: "2", Email: "b@example.com"}}
	st.Groups[domain.LabelA] = st.Recipients[:1]
	st.Groups[domain.LabelB] = st.Recipients[1:]
	st.Content[domain.LabelA] = domain.Content{Subject: "Hi", Body: "Hello"}
	st.Content[domain.LabelB] = domain.Content{Subject: "Hey", Body: "Hello"}
	return st
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestStartCampaign(t *testing.T) {
	svc, srv := newTestServer(t)
	svc.EXPECT().
		Start(mock.Anything, port.StartRequest{Brief: "Spring sale", AudienceRef: "list.csv", Variants: 2}).
		Return(awaitingState(), nil).Once()

	resp := post(t, srv.URL+"/api/v1/campaigns", `{"brief":"Spring sale","audience_ref":"list.csv","variants":2}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var body campaignResponse
	decode(t, resp, &body)
	assert.Equal(t, "c1", body.ID)
	assert.Equal(t, domain.StageAwaitingDispatch, body.Stage)
	assert.Equal(t, 2, body.Audience)
	assert.Equal(t, 1, body.Groups[domain.LabelB].Recipients)
	assert.False(t, body.Groups[domain.LabelA].Sent)
}

func TestStartCampaignBadJSON(t *testing.T) {
	_, srv := newTestServer(t)

	resp := post(t, srv.URL+"/api/v1/campaigns", `{"brief":`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStartCampaignStepFailureReturnsState(t *testing.T) {
	svc, srv := newTestServer(t)
	st := domain.NewCampaignState("c1", "brief", "", 2, testNow)
	st.Fail(domain.StepStrategy, fmt.Errorf("model timeout"), testNow)
	svc.EXPECT().Start(mock.Anything, mock.Anything).
		Return(st, &domain.StageError{Step: domain.StepStrategy, Err: fmt.Errorf("model timeout")}).Once()

	resp := post(t, srv.URL+"/api/v1/campaigns", `{"brief":"brief"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body errorResponse
	decode(t, resp, &body)
	assert.Contains(t, body.Error, "strategy step failed")
	require.NotNil(t, body.Campaign)
	assert.Equal(t, domain.StageFailed, body.Campaign.Stage)
	assert.Equal(t, domain.StepStrategy, body.Campaign.Error.Step)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("get: %w", domain.ErrNotFound), http.StatusNotFound},
		{"invalid stage", fmt.Errorf("dispatch: %w", domain.ErrInvalidStage), http.StatusConflict},
		{"version conflict", domain.ErrVersionConflict, http.StatusConflict},
		{"dispatch in progress", fmt.Errorf("variant A: %w", domain.ErrDispatchInProgress), http.StatusConflict},
		{"validation", &domain.ValidationError{Label: domain.LabelA, Reason: "empty group"}, http.StatusBadRequest},
		{"unavailable", &domain.DispatchUnavailableError{Label: domain.LabelA, Err: port.ErrDispatcherUnavailable}, http.StatusServiceUnavailable},
		{"other", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, srv := newTestServer(t)
			svc.EXPECT().Dispatch(mock.Anything, "c1", domain.LabelA).Return(domain.CampaignState{}, tt.err).Once()

			resp := post(t, srv.URL+"/api/v1/campaigns/c1/variants/A/dispatch", "")

			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestDispatchUnknownLabel(t *testing.T) {
	_, srv := newTestServer(t)

	resp := post(t, srv.URL+"/api/v1/campaigns/c1/variants/Z/dispatch", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDispatchReportsCounts(t *testing.T) {
	svc, srv := newTestServer(t)
	st := awaitingState()
	st.Stage = domain.StagePartiallyDispatched
	st.Dispatch[domain.LabelA] = domain.DispatchRecord{
		Sent:        true,
		AttemptedAt: testNow,
		Outcomes: []domain.RecipientOutcome{
			{Recipient: st.Groups[domain.LabelA][0], Success: false, ErrorKind: domain.ErrorKindTerminal, Error: "rejected"},
		},
	}
	svc.EXPECT().Dispatch(mock.Anything, "c1", domain.LabelA).Return(st, nil).Once()

	resp := post(t, srv.URL+"/api/v1/campaigns/c1/variants/A/dispatch", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body campaignResponse
	decode(t, resp, &body)
	a := body.Groups[domain.LabelA]
	assert.True(t, a.Sent)
	assert.Equal(t, 0, a.Succeeded)
	assert.Equal(t, 1, a.Failed)
}

func TestListCampaigns(t *testing.T) {
	svc, srv := newTestServer(t)
	svc.EXPECT().List(mock.Anything, 10).Return([]domain.CampaignState{awaitingState()}, nil).Once()

	resp := get(t, srv.URL+"/api/v1/campaigns?limit=10")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body []campaignResponse
	decode(t, resp, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "c1", body[0].ID)

	resp = get(t, srv.URL+"/api/v1/campaigns?limit=-1")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCampaignReport(t *testing.T) {
	svc, srv := newTestServer(t)
	pending := awaitingState()
	finalized := awaitingState()
	finalized.Stage = domain.StageFinalized
	finalized.Report = &domain.Report{CampaignID: "c1", Winner: domain.LabelB, PrimaryMetric: domain.MetricOpenRate}
	svc.EXPECT().Get(mock.Anything, "c1").Return(pending, nil).Once()
	svc.EXPECT().Get(mock.Anything, "c1").Return(finalized, nil).Once()

	resp := get(t, srv.URL+"/api/v1/campaigns/c1/report")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = get(t, srv.URL+"/api/v1/campaigns/c1/report")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var report domain.Report
	decode(t, resp, &report)
	assert.Equal(t, domain.LabelB, report.Winner)
}

func TestRetryAndFinalize(t *testing.T) {
	svc, srv := newTestServer(t)
	svc.EXPECT().Retry(mock.Anything, "c1").Return(awaitingState(), nil).Once()
	svc.EXPECT().Finalize(mock.Anything, "c1").
		Return(awaitingState(), fmt.Errorf("finalize: %w", domain.ErrInvalidStage)).Once()

	resp := post(t, srv.URL+"/api/v1/campaigns/c1/retry", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = post(t, srv.URL+"/api/v1/campaigns/c1/finalize", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var body errorResponse
	decode(t, resp, &body)
	require.NotNil(t, body.Campaign)
	assert.Equal(t, domain.StageAwaitingDispatch, body.Campaign.Stage)
}

func TestProviderWebhook(t *testing.T) {
	svc, srv := newTestServer(t)
	var got []domain.ActivityEvent
	svc.EXPECT().RecordProviderEvents(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, events []domain.ActivityEvent) error {
			got = events
			return nil
		}).Once()

	resp := post(t, srv.URL+"/api/v1/webhooks/provider", `[
		{"event":"open","email":"a@example.com","timestamp":1743494400,"sg_message_id":"m1.filter0001","custom_args":{"campaign_id":"c1","variant":"A"}},
		{"event":"dropped","email":"b@example.com","message_id":"m2","campaign_id":"c1","variant":"B","reason":"invalid"},
		{"event":"processed","email":"c@example.com","campaign_id":"c1"},
		{"event":"click","email":"d@example.com"}
	]`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body webhookResponse
	decode(t, resp, &body)
	assert.Equal(t, webhookResponse{Accepted: 2, Ignored: 2}, body)

	require.Len(t, got, 2)
	assert.Equal(t, domain.ActivityEvent{
		CampaignID: "c1",
		Variant:    domain.LabelA,
		Email:      "a@example.com",
		MessageID:  "m1",
		Action:     domain.ActionOpen,
		OccurredAt: time.Unix(1743494400, 0).UTC(),
	}, got[0])
	assert.Equal(t, domain.ActionBounce, got[1].Action)
	assert.Equal(t, "invalid", got[1].Details)
}

func TestHealth(t *testing.T) {
	_, srv := newTestServer(t)

	resp := get(t, srv.URL+"/healthz")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

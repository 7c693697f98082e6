package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-campaigns/internal/core/domain"
)

func TestClientStartAndDispatch(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/api/v1/campaigns":
			b, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"brief":"Spring sale","variants":3}`, string(b))
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"campaign_id":"c1","stage":"awaiting_dispatch","groups":{"A":{"recipients":2}}}`)
		case "/api/v1/campaigns/c1/variants/A/dispatch":
			_, _ = io.WriteString(w, `{"campaign_id":"c1","stage":"partially_dispatched","groups":{"A":{"recipients":2,"sent":true,"succeeded":2}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	ctx := context.Background()

	st, err := c.Start(ctx, StartRequest{Brief: "Spring sale", Variants: 3})
	require.NoError(t, err)
	assert.Equal(t, domain.StageAwaitingDispatch, st.Stage)

	st, err = c.Dispatch(ctx, "c1", domain.LabelA)
	require.NoError(t, err)
	assert.True(t, st.Groups[domain.LabelA].Sent)
	assert.Equal(t, 2, st.Groups[domain.LabelA].Succeeded)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"POST /api/v1/campaigns",
		"POST /api/v1/campaigns/c1/variants/A/dispatch",
	}, paths)
}

func TestClientDecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":    "dispatch of variant A unavailable",
			"campaign": map[string]any{"campaign_id": "c1", "stage": "awaiting_dispatch"},
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Dispatch(context.Background(), "c1", domain.LabelA)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "dispatch of variant A unavailable", apiErr.Message)
	require.NotNil(t, apiErr.Campaign)
	assert.Equal(t, "c1", apiErr.Campaign.ID)
}

func TestClientPlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown variant", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Get(context.Background(), "c1")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "unknown variant", apiErr.Message)
	assert.Nil(t, apiErr.Campaign)
}

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"courier-console/internal/api"
)

func TestCallEndpoint_LoadingFlagLifecycle(t *testing.T) {
	f := NewFetcher(zap.NewNop())

	var loadingDuringCall bool
	req := api.NewRequest("/test", func(context.Context) (json.RawMessage, error) {
		loadingDuringCall = f.Loading()
		return json.RawMessage(`{"id": 1}`), nil
	})

	response := CallEndpoint(context.Background(), f, req, func(raw json.RawMessage) (map[string]any, error) {
		var m map[string]any
		return m, json.Unmarshal(raw, &m)
	})

	require.NoError(t, response.Err)
	assert.True(t, loadingDuringCall)
	assert.False(t, f.Loading())
	assert.Equal(t, float64(1), response.Data["id"])
}

func TestCallEndpoint_AdaptErrorBecomesResponseErr(t *testing.T) {
	f := NewFetcher(zap.NewNop())
	req := api.NewRequest("/test", func(context.Context) (json.RawMessage, error) {
		return json.RawMessage(`{}`), nil
	})

	response := CallEndpoint(context.Background(), f, req, func(json.RawMessage) (int, error) {
		return 0, fmt.Errorf("bad shape")
	})

	require.Error(t, response.Err)
	assert.False(t, f.Loading())
}

func TestCallEndpoint_TransportErrorPropagates(t *testing.T) {
	f := NewFetcher(zap.NewNop())
	req := api.NewRequest("/test", func(context.Context) (json.RawMessage, error) {
		return nil, fmt.Errorf("connection refused")
	})

	response := CallRaw(context.Background(), f, req)
	assert.ErrorContains(t, response.Err, "connection refused")
}

// CancelPending прерывает последний выданный запрос и гасит флаг загрузки.
func TestCancelPending_AbortsInFlightRequest(t *testing.T) {
	f := NewFetcher(zap.NewNop())

	started := make(chan struct{})
	req := api.NewRequest("/slow", func(ctx context.Context) (json.RawMessage, error) {
		close(started)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return json.RawMessage(`{}`), nil
		}
	})

	done := make(chan Response[json.RawMessage], 1)
	go func() {
		done <- CallRaw(context.Background(), f, req)
	}()

	<-started
	f.CancelPending()

	select {
	case response := <-done:
		require.Error(t, response.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("запрос не прервался после CancelPending")
	}
	assert.False(t, f.Loading())
}

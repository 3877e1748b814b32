package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// ApiRequest связывает отложенный сетевой вызов с его ручкой отмены —
// аналог пары {call, controller} вокруг AbortController.
type ApiRequest struct {
	Endpoint string

	call   func(ctx context.Context) (json.RawMessage, error)
	abort  context.Context
	cancel context.CancelFunc
}

// NewRequest создаёт запрос с собственной ручкой отмены. Экспортирован,
// чтобы тесты и фейковые actions могли собирать запросы без транспорта.
func NewRequest(endpoint string, call func(ctx context.Context) (json.RawMessage, error)) ApiRequest {
	abort, cancel := context.WithCancel(context.Background())
	return ApiRequest{Endpoint: endpoint, call: call, abort: abort, cancel: cancel}
}

// Call выполняет запрос, уважая и контекст вызывающего, и ручку отмены
// самого запроса.
func (r ApiRequest) Call(ctx context.Context) (json.RawMessage, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(r.abort, cancel)
	defer stop()
	return r.call(ctx)
}

// Cancel прерывает запрос, если он ещё в полёте.
func (r ApiRequest) Cancel() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (c *Client) GetItem(endpoint string) ApiRequest {
	return NewRequest(endpoint, func(ctx context.Context) (json.RawMessage, error) {
		return c.do(ctx, http.MethodGet, endpoint, nil)
	})
}

func (c *Client) PostItem(endpoint string, body any) ApiRequest {
	if body == nil {
		body = struct{}{}
	}
	return NewRequest(endpoint, func(ctx context.Context) (json.RawMessage, error) {
		return c.do(ctx, http.MethodPost, endpoint, body)
	})
}

func (c *Client) PutItem(endpoint string, body any) ApiRequest {
	return NewRequest(endpoint, func(ctx context.Context) (json.RawMessage, error) {
		return c.do(ctx, http.MethodPut, endpoint, body)
	})
}

func (c *Client) DeleteItem(endpoint string) ApiRequest {
	return NewRequest(endpoint, func(ctx context.Context) (json.RawMessage, error) {
		return c.do(ctx, http.MethodDelete, endpoint, nil)
	})
}

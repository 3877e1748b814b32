// Пакет fetch задаёт единый контракт обращения к API: флаг загрузки,
// адаптация полезной нагрузки и результат вида {data, error} — ошибки
// транспорта и сервера дальше этой границы не пробрасываются паникой
// или исключением.
package fetch

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"courier-console/internal/api"
)

// Response — единая форма результата: либо Data, либо Err.
type Response[T any] struct {
	Data T
	Err  error
}

// Fetcher отслеживает не более одного «последнего» запроса: новый запрос
// не отменяет предыдущий, оба завершаются независимо. CancelPending
// прерывает последний выданный и сбрасывает флаг загрузки.
type Fetcher struct {
	mu      sync.Mutex
	loading bool
	pending *api.ApiRequest
	logger  *zap.Logger
}

func NewFetcher(logger *zap.Logger) *Fetcher {
	return &Fetcher{logger: logger.Named("fetch")}
}

func (f *Fetcher) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// CancelPending вызывается при «размонтировании» владельца: прерывает
// последний запрос и принудительно гасит флаг загрузки.
func (f *Fetcher) CancelPending() {
	f.mu.Lock()
	pending := f.pending
	f.loading = false
	f.pending = nil
	f.mu.Unlock()

	if pending != nil {
		pending.Cancel()
	}
}

func (f *Fetcher) begin(req *api.ApiRequest) {
	f.mu.Lock()
	f.loading = true
	f.pending = req
	f.mu.Unlock()
}

func (f *Fetcher) end() {
	f.mu.Lock()
	f.loading = false
	f.pending = nil
	f.mu.Unlock()
}

// CallEndpoint выполняет запрос и прогоняет ответ через адаптер.
// Флаг загрузки сбрасывается в любом исходе.
func CallEndpoint[T any](ctx context.Context, f *Fetcher, req api.ApiRequest, adapt func(json.RawMessage) (T, error)) Response[T] {
	f.begin(&req)
	defer f.end()

	var response Response[T]

	raw, err := req.Call(ctx)
	if err != nil {
		f.logger.Debug("запрос завершился ошибкой",
			zap.String("endpoint", req.Endpoint),
			zap.Error(err),
		)
		response.Err = err
		return response
	}

	data, err := adapt(raw)
	if err != nil {
		response.Err = err
		return response
	}
	response.Data = data
	return response
}

// CallRaw — вариант без адаптера для вызовов, где тело ответа не нужно
// (delete, logout).
func CallRaw(ctx context.Context, f *Fetcher, req api.ApiRequest) Response[json.RawMessage] {
	return CallEndpoint(ctx, f, req, func(raw json.RawMessage) (json.RawMessage, error) {
		return raw, nil
	})
}

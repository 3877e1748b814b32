package container

import (
	"context"
	"encoding/json"

	"courier-console/internal/adapters"
	"courier-console/internal/api"
	"courier-console/pkg/types"
)

// Filter — тело расширенного поиска. IsZero == true означает «ни один
// фильтр не заполнен», контейнер тогда не включает режим фильтров.
type Filter interface {
	IsZero() bool
}

// Actions — пять-шесть строителей запросов, через которые контейнер
// разговаривает с API. SearchItemsByFilters может отсутствовать — тогда
// расширенный поиск для сущности недоступен.
type Actions struct {
	GetItems             func(page, size int) api.ApiRequest
	CreateItem           func(draft any) api.ApiRequest
	UpdateItem           func(id int64, draft any) api.ApiRequest
	DeleteItem           func(id int64) api.ApiRequest
	SearchItems          func(query string, page, size int) api.ApiRequest
	SearchItemsByFilters func(filters Filter, page, size int) api.ApiRequest
}

type Adapters[T any] struct {
	Item func(json.RawMessage) (T, error)
	List func(json.RawMessage, func(json.RawMessage) (T, error)) (adapters.ListResult[T], error)
}

// Column описывает колонку таблицы. SortValue задаёт значение для
// клиентской сортировки; по умолчанию берётся содержимое ячейки.
type Column[T any] struct {
	Key       string
	Label     string
	Sortable  bool
	SortValue func(T) string
}

// AllowedActions — списки имён ролей, которым доступно действие.
type AllowedActions struct {
	Create []string
	Update []string
	Delete []string
}

// Config собирает всё поведение контейнера для одной сущности:
// полиморфизм через объект конфигурации, без наследования.
type Config[T types.Identifiable] struct {
	Title       string
	Placeholder string

	Actions  Actions
	Adapters Adapters[T]

	Columns    []Column[T]
	MapItemRow func(T) []string

	AllowedActions AllowedActions

	// FormatMessage — текст подтверждения удаления для конкретной строки.
	FormatMessage func(T) string

	// Необязательные возможности.
	RowExpandable func(T) bool
	ExpandContent func(ctx context.Context, id int64) (string, error)
}

// Notifier — консольный аналог снекбара: транзиентные уведомления и
// неблокирующее подтверждение удаления.
type Notifier interface {
	Success(message string)
	Error(message string)
	Confirm(message string) bool
}

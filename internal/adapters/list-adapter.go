package adapters

import (
	"bytes"
	"encoding/json"
	"strings"

	"courier-console/pkg/apperrors"
	"courier-console/pkg/types"
)

// ListResult — результат адаптации списочного ответа. Page равен nil,
// если сервер вернул голый массив без конверта пагинации; контейнер в
// этом случае не трогает счётчики.
type ListResult[T any] struct {
	Items []T
	Page  *types.Page[T]
}

// List обрабатывает обе формы списочного ответа: голый массив — каждый
// элемент через адаптер; конверт пагинации — адаптируется только
// content, метаданные проходят без изменений.
func List[T any](raw json.RawMessage, item func(json.RawMessage) (T, error)) (ListResult[T], error) {
	trimmedRaw := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmedRaw) > 0 && trimmedRaw[0] == '[' {
		items, err := mapItems(raw, item)
		if err != nil {
			return ListResult[T]{}, err
		}
		return ListResult[T]{Items: items}, nil
	}

	var envelope struct {
		Content          []json.RawMessage `json:"content"`
		TotalElements    int64             `json:"totalElements"`
		TotalPages       int               `json:"totalPages"`
		Size             int               `json:"size"`
		Number           int               `json:"number"`
		NumberOfElements int               `json:"numberOfElements"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ListResult[T]{}, apperrors.NewDecodeError("list", "", err.Error())
	}
	if envelope.Content == nil {
		return ListResult[T]{}, apperrors.NewDecodeError("list", "content", "missing")
	}

	items := make([]T, 0, len(envelope.Content))
	for _, rawItem := range envelope.Content {
		mapped, err := item(rawItem)
		if err != nil {
			return ListResult[T]{}, err
		}
		items = append(items, mapped)
	}

	return ListResult[T]{
		Items: items,
		Page: &types.Page[T]{
			Content:          items,
			TotalElements:    envelope.TotalElements,
			TotalPages:       envelope.TotalPages,
			Size:             envelope.Size,
			Number:           envelope.Number,
			NumberOfElements: envelope.NumberOfElements,
		},
	}, nil
}

func mapItems[T any](raw json.RawMessage, item func(json.RawMessage) (T, error)) ([]T, error) {
	var rawItems []json.RawMessage
	if err := json.Unmarshal(raw, &rawItems); err != nil {
		return nil, apperrors.NewDecodeError("list", "", err.Error())
	}
	items := make([]T, 0, len(rawItems))
	for _, rawItem := range rawItems {
		mapped, err := item(rawItem)
		if err != nil {
			return nil, err
		}
		items = append(items, mapped)
	}
	return items, nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

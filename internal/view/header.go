package view

import (
	"context"
	"time"

	"courier-console/internal/container"
)

// SearchBox связывает ввод пользователя с контейнером через дебаунсер:
// запрос уходит один раз по окончании тихого окна, а не на каждый
// символ. Сам запрос выполняется не из таймерной горутины: дозревшее
// значение забирает Flush, который зовет цикл команд.
type SearchBox struct {
	debouncer *container.Debouncer
	apply     func(context.Context, string) error
}

func NewSearchBox(delay time.Duration, apply func(context.Context, string) error) *SearchBox {
	return &SearchBox{
		debouncer: container.NewDebouncer(delay),
		apply:     apply,
	}
}

// Input принимает очередное состояние строки поиска.
func (s *SearchBox) Input(text string) {
	s.debouncer.Push(text)
}

// Flush применяет дозревшее значение, если оно есть. Вызывается из
// цикла команд перед обработкой очередной команды.
func (s *SearchBox) Flush(ctx context.Context) error {
	select {
	case value := <-s.debouncer.Fired():
		return s.apply(ctx, value)
	default:
		return nil
	}
}

// Stop гасит незаконченный отсчёт и недоставленное значение (смена
// экрана, выход).
func (s *SearchBox) Stop() {
	s.debouncer.Stop()
}

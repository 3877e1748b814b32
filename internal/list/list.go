// Пакет list — упорядоченная коллекция сущностей текущей страницы.
// Состояние кооперативное: мутации приходят только из обработчиков
// событий владельца, поэтому синхронизации здесь нет намеренно.
package list

import "courier-console/pkg/types"

type List[T types.Identifiable] struct {
	items []T
}

func New[T types.Identifiable]() *List[T] {
	return &List[T]{items: []T{}}
}

// SetAll полностью заменяет содержимое — вызывается после каждой
// успешной загрузки страницы.
func (l *List[T]) SetAll(items []T) {
	l.items = make([]T, len(items))
	copy(l.items, items)
}

// Add — оптимистичная вставка после создания.
func (l *List[T]) Add(item T) {
	l.items = append(l.items, item)
}

// Update заменяет элемент с тем же id; если его нет — ничего не делает.
func (l *List[T]) Update(item T) {
	for i := range l.items {
		if l.items[i].EntityID() == item.EntityID() {
			l.items[i] = item
			return
		}
	}
}

func (l *List[T]) Remove(id int64) {
	kept := l.items[:0]
	for _, item := range l.items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	l.items = kept
}

func (l *List[T]) GetByID(id int64) (T, bool) {
	for _, item := range l.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (l *List[T]) Exists(id int64) bool {
	_, ok := l.GetByID(id)
	return ok
}

// Items возвращает копию: вызывающий может сортировать её как угодно,
// не трогая порядок, пришедший с сервера.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) Len() int { return len(l.items) }

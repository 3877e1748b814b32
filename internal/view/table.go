package view

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"courier-console/internal/container"
	"courier-console/pkg/types"
)

// Table отрисовывает состояние контейнера: шапку с поиском, колонки с
// индикатором сортировки, строки, панель деталей раскрытой строки и
// подвал пагинации. Сортировка — чисто клиентская, по текущей странице.
type Table[T types.Identifiable] struct {
	c *container.Container[T]

	orderBy   string
	ascending bool
}

func NewTable[T types.Identifiable](c *container.Container[T]) *Table[T] {
	return &Table[T]{c: c}
}

// ToggleSort: повторный выбор той же колонки меняет направление,
// новая колонка начинает с возрастания.
func (t *Table[T]) ToggleSort(key string) {
	col, ok := t.columnByKey(key)
	if !ok || !col.Sortable {
		return
	}
	if t.orderBy == key {
		t.ascending = !t.ascending
		return
	}
	t.orderBy = key
	t.ascending = true
}

func (t *Table[T]) columnByKey(key string) (container.Column[T], bool) {
	for _, col := range t.c.Columns() {
		if col.Key == key {
			return col, true
		}
	}
	var zero container.Column[T]
	return zero, false
}

func (t *Table[T]) Render(ctx context.Context, w io.Writer) {
	t.renderHeader(w)

	items := t.sortedItems()
	columns := t.c.Columns()

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	// Заголовки колонок
	labels := make([]string, 0, len(columns)+1)
	for _, col := range columns {
		labels = append(labels, t.columnLabel(col))
	}
	if t.c.DisplayActions() {
		labels = append(labels, "ACTIONS")
	}
	fmt.Fprintln(tw, strings.Join(labels, "\t"))

	for _, item := range items {
		row := t.c.MapItemRow(item)
		if t.c.DisplayActions() {
			row = append(row, t.actionsCell(item))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	t.renderExpanded(ctx, w)
	t.renderFooter(w)
}

func (t *Table[T]) renderHeader(w io.Writer) {
	fmt.Fprintln(w, color.New(color.Bold, color.FgCyan).Sprint(t.c.Title()))

	search := t.c.Placeholder()
	if q := t.c.Query(); q != "" {
		search = fmt.Sprintf("поиск: %q", q)
	}
	fmt.Fprintln(w, color.HiBlackString(search))

	if t.c.AdvancedOpen() {
		fmt.Fprintln(w, color.HiBlackString("[панель фильтров открыта]"))
	}
}

func (t *Table[T]) columnLabel(col container.Column[T]) string {
	label := strings.ToUpper(col.Label)
	if col.Key != t.orderBy {
		return label
	}
	if t.ascending {
		return label + " ↑"
	}
	return label + " ↓"
}

func (t *Table[T]) actionsCell(item T) string {
	var parts []string
	if t.c.CanUpdate(item) {
		parts = append(parts, "edit")
	}
	if t.c.CanDelete(item) {
		parts = append(parts, "delete")
	}
	if t.c.IsExpandable(item) {
		parts = append(parts, "expand")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "/")
}

func (t *Table[T]) renderExpanded(ctx context.Context, w io.Writer) {
	id, ok := t.c.SelectedID()
	if !ok || t.c.FormOpen() {
		return
	}
	content, err := t.c.ExpandContent(ctx, id)
	if err != nil {
		fmt.Fprintln(w, color.RedString("  не удалось получить детали: %v", err))
		return
	}
	if content == "" {
		return
	}
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(w, "  │ %s\n", line)
	}
}

func (t *Table[T]) renderFooter(w io.Writer) {
	p := t.c.Pagination()
	totalPages := int64(1)
	if p.Size > 0 && p.TotalItems > 0 {
		totalPages = (p.TotalItems + int64(p.Size) - 1) / int64(p.Size)
	}
	fmt.Fprintln(w, color.HiBlackString(
		"стр. %d/%d · размер %d · всего %d", p.Page+1, totalPages, p.Size, p.TotalItems))
}

// Items возвращает текущую страницу в том порядке, в котором она
// отрисована: экспорт и таблица видят одно и то же.
func (t *Table[T]) Items() []T {
	return t.sortedItems()
}

// sortedItems возвращает копию текущей страницы в выбранном порядке.
func (t *Table[T]) sortedItems() []T {
	items := t.c.Items()
	if t.orderBy == "" {
		return items
	}
	col, ok := t.columnByKey(t.orderBy)
	if !ok {
		return items
	}

	key := t.sortKeyFunc(col)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if t.ascending {
			return a < b
		}
		return a > b
	})
	return items
}

func (t *Table[T]) sortKeyFunc(col container.Column[T]) func(T) string {
	if col.SortValue != nil {
		return func(item T) string { return strings.ToLower(col.SortValue(item)) }
	}
	// По умолчанию сортируем по содержимому ячейки этой колонки.
	idx := 0
	for i, c := range t.c.Columns() {
		if c.Key == col.Key {
			idx = i
			break
		}
	}
	return func(item T) string {
		row := t.c.MapItemRow(item)
		if idx >= len(row) {
			return ""
		}
		return strings.ToLower(row[idx])
	}
}

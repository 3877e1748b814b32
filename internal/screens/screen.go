// Пакет screens — экраны консоли. Каждый экран оборачивает контейнер
// одной сущности и переводит команды пользователя в его операции.
package screens

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"courier-console/internal/container"
	"courier-console/internal/entities"
	"courier-console/internal/export"
	"courier-console/internal/fetch"
	"courier-console/internal/view"
	"courier-console/pkg/apperrors"
	"courier-console/pkg/types"
	"courier-console/pkg/validation"
)

// Screen — то, что умеет любой экран с таблицей сущности. Главный цикл
// консоли работает только через этот интерфейс.
type Screen interface {
	Name() string
	Title() string
	AllowedRoles() []string

	Open(ctx context.Context) error
	Render(ctx context.Context, w io.Writer)
	Stop()

	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	SetPageSize(ctx context.Context, size int) error

	Search(text string)
	FlushSearch(ctx context.Context) error
	OpenFilters(ctx context.Context) error
	CloseFilters(ctx context.Context) error
	Sort(key string)

	Create(ctx context.Context) error
	Edit(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ToggleRow(id int64)

	Export() (string, error)
}

var (
	_ Screen = (*UsersScreen)(nil)
	_ Screen = (*OfficesScreen)(nil)
	_ Screen = (*BranchesScreen)(nil)
	_ Screen = (*ContactsScreen)(nil)
)

//============== РЕЕСТР ==============

// Registry хранит экраны и отдает только те, что доступны ролям
// текущего пользователя.
type Registry struct {
	screens []Screen
}

func NewRegistry(screens ...Screen) *Registry {
	return &Registry{screens: screens}
}

func (r *Registry) Get(name string, auth entities.AuthState) (Screen, bool) {
	for _, s := range r.screens {
		if s.Name() == name && auth.HasAnyRole(s.AllowedRoles()) {
			return s, true
		}
	}
	return nil, false
}

func (r *Registry) Visible(auth entities.AuthState) []Screen {
	var out []Screen
	for _, s := range r.screens {
		if auth.HasAnyRole(s.AllowedRoles()) {
			out = append(out, s)
		}
	}
	return out
}

//============== ОБЩАЯ ЧАСТЬ ЭКРАНОВ ==============

// deps — общие зависимости, которые получает каждый экран.
type deps struct {
	Auth      entities.AuthState
	Fetcher   *fetch.Fetcher
	Notifier  container.Notifier
	Validator *validation.Validator
	Form      *view.Form
	Exporter  *export.ExcelExporter
	Out       io.Writer
	Debounce  time.Duration
	Logger    *zap.Logger
}

// Deps собирает зависимости экранов в главном цикле.
func Deps(
	auth entities.AuthState,
	fetcher *fetch.Fetcher,
	notifier container.Notifier,
	validator *validation.Validator,
	form *view.Form,
	exporter *export.ExcelExporter,
	out io.Writer,
	debounce time.Duration,
	logger *zap.Logger,
) deps {
	return deps{
		Auth:      auth,
		Fetcher:   fetcher,
		Notifier:  notifier,
		Validator: validator,
		Form:      form,
		Exporter:  exporter,
		Out:       out,
		Debounce:  debounce,
		Logger:    logger,
	}
}

// crudScreen — общее поведение экрана поверх контейнера: всё, кроме
// сбора форм и фильтров, одинаково для любой сущности.
type crudScreen[T types.Identifiable] struct {
	name  string
	roles []string

	container *container.Container[T]
	table     *view.Table[T]
	search    *view.SearchBox
	deps      deps
}

func (s *crudScreen[T]) Name() string           { return s.name }
func (s *crudScreen[T]) Title() string          { return s.container.Title() }
func (s *crudScreen[T]) AllowedRoles() []string { return s.roles }

func (s *crudScreen[T]) Open(ctx context.Context) error {
	return s.container.Refresh(ctx)
}

func (s *crudScreen[T]) Render(ctx context.Context, w io.Writer) {
	s.table.Render(ctx, w)
}

func (s *crudScreen[T]) Stop() {
	s.search.Stop()
	s.deps.Fetcher.CancelPending()
}

func (s *crudScreen[T]) NextPage(ctx context.Context) error {
	return s.container.SetPage(ctx, s.container.Pagination().Page+1)
}

func (s *crudScreen[T]) PrevPage(ctx context.Context) error {
	return s.container.SetPage(ctx, s.container.Pagination().Page-1)
}

func (s *crudScreen[T]) SetPageSize(ctx context.Context, size int) error {
	return s.container.SetPageSize(ctx, size)
}

// Search проводит ввод через тихое окно дебаунсера.
func (s *crudScreen[T]) Search(text string) {
	s.search.Input(text)
}

// FlushSearch применяет дозревший поисковый запрос в горутине цикла
// команд; таймер дебаунсера контейнер не трогает.
func (s *crudScreen[T]) FlushSearch(ctx context.Context) error {
	return s.search.Flush(ctx)
}

func (s *crudScreen[T]) CloseFilters(ctx context.Context) error {
	return s.container.ToggleAdvanced(ctx, false)
}

func (s *crudScreen[T]) Sort(key string) {
	s.table.ToggleSort(key)
}

func (s *crudScreen[T]) Delete(ctx context.Context, id int64) error {
	return s.container.Delete(ctx, id)
}

func (s *crudScreen[T]) ToggleRow(id int64) {
	item, ok := s.container.GetItemByID(id)
	if !ok {
		return
	}
	s.container.HandleRowClick(item)
}

// Export выгружает текущую страницу в таком же виде, как она отрисована.
func (s *crudScreen[T]) Export() (string, error) {
	columns := s.container.Columns()
	headers := make([]string, 0, len(columns))
	for _, col := range columns {
		headers = append(headers, col.Label)
	}

	items := s.table.Items()
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, s.container.MapItemRow(item))
	}
	return s.deps.Exporter.PageToFile(s.container.Title(), headers, rows)
}

// validate прогоняет форму и печатает ошибки по полям.
func (s *crudScreen[T]) validate(form any) bool {
	err := s.deps.Validator.Validate(form)
	if err == nil {
		return true
	}
	var invalid *apperrors.InvalidInputError
	if errors.As(err, &invalid) && len(invalid.Fields) > 0 {
		view.RenderFieldErrors(s.deps.Out, invalid.Fields)
	} else {
		s.deps.Notifier.Error(err.Error())
	}
	return false
}

// Пакет container — ядро консоли: универсальный контейнер CRUD-страницы
// одной сущности. Пагинация, отложенный текстовый поиск, расширенные
// фильтры, создание/правка/удаление с оптимистичной мутацией списка,
// раскрытие строк и ролевые ограничения — всё параметризовано объектом
// конфигурации.
package container

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"courier-console/internal/adapters"
	"courier-console/internal/api"
	"courier-console/internal/entities"
	"courier-console/internal/fetch"
	"courier-console/internal/list"
	"courier-console/pkg/constants"
	"courier-console/pkg/types"
)

type Container[T types.Identifiable] struct {
	cfg      Config[T]
	auth     entities.AuthState
	fetcher  *fetch.Fetcher
	notifier Notifier
	logger   *zap.Logger

	items      *list.List[T]
	pagination types.Pagination

	query   string
	filters Filter

	advancedOpen bool

	// selectedID несёт двойную нагрузку, как и в исходном контейнере:
	// цель инлайн-формы редактирования либо раскрытая строка.
	selectedID  *int64
	displayForm bool

	// Монотонный токен поколения: ответы устаревших загрузок отбрасываются.
	generation uint64
}

func New[T types.Identifiable](cfg Config[T], auth entities.AuthState, fetcher *fetch.Fetcher, notifier Notifier, logger *zap.Logger) *Container[T] {
	return &Container[T]{
		cfg:      cfg,
		auth:     auth,
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger.Named("container").With(zap.String("entity", cfg.Title)),
		items:    list.New[T](),
		pagination: types.Pagination{
			Page: 0,
			Size: constants.DefaultPageSize,
		},
	}
}

func (c *Container[T]) Items() []T                  { return c.items.Items() }
func (c *Container[T]) Pagination() types.Pagination { return c.pagination }
func (c *Container[T]) Query() string               { return c.query }
func (c *Container[T]) AdvancedOpen() bool          { return c.advancedOpen }
func (c *Container[T]) FormOpen() bool              { return c.displayForm }
func (c *Container[T]) Title() string               { return c.cfg.Title }
func (c *Container[T]) Placeholder() string         { return c.cfg.Placeholder }
func (c *Container[T]) Columns() []Column[T]        { return c.cfg.Columns }
func (c *Container[T]) MapItemRow(item T) []string  { return c.cfg.MapItemRow(item) }
func (c *Container[T]) GetItemByID(id int64) (T, bool) { return c.items.GetByID(id) }

func (c *Container[T]) SelectedID() (int64, bool) {
	if c.selectedID == nil {
		return 0, false
	}
	return *c.selectedID, true
}

// Refresh перечитывает текущую страницу. Режим выбирается по приоритету:
// активные фильтры > непустой текстовый запрос > обычный список.
func (c *Container[T]) Refresh(ctx context.Context) error {
	c.generation++
	generation := c.generation

	req := c.buildListRequest()

	response := fetch.CallEndpoint(ctx, c.fetcher, req, func(raw json.RawMessage) (adapters.ListResult[T], error) {
		return c.cfg.Adapters.List(raw, c.cfg.Adapters.Item)
	})

	if generation != c.generation {
		// Пока этот запрос летал, состояние ушло вперёд.
		c.logger.Debug("ответ устаревшего поколения отброшен",
			zap.Uint64("generation", generation),
			zap.Uint64("current", c.generation),
		)
		return nil
	}

	if response.Err != nil {
		c.logger.Error("ошибка загрузки списка", zap.Error(response.Err))
		c.notifier.Error("Failed to load items")
		return response.Err
	}

	// Голый массив без конверта пагинации счётчики не трогает.
	if response.Data.Page != nil {
		c.items.SetAll(response.Data.Items)
		c.pagination.TotalItems = response.Data.Page.TotalElements
	}
	return nil
}

func (c *Container[T]) buildListRequest() api.ApiRequest {
	page, size := c.pagination.Page, c.pagination.Size

	if c.filtersActive() {
		return c.cfg.Actions.SearchItemsByFilters(c.filters, page, size)
	}
	if c.query != "" {
		return c.cfg.Actions.SearchItems(c.query, page, size)
	}
	return c.cfg.Actions.GetItems(page, size)
}

func (c *Container[T]) filtersActive() bool {
	return c.cfg.Actions.SearchItemsByFilters != nil && c.filters != nil && !c.filters.IsZero()
}

//============== ПАГИНАЦИЯ ==============

func (c *Container[T]) SetPage(ctx context.Context, page int) error {
	if page < 0 {
		page = 0
	}
	if max := c.maxPage(); page > max {
		page = max
	}
	c.pagination.Page = page
	return c.Refresh(ctx)
}

// SetPageSize меняет размер страницы и всегда сбрасывает индекс на 0.
func (c *Container[T]) SetPageSize(ctx context.Context, size int) error {
	if !validPageSize(size) {
		size = constants.DefaultPageSize
	}
	c.pagination = types.Pagination{
		Page:       0,
		Size:       size,
		TotalItems: c.pagination.TotalItems,
	}
	return c.Refresh(ctx)
}

func (c *Container[T]) maxPage() int {
	total, size := c.pagination.TotalItems, int64(c.pagination.Size)
	if total <= 0 || size <= 0 {
		return 0
	}
	pages := (total + size - 1) / size
	return int(pages) - 1
}

func validPageSize(size int) bool {
	for _, s := range constants.PageSizeOptions {
		if s == size {
			return true
		}
	}
	return false
}

//============== ПОИСК ==============

// SetQuery принимает уже отдолженное значение (тихое окно держит
// заголовок таблицы). Пустая строка возвращает обычный список.
func (c *Container[T]) SetQuery(ctx context.Context, query string) error {
	if c.query == query {
		return nil
	}
	c.query = query
	c.pagination.Page = 0
	return c.Refresh(ctx)
}

func (c *Container[T]) SetFilters(ctx context.Context, filters Filter) error {
	c.filters = filters
	c.pagination.Page = 0
	return c.Refresh(ctx)
}

// ToggleAdvanced открывает/закрывает панель расширенного поиска.
// Сворачивание панели очищает фильтры — они живут только пока панель
// открыта.
func (c *Container[T]) ToggleAdvanced(ctx context.Context, open bool) error {
	if c.advancedOpen == open {
		return nil
	}
	c.advancedOpen = open
	if !open && c.filters != nil && !c.filters.IsZero() {
		c.filters = nil
		return c.Refresh(ctx)
	}
	if !open {
		c.filters = nil
	}
	return nil
}

//============== ФОРМЫ И МУТАЦИИ ==============

func (c *Container[T]) OpenCreateForm() {
	c.selectedID = nil
	c.displayForm = true
}

func (c *Container[T]) OpenEditForm(id int64) {
	c.selectedID = &id
	c.displayForm = true
}

func (c *Container[T]) CloseForm() {
	c.selectedID = nil
	c.displayForm = false
}

// SubmitForm выполняет create либо update в зависимости от того, была ли
// выбрана строка. Ответ сервера — финальное состояние записи: он
// адаптируется и попадает в список без повторного GET.
func (c *Container[T]) SubmitForm(ctx context.Context, draft any) error {
	var req api.ApiRequest
	editing := c.displayForm && c.selectedID != nil
	if editing {
		req = c.cfg.Actions.UpdateItem(*c.selectedID, draft)
	} else {
		req = c.cfg.Actions.CreateItem(draft)
	}

	response := fetch.CallEndpoint(ctx, c.fetcher, req, c.cfg.Adapters.Item)

	defer c.CloseForm()

	if response.Err != nil {
		c.logger.Error("ошибка сохранения", zap.Error(response.Err))
		c.notifier.Error("Failed to save item")
		return response.Err
	}

	if editing {
		c.items.Update(response.Data)
	} else {
		c.items.Add(response.Data)
		c.pagination.TotalItems++
	}
	c.notifier.Success("Item saved successfully")
	return nil
}

// Delete спрашивает подтверждение и только после него идёт в сеть.
// Отказ — полный no-op.
func (c *Container[T]) Delete(ctx context.Context, id int64) error {
	item, ok := c.items.GetByID(id)
	if !ok {
		return nil
	}

	if !c.notifier.Confirm(c.cfg.FormatMessage(item)) {
		return nil
	}

	response := fetch.CallRaw(ctx, c.fetcher, c.cfg.Actions.DeleteItem(id))
	if response.Err != nil {
		c.logger.Error("ошибка удаления", zap.Int64("id", id), zap.Error(response.Err))
		c.notifier.Error("Failed to delete item")
		return response.Err
	}

	c.items.Remove(id)
	if c.pagination.TotalItems > 0 {
		c.pagination.TotalItems--
	}
	c.notifier.Success("Item deleted successfully")
	return nil
}

//============== РАСКРЫТИЕ СТРОК ==============

func (c *Container[T]) IsExpandable(item T) bool {
	return c.cfg.RowExpandable != nil && c.cfg.RowExpandable(item)
}

// HandleRowClick переключает панель деталей строки. Клик по
// нераскрываемой строке — no-op; раскрытие закрывает инлайн-форму.
func (c *Container[T]) HandleRowClick(item T) {
	if !c.IsExpandable(item) {
		return
	}
	id := item.EntityID()
	if c.selectedID != nil && *c.selectedID == id {
		c.selectedID = nil
	} else {
		c.selectedID = &id
	}
	c.displayForm = false
}

func (c *Container[T]) IsOpen(id int64) bool {
	return c.selectedID != nil && *c.selectedID == id
}

// ExpandContent отдаёт содержимое панели деталей раскрытой строки.
func (c *Container[T]) ExpandContent(ctx context.Context, id int64) (string, error) {
	if c.cfg.ExpandContent == nil {
		return "", nil
	}
	return c.cfg.ExpandContent(ctx, id)
}

//============== ПРАВА ==============

func (c *Container[T]) CanCreate() bool {
	return c.roleAllowed(c.cfg.AllowedActions.Create)
}

// DisplayActions — показывать ли колонку действий вообще.
func (c *Container[T]) DisplayActions() bool {
	return c.roleAllowed(c.cfg.AllowedActions.Update) || c.roleAllowed(c.cfg.AllowedActions.Delete)
}

func (c *Container[T]) CanUpdate(item T) bool {
	return c.roleAllowed(c.cfg.AllowedActions.Update) && !c.isSelf(item)
}

func (c *Container[T]) CanDelete(item T) bool {
	return c.roleAllowed(c.cfg.AllowedActions.Delete) && !c.isSelf(item)
}

func (c *Container[T]) roleAllowed(allowed []string) bool {
	return c.auth.HasAnyRole(allowed)
}

// isSelf — конъюнктивная проверка собственной записи: совпасть должны и
// id, и номер телефона. Записи без телефона собой не считаются.
func (c *Container[T]) isSelf(item T) bool {
	if item.EntityID() != c.auth.ID {
		return false
	}
	owner, ok := any(item).(types.PhoneOwner)
	if !ok {
		return false
	}
	phone := owner.Phone()
	return phone != "" && phone == c.auth.PhoneNumber
}

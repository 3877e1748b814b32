package container

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"courier-console/internal/adapters"
	"courier-console/internal/api"
	"courier-console/internal/dto"
	"courier-console/internal/entities"
	"courier-console/internal/fetch"
	"courier-console/pkg/constants"
)

//============== ТЕСТОВАЯ ОБВЯЗКА ==============

type stubNotifier struct {
	successes []string
	errors    []string
	confirmed []string
	answer    bool
}

func (n *stubNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *stubNotifier) Error(message string)   { n.errors = append(n.errors, message) }
func (n *stubNotifier) Confirm(message string) bool {
	n.confirmed = append(n.confirmed, message)
	return n.answer
}

func userJSON(id int64, name, phone string) string {
	return fmt.Sprintf(`{
		"id": %d,
		"fullName": %q,
		"email": "u%d@example.com",
		"phoneNumber": %q,
		"roles": [{"id": 1, "name": "ROLE_COURIER"}]
	}`, id, name, id, phone)
}

func envelope(total int64, items ...string) string {
	return fmt.Sprintf(`{
		"content": [%s],
		"totalElements": %d,
		"totalPages": 0,
		"size": 5,
		"number": 0,
		"numberOfElements": %d
	}`, strings.Join(items, ","), total, len(items))
}

func staticRequest(raw string) api.ApiRequest {
	return api.NewRequest("/test", func(context.Context) (json.RawMessage, error) {
		return json.RawMessage(raw), nil
	})
}

func failingRequest(err error) api.ApiRequest {
	return api.NewRequest("/test", func(context.Context) (json.RawMessage, error) {
		return nil, err
	})
}

var adminAuth = entities.AuthState{
	ID:          100,
	FullName:    "Root Admin",
	PhoneNumber: "+992900000100",
	Roles:       []entities.Role{{ID: 1, Name: constants.RoleAdmin}},
}

func newTestContainer(actions Actions, notifier Notifier) *Container[entities.UserAccount] {
	logger := zap.NewNop()
	admins := []string{constants.RoleAdmin}

	cfg := Config[entities.UserAccount]{
		Title:   "Users",
		Actions: actions,
		Adapters: Adapters[entities.UserAccount]{
			Item: adapters.Account,
			List: adapters.List[entities.UserAccount],
		},
		Columns: []Column[entities.UserAccount]{
			{Key: "fullName", Label: "Full name", Sortable: true},
		},
		MapItemRow: func(u entities.UserAccount) []string { return []string{u.FullName} },
		AllowedActions: AllowedActions{
			Create: admins,
			Update: admins,
			Delete: admins,
		},
		FormatMessage: func(u entities.UserAccount) string {
			return "Delete user " + u.FullName + "?"
		},
		RowExpandable: func(u entities.UserAccount) bool { return u.IsClient() },
	}

	return New(cfg, adminAuth, fetch.NewFetcher(logger), notifier, logger)
}

// recordingActions считает, в каком режиме контейнер запросил список.
type recordingActions struct {
	modes []string
}

func (r *recordingActions) actions(listBody string) Actions {
	return Actions{
		GetItems: func(page, size int) api.ApiRequest {
			r.modes = append(r.modes, fmt.Sprintf("list p%d s%d", page, size))
			return staticRequest(listBody)
		},
		SearchItems: func(query string, page, size int) api.ApiRequest {
			r.modes = append(r.modes, fmt.Sprintf("search %q p%d", query, page))
			return staticRequest(listBody)
		},
		SearchItemsByFilters: func(filters Filter, page, size int) api.ApiRequest {
			r.modes = append(r.modes, fmt.Sprintf("filters p%d", page))
			return staticRequest(listBody)
		},
	}
}

//============== РЕЖИМЫ ЗАГРУЗКИ ==============

func TestRefresh_ModePrecedence(t *testing.T) {
	ctx := context.Background()
	rec := &recordingActions{}
	c := newTestContainer(rec.actions(envelope(1, userJSON(1, "Anna", "+1"))), &stubNotifier{})

	require.NoError(t, c.Refresh(ctx))
	require.NoError(t, c.SetQuery(ctx, "an"))

	// Непустые фильтры побеждают текстовый запрос.
	filters := dto.UserFilter{FullName: "Anna"}
	require.NoError(t, c.SetFilters(ctx, filters))

	assert.Equal(t, []string{`list p0 s5`, `search "an" p0`, `filters p0`}, rec.modes)
}

func TestSetQuery_SameValueIsNoop(t *testing.T) {
	ctx := context.Background()
	rec := &recordingActions{}
	c := newTestContainer(rec.actions(envelope(1, userJSON(1, "Anna", "+1"))), &stubNotifier{})

	require.NoError(t, c.SetQuery(ctx, "an"))
	require.NoError(t, c.SetQuery(ctx, "an"))

	assert.Len(t, rec.modes, 1)
}

func TestToggleAdvanced_CollapseClearsFilters(t *testing.T) {
	ctx := context.Background()
	rec := &recordingActions{}
	c := newTestContainer(rec.actions(envelope(1, userJSON(1, "Anna", "+1"))), &stubNotifier{})

	require.NoError(t, c.ToggleAdvanced(ctx, true))
	require.NoError(t, c.SetFilters(ctx, dto.UserFilter{FullName: "Anna"}))
	require.NoError(t, c.ToggleAdvanced(ctx, false))

	// Сворачивание панели сбросило фильтры и перечитало обычный список.
	assert.Equal(t, []string{`filters p0`, `list p0 s5`}, rec.modes)
	assert.False(t, c.AdvancedOpen())
}

//============== ПАГИНАЦИЯ ==============

func TestPagination_ClampAndSizeReset(t *testing.T) {
	ctx := context.Background()
	rec := &recordingActions{}
	// 12 записей при размере 5 — страницы 0..2.
	c := newTestContainer(rec.actions(envelope(12, userJSON(1, "Anna", "+1"))), &stubNotifier{})

	require.NoError(t, c.Refresh(ctx))
	assert.Equal(t, int64(12), c.Pagination().TotalItems)

	require.NoError(t, c.SetPage(ctx, 5))
	assert.Equal(t, 2, c.Pagination().Page)

	require.NoError(t, c.SetPage(ctx, -3))
	assert.Equal(t, 0, c.Pagination().Page)

	// Смена размера всегда возвращает на первую страницу.
	require.NoError(t, c.SetPage(ctx, 2))
	require.NoError(t, c.SetPageSize(ctx, 10))
	assert.Equal(t, 0, c.Pagination().Page)
	assert.Equal(t, 10, c.Pagination().Size)

	// Недопустимый размер заменяется размером по умолчанию.
	require.NoError(t, c.SetPageSize(ctx, 7))
	assert.Equal(t, constants.DefaultPageSize, c.Pagination().Size)
}

func TestSetQuery_ResetsPage(t *testing.T) {
	ctx := context.Background()
	rec := &recordingActions{}
	c := newTestContainer(rec.actions(envelope(12, userJSON(1, "Anna", "+1"))), &stubNotifier{})

	require.NoError(t, c.Refresh(ctx))
	require.NoError(t, c.SetPage(ctx, 2))
	require.NoError(t, c.SetQuery(ctx, "an"))

	assert.Equal(t, 0, c.Pagination().Page)
}

//============== ОТВЕТЫ СПИСКА ==============

// Голый массив без конверта не трогает ни список, ни счётчики.
func TestRefresh_BareArrayKeepsState(t *testing.T) {
	ctx := context.Background()
	body := envelope(12, userJSON(1, "Anna", "+1"))
	bare := false
	actions := Actions{
		GetItems: func(page, size int) api.ApiRequest {
			if bare {
				return staticRequest(`[` + userJSON(2, "Boris", "+2") + `]`)
			}
			return staticRequest(body)
		},
	}
	c := newTestContainer(actions, &stubNotifier{})

	require.NoError(t, c.Refresh(ctx))
	bare = true
	require.NoError(t, c.Refresh(ctx))

	require.Len(t, c.Items(), 1)
	assert.Equal(t, "Anna", c.Items()[0].FullName)
	assert.Equal(t, int64(12), c.Pagination().TotalItems)
}

func TestRefresh_ErrorNotifies(t *testing.T) {
	ctx := context.Background()
	notifier := &stubNotifier{}
	actions := Actions{
		GetItems: func(page, size int) api.ApiRequest {
			return failingRequest(fmt.Errorf("boom"))
		},
	}
	c := newTestContainer(actions, notifier)

	err := c.Refresh(ctx)
	require.Error(t, err)
	assert.Equal(t, []string{"Failed to load items"}, notifier.errors)
	assert.Empty(t, c.Items())
}

// Ответ запроса, запущенного до смены состояния, отбрасывается: список
// остаётся за более поздним поколением.
func TestRefresh_StaleGenerationDiscarded(t *testing.T) {
	ctx := context.Background()
	var c *Container[entities.UserAccount]
	interleaved := false

	actions := Actions{
		GetItems: func(page, size int) api.ApiRequest {
			return api.NewRequest("/list", func(ctx context.Context) (json.RawMessage, error) {
				if !interleaved {
					interleaved = true
					// Состояние меняется, пока первый ответ ещё в полёте.
					require.NoError(t, c.SetQuery(ctx, "fresh"))
				}
				return json.RawMessage(envelope(1, userJSON(1, "Stale", "+1"))), nil
			})
		},
		SearchItems: func(query string, page, size int) api.ApiRequest {
			return staticRequest(envelope(1, userJSON(2, "Fresh", "+2")))
		},
	}
	c = newTestContainer(actions, &stubNotifier{})

	require.NoError(t, c.Refresh(ctx))

	require.Len(t, c.Items(), 1)
	assert.Equal(t, "Fresh", c.Items()[0].FullName)
}

//============== МУТАЦИИ ==============

func TestSubmitForm_CreateAppendsOptimistically(t *testing.T) {
	ctx := context.Background()
	notifier := &stubNotifier{}
	actions := Actions{
		GetItems: func(page, size int) api.ApiRequest {
			return staticRequest(envelope(2, userJSON(1, "Anna", "+1"), userJSON(2, "Boris", "+2")))
		},
		CreateItem: func(draft any) api.ApiRequest {
			// Сервер возвращает созданную запись с присвоенным id.
			return staticRequest(userJSON(3, "Clara", "+3"))
		},
	}
	c := newTestContainer(actions, notifier)
	require.NoError(t, c.Refresh(ctx))

	c.OpenCreateForm()
	require.NoError(t, c.SubmitForm(ctx, dto.UserForm{FullName: "Clara"}))

	assert.Len(t, c.Items(), 3)
	assert.Equal(t, int64(3), c.Pagination().TotalItems)
	assert.False(t, c.FormOpen())
	assert.Equal(t, []string{"Item saved successfully"}, notifier.successes)
}

func TestSubmitForm_EditUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	actions := Actions{
		GetItems: func(page, size int) api.ApiRequest {
			return staticRequest(envelope(2, userJSON(1, "Anna", "+1"), userJSON(2, "Boris", "+2")))
		},
		UpdateItem: func(id int64, draft any) api.ApiRequest {
			return staticRequest(userJSON(id, "Boris Renamed", "+2"))
		},
	}
	c := newTestContainer(actions, &stubNotifier{})
	require.NoError(t, c.Refresh(ctx))

	c.OpenEditForm(2)
	require.NoError(t, c.SubmitForm(ctx, dto.UserForm{FullName: "Boris Renamed"}))

	assert.Len(t, c.Items(), 2)
	item, ok := c.GetItemByID(2)
	require.True(t, ok)
	assert.Equal(t, "Boris Renamed", item.FullName)
	assert.Equal(t, int64(2), c.Pagination().TotalItems)
}

func TestSubmitForm_ErrorKeepsList(t *testing.T) {
	ctx := context.Background()
	notifier := &stubNotifier{}
	actions := Actions{
		GetItems: func(page, size int) api.ApiRequest {
			return staticRequest(envelope(1, userJSON(1, "Anna", "+1")))
		},
		CreateItem: func(draft any) api.ApiRequest {
			return failingRequest(fmt.Errorf("boom"))
		},
	}
	c := newTestContainer(actions, notifier)
	require.NoError(t, c.Refresh(ctx))

	c.OpenCreateForm()
	require.Error(t, c.SubmitForm(ctx, dto.UserForm{}))

	assert.Len(t, c.Items(), 1)
	assert.False(t, c.FormOpen())
	assert.Equal(t, []string{"Failed to save item"}, notifier.errors)
}

func TestDelete_ConfirmedRemovesItem(t *testing.T) {
	ctx := context.Background()
	notifier := &stubNotifier{answer: true}
	deleted := []int64{}
	actions := Actions{
		GetItems: func(page, size int) api.ApiRequest {
			return staticRequest(envelope(2, userJSON(1, "Anna", "+1"), userJSON(2, "Boris", "+2")))
		},
		DeleteItem: func(id int64) api.ApiRequest {
			deleted = append(deleted, id)
			return staticRequest(`{}`)
		},
	}
	c := newTestContainer(actions, notifier)
	require.NoError(t, c.Refresh(ctx))

	require.NoError(t, c.Delete(ctx, 2))

	assert.Equal(t, []int64{2}, deleted)
	assert.Equal(t, []string{"Delete user Boris?"}, notifier.confirmed)
	assert.Len(t, c.Items(), 1)
	assert.Equal(t, int64(1), c.Pagination().TotalItems)
}

// Отказ в диалоге подтверждения — полный no-op, сеть не трогается.
func TestDelete_DeclinedIsNoop(t *testing.T) {
	ctx := context.Background()
	notifier := &stubNotifier{answer: false}
	networkCalls := 0
	actions := Actions{
		GetItems: func(page, size int) api.ApiRequest {
			return staticRequest(envelope(1, userJSON(1, "Anna", "+1")))
		},
		DeleteItem: func(id int64) api.ApiRequest {
			networkCalls++
			return staticRequest(`{}`)
		},
	}
	c := newTestContainer(actions, notifier)
	require.NoError(t, c.Refresh(ctx))

	require.NoError(t, c.Delete(ctx, 1))

	assert.Zero(t, networkCalls)
	assert.Len(t, c.Items(), 1)
	assert.Len(t, notifier.confirmed, 1)
}

func TestDelete_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	notifier := &stubNotifier{answer: true}
	c := newTestContainer(Actions{
		GetItems: func(page, size int) api.ApiRequest {
			return staticRequest(envelope(1, userJSON(1, "Anna", "+1")))
		},
	}, notifier)
	require.NoError(t, c.Refresh(ctx))

	require.NoError(t, c.Delete(ctx, 404))
	assert.Empty(t, notifier.confirmed)
}

//============== ПРАВА И ЗАЩИТА СВОЕЙ ЗАПИСИ ==============

func TestPermissions_SelfProtection(t *testing.T) {
	ctx := context.Background()
	// Запись 100 совпадает с текущим администратором и по id, и по телефону.
	self := userJSON(adminAuth.ID, "Root Admin", adminAuth.PhoneNumber)
	other := userJSON(2, "Boris", "+992900000002")
	sameIDOtherPhone := userJSON(adminAuth.ID, "Impostor", "+992900999999")

	check := func(t *testing.T, body string, want bool) {
		t.Helper()
		c := newTestContainer(Actions{
			GetItems: func(page, size int) api.ApiRequest {
				return staticRequest(envelope(1, body))
			},
		}, &stubNotifier{})
		require.NoError(t, c.Refresh(ctx))
		item := c.Items()[0]
		assert.Equal(t, want, c.CanUpdate(item))
		assert.Equal(t, want, c.CanDelete(item))
	}

	t.Run("собственная запись защищена", func(t *testing.T) { check(t, self, false) })
	t.Run("чужая запись доступна", func(t *testing.T) { check(t, other, true) })
	// Совпадение только id — недостаточно, проверка конъюнктивная.
	t.Run("совпадение id без телефона", func(t *testing.T) { check(t, sameIDOtherPhone, true) })
}

func TestPermissions_RoleGating(t *testing.T) {
	c := newTestContainer(Actions{}, &stubNotifier{})
	assert.True(t, c.CanCreate())
	assert.True(t, c.DisplayActions())
}

//============== РАСКРЫТИЕ СТРОК ==============

func TestHandleRowClick_TogglesOnlyExpandable(t *testing.T) {
	ctx := context.Background()
	client := `{
		"id": 5, "fullName": "Client", "email": "c@c.com", "phoneNumber": "+5",
		"roles": [{"id": 3, "name": "ROLE_CLIENT"}],
		"office": {"id": 1, "name": "Central"},
		"branches": []
	}`
	c := newTestContainer(Actions{
		GetItems: func(page, size int) api.ApiRequest {
			return staticRequest(envelope(2, userJSON(1, "Staff", "+1"), client))
		},
	}, &stubNotifier{})
	require.NoError(t, c.Refresh(ctx))

	staff, _ := c.GetItemByID(1)
	clientItem, _ := c.GetItemByID(5)

	c.HandleRowClick(staff)
	_, open := c.SelectedID()
	assert.False(t, open)

	c.HandleRowClick(clientItem)
	assert.True(t, c.IsOpen(5))

	// Повторный клик закрывает строку.
	c.HandleRowClick(clientItem)
	assert.False(t, c.IsOpen(5))
}

// Раскрытие строки закрывает инлайн-форму: selectedID общий.
func TestHandleRowClick_ClosesForm(t *testing.T) {
	ctx := context.Background()
	client := `{
		"id": 5, "fullName": "Client", "email": "c@c.com", "phoneNumber": "+5",
		"roles": [{"id": 3, "name": "ROLE_CLIENT"}],
		"office": {"id": 1, "name": "Central"},
		"branches": []
	}`
	c := newTestContainer(Actions{
		GetItems: func(page, size int) api.ApiRequest {
			return staticRequest(envelope(1, client))
		},
	}, &stubNotifier{})
	require.NoError(t, c.Refresh(ctx))

	c.OpenEditForm(5)
	require.True(t, c.FormOpen())

	item, _ := c.GetItemByID(5)
	c.HandleRowClick(item)

	assert.False(t, c.FormOpen())
}

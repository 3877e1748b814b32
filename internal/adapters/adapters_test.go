package adapters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier-console/internal/dto"
	"courier-console/internal/entities"
	"courier-console/pkg/apperrors"
)

const staffJSON = `{
	"id": 7,
	"fullName": "Анна Петрова",
	"email": "anna@example.com",
	"phoneNumber": "+992900000001",
	"roles": [{"id": 1, "name": "ROLE_ADMIN"}]
}`

const clientJSON = `{
	"id": 8,
	"fullName": "Client One",
	"email": "client@example.com",
	"phoneNumber": "+992900000002",
	"roles": [{"id": 3, "name": "ROLE_CLIENT"}],
	"office": {"id": 2, "name": "Central"},
	"branches": [{"id": 4, "city": "Dushanbe", "address": "Rudaki 1"}]
}`

func TestAccount_StaffWithoutOfficeFields(t *testing.T) {
	account, err := Account(json.RawMessage(staffJSON))
	require.NoError(t, err)

	assert.Equal(t, entities.UserStaff, account.Kind)
	assert.False(t, account.IsClient())
	assert.Nil(t, account.Office)
	assert.Nil(t, account.Branches)
	assert.Equal(t, int64(7), account.EntityID())
}

func TestAccount_ClientByOfficeAndBranches(t *testing.T) {
	account, err := Account(json.RawMessage(clientJSON))
	require.NoError(t, err)

	assert.Equal(t, entities.UserClient, account.Kind)
	assert.True(t, account.IsClient())
	require.NotNil(t, account.Office)
	assert.Equal(t, "Central", account.Office.Name)
	assert.Len(t, account.Branches, 1)
}

// Офис без филиалов (и наоборот) — не клиент: нужны оба признака.
func TestAccount_OfficeAloneIsNotClient(t *testing.T) {
	raw := `{
		"id": 9, "fullName": "X", "email": "x@x.com", "phoneNumber": "+992900000003",
		"roles": [{"id": 1, "name": "ROLE_COURIER"}],
		"office": {"id": 2, "name": "Central"}
	}`
	account, err := Account(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, entities.UserStaff, account.Kind)
	assert.Nil(t, account.Office)
}

func TestAccount_MissingRequiredField(t *testing.T) {
	raw := `{"id": 9, "fullName": "X", "phoneNumber": "+992900000003", "roles": [{"name": "ROLE_ADMIN"}]}`
	_, err := Account(json.RawMessage(raw))

	var decodeErr *apperrors.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "email", decodeErr.Field)
}

func TestAccountPayload_ClientFieldsOnlyForClientRole(t *testing.T) {
	office := &entities.OfficeBase{ID: 2, Name: "Central"}
	form := dto.UserForm{
		FullName:    "Client One",
		Email:       "client@example.com",
		PhoneNumber: "+992900000002",
		Roles:       []entities.Role{{ID: 3, Name: "ROLE_CLIENT"}},
		Office:      office,
	}

	payload := AccountPayload(form)
	assert.Equal(t, entities.UserClient, payload.Kind)
	assert.Equal(t, office, payload.Office)
	// Филиалы клиента всегда сериализуются, хотя бы пустым списком.
	assert.NotNil(t, payload.Branches)

	form.Roles = []entities.Role{{ID: 1, Name: "ROLE_ADMIN"}}
	payload = AccountPayload(form)
	assert.Equal(t, entities.UserStaff, payload.Kind)
	assert.Nil(t, payload.Office)
	assert.Nil(t, payload.Branches)
}

func TestUserFilter_TrimsAndDefaults(t *testing.T) {
	filter := UserFilter(dto.UserSearchForm{
		FullName: "  Anna  ",
		Email:    "\tanna@example.com ",
	})

	assert.Equal(t, "Anna", filter.FullName)
	assert.Equal(t, "anna@example.com", filter.Email)
	// Пустые списки должны уйти на сервер как [], а не null.
	assert.NotNil(t, filter.Roles)
	assert.NotNil(t, filter.Offices)
	assert.NotNil(t, filter.Branches)

	data, err := json.Marshal(filter)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"roles":[]`)
	assert.NotContains(t, string(data), `"phoneNumber"`)
}

//============== СПИСОЧНЫЙ АДАПТЕР ==============

func TestList_BareArrayHasNoPage(t *testing.T) {
	raw := json.RawMessage(`[` + staffJSON + `,` + clientJSON + `]`)

	result, err := List(raw, Account)
	require.NoError(t, err)

	assert.Len(t, result.Items, 2)
	assert.Nil(t, result.Page)
}

func TestList_EnvelopeCarriesMetadata(t *testing.T) {
	raw := json.RawMessage(`{
		"content": [` + staffJSON + `],
		"totalElements": 12,
		"totalPages": 3,
		"size": 5,
		"number": 1,
		"numberOfElements": 1
	}`)

	result, err := List(raw, Account)
	require.NoError(t, err)

	require.NotNil(t, result.Page)
	assert.Equal(t, int64(12), result.Page.TotalElements)
	assert.Equal(t, 3, result.Page.TotalPages)
	assert.Equal(t, 1, result.Page.Number)
	assert.Len(t, result.Items, 1)
}

func TestList_EnvelopeWithoutContentFails(t *testing.T) {
	_, err := List(json.RawMessage(`{"totalElements": 12}`), Account)

	var decodeErr *apperrors.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "content", decodeErr.Field)
}

func TestList_ItemErrorPropagates(t *testing.T) {
	raw := json.RawMessage(`{"content": [{"id": 1}], "totalElements": 1}`)
	_, err := List(raw, Account)
	require.Error(t, err)
}

//============== РЕСУРСНЫЕ АДАПТЕРЫ ==============

func TestBranch_RequiresCityAndAddress(t *testing.T) {
	_, err := Branch(json.RawMessage(`{"id": 1, "city": "Dushanbe", "office": {"id": 2, "name": "Central"}}`))

	var decodeErr *apperrors.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "address", decodeErr.Field)
}

func TestOfficePage_CountsPreserved(t *testing.T) {
	office, err := OfficePage(json.RawMessage(`{"id": 3, "name": "North", "countBranches": 2, "countContacts": 5}`))
	require.NoError(t, err)

	assert.Equal(t, 2, office.CountBranches)
	assert.Equal(t, 5, office.CountContacts)
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"courier-console/internal/api"
	"courier-console/internal/dto"
	"courier-console/internal/entities"
)

// Сервисы только строят запросы; сеть здесь не нужна — проверяем
// эндпоинты, которые уйдут в транспорт.
func newClient(t *testing.T) *api.Client {
	t.Helper()
	client, err := api.NewClient("http://localhost:0", time.Second, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestUserService_Endpoints(t *testing.T) {
	s := NewUserService(newClient(t), zap.NewNop())

	assert.Equal(t, "/user?page=2&size=10", s.GetUsers(2, 10).Endpoint)
	assert.Equal(t, "/user/7", s.FindUser(7).Endpoint)
	assert.Equal(t, "/user/role/all", s.GetRoles().Endpoint)
	assert.Equal(t, "/user/search/advanced?page=0&size=5",
		s.SearchUsersByFilters(dto.UserFilter{FullName: "Anna"}, 0, 5).Endpoint)
}

// Кириллица и пробелы в поисковом запросе экранируются.
func TestUserService_SearchQueryEscaped(t *testing.T) {
	s := NewUserService(newClient(t), zap.NewNop())

	req := s.SearchUsers("Анна П", 0, 5)
	assert.Equal(t, "/user/search?query=%D0%90%D0%BD%D0%BD%D0%B0+%D0%9F&page=0&size=5", req.Endpoint)
}

// Офис без филиалов создаётся через базовый эндпоинт, с филиалами —
// через полный.
func TestOfficeService_CreateEndpointByShape(t *testing.T) {
	s := NewOfficeService(newClient(t), zap.NewNop())

	bare := s.CreateOffice(dto.OfficeForm{Name: "Central"})
	assert.Equal(t, "/resource/office/base", bare.Endpoint)

	full := s.CreateOffice(dto.OfficeForm{
		Name:     "Central",
		Branches: []entities.BranchBase{{City: "Dushanbe", Address: "Rudaki 1"}},
	})
	assert.Equal(t, "/resource/office", full.Endpoint)
}

func TestBranchService_Endpoints(t *testing.T) {
	s := NewBranchService(newClient(t), zap.NewNop())

	assert.Equal(t, "/resource/branch?page=1&size=25", s.GetBranches(1, 25).Endpoint)
	assert.Equal(t, "/resource/branch/office/3", s.GetBranchesByOffice(3).Endpoint)
	assert.Equal(t, "/resource/branch/search/advanced?page=0&size=5",
		s.SearchBranchesByFilters(dto.BranchFilter{Address: "Rudaki"}, 0, 5).Endpoint)
}

func TestContactService_Endpoints(t *testing.T) {
	s := NewContactService(newClient(t), zap.NewNop())

	assert.Equal(t, "/resource/contact/9", s.FindContact(9).Endpoint)
	assert.Equal(t, "/resource/contact/office/3", s.GetContactsByOffice(3).Endpoint)
	assert.Equal(t, "/resource/contact/search/advanced?page=2&size=10",
		s.SearchContactsByFilters(dto.ContactFilter{FullName: "Anna"}, 2, 10).Endpoint)
}

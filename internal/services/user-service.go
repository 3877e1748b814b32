package services

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"courier-console/internal/adapters"
	"courier-console/internal/api"
	"courier-console/internal/dto"
	"courier-console/pkg/constants"
)

// UserService собирает запросы к ресурсу /user. Сетью он не занимается —
// только строит ApiRequest, выполняет их контейнер через fetch.
type UserService struct {
	api    *api.Client
	logger *zap.Logger
}

func NewUserService(apiClient *api.Client, logger *zap.Logger) *UserService {
	return &UserService{
		api:    apiClient,
		logger: logger.Named("user_service"),
	}
}

func (s *UserService) GetUsers(page, size int) api.ApiRequest {
	return s.api.GetItem(fmt.Sprintf("%s?page=%d&size=%d", constants.UserBase, page, size))
}

func (s *UserService) FindUser(id int64) api.ApiRequest {
	return s.api.GetItem(fmt.Sprintf("%s/%d", constants.UserBase, id))
}

// CreateUser сериализует клиентский вариант (office + branches) только
// когда среди ролей формы есть ROLE_CLIENT.
func (s *UserService) CreateUser(form dto.UserForm) api.ApiRequest {
	return s.api.PostItem(constants.UserBase, adapters.AccountPayload(form))
}

func (s *UserService) UpdateUser(id int64, form dto.UserForm) api.ApiRequest {
	return s.api.PutItem(fmt.Sprintf("%s/%d", constants.UserBase, id), adapters.AccountPayload(form))
}

func (s *UserService) DeleteUser(id int64) api.ApiRequest {
	return s.api.DeleteItem(fmt.Sprintf("%s/%d", constants.UserBase, id))
}

func (s *UserService) SearchUsers(query string, page, size int) api.ApiRequest {
	return s.api.GetItem(fmt.Sprintf("%s?query=%s&page=%d&size=%d",
		constants.UserSearch, url.QueryEscape(query), page, size))
}

func (s *UserService) SearchUsersByFilters(filter dto.UserFilter, page, size int) api.ApiRequest {
	return s.api.PostItem(fmt.Sprintf("%s/search/advanced?page=%d&size=%d",
		constants.UserBase, page, size), filter)
}

func (s *UserService) GetRoles() api.ApiRequest {
	return s.api.GetItem(constants.RoleList)
}

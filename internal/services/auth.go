package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"courier-console/internal/adapters"
	"courier-console/internal/api"
	"courier-console/internal/dto"
	"courier-console/internal/entities"
	"courier-console/internal/fetch"
	"courier-console/pkg/apperrors"
	"courier-console/pkg/constants"
)

// AuthService — вход, выход и смена учётных данных. В отличие от
// CRUD-сервисов выполняет запросы сам: это процедурные потоки, а не
// конфигурация контейнера.
type AuthService struct {
	api     *api.Client
	fetcher *fetch.Fetcher
	logger  *zap.Logger
}

func NewAuthService(apiClient *api.Client, fetcher *fetch.Fetcher, logger *zap.Logger) *AuthService {
	return &AuthService{
		api:     apiClient,
		fetcher: fetcher,
		logger:  logger.Named("auth_service"),
	}
}

// SignIn определяет способ входа по виду логина: адрес с @ уходит как
// email, всё остальное — как номер телефона. Второе поле сервер
// получает как JSON null.
func (s *AuthService) SignIn(ctx context.Context, form dto.SignInForm) (entities.AuthState, error) {
	request := dto.SignInRequest{Password: form.Password}
	if strings.Contains(form.Login, "@") {
		request.Email = null.StringFrom(form.Login)
	} else {
		request.PhoneNumber = null.StringFrom(form.Login)
	}

	response := fetch.CallEndpoint(ctx, s.fetcher, s.api.PostItem(constants.AuthSignIn, request), adapters.AuthState)
	if response.Err != nil {
		s.logger.Warn("вход не выполнен", zap.Error(response.Err))
		var apiErr *apperrors.ApiError
		if errors.As(response.Err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return entities.AuthState{}, apperrors.ErrInvalidCredentials
		}
		return entities.AuthState{}, response.Err
	}

	s.logger.Info("пользователь вошёл в систему", zap.Int64("id", response.Data.ID))
	return response.Data, nil
}

func (s *AuthService) SignUp(ctx context.Context, form dto.SignUpForm) error {
	request := dto.SignUpRequest{
		Email:           form.Email,
		Phone:           form.Phone,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	}
	response := fetch.CallRaw(ctx, s.fetcher, s.api.PostItem(constants.AuthSignUp, request))
	if response.Err != nil {
		s.logger.Warn("регистрация не выполнена", zap.Error(response.Err))
		return response.Err
	}
	return nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	response := fetch.CallRaw(ctx, s.fetcher, s.api.PostItem(constants.CredentialLogout, nil))
	if response.Err != nil {
		s.logger.Error("ошибка при выходе", zap.Error(response.Err))
		return response.Err
	}
	s.logger.Info("сессия завершена")
	return nil
}

func (s *AuthService) UpdateCredential(ctx context.Context, form dto.UpdateCredentialForm) error {
	request := dto.UpdateCredentialRequest{
		OldPassword:     form.OldPassword,
		NewPassword:     form.NewPassword,
		ConfirmPassword: form.ConfirmPassword,
	}
	response := fetch.CallRaw(ctx, s.fetcher, s.api.PostItem(constants.CredentialUpdate, request))
	if response.Err != nil {
		s.logger.Warn("смена пароля не выполнена", zap.Error(response.Err))
		return response.Err
	}
	s.logger.Info("пароль обновлён")
	return nil
}

// FetchAuthState перечитывает личность сессии по сохранённому id —
// единственное, что переживает перезапуск консоли.
func (s *AuthService) FetchAuthState(ctx context.Context, id int64) (entities.AuthState, error) {
	endpoint := fmt.Sprintf("%s/%d", constants.UserBase, id)
	response := fetch.CallEndpoint(ctx, s.fetcher, s.api.GetItem(endpoint), adapters.AuthState)
	if response.Err != nil {
		return entities.AuthState{}, response.Err
	}
	return response.Data, nil
}

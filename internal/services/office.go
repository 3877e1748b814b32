package services

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"courier-console/internal/api"
	"courier-console/internal/dto"
	"courier-console/internal/entities"
	"courier-console/pkg/constants"
)

type OfficeService struct {
	api    *api.Client
	logger *zap.Logger
}

func NewOfficeService(apiClient *api.Client, logger *zap.Logger) *OfficeService {
	return &OfficeService{
		api:    apiClient,
		logger: logger.Named("office_service"),
	}
}

func (s *OfficeService) GetOffices(page, size int) api.ApiRequest {
	return s.api.GetItem(fmt.Sprintf("%s?page=%d&size=%d", constants.OfficeBase, page, size))
}

// CreateOffice выбирает эндпоинт по форме данных: офис без филиалов
// создаётся через /base.
func (s *OfficeService) CreateOffice(form dto.OfficeForm) api.ApiRequest {
	if len(form.Branches) == 0 {
		office := entities.OfficeBase{ID: form.ID, Name: form.Name}
		return s.api.PostItem(constants.OfficeCreateBase, office)
	}
	office := entities.Office{
		OfficeBase: entities.OfficeBase{ID: form.ID, Name: form.Name},
		Branches:   form.Branches,
	}
	return s.api.PostItem(constants.OfficeBase, office)
}

func (s *OfficeService) UpdateOffice(id int64, form dto.OfficeForm) api.ApiRequest {
	office := entities.Office{
		OfficeBase: entities.OfficeBase{ID: form.ID, Name: form.Name},
		Branches:   form.Branches,
	}
	return s.api.PutItem(fmt.Sprintf("%s/%d", constants.OfficeBase, id), office)
}

func (s *OfficeService) DeleteOffice(id int64) api.ApiRequest {
	return s.api.DeleteItem(fmt.Sprintf("%s/%d", constants.OfficeBase, id))
}

func (s *OfficeService) SearchOffices(query string, page, size int) api.ApiRequest {
	return s.api.GetItem(fmt.Sprintf("%s?query=%s&page=%d&size=%d",
		constants.OfficeSearch, url.QueryEscape(query), page, size))
}

// GetOfficeList — полный справочник офисов для выпадающих списков форм.
func (s *OfficeService) GetOfficeList() api.ApiRequest {
	return s.api.GetItem(constants.OfficeList)
}

func (s *OfficeService) FindOffice(id int64) api.ApiRequest {
	return s.api.GetItem(fmt.Sprintf("%s/%d", constants.OfficeBase, id))
}

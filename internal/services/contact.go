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

type ContactService struct {
	api    *api.Client
	logger *zap.Logger
}

func NewContactService(apiClient *api.Client, logger *zap.Logger) *ContactService {
	return &ContactService{
		api:    apiClient,
		logger: logger.Named("contact_service"),
	}
}

func (s *ContactService) GetContacts(page, size int) api.ApiRequest {
	return s.api.GetItem(fmt.Sprintf("%s?page=%d&size=%d", constants.ContactBase, page, size))
}

func (s *ContactService) FindContact(id int64) api.ApiRequest {
	return s.api.GetItem(fmt.Sprintf("%s/%d", constants.ContactBase, id))
}

func (s *ContactService) CreateContact(form dto.ContactForm) api.ApiRequest {
	return s.api.PostItem(constants.ContactBase, contactPayload(form))
}

func (s *ContactService) UpdateContact(id int64, form dto.ContactForm) api.ApiRequest {
	return s.api.PutItem(fmt.Sprintf("%s/%d", constants.ContactBase, id), contactPayload(form))
}

func (s *ContactService) DeleteContact(id int64) api.ApiRequest {
	return s.api.DeleteItem(fmt.Sprintf("%s/%d", constants.ContactBase, id))
}

func (s *ContactService) SearchContacts(query string, page, size int) api.ApiRequest {
	return s.api.GetItem(fmt.Sprintf("%s?query=%s&page=%d&size=%d",
		constants.ContactSearch, url.QueryEscape(query), page, size))
}

func (s *ContactService) SearchContactsByFilters(filter dto.ContactFilter, page, size int) api.ApiRequest {
	return s.api.PostItem(fmt.Sprintf("%s/search/advanced?page=%d&size=%d",
		constants.ContactBase, page, size), filter)
}

func (s *ContactService) GetContactsByOffice(officeID int64) api.ApiRequest {
	return s.api.GetItem(fmt.Sprintf("%s/%d", constants.ContactByOffice, officeID))
}

func contactPayload(form dto.ContactForm) entities.Contact {
	contact := entities.Contact{
		ContactBase: entities.ContactBase{
			ID:          form.ID,
			FullName:    form.FullName,
			PhoneNumber: form.PhoneNumber,
		},
		Branches: form.Branches,
	}
	if form.Office != nil {
		contact.Office = *form.Office
	}
	if contact.Branches == nil {
		contact.Branches = []entities.BranchBase{}
	}
	return contact
}

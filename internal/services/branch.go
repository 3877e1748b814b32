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

type BranchService struct {
	api    *api.Client
	logger *zap.Logger
}

func NewBranchService(apiClient *api.Client, logger *zap.Logger) *BranchService {
	return &BranchService{
		api:    apiClient,
		logger: logger.Named("branch_service"),
	}
}

func (s *BranchService) GetBranches(page, size int) api.ApiRequest {
	return s.api.GetItem(fmt.Sprintf("%s?page=%d&size=%d", constants.BranchBase, page, size))
}

func (s *BranchService) CreateBranch(form dto.BranchForm) api.ApiRequest {
	return s.api.PostItem(constants.BranchBase, branchPayload(form))
}

func (s *BranchService) UpdateBranch(id int64, form dto.BranchForm) api.ApiRequest {
	return s.api.PutItem(fmt.Sprintf("%s/%d", constants.BranchBase, id), branchPayload(form))
}

func (s *BranchService) DeleteBranch(id int64) api.ApiRequest {
	return s.api.DeleteItem(fmt.Sprintf("%s/%d", constants.BranchBase, id))
}

func (s *BranchService) SearchBranches(query string, page, size int) api.ApiRequest {
	return s.api.GetItem(fmt.Sprintf("%s?query=%s&page=%d&size=%d",
		constants.BranchSearch, url.QueryEscape(query), page, size))
}

func (s *BranchService) SearchBranchesByFilters(filter dto.BranchFilter, page, size int) api.ApiRequest {
	return s.api.PostItem(fmt.Sprintf("%s/search/advanced?page=%d&size=%d",
		constants.BranchBase, page, size), filter)
}

// GetBranchesByOffice — филиалы офиса для панели деталей и форм.
func (s *BranchService) GetBranchesByOffice(officeID int64) api.ApiRequest {
	return s.api.GetItem(fmt.Sprintf("%s/%d", constants.BranchByOffice, officeID))
}

func branchPayload(form dto.BranchForm) entities.Branch {
	branch := entities.Branch{
		BranchBase: entities.BranchBase{ID: form.ID, City: form.City, Address: form.Address},
	}
	if form.Office != nil {
		branch.Office = *form.Office
	}
	return branch
}

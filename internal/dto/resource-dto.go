package dto

import "courier-console/internal/entities"

type OfficeForm struct {
	ID       int64                 `json:"id,omitempty"`
	Name     string                `json:"name" validate:"required"`
	Branches []entities.BranchBase `json:"branches,omitempty"`
}

type BranchForm struct {
	ID      int64                `json:"id,omitempty"`
	City    string               `json:"city" validate:"required"`
	Address string               `json:"address" validate:"required"`
	Office  *entities.OfficeBase `json:"office" validate:"required"`
}

type ContactForm struct {
	ID          int64                 `json:"id,omitempty"`
	FullName    string                `json:"fullName" validate:"required"`
	PhoneNumber string                `json:"phoneNumber" validate:"required,intl_phone"`
	Office      *entities.OfficeBase  `json:"office" validate:"required"`
	Branches    []entities.BranchBase `json:"branches"`
}

// BranchSearchForm / ContactSearchForm — сырое состояние панелей
// расширенного поиска до прогона через адаптер.
type BranchSearchForm struct {
	Address string
	Offices []entities.OfficeBase
	Cities  []string
}

type ContactSearchForm struct {
	FullName    string
	PhoneNumber string
	Offices     []entities.OfficeBase
	Branches    []entities.BranchBase
	Cities      []string
	Address     string
}

type BranchFilter struct {
	Address string                `json:"address,omitempty"`
	Offices []entities.OfficeBase `json:"offices"`
	Cities  []string              `json:"cities"`
}

func (f BranchFilter) IsZero() bool {
	return f.Address == "" && len(f.Offices) == 0 && len(f.Cities) == 0
}

type ContactFilter struct {
	FullName    string                `json:"fullName,omitempty"`
	PhoneNumber string                `json:"phoneNumber,omitempty"`
	Offices     []entities.OfficeBase `json:"offices"`
	Branches    []entities.BranchBase `json:"branches"`
	Cities      []string              `json:"cities"`
	Address     string                `json:"address,omitempty"`
}

func (f ContactFilter) IsZero() bool {
	return f.FullName == "" && f.PhoneNumber == "" && len(f.Offices) == 0 &&
		len(f.Branches) == 0 && len(f.Cities) == 0 && f.Address == ""
}

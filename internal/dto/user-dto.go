package dto

import "courier-console/internal/entities"

// UserForm — данные формы создания/редактирования пользователя.
// Office и Branches обязательны ровно тогда, когда среди ролей есть
// ROLE_CLIENT (структурное правило в pkg/validation).
type UserForm struct {
	ID          int64                 `json:"id,omitempty"`
	FullName    string                `json:"fullName" validate:"required"`
	Email       string                `json:"email" validate:"required,custom_email"`
	PhoneNumber string                `json:"phoneNumber" validate:"required,intl_phone"`
	Roles       []entities.Role       `json:"roles" validate:"required,min=1"`
	Office      *entities.OfficeBase  `json:"office,omitempty"`
	Branches    []entities.BranchBase `json:"branches,omitempty"`
}

// HasClientRole — вспомогательная проверка для валидации и выбора
// варианта сериализации (staff или client).
func (f UserForm) HasClientRole() bool {
	for _, r := range f.Roles {
		if r.Name == "ROLE_CLIENT" {
			return true
		}
	}
	return false
}

// UserSearchForm — сырое состояние панели расширенного поиска.
type UserSearchForm struct {
	FullName      string
	Email         string
	PhoneNumber   string
	SelectedRoles []entities.Role
	Offices       []entities.OfficeBase
	Branches      []entities.BranchBase
	Address       string
}

// UserFilter — тело POST /user/search/advanced. Пустые строки опускаются,
// отсутствующие списки сервер получает как [].
type UserFilter struct {
	FullName    string                `json:"fullName,omitempty"`
	Email       string                `json:"email,omitempty"`
	PhoneNumber string                `json:"phoneNumber,omitempty"`
	Roles       []entities.Role       `json:"roles"`
	Offices     []entities.OfficeBase `json:"offices"`
	Branches    []entities.BranchBase `json:"branches"`
	Address     string                `json:"address,omitempty"`
}

// IsZero сообщает контейнеру, активен ли хоть один фильтр.
func (f UserFilter) IsZero() bool {
	return f.FullName == "" && f.Email == "" && f.PhoneNumber == "" &&
		len(f.Roles) == 0 && len(f.Offices) == 0 && len(f.Branches) == 0 &&
		f.Address == ""
}

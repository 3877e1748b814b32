// Адаптеры — единственное место, где сырой ответ сервера превращается в
// доменные сущности. Никакой бизнес-валидации: только сужение формы и
// ошибка декодирования, если обязательного поля нет вовсе.
package adapters

import (
	"encoding/json"

	"courier-console/internal/dto"
	"courier-console/internal/entities"
	"courier-console/pkg/apperrors"
)

func OfficeBase(raw json.RawMessage) (entities.OfficeBase, error) {
	var office entities.OfficeBase
	if err := json.Unmarshal(raw, &office); err != nil {
		return entities.OfficeBase{}, apperrors.NewDecodeError("office", "", err.Error())
	}
	if office.Name == "" {
		return entities.OfficeBase{}, apperrors.NewDecodeError("office", "name", "missing")
	}
	return office, nil
}

func Office(raw json.RawMessage) (entities.Office, error) {
	var office entities.Office
	if err := json.Unmarshal(raw, &office); err != nil {
		return entities.Office{}, apperrors.NewDecodeError("office", "", err.Error())
	}
	if office.Name == "" {
		return entities.Office{}, apperrors.NewDecodeError("office", "name", "missing")
	}
	for _, b := range office.Branches {
		if err := requireBranchBase(b); err != nil {
			return entities.Office{}, err
		}
	}
	return office, nil
}

func OfficePage(raw json.RawMessage) (entities.OfficePage, error) {
	var page entities.OfficePage
	if err := json.Unmarshal(raw, &page); err != nil {
		return entities.OfficePage{}, apperrors.NewDecodeError("office", "", err.Error())
	}
	if page.Name == "" {
		return entities.OfficePage{}, apperrors.NewDecodeError("office", "name", "missing")
	}
	return page, nil
}

func BranchBase(raw json.RawMessage) (entities.BranchBase, error) {
	var branch entities.BranchBase
	if err := json.Unmarshal(raw, &branch); err != nil {
		return entities.BranchBase{}, apperrors.NewDecodeError("branch", "", err.Error())
	}
	if err := requireBranchBase(branch); err != nil {
		return entities.BranchBase{}, err
	}
	return branch, nil
}

func Branch(raw json.RawMessage) (entities.Branch, error) {
	var branch entities.Branch
	if err := json.Unmarshal(raw, &branch); err != nil {
		return entities.Branch{}, apperrors.NewDecodeError("branch", "", err.Error())
	}
	if err := requireBranchBase(branch.BranchBase); err != nil {
		return entities.Branch{}, err
	}
	if branch.Office.Name == "" {
		return entities.Branch{}, apperrors.NewDecodeError("branch", "office.name", "missing")
	}
	return branch, nil
}

func ContactBase(raw json.RawMessage) (entities.ContactBase, error) {
	var contact entities.ContactBase
	if err := json.Unmarshal(raw, &contact); err != nil {
		return entities.ContactBase{}, apperrors.NewDecodeError("contact", "", err.Error())
	}
	if err := requireContactBase(contact); err != nil {
		return entities.ContactBase{}, err
	}
	return contact, nil
}

func Contact(raw json.RawMessage) (entities.Contact, error) {
	var contact entities.Contact
	if err := json.Unmarshal(raw, &contact); err != nil {
		return entities.Contact{}, apperrors.NewDecodeError("contact", "", err.Error())
	}
	if err := requireContactBase(contact.ContactBase); err != nil {
		return entities.Contact{}, err
	}
	for _, b := range contact.Branches {
		if err := requireBranchBase(b); err != nil {
			return entities.Contact{}, err
		}
	}
	return contact, nil
}

func requireBranchBase(b entities.BranchBase) error {
	if b.City == "" {
		return apperrors.NewDecodeError("branch", "city", "missing")
	}
	if b.Address == "" {
		return apperrors.NewDecodeError("branch", "address", "missing")
	}
	return nil
}

func requireContactBase(c entities.ContactBase) error {
	if c.FullName == "" {
		return apperrors.NewDecodeError("contact", "fullName", "missing")
	}
	if c.PhoneNumber == "" {
		return apperrors.NewDecodeError("contact", "phoneNumber", "missing")
	}
	if c.Office.Name == "" {
		return apperrors.NewDecodeError("contact", "office.name", "missing")
	}
	return nil
}

// BranchFilter переводит состояние панели расширенного поиска в тело
// запроса: строки обрезаются до пустых и опускаются, отсутствующие
// списки уходят как [].
func BranchFilter(form dto.BranchSearchForm) dto.BranchFilter {
	return dto.BranchFilter{
		Address: trimmed(form.Address),
		Offices: orEmpty(form.Offices),
		Cities:  orEmpty(form.Cities),
	}
}

func ContactFilter(form dto.ContactSearchForm) dto.ContactFilter {
	return dto.ContactFilter{
		FullName:    trimmed(form.FullName),
		PhoneNumber: trimmed(form.PhoneNumber),
		Offices:     orEmpty(form.Offices),
		Branches:    orEmpty(form.Branches),
		Cities:      orEmpty(form.Cities),
		Address:     trimmed(form.Address),
	}
}

package adapters

import (
	"encoding/json"

	"courier-console/internal/dto"
	"courier-console/internal/entities"
	"courier-console/pkg/apperrors"
)

func Role(raw json.RawMessage) (entities.Role, error) {
	var role entities.Role
	if err := json.Unmarshal(raw, &role); err != nil {
		return entities.Role{}, apperrors.NewDecodeError("role", "", err.Error())
	}
	if role.Name == "" {
		return entities.Role{}, apperrors.NewDecodeError("role", "name", "missing")
	}
	return role, nil
}

func User(raw json.RawMessage) (entities.User, error) {
	var user entities.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return entities.User{}, apperrors.NewDecodeError("user", "", err.Error())
	}
	if err := requireUser(user); err != nil {
		return entities.User{}, err
	}
	return user, nil
}

func AuthState(raw json.RawMessage) (entities.AuthState, error) {
	var state entities.AuthState
	if err := json.Unmarshal(raw, &state); err != nil {
		return entities.AuthState{}, apperrors.NewDecodeError("auth", "", err.Error())
	}
	if state.ID == 0 {
		return entities.AuthState{}, apperrors.NewDecodeError("auth", "id", "missing")
	}
	return state, nil
}

// Account — единственная точка, где решается вариант Staff|Client:
// сервер помечает клиента наличием office и branches в теле пользователя.
func Account(raw json.RawMessage) (entities.UserAccount, error) {
	var account entities.UserAccount
	if err := json.Unmarshal(raw, &account); err != nil {
		return entities.UserAccount{}, apperrors.NewDecodeError("user", "", err.Error())
	}
	if err := requireUser(account.User); err != nil {
		return entities.UserAccount{}, err
	}

	if account.Office != nil && account.Branches != nil {
		account.Kind = entities.UserClient
		if account.Office.Name == "" {
			return entities.UserAccount{}, apperrors.NewDecodeError("user", "office.name", "missing")
		}
	} else {
		account.Kind = entities.UserStaff
		account.Office = nil
		account.Branches = nil
	}
	return account, nil
}

func requireUser(u entities.User) error {
	if u.FullName == "" {
		return apperrors.NewDecodeError("user", "fullName", "missing")
	}
	if u.Email == "" {
		return apperrors.NewDecodeError("user", "email", "missing")
	}
	if u.PhoneNumber == "" {
		return apperrors.NewDecodeError("user", "phoneNumber", "missing")
	}
	if len(u.Roles) == 0 {
		return apperrors.NewDecodeError("user", "roles", "missing")
	}
	return nil
}

// AccountPayload собирает тело POST/PUT для пользователя: поля клиента
// сериализуются только когда среди ролей есть ROLE_CLIENT.
func AccountPayload(form dto.UserForm) entities.UserAccount {
	account := entities.UserAccount{
		User: entities.User{
			ID:          form.ID,
			FullName:    form.FullName,
			Email:       form.Email,
			PhoneNumber: form.PhoneNumber,
			Roles:       form.Roles,
		},
		Kind: entities.UserStaff,
	}
	if form.HasClientRole() {
		account.Kind = entities.UserClient
		account.Office = form.Office
		account.Branches = orEmpty(form.Branches)
	}
	return account
}

func UserFilter(form dto.UserSearchForm) dto.UserFilter {
	return dto.UserFilter{
		FullName:    trimmed(form.FullName),
		Email:       trimmed(form.Email),
		PhoneNumber: trimmed(form.PhoneNumber),
		Roles:       orEmpty(form.SelectedRoles),
		Offices:     orEmpty(form.Offices),
		Branches:    orEmpty(form.Branches),
		Address:     trimmed(form.Address),
	}
}

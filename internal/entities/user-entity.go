package entities

import "courier-console/pkg/constants"

type User struct {
	ID          int64  `json:"id,omitempty"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Roles       []Role `json:"roles"`
}

func (u User) EntityID() int64 { return u.ID }

func (u User) Phone() string { return u.PhoneNumber }

func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// UserKind — явный тег варианта вместо утиной типизации
// «есть office и branches, значит клиент».
type UserKind string

const (
	UserStaff  UserKind = "staff"
	UserClient UserKind = "client"
)

// UserAccount — размеченное объединение Staff|Client. Office и Branches
// заполнены ровно тогда, когда Kind == UserClient; единственная точка,
// где решается вариант, — адаптер.
type UserAccount struct {
	User
	Kind     UserKind     `json:"-"`
	Office   *OfficeBase  `json:"office,omitempty"`
	Branches []BranchBase `json:"branches,omitempty"`
}

func (u UserAccount) IsClient() bool { return u.Kind == UserClient }

// AuthState — личность текущей сессии. Хранится только в памяти;
// на диск попадает исключительно id (см. internal/session).
type AuthState struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Roles       []Role `json:"roles"`
}

func (a AuthState) HasRole(name string) bool {
	for _, r := range a.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

func (a AuthState) HasAnyRole(names []string) bool {
	for _, n := range names {
		if a.HasRole(n) {
			return true
		}
	}
	return false
}

func (a AuthState) IsAdmin() bool { return a.HasRole(constants.RoleAdmin) }

package entities

import "strings"

type Role struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

func (r Role) EntityID() int64 { return r.ID }

// ShortName убирает префикс ROLE_ для вывода в таблицах.
func (r Role) ShortName() string {
	return strings.TrimPrefix(r.Name, "ROLE_")
}

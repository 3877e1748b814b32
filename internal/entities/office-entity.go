package entities

// OfficeBase — минимальная форма офиса, как её отдаёт сервер во вложенных
// объектах (branch.office, contact.office).
type OfficeBase struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

func (o OfficeBase) EntityID() int64 { return o.ID }

// Office расширяет базовую форму списком филиалов.
type Office struct {
	OfficeBase
	Branches []BranchBase `json:"branches,omitempty"`
}

// OfficePage — строка списка офисов: базовая форма плюс счётчики,
// которые сервер считает сам.
type OfficePage struct {
	OfficeBase
	CountBranches int `json:"countBranches"`
	CountContacts int `json:"countContacts"`
}

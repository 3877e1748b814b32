package entities

type ContactBase struct {
	ID          int64      `json:"id,omitempty"`
	FullName    string     `json:"fullName"`
	PhoneNumber string     `json:"phoneNumber"`
	Office      OfficeBase `json:"office"`
}

func (c ContactBase) EntityID() int64 { return c.ID }

func (c ContactBase) Phone() string { return c.PhoneNumber }

type Contact struct {
	ContactBase
	Branches []BranchBase `json:"branches"`
}

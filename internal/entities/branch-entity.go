package entities

type BranchBase struct {
	ID      int64  `json:"id,omitempty"`
	City    string `json:"city"`
	Address string `json:"address"`
}

func (b BranchBase) EntityID() int64 { return b.ID }

// Branch всегда ссылается ровно на один офис.
type Branch struct {
	BranchBase
	Office OfficeBase `json:"office"`
}

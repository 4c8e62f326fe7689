package entity

// Airline represents an airline company record.
type Airline struct {
	ID          int    `json:"ID"`
	CompanyName string `json:"Company_Name"`
}

func (a *Airline) Kind() Kind { return KindAirline }

func (a *Airline) Clone() Record {
	cp := *a
	return &cp
}

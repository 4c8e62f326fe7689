package entity

import "time"

// Flight represents a booked flight. Flights carry no surrogate ID;
// their identity is the (ClientID, AirlineID) composite key. The store
// does not verify that either side of the key references an existing
// record.
type Flight struct {
	ClientID  int       `json:"Client_ID"`
	AirlineID int       `json:"Airline_ID"`
	Date      time.Time `json:"-"`
	StartCity string    `json:"Start_City"`
	EndCity   string    `json:"End_City"`

	// DateRaw holds the stored date text when it could not be parsed
	// as an ISO-8601 timestamp. It is round-tripped verbatim so a bad
	// value survives load/save unchanged. Empty when Date is valid.
	DateRaw string `json:"-"`
}

func (f *Flight) Kind() Kind { return KindFlight }

func (f *Flight) Clone() Record {
	cp := *f
	return &cp
}

// HasKey reports whether the flight's current composite key equals the
// given pair.
func (f *Flight) HasKey(clientID, airlineID int) bool {
	return f.ClientID == clientID && f.AirlineID == airlineID
}

package entity

// Client represents a travel-agent client. The JSON keys mirror the
// on-disk record layout.
type Client struct {
	ID           int    `json:"ID"`
	Name         string `json:"Name"`
	AddressLine1 string `json:"Address_Line_1"`
	AddressLine2 string `json:"Address_Line_2"`
	AddressLine3 string `json:"Address_Line_3"`
	City         string `json:"City"`
	State        string `json:"State"`
	ZipCode      string `json:"Zip_Code"`
	Country      string `json:"Country"`
	PhoneNumber  string `json:"Phone_Number"`
}

func (c *Client) Kind() Kind { return KindClient }

func (c *Client) Clone() Record {
	cp := *c
	return &cp
}

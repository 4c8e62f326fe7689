package templates

import (
	"fmt"
	"strings"

	"travelrecords/internal/domain/entity"
	"travelrecords/pkg/utils"
)

// FormatRecord renders a human-readable summary of any record for
// front-end display.
func FormatRecord(record entity.Record) string {
	switch r := record.(type) {
	case *entity.Client:
		return FormatClient(r)
	case *entity.Airline:
		return FormatAirline(r)
	case *entity.Flight:
		return FormatFlight(r)
	default:
		return fmt.Sprintf("unknown record kind %q", record.Kind())
	}
}

// FormatClient renders a client card: name and ID, then the non-empty
// address lines, then the phone number.
func FormatClient(client *entity.Client) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Client #%d: %s\n", client.ID, client.Name)

	for _, line := range []string{
		client.AddressLine1, client.AddressLine2, client.AddressLine3,
	} {
		if line != "" {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	locality := joinNonEmpty(", ", client.City, client.State, client.ZipCode)
	if locality != "" {
		fmt.Fprintf(&b, "  %s\n", locality)
	}
	if client.Country != "" {
		fmt.Fprintf(&b, "  %s\n", client.Country)
	}
	if client.PhoneNumber != "" {
		fmt.Fprintf(&b, "  Phone: %s\n", client.PhoneNumber)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatAirline renders a one-line airline summary.
func FormatAirline(airline *entity.Airline) string {
	return fmt.Sprintf("Airline #%d: %s", airline.ID, airline.CompanyName)
}

// FormatFlight renders a one-line flight summary keyed by the
// composite (client, airline) pair. An unparseable stored date is
// shown verbatim.
func FormatFlight(flight *entity.Flight) string {
	date := flight.DateRaw
	if date == "" {
		date = flight.Date.Format(utils.DisplayDateLayout)
	}
	return fmt.Sprintf("Flight client=%d airline=%d: %s -> %s on %s",
		flight.ClientID, flight.AirlineID, flight.StartCity, flight.EndCity, date)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

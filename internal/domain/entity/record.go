package entity

// Kind is the record discriminator stored in the Type field of every
// persisted line. It determines which fields are meaningful and which
// identity scheme applies.
type Kind string

const (
	KindClient  Kind = "Client"
	KindAirline Kind = "Airline"
	KindFlight  Kind = "Flight"

	// KindAny matches every record kind in queries.
	KindAny Kind = ""
)

// Record is the union of all record kinds held in the store's single
// ordered sequence.
type Record interface {
	Kind() Kind

	// Clone returns a deep copy. Query results are always clones so
	// callers cannot reach into the store's internal state; changes
	// must go through the Update operations.
	Clone() Record
}

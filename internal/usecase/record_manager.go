package usecase

import (
	"strconv"
	"strings"
	"time"

	"travelrecords/internal/domain/entity"
	"travelrecords/internal/domain/repository"
	"travelrecords/pkg/logger"
	"travelrecords/pkg/metrics"
	"travelrecords/pkg/utils"
)

// ClientParams carries the client fields for creation. Empty strings
// are allowed everywhere.
type ClientParams struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	AddressLine3 string
	City         string
	State        string
	ZipCode      string
	Country      string
	PhoneNumber  string
}

// RecordManager owns the ordered in-memory record sequence and
// mirrors it to durable storage after every mutation. It is
// single-threaded by design: the target deployment is a one-user
// desktop tool, and every operation runs to completion on the
// caller's goroutine.
type RecordManager struct {
	repo    repository.RecordRepository
	logger  logger.Logger
	metrics *metrics.Metrics

	records    []entity.Record
	maxSeen    map[entity.Kind]int
	lastSaveOK bool
}

// NewRecordManager creates a record manager and loads the existing
// sequence from the repository. A missing, unreadable or malformed
// backing file yields an empty store; load problems are logged, never
// returned.
func NewRecordManager(repo repository.RecordRepository, log logger.Logger, m *metrics.Metrics) *RecordManager {
	rm := &RecordManager{
		repo:       repo,
		logger:     log,
		metrics:    m,
		lastSaveOK: true,
	}

	records, err := repo.LoadAll()
	if err != nil {
		log.Error("Error loading records, starting empty", "error", err)
		records = nil
	}
	rm.records = records
	rm.maxSeen = make(map[entity.Kind]int)
	for _, record := range rm.records {
		if id, ok := recordID(record); ok && id > rm.maxSeen[record.Kind()] {
			rm.maxSeen[record.Kind()] = id
		}
	}
	log.Info("Record store loaded", "count", len(rm.records))
	return rm
}

// NextID returns the ID the next created record of the given kind
// will receive: 1 for a kind never seen, otherwise the running
// maximum plus one. The maximum is a per-kind high-water mark over
// the store's lifetime, so deleting a record never frees its ID for
// reassignment.
func (rm *RecordManager) NextID(kind entity.Kind) int {
	return rm.maxSeen[kind] + 1
}

// CreateClient appends a new client record and persists the sequence.
func (rm *RecordManager) CreateClient(params ClientParams) *entity.Client {
	id := rm.NextID(entity.KindClient)
	rm.maxSeen[entity.KindClient] = id
	client := &entity.Client{
		ID:           id,
		Name:         params.Name,
		AddressLine1: params.AddressLine1,
		AddressLine2: params.AddressLine2,
		AddressLine3: params.AddressLine3,
		City:         params.City,
		State:        params.State,
		ZipCode:      params.ZipCode,
		Country:      params.Country,
		PhoneNumber:  params.PhoneNumber,
	}
	rm.append(client)
	return client.Clone().(*entity.Client)
}

// CreateAirline appends a new airline record and persists the
// sequence.
func (rm *RecordManager) CreateAirline(companyName string) *entity.Airline {
	id := rm.NextID(entity.KindAirline)
	rm.maxSeen[entity.KindAirline] = id
	airline := &entity.Airline{
		ID:          id,
		CompanyName: companyName,
	}
	rm.append(airline)
	return airline.Clone().(*entity.Airline)
}

// CreateFlight appends a new flight record and persists the sequence.
// Neither side of the composite key is checked against existing
// records, and an existing flight with the same key does not block
// creation; lookups always resolve to the first match in sequence
// order.
func (rm *RecordManager) CreateFlight(clientID, airlineID int, date time.Time, startCity, endCity string) *entity.Flight {
	flight := &entity.Flight{
		ClientID:  clientID,
		AirlineID: airlineID,
		Date:      date,
		StartCity: startCity,
		EndCity:   endCity,
	}
	rm.append(flight)
	return flight.Clone().(*entity.Flight)
}

// GetRecordByID returns a copy of the first record matching the given
// ID and kind. Flights carry no ID and are never returned here; use
// GetFlight.
func (rm *RecordManager) GetRecordByID(id int, kind entity.Kind) (entity.Record, bool) {
	idx := rm.indexByID(id, kind)
	if idx < 0 {
		return nil, false
	}
	return rm.records[idx].Clone(), true
}

// GetFlight returns a copy of the first flight matching the composite
// key.
func (rm *RecordManager) GetFlight(clientID, airlineID int) (*entity.Flight, bool) {
	idx := rm.indexByFlightKey(clientID, airlineID)
	if idx < 0 {
		return nil, false
	}
	return rm.records[idx].Clone().(*entity.Flight), true
}

// GetAllRecords returns copies of all records of the given kind in
// insertion order, or of every record when kind is KindAny.
func (rm *RecordManager) GetAllRecords(kind entity.Kind) []entity.Record {
	results := make([]entity.Record, 0, len(rm.records))
	for _, record := range rm.records {
		if kind != entity.KindAny && record.Kind() != kind {
			continue
		}
		results = append(results, record.Clone())
	}
	return results
}

// SearchRecords returns copies of all records, optionally filtered by
// kind, where any text field contains the term case-insensitively or
// any integer field's decimal form equals the term exactly. Each
// record appears at most once.
func (rm *RecordManager) SearchRecords(term string, kind entity.Kind) []entity.Record {
	rm.metrics.SearchesTotal.Inc()

	lower := strings.ToLower(term)
	var results []entity.Record
	for _, record := range rm.records {
		if kind != entity.KindAny && record.Kind() != kind {
			continue
		}
		if recordMatches(record, term, lower) {
			results = append(results, record.Clone())
		}
	}
	return results
}

// UpdateClient applies the allow-listed fields to the client with the
// given ID and persists. Unknown keys and non-text values are ignored
// silently. Returns a copy of the updated record, or false when no
// client has that ID.
func (rm *RecordManager) UpdateClient(id int, fields map[string]interface{}) (*entity.Client, bool) {
	idx := rm.indexByID(id, entity.KindClient)
	if idx < 0 {
		return nil, false
	}
	client := rm.records[idx].(*entity.Client)
	for key, value := range fields {
		text, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "Name":
			client.Name = text
		case "Address_Line_1":
			client.AddressLine1 = text
		case "Address_Line_2":
			client.AddressLine2 = text
		case "Address_Line_3":
			client.AddressLine3 = text
		case "City":
			client.City = text
		case "State":
			client.State = text
		case "Zip_Code":
			client.ZipCode = text
		case "Country":
			client.Country = text
		case "Phone_Number":
			client.PhoneNumber = text
		}
	}
	rm.persist()
	return client.Clone().(*entity.Client), true
}

// UpdateAirline replaces the company name of the airline with the
// given ID and persists.
func (rm *RecordManager) UpdateAirline(id int, companyName string) (*entity.Airline, bool) {
	idx := rm.indexByID(id, entity.KindAirline)
	if idx < 0 {
		return nil, false
	}
	airline := rm.records[idx].(*entity.Airline)
	airline.CompanyName = companyName
	rm.persist()
	return airline.Clone().(*entity.Airline), true
}

// UpdateFlight applies the allow-listed fields to the first flight
// whose current composite key equals the given pair, then persists.
// The key fields themselves are updatable, so a flight's identity can
// change in place; the given pair is only the lookup key. ID values
// are coerced to int and ignored when non-numeric; Date accepts a
// time.Time or parseable date text.
func (rm *RecordManager) UpdateFlight(clientID, airlineID int, fields map[string]interface{}) (*entity.Flight, bool) {
	idx := rm.indexByFlightKey(clientID, airlineID)
	if idx < 0 {
		return nil, false
	}
	flight := rm.records[idx].(*entity.Flight)
	for key, value := range fields {
		switch key {
		case "Client_ID":
			if id, ok := utils.CoerceInt(value); ok {
				flight.ClientID = id
			}
		case "Airline_ID":
			if id, ok := utils.CoerceInt(value); ok {
				flight.AirlineID = id
			}
		case "Date":
			switch v := value.(type) {
			case time.Time:
				flight.Date = v
				flight.DateRaw = ""
			case string:
				if date, err := utils.ParseRecordDate(v); err == nil {
					flight.Date = date
					flight.DateRaw = ""
				} else {
					flight.Date = time.Time{}
					flight.DateRaw = v
				}
			}
		case "Start_City":
			if text, ok := value.(string); ok {
				flight.StartCity = text
			}
		case "End_City":
			if text, ok := value.(string); ok {
				flight.EndCity = text
			}
		}
	}
	rm.persist()
	return flight.Clone().(*entity.Flight), true
}

// DeleteRecord removes the first record matching the given ID and
// kind and persists. Flights have no singular ID, so KindFlight never
// matches here; use DeleteFlight.
func (rm *RecordManager) DeleteRecord(id int, kind entity.Kind) bool {
	idx := rm.indexByID(id, kind)
	if idx < 0 {
		return false
	}
	rm.removeAt(idx)
	return true
}

// DeleteFlight removes the first flight matching the composite key
// and persists.
func (rm *RecordManager) DeleteFlight(clientID, airlineID int) bool {
	idx := rm.indexByFlightKey(clientID, airlineID)
	if idx < 0 {
		return false
	}
	rm.removeAt(idx)
	return true
}

// LastSaveOK reports whether the most recent backing file rewrite
// succeeded. A failed save leaves the in-memory mutation in place;
// memory and disk may then diverge until the next successful save.
func (rm *RecordManager) LastSaveOK() bool {
	return rm.lastSaveOK
}

func (rm *RecordManager) append(record entity.Record) {
	rm.records = append(rm.records, record)
	rm.metrics.RecordsCreated.WithLabelValues(string(record.Kind())).Inc()
	rm.persist()
}

func (rm *RecordManager) removeAt(idx int) {
	kind := rm.records[idx].Kind()
	rm.records = append(rm.records[:idx], rm.records[idx+1:]...)
	rm.metrics.RecordsDeleted.WithLabelValues(string(kind)).Inc()
	rm.persist()
}

// persist rewrites the whole backing file. Failure is logged and
// counted but never rolls back the in-memory sequence.
func (rm *RecordManager) persist() {
	start := time.Now()
	rm.metrics.SavesTotal.Inc()

	if err := rm.repo.SaveAll(rm.records); err != nil {
		rm.logger.Error("Error saving records", "error", err, "count", len(rm.records))
		rm.metrics.SaveFailures.Inc()
		rm.lastSaveOK = false
		return
	}
	rm.metrics.SaveDuration.Observe(time.Since(start).Seconds())
	rm.lastSaveOK = true
}

func (rm *RecordManager) indexByID(id int, kind entity.Kind) int {
	for i, record := range rm.records {
		if record.Kind() != kind {
			continue
		}
		if rid, ok := recordID(record); ok && rid == id {
			return i
		}
	}
	return -1
}

func (rm *RecordManager) indexByFlightKey(clientID, airlineID int) int {
	for i, record := range rm.records {
		if flight, ok := record.(*entity.Flight); ok && flight.HasKey(clientID, airlineID) {
			return i
		}
	}
	return -1
}

func recordID(record entity.Record) (int, bool) {
	switch r := record.(type) {
	case *entity.Client:
		return r.ID, true
	case *entity.Airline:
		return r.ID, true
	default:
		return 0, false
	}
}

// recordMatches mirrors the search contract: substring match on text
// values (the kind tag included), exact decimal match on integer
// values. Flight dates are neither text nor integer and do not
// participate, except an unparsed raw date string matches as text.
func recordMatches(record entity.Record, term, lower string) bool {
	var texts []string
	var ints []int

	switch r := record.(type) {
	case *entity.Client:
		texts = []string{
			string(entity.KindClient), r.Name,
			r.AddressLine1, r.AddressLine2, r.AddressLine3,
			r.City, r.State, r.ZipCode, r.Country, r.PhoneNumber,
		}
		ints = []int{r.ID}
	case *entity.Airline:
		texts = []string{string(entity.KindAirline), r.CompanyName}
		ints = []int{r.ID}
	case *entity.Flight:
		texts = []string{string(entity.KindFlight), r.StartCity, r.EndCity}
		if r.DateRaw != "" {
			texts = append(texts, r.DateRaw)
		}
		ints = []int{r.ClientID, r.AirlineID}
	}

	for _, text := range texts {
		if strings.Contains(strings.ToLower(text), lower) {
			return true
		}
	}
	for _, value := range ints {
		if strconv.Itoa(value) == term {
			return true
		}
	}
	return false
}

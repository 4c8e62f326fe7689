package repository

import (
	"encoding/json"
	"fmt"

	"travelrecords/internal/domain/entity"
	"travelrecords/internal/domain/repository"
	"travelrecords/internal/infrastructure/persistence"
	"travelrecords/pkg/logger"
	"travelrecords/pkg/utils"
)

// JSONLRecordRepository implements RecordRepository on top of a
// JSON-Lines file, one record object per line with a Type
// discriminator. All type normalization (string IDs, ISO-8601 dates)
// happens here, at the storage boundary.
type JSONLRecordRepository struct {
	file   *persistence.JSONLFile
	logger logger.Logger
}

// NewJSONLRecordRepository creates a new JSON-Lines record repository.
func NewJSONLRecordRepository(file *persistence.JSONLFile, log logger.Logger) repository.RecordRepository {
	return &JSONLRecordRepository{
		file:   file,
		logger: log,
	}
}

// LoadAll reads the whole backing file in line order. A missing file
// yields an empty sequence; any unreadable or malformed line fails the
// whole load.
func (r *JSONLRecordRepository) LoadAll() ([]entity.Record, error) {
	if !r.file.Exists() {
		r.logger.Debug("Record file not present, starting empty", "path", r.file.Path())
		return nil, nil
	}

	lines, err := r.file.ReadLines()
	if err != nil {
		return nil, err
	}

	records := make([]entity.Record, 0, len(lines))
	for i, line := range lines {
		record, err := DecodeRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// SaveAll rewrites the backing file with the given sequence.
func (r *JSONLRecordRepository) SaveAll(records []entity.Record) error {
	lines := make([][]byte, 0, len(records))
	for _, record := range records {
		line, err := EncodeRecord(record)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	return r.file.WriteLines(lines)
}

// Wire shapes. ID-like fields are interface{} so values written as
// JSON strings by earlier tooling still load; utils.CoerceInt
// normalizes them to int.
type clientLine struct {
	Type         string      `json:"Type"`
	ID           interface{} `json:"ID"`
	Name         string      `json:"Name"`
	AddressLine1 string      `json:"Address_Line_1"`
	AddressLine2 string      `json:"Address_Line_2"`
	AddressLine3 string      `json:"Address_Line_3"`
	City         string      `json:"City"`
	State        string      `json:"State"`
	ZipCode      string      `json:"Zip_Code"`
	Country      string      `json:"Country"`
	PhoneNumber  string      `json:"Phone_Number"`
}

type airlineLine struct {
	Type        string      `json:"Type"`
	ID          interface{} `json:"ID"`
	CompanyName string      `json:"Company_Name"`
}

type flightLine struct {
	Type      string      `json:"Type"`
	ClientID  interface{} `json:"Client_ID"`
	AirlineID interface{} `json:"Airline_ID"`
	Date      string      `json:"Date"`
	StartCity string      `json:"Start_City"`
	EndCity   string      `json:"End_City"`
}

// EncodeRecord serializes one record to its JSON line form.
func EncodeRecord(record entity.Record) ([]byte, error) {
	switch r := record.(type) {
	case *entity.Client:
		return json.Marshal(clientLine{
			Type:         string(entity.KindClient),
			ID:           r.ID,
			Name:         r.Name,
			AddressLine1: r.AddressLine1,
			AddressLine2: r.AddressLine2,
			AddressLine3: r.AddressLine3,
			City:         r.City,
			State:        r.State,
			ZipCode:      r.ZipCode,
			Country:      r.Country,
			PhoneNumber:  r.PhoneNumber,
		})
	case *entity.Airline:
		return json.Marshal(airlineLine{
			Type:        string(entity.KindAirline),
			ID:          r.ID,
			CompanyName: r.CompanyName,
		})
	case *entity.Flight:
		date := r.DateRaw
		if date == "" {
			date = utils.FormatRecordDate(r.Date)
		}
		return json.Marshal(flightLine{
			Type:      string(entity.KindFlight),
			ClientID:  r.ClientID,
			AirlineID: r.AirlineID,
			Date:      date,
			StartCity: r.StartCity,
			EndCity:   r.EndCity,
		})
	default:
		return nil, fmt.Errorf("unknown record kind %q", record.Kind())
	}
}

// DecodeRecord deserializes one JSON line into its record type. IDs
// that cannot be coerced to a number are left at zero; an unparseable
// flight date is retained verbatim in DateRaw.
func DecodeRecord(line []byte) (entity.Record, error) {
	var probe struct {
		Type string `json:"Type"`
	}
	if err := json.Unmarshal(line, &probe); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	switch entity.Kind(probe.Type) {
	case entity.KindClient:
		var l clientLine
		if err := json.Unmarshal(line, &l); err != nil {
			return nil, fmt.Errorf("decode client: %w", err)
		}
		id, _ := utils.CoerceInt(l.ID)
		return &entity.Client{
			ID:           id,
			Name:         l.Name,
			AddressLine1: l.AddressLine1,
			AddressLine2: l.AddressLine2,
			AddressLine3: l.AddressLine3,
			City:         l.City,
			State:        l.State,
			ZipCode:      l.ZipCode,
			Country:      l.Country,
			PhoneNumber:  l.PhoneNumber,
		}, nil
	case entity.KindAirline:
		var l airlineLine
		if err := json.Unmarshal(line, &l); err != nil {
			return nil, fmt.Errorf("decode airline: %w", err)
		}
		id, _ := utils.CoerceInt(l.ID)
		return &entity.Airline{
			ID:          id,
			CompanyName: l.CompanyName,
		}, nil
	case entity.KindFlight:
		var l flightLine
		if err := json.Unmarshal(line, &l); err != nil {
			return nil, fmt.Errorf("decode flight: %w", err)
		}
		clientID, _ := utils.CoerceInt(l.ClientID)
		airlineID, _ := utils.CoerceInt(l.AirlineID)
		flight := &entity.Flight{
			ClientID:  clientID,
			AirlineID: airlineID,
			StartCity: l.StartCity,
			EndCity:   l.EndCity,
		}
		if date, err := utils.ParseRecordDate(l.Date); err == nil {
			flight.Date = date
		} else {
			flight.DateRaw = l.Date
		}
		return flight, nil
	default:
		return nil, fmt.Errorf("unknown record type %q", probe.Type)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"

	"travelrecords/internal/domain/entity"
	"travelrecords/internal/domain/repository"
	"travelrecords/internal/infrastructure/config"
	"travelrecords/internal/infrastructure/persistence"
	storerepo "travelrecords/internal/interface/repository"
	"travelrecords/internal/usecase"
	"travelrecords/pkg/logger"
	"travelrecords/pkg/metrics"
	"travelrecords/pkg/utils"
	"travelrecords/templates"

	"github.com/prometheus/common/expfmt"
)

const usageText = `Usage: recordsctl <command> [flags]

Commands:
  add-client     Create a client record
  add-airline    Create an airline record
  add-flight     Create a flight record
  get            Look up one record by ID or composite key
  list           List records, optionally by kind
  search         Search records by term
  update-client  Update client fields
  update-airline Update an airline's company name
  update-flight  Update flight fields (including its key)
  delete         Delete a client or airline by ID
  delete-flight  Delete a flight by composite key
  countries      Print the country reference list
  cities         Print the city reference list
  stats          Print store counts and metrics
`

// app bundles everything a subcommand needs.
type app struct {
	store   *usecase.RecordManager
	refdata repository.RefDataRepository
	metrics *metrics.Metrics
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()

	file := persistence.NewJSONLFile(cfg.RecordsFile, cfg.AtomicWrites)
	m := metrics.NewMetrics(cfg.MetricsNamespace)
	a := &app{
		store:   usecase.NewRecordManager(storerepo.NewJSONLRecordRepository(file, log), log, m),
		refdata: storerepo.NewCSVRefDataRepository(cfg.RefDataDir),
		metrics: m,
	}

	if err := a.run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "recordsctl:", err)
		os.Exit(1)
	}
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "add-client":
		return a.addClient(args)
	case "add-airline":
		return a.addAirline(args)
	case "add-flight":
		return a.addFlight(args)
	case "get":
		return a.get(args)
	case "list":
		return a.list(args)
	case "search":
		return a.search(args)
	case "update-client":
		return a.updateClient(args)
	case "update-airline":
		return a.updateAirline(args)
	case "update-flight":
		return a.updateFlight(args)
	case "delete":
		return a.delete(args)
	case "delete-flight":
		return a.deleteFlight(args)
	case "countries":
		return a.countries()
	case "cities":
		return a.cities()
	case "stats":
		return a.stats()
	case "help", "-h", "--help":
		fmt.Print(usageText)
		return nil
	default:
		fmt.Fprint(os.Stderr, usageText)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) addClient(args []string) error {
	fs := flag.NewFlagSet("add-client", flag.ExitOnError)
	name := fs.String("name", "", "client name")
	address1 := fs.String("address1", "", "address line 1")
	address2 := fs.String("address2", "", "address line 2")
	address3 := fs.String("address3", "", "address line 3")
	city := fs.String("city", "", "city")
	state := fs.String("state", "", "state")
	zip := fs.String("zip", "", "zip code")
	country := fs.String("country", "", "country")
	phone := fs.String("phone", "", "phone number")
	pretty := fs.Bool("pretty", false, "human-readable output")
	fs.Parse(args)

	client := a.store.CreateClient(usecase.ClientParams{
		Name:         *name,
		AddressLine1: *address1,
		AddressLine2: *address2,
		AddressLine3: *address3,
		City:         *city,
		State:        *state,
		ZipCode:      *zip,
		Country:      *country,
		PhoneNumber:  *phone,
	})
	return a.printRecord(client, *pretty)
}

func (a *app) addAirline(args []string) error {
	fs := flag.NewFlagSet("add-airline", flag.ExitOnError)
	name := fs.String("name", "", "company name")
	pretty := fs.Bool("pretty", false, "human-readable output")
	fs.Parse(args)

	return a.printRecord(a.store.CreateAirline(*name), *pretty)
}

func (a *app) addFlight(args []string) error {
	fs := flag.NewFlagSet("add-flight", flag.ExitOnError)
	clientID := fs.Int("client", 0, "client ID")
	airlineID := fs.Int("airline", 0, "airline ID")
	dateText := fs.String("date", "", "flight date, e.g. 2026-08-23T14:30:00Z")
	from := fs.String("from", "", "start city")
	to := fs.String("to", "", "end city")
	pretty := fs.Bool("pretty", false, "human-readable output")
	fs.Parse(args)

	date, err := utils.ParseRecordDate(*dateText)
	if err != nil {
		return fmt.Errorf("invalid -date %q: %w", *dateText, err)
	}
	return a.printRecord(a.store.CreateFlight(*clientID, *airlineID, date, *from, *to), *pretty)
}

func (a *app) get(args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	kind := fs.String("kind", "", "record kind: Client, Airline or Flight")
	id := fs.Int("id", 0, "record ID (Client/Airline)")
	clientID := fs.Int("client", 0, "client ID (Flight)")
	airlineID := fs.Int("airline", 0, "airline ID (Flight)")
	pretty := fs.Bool("pretty", false, "human-readable output")
	fs.Parse(args)

	if entity.Kind(*kind) == entity.KindFlight {
		flight, ok := a.store.GetFlight(*clientID, *airlineID)
		if !ok {
			return fmt.Errorf("flight (%d, %d) not found", *clientID, *airlineID)
		}
		return a.printRecord(flight, *pretty)
	}

	record, ok := a.store.GetRecordByID(*id, entity.Kind(*kind))
	if !ok {
		return fmt.Errorf("%s %d not found", *kind, *id)
	}
	return a.printRecord(record, *pretty)
}

func (a *app) list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	kind := fs.String("kind", "", "record kind filter")
	pretty := fs.Bool("pretty", false, "human-readable output")
	fs.Parse(args)

	for _, record := range a.store.GetAllRecords(entity.Kind(*kind)) {
		if err := a.printRecord(record, *pretty); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) search(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	term := fs.String("term", "", "search term")
	kind := fs.String("kind", "", "record kind filter")
	pretty := fs.Bool("pretty", false, "human-readable output")
	fs.Parse(args)

	for _, record := range a.store.SearchRecords(*term, entity.Kind(*kind)) {
		if err := a.printRecord(record, *pretty); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) updateClient(args []string) error {
	fs := flag.NewFlagSet("update-client", flag.ExitOnError)
	id := fs.Int("id", 0, "client ID")
	fs.String("name", "", "client name")
	fs.String("address1", "", "address line 1")
	fs.String("address2", "", "address line 2")
	fs.String("address3", "", "address line 3")
	fs.String("city", "", "city")
	fs.String("state", "", "state")
	fs.String("zip", "", "zip code")
	fs.String("country", "", "country")
	fs.String("phone", "", "phone number")
	pretty := fs.Bool("pretty", false, "human-readable output")
	fs.Parse(args)

	fields := collectFields(fs, map[string]string{
		"name":     "Name",
		"address1": "Address_Line_1",
		"address2": "Address_Line_2",
		"address3": "Address_Line_3",
		"city":     "City",
		"state":    "State",
		"zip":      "Zip_Code",
		"country":  "Country",
		"phone":    "Phone_Number",
	})

	client, ok := a.store.UpdateClient(*id, fields)
	if !ok {
		return fmt.Errorf("client %d not found", *id)
	}
	return a.printRecord(client, *pretty)
}

func (a *app) updateAirline(args []string) error {
	fs := flag.NewFlagSet("update-airline", flag.ExitOnError)
	id := fs.Int("id", 0, "airline ID")
	name := fs.String("name", "", "company name")
	pretty := fs.Bool("pretty", false, "human-readable output")
	fs.Parse(args)

	airline, ok := a.store.UpdateAirline(*id, *name)
	if !ok {
		return fmt.Errorf("airline %d not found", *id)
	}
	return a.printRecord(airline, *pretty)
}

func (a *app) updateFlight(args []string) error {
	fs := flag.NewFlagSet("update-flight", flag.ExitOnError)
	clientID := fs.Int("client", 0, "current client ID")
	airlineID := fs.Int("airline", 0, "current airline ID")
	fs.String("new-client", "", "new client ID")
	fs.String("new-airline", "", "new airline ID")
	fs.String("date", "", "new flight date")
	fs.String("from", "", "new start city")
	fs.String("to", "", "new end city")
	pretty := fs.Bool("pretty", false, "human-readable output")
	fs.Parse(args)

	fields := collectFields(fs, map[string]string{
		"new-client":  "Client_ID",
		"new-airline": "Airline_ID",
		"date":        "Date",
		"from":        "Start_City",
		"to":          "End_City",
	})

	flight, ok := a.store.UpdateFlight(*clientID, *airlineID, fields)
	if !ok {
		return fmt.Errorf("flight (%d, %d) not found", *clientID, *airlineID)
	}
	return a.printRecord(flight, *pretty)
}

func (a *app) delete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	kind := fs.String("kind", "", "record kind: Client or Airline")
	id := fs.Int("id", 0, "record ID")
	fs.Parse(args)

	if !a.store.DeleteRecord(*id, entity.Kind(*kind)) {
		return fmt.Errorf("%s %d not found", *kind, *id)
	}
	fmt.Printf("deleted %s %d\n", *kind, *id)
	return nil
}

func (a *app) deleteFlight(args []string) error {
	fs := flag.NewFlagSet("delete-flight", flag.ExitOnError)
	clientID := fs.Int("client", 0, "client ID")
	airlineID := fs.Int("airline", 0, "airline ID")
	fs.Parse(args)

	if !a.store.DeleteFlight(*clientID, *airlineID) {
		return fmt.Errorf("flight (%d, %d) not found", *clientID, *airlineID)
	}
	fmt.Printf("deleted flight (%d, %d)\n", *clientID, *airlineID)
	return nil
}

func (a *app) countries() error {
	countries, err := a.refdata.LoadCountries()
	if err != nil {
		return err
	}
	for _, name := range countries {
		fmt.Println(name)
	}
	return nil
}

func (a *app) cities() error {
	cities, err := a.refdata.LoadCities()
	if err != nil {
		return err
	}
	for _, name := range cities {
		fmt.Println(name)
	}
	return nil
}

func (a *app) stats() error {
	for _, kind := range []entity.Kind{entity.KindClient, entity.KindAirline, entity.KindFlight} {
		fmt.Printf("%s records: %d\n", kind, len(a.store.GetAllRecords(kind)))
	}

	families, err := a.metrics.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, family); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) printRecord(record entity.Record, pretty bool) error {
	if pretty {
		fmt.Println(templates.FormatRecord(record))
		return nil
	}
	line, err := storerepo.EncodeRecord(record)
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

// collectFields maps only the flags the caller actually set to their
// record field names, so an omitted flag never clobbers a field with
// an empty string.
func collectFields(fs *flag.FlagSet, flagToField map[string]string) map[string]interface{} {
	fields := make(map[string]interface{})
	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagToField[f.Name]; ok {
			fields[field] = f.Value.String()
		}
	})
	return fields
}

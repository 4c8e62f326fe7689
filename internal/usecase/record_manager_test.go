package usecase

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelrecords/internal/domain/entity"
	"travelrecords/internal/infrastructure/persistence"
	storerepo "travelrecords/internal/interface/repository"
	"travelrecords/pkg/logger"
	"travelrecords/pkg/metrics"
)

func newStoreAt(t *testing.T, path string) *RecordManager {
	t.Helper()
	file := persistence.NewJSONLFile(path, false)
	repo := storerepo.NewJSONLRecordRepository(file, logger.NewNop())
	return NewRecordManager(repo, logger.NewNop(), metrics.NewMetrics("test"))
}

func newStore(t *testing.T) *RecordManager {
	t.Helper()
	return newStoreAt(t, filepath.Join(t.TempDir(), "records.jsonl"))
}

func johnDoe() ClientParams {
	return ClientParams{
		Name:         "John Doe",
		AddressLine1: "123 Main St",
		AddressLine2: "Apt 4B",
		City:         "New York",
		State:        "NY",
		ZipCode:      "10001",
		Country:      "USA",
		PhoneNumber:  "555-1234",
	}
}

func TestCreateAssignsSequentialIDsPerKind(t *testing.T) {
	store := newStore(t)

	for i := 1; i <= 3; i++ {
		client := store.CreateClient(johnDoe())
		assert.Equal(t, i, client.ID)
	}

	// Airline IDs run on their own sequence.
	airline := store.CreateAirline("Delta Airlines")
	assert.Equal(t, 1, airline.ID)
	airline = store.CreateAirline("United Airlines")
	assert.Equal(t, 2, airline.ID)
}

func TestDeletedIDsAreNeverReassigned(t *testing.T) {
	store := newStore(t)

	first := store.CreateClient(johnDoe())
	second := store.CreateClient(johnDoe())
	require.Equal(t, 2, second.ID)

	require.True(t, store.DeleteRecord(second.ID, entity.KindClient))
	third := store.CreateClient(johnDoe())
	assert.Equal(t, 3, third.ID)

	require.True(t, store.DeleteRecord(first.ID, entity.KindClient))
	require.True(t, store.DeleteRecord(third.ID, entity.KindClient))
	fourth := store.CreateClient(johnDoe())
	assert.Equal(t, 4, fourth.ID)
}

func TestRoundTripThroughFreshStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	store := newStoreAt(t, path)

	client := store.CreateClient(johnDoe())
	airline := store.CreateAirline("Delta Airlines")
	date := time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)
	flight := store.CreateFlight(client.ID, airline.ID, date, "New York", "Los Angeles")

	reloaded := newStoreAt(t, path)

	gotClient, ok := reloaded.GetRecordByID(client.ID, entity.KindClient)
	require.True(t, ok)
	assert.Equal(t, client, gotClient)

	gotAirline, ok := reloaded.GetRecordByID(airline.ID, entity.KindAirline)
	require.True(t, ok)
	assert.Equal(t, airline, gotAirline)

	gotFlight, ok := reloaded.GetFlight(flight.ClientID, flight.AirlineID)
	require.True(t, ok)
	assert.Equal(t, flight.StartCity, gotFlight.StartCity)
	assert.Equal(t, flight.EndCity, gotFlight.EndCity)
	assert.True(t, gotFlight.Date.Equal(date), "date %v survives reload", gotFlight.Date)
}

func TestInsertionOrderSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	store := newStoreAt(t, path)

	store.CreateClient(johnDoe())
	store.CreateAirline("Delta Airlines")
	store.CreateClient(johnDoe())
	store.CreateFlight(1, 1, time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC), "Boston", "Chicago")

	wantKinds := []entity.Kind{
		entity.KindClient, entity.KindAirline, entity.KindClient, entity.KindFlight,
	}

	reloaded := newStoreAt(t, path)
	all := reloaded.GetAllRecords(entity.KindAny)
	require.Len(t, all, len(wantKinds))
	for i, record := range all {
		assert.Equal(t, wantKinds[i], record.Kind())
	}
}

func TestUpdateClientChangesOnlyGivenFields(t *testing.T) {
	store := newStore(t)
	created := store.CreateClient(johnDoe())

	updated, ok := store.UpdateClient(created.ID, map[string]interface{}{
		"Name": "Johnny Doe",
	})
	require.True(t, ok)

	assert.Equal(t, "Johnny Doe", updated.Name)
	assert.Equal(t, created.AddressLine1, updated.AddressLine1)
	assert.Equal(t, created.City, updated.City)
	assert.Equal(t, created.PhoneNumber, updated.PhoneNumber)
}

func TestUpdateClientIgnoresUnknownFields(t *testing.T) {
	store := newStore(t)
	created := store.CreateClient(johnDoe())

	updated, ok := store.UpdateClient(created.ID, map[string]interface{}{
		"ID":       99,
		"Type":     "Airline",
		"Nickname": "JD",
	})
	require.True(t, ok)
	assert.Equal(t, created, updated)

	_, ok = store.UpdateClient(42, map[string]interface{}{"Name": "X"})
	assert.False(t, ok)
}

func TestUpdateAirline(t *testing.T) {
	store := newStore(t)
	created := store.CreateAirline("Delta Airlines")

	updated, ok := store.UpdateAirline(created.ID, "Delta Air Lines")
	require.True(t, ok)
	assert.Equal(t, "Delta Air Lines", updated.CompanyName)

	_, ok = store.UpdateAirline(42, "Nope")
	assert.False(t, ok)
}

func TestUpdateFlightByCompositeKey(t *testing.T) {
	store := newStore(t)
	date := time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)
	store.CreateFlight(7, 3, date, "NYC", "LA")

	updated, ok := store.UpdateFlight(7, 3, map[string]interface{}{
		"Start_City": "Boston",
	})
	require.True(t, ok)
	assert.Equal(t, "Boston", updated.StartCity)
	assert.Equal(t, "LA", updated.EndCity)
	assert.Equal(t, 7, updated.ClientID)
	assert.Equal(t, 3, updated.AirlineID)
}

func TestUpdateFlightCanChangeItsKey(t *testing.T) {
	store := newStore(t)
	date := time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)
	store.CreateFlight(7, 3, date, "NYC", "LA")

	// String IDs are coerced; the pair is a lookup key only.
	updated, ok := store.UpdateFlight(7, 3, map[string]interface{}{
		"Client_ID":  "8",
		"Airline_ID": 4,
	})
	require.True(t, ok)
	assert.Equal(t, 8, updated.ClientID)
	assert.Equal(t, 4, updated.AirlineID)

	_, ok = store.GetFlight(7, 3)
	assert.False(t, ok)
	_, ok = store.GetFlight(8, 4)
	assert.True(t, ok)
}

func TestDuplicateFlightKeysFirstMatchWins(t *testing.T) {
	store := newStore(t)
	date := time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)
	store.CreateFlight(7, 3, date, "NYC", "LA")
	store.CreateFlight(7, 3, date, "Boston", "Miami")

	// Lookup, update and delete all bind to the first record in
	// sequence order; the second stays shadowed until the first is
	// gone.
	flight, ok := store.GetFlight(7, 3)
	require.True(t, ok)
	assert.Equal(t, "NYC", flight.StartCity)

	require.True(t, store.DeleteFlight(7, 3))
	flight, ok = store.GetFlight(7, 3)
	require.True(t, ok)
	assert.Equal(t, "Boston", flight.StartCity)
}

func TestDeleteThenGet(t *testing.T) {
	store := newStore(t)
	client := store.CreateClient(johnDoe())

	require.True(t, store.DeleteRecord(client.ID, entity.KindClient))
	_, ok := store.GetRecordByID(client.ID, entity.KindClient)
	assert.False(t, ok)
	assert.False(t, store.DeleteRecord(client.ID, entity.KindClient))
}

func TestDeleteRecordNeverMatchesFlights(t *testing.T) {
	store := newStore(t)
	store.CreateFlight(7, 3, time.Now(), "NYC", "LA")

	assert.False(t, store.DeleteRecord(7, entity.KindFlight))
	assert.Len(t, store.GetAllRecords(entity.KindFlight), 1)

	require.True(t, store.DeleteFlight(7, 3))
	assert.Empty(t, store.GetAllRecords(entity.KindFlight))
}

func TestSearchTextIsCaseInsensitiveSubstring(t *testing.T) {
	store := newStore(t)
	store.CreateClient(johnDoe())
	jane := johnDoe()
	jane.Name = "Jane Smith"
	jane.PhoneNumber = "555-5678"
	store.CreateClient(jane)

	results := store.SearchRecords("john", entity.KindAny)
	require.Len(t, results, 1)
	assert.Equal(t, "John Doe", results[0].(*entity.Client).Name)
}

func TestSearchIntegerFieldsMatchExactly(t *testing.T) {
	store := newStore(t)

	// No digits in the text fields, so only the integer ID can match.
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		store.CreateClient(ClientParams{Name: name, Country: "USA"})
	}
	for i := 0; i < 9; i++ {
		store.CreateAirline("Windward Air")
	}

	results := store.SearchRecords("1", entity.KindClient)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].(*entity.Client).ID)

	// "1" must not substring-match the two-digit airline IDs.
	results = store.SearchRecords("12", entity.KindAirline)
	assert.Empty(t, results)
	results = store.SearchRecords("9", entity.KindAirline)
	require.Len(t, results, 1)
	assert.Equal(t, 9, results[0].(*entity.Airline).ID)
}

func TestSearchMatchesKindTag(t *testing.T) {
	store := newStore(t)
	store.CreateClient(ClientParams{Name: "Alpha"})
	store.CreateAirline("Windward Air")

	// The Type discriminator is an ordinary text value to the
	// scanner, so the kind name itself is searchable.
	results := store.SearchRecords("airline", entity.KindAny)
	require.Len(t, results, 1)
	assert.Equal(t, entity.KindAirline, results[0].Kind())
}

func TestSearchWithKindFilter(t *testing.T) {
	store := newStore(t)
	store.CreateClient(ClientParams{Name: "Acme Travel", City: "Acme City"})
	store.CreateAirline("Acme Air")

	results := store.SearchRecords("acme", entity.KindAirline)
	require.Len(t, results, 1)
	assert.Equal(t, entity.KindAirline, results[0].Kind())

	results = store.SearchRecords("acme", entity.KindAny)
	assert.Len(t, results, 2)
}

func TestEmptyStoreQueries(t *testing.T) {
	store := newStore(t)

	assert.Empty(t, store.GetAllRecords(entity.KindAny))
	assert.Empty(t, store.SearchRecords("x", entity.KindAny))
	_, ok := store.GetRecordByID(1, entity.KindClient)
	assert.False(t, ok)
}

func TestQueryResultsAreCopies(t *testing.T) {
	store := newStore(t)
	client := store.CreateClient(johnDoe())

	got, ok := store.GetRecordByID(client.ID, entity.KindClient)
	require.True(t, ok)
	got.(*entity.Client).Name = "Mutated"

	again, ok := store.GetRecordByID(client.ID, entity.KindClient)
	require.True(t, ok)
	assert.Equal(t, "John Doe", again.(*entity.Client).Name)
}

func TestMalformedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{not json\n"), 0o644))

	store := newStoreAt(t, path)
	assert.Empty(t, store.GetAllRecords(entity.KindAny))
}

func TestSaveFailureKeepsInMemoryMutation(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	// The parent "directory" is a regular file, so every write fails.
	store := newStoreAt(t, filepath.Join(blocker, "records.jsonl"))
	client := store.CreateClient(johnDoe())

	assert.False(t, store.LastSaveOK())
	got, ok := store.GetRecordByID(client.ID, entity.KindClient)
	require.True(t, ok)
	assert.Equal(t, client, got)
}

func TestNextIDPreview(t *testing.T) {
	store := newStore(t)
	assert.Equal(t, 1, store.NextID(entity.KindClient))

	store.CreateClient(johnDoe())
	assert.Equal(t, 2, store.NextID(entity.KindClient))
	assert.Equal(t, 1, store.NextID(entity.KindAirline))
}

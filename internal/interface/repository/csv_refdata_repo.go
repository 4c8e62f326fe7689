package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"travelrecords/internal/domain/repository"
)

const (
	countriesFile = "countries.csv"
	citiesFile    = "cities.csv"
	countryColumn = "country_name"
	cityColumn    = "city_name"
)

// CSVRefDataRepository implements RefDataRepository over the two CSV
// files shipped alongside the record file. Each file is
// header-plus-rows; values are returned in file order.
type CSVRefDataRepository struct {
	dir string
}

// NewCSVRefDataRepository creates a reference-data repository reading
// from the given directory.
func NewCSVRefDataRepository(dir string) repository.RefDataRepository {
	return &CSVRefDataRepository{dir: dir}
}

// LoadCountries returns all country names from countries.csv.
func (r *CSVRefDataRepository) LoadCountries() ([]string, error) {
	return r.loadColumn(countriesFile, countryColumn)
}

// LoadCities returns all city names from cities.csv.
func (r *CSVRefDataRepository) LoadCities() ([]string, error) {
	return r.loadColumn(citiesFile, cityColumn)
}

func (r *CSVRefDataRepository) loadColumn(filename, column string) ([]string, error) {
	path := filepath.Join(r.dir, filename)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	col := -1
	for i, name := range header {
		if name == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%s: missing column %q", path, column)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	values := make([]string, 0, len(rows))
	for _, row := range rows {
		if col < len(row) {
			values = append(values, row[col])
		}
	}
	return values, nil
}

package repository

// RefDataRepository provides the static country and city lists used
// by front-ends to populate selection widgets. The record store does
// not depend on it.
type RefDataRepository interface {
	LoadCountries() ([]string, error)
	LoadCities() ([]string, error)
}

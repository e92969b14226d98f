package model

// ConsentStatus is a three-valued marketing-consent flag keyed by contact email.
type ConsentStatus string

const (
	ConsentGranted ConsentStatus = "granted"
	ConsentDenied  ConsentStatus = "denied"
	ConsentNotSet  ConsentStatus = "not_set"
)

// euCountries lists ISO 3166-1 alpha-2 codes of countries where explicit
// consent is required before syncing a contact to the CRM.
var euCountries = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "HR": {}, "CY": {}, "CZ": {}, "DK": {},
	"EE": {}, "FI": {}, "FR": {}, "DE": {}, "GR": {}, "HU": {}, "IE": {},
	"IT": {}, "LV": {}, "LT": {}, "LU": {}, "MT": {}, "NL": {}, "PL": {},
	"PT": {}, "RO": {}, "SK": {}, "SI": {}, "ES": {}, "SE": {},
}

// IsEUCountry reports whether the country code belongs to the EU consent set.
func IsEUCountry(code string) bool {
	_, ok := euCountries[code]
	return ok
}

// AllowsSync decides whether a contact with this consent status may be synced
// to the CRM. EU contacts require an explicit grant; elsewhere not_set is
// treated permissively and only an explicit denial blocks the sync.
func (s ConsentStatus) AllowsSync(country string) bool {
	switch s {
	case ConsentGranted:
		return true
	case ConsentDenied:
		return false
	default:
		return !IsEUCountry(country)
	}
}

package internal

// ISO 3166-1 alpha-2 to alpha-3 mapping for the markets the gateway serves.
// Reservation data wants the three-letter code while shop addresses carry the
// two-letter one.
var countryAlpha3 = map[string]string{
	"AT": "AUT", "BE": "BEL", "BG": "BGR", "CH": "CHE", "CY": "CYP",
	"CZ": "CZE", "DE": "DEU", "DK": "DNK", "EE": "EST", "ES": "ESP",
	"FI": "FIN", "FR": "FRA", "GB": "GBR", "GE": "GEO", "GR": "GRC",
	"HR": "HRV", "HU": "HUN", "IE": "IRL", "IT": "ITA", "LT": "LTU",
	"LU": "LUX", "LV": "LVA", "MD": "MDA", "MT": "MLT", "NL": "NLD",
	"NO": "NOR", "PL": "POL", "PT": "PRT", "RO": "ROU", "SE": "SWE",
	"SI": "SVN", "SK": "SVK", "UA": "UKR", "US": "USA",
}

// CountryThreeLetter returns the ISO-3 code for a two-letter country id,
// empty when the country is unknown.
func CountryThreeLetter(alpha2 string) string {
	return countryAlpha3[alpha2]
}

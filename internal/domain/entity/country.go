package entity

// CountryOption is one of the supported West African markets
type CountryOption struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	CallingCode string `json:"calling_code"`
}

// Countries is the fixed set of markets, in display order
var Countries = []CountryOption{
	{Code: "CI", Name: "Côte d'Ivoire", CallingCode: "225"},
	{Code: "BF", Name: "Burkina Faso", CallingCode: "226"},
	{Code: "SN", Name: "Sénégal", CallingCode: "221"},
	{Code: "BJ", Name: "Bénin", CallingCode: "229"},
}

// DefaultCountry is used whenever a phone or a code cannot be matched
var DefaultCountry = Countries[0]

// CountryByCode returns the country with the given ISO code, or the first option
func CountryByCode(code string) CountryOption {
	for _, c := range Countries {
		if c.Code == code {
			return c
		}
	}
	return Countries[0]
}

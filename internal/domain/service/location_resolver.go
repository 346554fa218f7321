package service

import "strings"

// RawGeocodeResult carries whatever fields a reverse-geocoding provider
// returned for a device position. Providers disagree on which fields they
// populate, so every field here is optional.
type RawGeocodeResult struct {
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	Locality    string `json:"locality"`
	Subregion   string `json:"subregion"`
	State       string `json:"state"`
	Region      string `json:"region"`
	County      string `json:"county"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// CanonicalLocation is the location triple every record in the system uses.
type CanonicalLocation struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

const UnknownPlace = "Unknown"

// ResolveLocation maps a raw geocode result onto the canonical triple. It is
// total: any input yields a defined output, with UnknownPlace filling the
// dimensions no field resolved.
//
// Precedence:
//
//	city:    City > Town > Village > Locality
//	region:  Region > State > Subregion > County
//	country: Country > CountryCode (upper-cased)
func ResolveLocation(raw RawGeocodeResult) CanonicalLocation {
	loc := CanonicalLocation{
		City:    firstNonEmpty(raw.City, raw.Town, raw.Village, raw.Locality),
		Region:  firstNonEmpty(raw.Region, raw.State, raw.Subregion, raw.County),
		Country: firstNonEmpty(raw.Country, strings.ToUpper(raw.CountryCode)),
	}

	if loc.City == "" {
		loc.City = UnknownPlace
	}
	if loc.Region == "" {
		loc.Region = UnknownPlace
	}
	if loc.Country == "" {
		loc.Country = UnknownPlace
	}

	return loc
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

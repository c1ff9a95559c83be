package models

import (
	"fmt"

	"github.com/campusfound/campusfound/services/lostfound/domain"
)

// Location is the fixed set of campus locations where items are found.
type Location string

// Locations lists all accepted campus locations in display order.
var Locations = []Location{
	"Entry gate",
	"F1 Building",
	"A1 Building",
	"A2 Building",
	"A3 Building",
	"Canteen Area",
	"Library",
	"Reading Hall",
	"Computer Lab",
	"Auditorium",
	"College GYM",
	"Table Tennis Room",
	"Parking Lot",
	"Boys Hostel",
	"Girls Hostel",
	"Play Ground",
	"Student Counter",
	"Green Lawn",
	"Main Building",
	"Sports Field",
	"Other",
}

// ParseLocation converts s into a Location or fails for unknown values.
func ParseLocation(s string) (Location, error) {
	for _, l := range Locations {
		if Location(s) == l {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: unknown location %q", domain.ErrValidation, s)
}

// String returns the wire value of the location.
func (l Location) String() string {
	return string(l)
}

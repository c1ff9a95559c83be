package models

import (
	"fmt"

	"github.com/campusfound/campusfound/services/lostfound/domain"
)

// Category is the fixed set of item categories a guard can log.
type Category string

const (
	CategoryElectronics   Category = "Electronics"
	CategoryClothing      Category = "Clothing"
	CategoryStudyMaterial Category = "Study Material"
	CategoryAccessories   Category = "Accessories"
	CategoryIDCards       Category = "ID Cards"
	CategoryKeys          Category = "Keys"
	CategoryOther         Category = "Other"
)

// Categories lists all accepted categories in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryStudyMaterial,
	CategoryAccessories,
	CategoryIDCards,
	CategoryKeys,
	CategoryOther,
}

// ParseCategory converts s into a Category or fails for unknown values.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if Category(s) == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", domain.ErrValidation, s)
}

// String returns the wire value of the category.
func (c Category) String() string {
	return string(c)
}

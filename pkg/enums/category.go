package enums

import "fmt"

// Category maps to the license_category enum in Postgres and to the first
// path segment of canonical tool URLs.
type Category string

const (
	CategoryLicenses     Category = "licenses"
	CategoryPublicDomain Category = "publicdomain"
)

var validCategories = []Category{
	CategoryLicenses,
	CategoryPublicDomain,
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the value matches the canonical license_category enum.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory converts raw input into Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid license category %q", value)
}

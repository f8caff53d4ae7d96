// ABOUTME: Predator record data model for the catalog
// ABOUTME: Defines Record, closed Category/Diet enums and the filter-only selector

package predator

import "strings"

// Category is the habitat domain of a record
type Category string

const (
	Land Category = "land"
	Air  Category = "air"
	Sea  Category = "sea"
)

// Categories lists every valid record category in display order
var Categories = []Category{Land, Air, Sea}

// Valid reports whether c is one of the closed category values
func (c Category) Valid() bool {
	switch c {
	case Land, Air, Sea:
		return true
	}
	return false
}

// Diet of a predator
type Diet string

const (
	Carnivore Diet = "carnivore"
	Herbivore Diet = "herbivore"
)

// Valid reports whether d is one of the closed diet values
func (d Diet) Valid() bool {
	return d == Carnivore || d == Herbivore
}

// CategoryFilter selects records by category. The zero value selects all records.
type CategoryFilter struct {
	category Category
}

// All selects the full set
func All() CategoryFilter { return CategoryFilter{} }

// Only selects records of a single category
func Only(c Category) CategoryFilter { return CategoryFilter{category: c} }

// IsAll reports whether the filter selects every record
func (f CategoryFilter) IsAll() bool { return f.category == "" }

// Category returns the selected category; ok is false for the All filter
func (f CategoryFilter) Category() (c Category, ok bool) {
	return f.category, f.category != ""
}

func (f CategoryFilter) String() string {
	if f.IsAll() {
		return "all"
	}
	return string(f.category)
}

// Location is a latitude/longitude pair
type Location struct {
	Latitude  float64
	Longitude float64
}

// Measurements are opaque display strings
type Measurements struct {
	Height string
	Length string
	Weight string
}

// Scene is a single media appearance
type Scene struct {
	ID          int    // Scene identifier
	Movie       string // Media title
	Description string // Scene description
}

// Record is one catalog entry. Records are never mutated after load.
type Record struct {
	ID           int      // Stable identifier from the dataset
	Name         string   // Display name, used for search and sort
	Category     Category // Habitat domain
	Diet         Diet
	Latitude     float64
	Longitude    float64
	Measurements Measurements
	Movies       []string // Media titles in source order
	Scenes       []Scene
	Link         string // Reference link
}

// Clone returns a copy that shares no slices with r
func (r *Record) Clone() Record {
	c := *r
	if r.Movies != nil {
		c.Movies = append([]string(nil), r.Movies...)
	}
	if r.Scenes != nil {
		c.Scenes = append([]Scene(nil), r.Scenes...)
	}
	return c
}

// Location returns the record's coordinates
func (r *Record) Location() Location {
	return Location{Latitude: r.Latitude, Longitude: r.Longitude}
}

// DisplayKey is the asset lookup key: name lowercased with spaces removed
func (r *Record) DisplayKey() string {
	return DisplayKey(r.Name)
}

// DisplayKey derives the asset lookup key for a display name
func DisplayKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}

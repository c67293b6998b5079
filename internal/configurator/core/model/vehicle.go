package model

import "fmt"

// Vehicle is one immutable catalog entry. It is created once when the
// catalog is loaded and never mutated afterwards.
type Vehicle struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BodyType   string `json:"bodyType"`
	Drivetrain string `json:"drivetrain"`

	// BasePrice is in whole currency units.
	BasePrice int64 `json:"basePrice"`

	RangeKm   int    `json:"rangeKm"`
	HeroImage string `json:"heroImage"`

	// Gallery is ordered; the first entry is the main image.
	Gallery []string `json:"gallery"`

	Versions []Version `json:"versions"`
	Colors   []Color   `json:"colors"`
	Addons   []Addon   `json:"addons"`
	Features []Feature `json:"features"`
}

// Version is a trim of a vehicle. Its delta is added to the base price.
type Version struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	PriceDelta int64  `json:"priceDelta"`
}

// Color is a paint option. It does not affect the price.
type Color struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Hex   string `json:"hex"`
}

// Addon is an independently toggleable extra.
type Addon struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	PriceDelta int64  `json:"priceDelta"`
}

// Feature is a label/value pair shown in the model details.
type Feature struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Normalize replaces nil sub-record slices with empty ones so that an
// absent array in the catalog payload behaves like an empty one.
func (v *Vehicle) Normalize() {
	if v.Gallery == nil {
		v.Gallery = []string{}
	}
	if v.Versions == nil {
		v.Versions = []Version{}
	}
	if v.Colors == nil {
		v.Colors = []Color{}
	}
	if v.Addons == nil {
		v.Addons = []Addon{}
	}
	if v.Features == nil {
		v.Features = []Feature{}
	}
}

// FindVersion returns the version with the given id.
func (v *Vehicle) FindVersion(id string) (Version, bool) {
	for _, ver := range v.Versions {
		if ver.ID == id {
			return ver, true
		}
	}
	return Version{}, false
}

// FindColor returns the color with the given id.
func (v *Vehicle) FindColor(id string) (Color, bool) {
	for _, c := range v.Colors {
		if c.ID == id {
			return c, true
		}
	}
	return Color{}, false
}

// MainImage is the first gallery entry, falling back to the hero image.
func (v *Vehicle) MainImage() string {
	if len(v.Gallery) > 0 {
		return v.Gallery[0]
	}
	return v.HeroImage
}

// Meta is the one-line summary shown under the name on catalog cards.
func (v *Vehicle) Meta() string {
	return fmt.Sprintf("%s • %dkm range", v.Drivetrain, v.RangeKm)
}

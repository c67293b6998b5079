package model

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// ActiveConfiguration is the in-progress selection for the opened vehicle.
// An empty VersionID or ColorID means nothing is selected.
type ActiveConfiguration struct {
	VehicleID string
	VersionID string
	ColorID   string
	Addons    sets.Set[string]
}

// Clone returns a copy whose add-on set can be changed independently.
func (c ActiveConfiguration) Clone() ActiveConfiguration {
	out := c
	if c.Addons != nil {
		out.Addons = c.Addons.Clone()
	} else {
		out.Addons = sets.New[string]()
	}
	return out
}

// SelectedAddons lists the vehicle's add-ons that are in the selection, in
// catalog order. Unknown ids in the set are ignored.
func (c ActiveConfiguration) SelectedAddons(v *Vehicle) []Addon {
	out := []Addon{}
	for _, a := range v.Addons {
		if c.Addons.Has(a.ID) {
			out = append(out, a)
		}
	}
	return out
}

package service

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/autopeer-io/voltura/internal/configurator/core/engine"
	"github.com/autopeer-io/voltura/internal/configurator/core/model"
	"github.com/autopeer-io/voltura/pkg/price"
)

// Selection is the wire form of an active configuration.
type Selection struct {
	VehicleID string   `json:"vehicleId"`
	VersionID string   `json:"versionId"`
	ColorID   string   `json:"colorId"`
	Addons    []string `json:"addons"`
}

// View is the state a client renders after every configuration intent.
type View struct {
	Vehicle        *model.Vehicle            `json:"vehicle"`
	Configuration  model.ActiveConfiguration `json:"-"`
	Selection      Selection                 `json:"selection"`
	MainImage      string                    `json:"mainImage"`
	Price          int64                     `json:"price"`
	FormattedPrice string                    `json:"formattedPrice"`
}

func newView(v *model.Vehicle, cfg model.ActiveConfiguration) View {
	total := engine.Price(v, cfg)
	return View{
		Vehicle:       v,
		Configuration: cfg,
		Selection: Selection{
			VehicleID: cfg.VehicleID,
			VersionID: cfg.VersionID,
			ColorID:   cfg.ColorID,
			Addons:    orderedAddons(v, cfg.Addons),
		},
		MainImage:      v.MainImage(),
		Price:          total,
		FormattedPrice: price.Format(total),
	}
}

// orderedAddons lists the vehicle's add-ons in catalog order followed by any
// ids the vehicle does not know, sorted.
func orderedAddons(v *model.Vehicle, selected sets.Set[string]) []string {
	out := make([]string, 0, selected.Len())
	known := sets.New[string]()
	for _, a := range v.Addons {
		known.Insert(a.ID)
		if selected.Has(a.ID) {
			out = append(out, a.ID)
		}
	}
	return append(out, sets.List(selected.Difference(known))...)
}

// Card is a catalog list entry.
type Card struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BodyType   string `json:"bodyType"`
	HeroImage  string `json:"heroImage"`
	BasePrice  int64  `json:"basePrice"`
	PriceLabel string `json:"priceLabel"`
	Meta       string `json:"meta"`
}

// NewCard summarises v for a catalog list.
func NewCard(v model.Vehicle) Card {
	return Card{
		ID:         v.ID,
		Name:       v.Name,
		BodyType:   v.BodyType,
		HeroImage:  v.HeroImage,
		BasePrice:  v.BasePrice,
		PriceLabel: price.FormatFrom(v.BasePrice),
		Meta:       v.Meta(),
	}
}

// NewCards summarises a filtered view.
func NewCards(vs []model.Vehicle) []Card {
	out := make([]Card, 0, len(vs))
	for _, v := range vs {
		out = append(out, NewCard(v))
	}
	return out
}

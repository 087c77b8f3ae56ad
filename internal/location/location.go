// Package location defines the closed set of map location records and their popup descriptions.
package location

import "strings"

// Field defaults applied by the constructors.
const (
	DefaultName            = "Tanpa Nama"
	DefaultCategoryLabel   = "Umum"
	DefaultTouristInfo     = "Tidak ada deskripsi."
	DefaultMenuHighlight   = "Tidak diketahui"
	DefaultReligion        = "Umum"
	DefaultWorshipInfo     = "Tempat Ibadah"
	CulinaryCategoryLabel  = "Kuliner"
	WorshipCategoryHeading = "Tempat Ibadah"
)

// Kind tags the concrete variant of a Location.
type Kind int

// Known location kinds.
const (
	KindTouristSite Kind = iota + 1
	KindCulinarySpot
	KindPlaceOfWorship
)

func (k Kind) String() string {
	switch k {
	case KindTouristSite:
		return "tourist_site"
	case KindCulinarySpot:
		return "culinary_spot"
	case KindPlaceOfWorship:
		return "place_of_worship"
	default:
		return "unknown"
	}
}

// Location is implemented only by TouristSite, CulinarySpot and PlaceOfWorship.
type Location interface {
	Kind() Kind
	Name() string
	Coordinates() Coordinates
	isLocation()
}

// Base holds the state shared by every variant.
type Base struct {
	name   string
	coords Coordinates
}

func newBase(name string, coords Coordinates) (Base, error) {
	if err := coords.validate(); err != nil {
		return Base{}, err
	}

	return Base{name: orDefault(name, DefaultName), coords: coords}, nil
}

// Name returns the display name, also used as marker tooltip.
func (b Base) Name() string { return b.name }

// Coordinates returns the record position.
func (b Base) Coordinates() Coordinates { return b.coords }

func (Base) isLocation() {}

// TouristSite is a sightseeing spot or landmark.
type TouristSite struct {
	CategoryLabel string
	Description   string
	Base
}

// NewTouristSite builds a tourist site; label and description get defaults when empty.
func NewTouristSite(name string, coords Coordinates, label, description string) (TouristSite, error) {
	base, err := newBase(name, coords)
	if err != nil {
		return TouristSite{}, err
	}

	return TouristSite{
		Base:          base,
		CategoryLabel: orDefault(label, DefaultCategoryLabel),
		Description:   orDefault(description, DefaultTouristInfo),
	}, nil
}

// Kind implements Location.
func (TouristSite) Kind() Kind { return KindTouristSite }

// CulinarySpot is a place to eat.
//
// Rows loaded from CSV carry their Deskripsi column in MenuHighlight,
// there is no separate menu column in the input format.
type CulinarySpot struct {
	MenuHighlight string
	Base
}

// NewCulinarySpot builds a culinary spot.
func NewCulinarySpot(name string, coords Coordinates, menuHighlight string) (CulinarySpot, error) {
	base, err := newBase(name, coords)
	if err != nil {
		return CulinarySpot{}, err
	}

	return CulinarySpot{
		Base:          base,
		MenuHighlight: orDefault(menuHighlight, DefaultMenuHighlight),
	}, nil
}

// Kind implements Location.
func (CulinarySpot) Kind() Kind { return KindCulinarySpot }

// PlaceOfWorship is a mosque, church, temple and the like.
type PlaceOfWorship struct {
	Religion    string
	Description string
	Base
}

// NewPlaceOfWorship builds a place of worship.
func NewPlaceOfWorship(name string, coords Coordinates, religion, description string) (PlaceOfWorship, error) {
	base, err := newBase(name, coords)
	if err != nil {
		return PlaceOfWorship{}, err
	}

	return PlaceOfWorship{
		Base:        base,
		Religion:    orDefault(religion, DefaultReligion),
		Description: orDefault(description, DefaultWorshipInfo),
	}, nil
}

// Kind implements Location.
func (PlaceOfWorship) Kind() Kind { return KindPlaceOfWorship }

// Category returns the category text of a record as shown to users.
func Category(loc Location) string {
	switch l := loc.(type) {
	case TouristSite:
		return l.CategoryLabel
	case CulinarySpot:
		return CulinaryCategoryLabel
	case PlaceOfWorship:
		return WorshipCategoryHeading + " (" + l.Religion + ")"
	default:
		return ""
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}

	return s
}

package entity

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/oksasatya/go-hbnb/pkg/apperrors"
)

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldOwnerID     = "owner_id"
	FieldAmenities   = "amenities"
)

// PlaceAttributes omits amenities, which are not comparable by value.
var PlaceAttributes = []string{
	FieldID, FieldCreatedAt, FieldUpdatedAt,
	FieldTitle, FieldDescription, FieldPrice, FieldLatitude, FieldLongitude, FieldOwnerID,
}

// Place is a rental listing owned by a user. Amenities holds amenity ids
// without duplicates, in the order they were attached.
type Place struct {
	Base
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	OwnerID     string   `json:"owner_id"`
	Amenities   []string `json:"amenities"`
}

type PlaceInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     string
	Amenities   []string
}

type PlacePatch struct {
	Title       *string
	Description *string
	Price       *float64
	Latitude    *float64
	Longitude   *float64
	OwnerID     *string
	Amenities   *[]string
}

// NewPlace validates every field. Reference resolution (owner, amenities)
// is the caller's job.
func NewPlace(in PlaceInput, now time.Time) (*Place, error) {
	p := &Place{
		Base:        newBase(now),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Price:       in.Price,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		OwnerID:     in.OwnerID,
		Amenities:   slices.Clone(in.Amenities),
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	if err := validateLength(FieldTitle, p.Title, MaxTitleLength); err != nil {
		return nil, err
	}
	if err := validatePrice(p.Price); err != nil {
		return nil, err
	}
	if err := validateRange(FieldLatitude, p.Latitude, MinLatitude, MaxLatitude); err != nil {
		return nil, err
	}
	if err := validateRange(FieldLongitude, p.Longitude, MinLongitude, MaxLongitude); err != nil {
		return nil, err
	}
	if err := validateRef(FieldOwnerID, p.OwnerID); err != nil {
		return nil, err
	}
	if err := validateIDSet(FieldAmenities, p.Amenities); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Place) Update(patch PlacePatch, now time.Time) (Fields, error) {
	fields := Fields{FieldUpdatedAt: now.UTC()}
	if patch.Title != nil {
		fields[FieldTitle] = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		fields[FieldDescription] = *patch.Description
	}
	if patch.Price != nil {
		fields[FieldPrice] = *patch.Price
	}
	if patch.Latitude != nil {
		fields[FieldLatitude] = *patch.Latitude
	}
	if patch.Longitude != nil {
		fields[FieldLongitude] = *patch.Longitude
	}
	if patch.OwnerID != nil {
		fields[FieldOwnerID] = *patch.OwnerID
	}
	if patch.Amenities != nil {
		fields[FieldAmenities] = slices.Clone(*patch.Amenities)
	}
	if err := p.Apply(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// HasAmenity reports whether amenityID is attached.
func (p *Place) HasAmenity(amenityID string) bool {
	return slices.Contains(p.Amenities, amenityID)
}

// AddAmenity attaches amenityID and returns the changed fields.
func (p *Place) AddAmenity(amenityID string, now time.Time) (Fields, error) {
	if p.HasAmenity(amenityID) {
		return nil, apperrors.NewConflict("amenity already attached to place")
	}
	ids := append(slices.Clone(p.Amenities), amenityID)
	fields := Fields{FieldAmenities: ids, FieldUpdatedAt: now.UTC()}
	if err := p.Apply(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (p *Place) Apply(fields Fields) error {
	next := *p
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		v := fields[name]
		if ok, err := next.applyBase(name, v); ok {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case FieldTitle:
			s, ok := v.(string)
			if !ok {
				return typeError(name, "string")
			}
			if err := validateLength(name, s, MaxTitleLength); err != nil {
				return err
			}
			next.Title = s
		case FieldDescription:
			s, ok := v.(string)
			if !ok {
				return typeError(name, "string")
			}
			next.Description = s
		case FieldPrice:
			f, ok := v.(float64)
			if !ok {
				return typeError(name, "number")
			}
			if err := validatePrice(f); err != nil {
				return err
			}
			next.Price = f
		case FieldLatitude:
			f, ok := v.(float64)
			if !ok {
				return typeError(name, "number")
			}
			if err := validateRange(name, f, MinLatitude, MaxLatitude); err != nil {
				return err
			}
			next.Latitude = f
		case FieldLongitude:
			f, ok := v.(float64)
			if !ok {
				return typeError(name, "number")
			}
			if err := validateRange(name, f, MinLongitude, MaxLongitude); err != nil {
				return err
			}
			next.Longitude = f
		case FieldOwnerID:
			s, ok := v.(string)
			if !ok {
				return typeError(name, "string")
			}
			if err := validateRef(name, s); err != nil {
				return err
			}
			next.OwnerID = s
		case FieldAmenities:
			ids, ok := v.([]string)
			if !ok {
				return typeError(name, "list of ids")
			}
			if err := validateIDSet(name, ids); err != nil {
				return err
			}
			next.Amenities = slices.Clone(ids)
		default:
			return unknownField(name)
		}
	}
	*p = next
	return nil
}

// Attribute returns comparable attributes only; amenities are not
// addressable by value.
func (p *Place) Attribute(name string) (any, bool) {
	if v, ok := p.attribute(name); ok {
		return v, true
	}
	switch name {
	case FieldTitle:
		return p.Title, true
	case FieldDescription:
		return p.Description, true
	case FieldPrice:
		return p.Price, true
	case FieldLatitude:
		return p.Latitude, true
	case FieldLongitude:
		return p.Longitude, true
	case FieldOwnerID:
		return p.OwnerID, true
	}
	return nil, false
}

func (p *Place) Clone() *Place {
	c := *p
	c.Amenities = slices.Clone(p.Amenities)
	if c.Amenities == nil {
		c.Amenities = []string{}
	}
	return &c
}

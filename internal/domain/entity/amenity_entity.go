package entity

import (
	"maps"
	"slices"
	"strings"
	"time"
)

const FieldName = "name"

var AmenityAttributes = []string{FieldID, FieldCreatedAt, FieldUpdatedAt, FieldName}

// Amenity is a feature a place can offer.
type Amenity struct {
	Base
	Name string `json:"name"`
}

type AmenityInput struct {
	Name string
}

type AmenityPatch struct {
	Name *string
}

func NewAmenity(in AmenityInput, now time.Time) (*Amenity, error) {
	a := &Amenity{Base: newBase(now), Name: strings.TrimSpace(in.Name)}
	if err := validateLength(FieldName, a.Name, MaxNameLength); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Amenity) Update(p AmenityPatch, now time.Time) (Fields, error) {
	fields := Fields{FieldUpdatedAt: now.UTC()}
	if p.Name != nil {
		fields[FieldName] = strings.TrimSpace(*p.Name)
	}
	if err := a.Apply(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (a *Amenity) Apply(fields Fields) error {
	next := *a
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		v := fields[name]
		if ok, err := next.applyBase(name, v); ok {
			if err != nil {
				return err
			}
			continue
		}
		if name != FieldName {
			return unknownField(name)
		}
		s, ok := v.(string)
		if !ok {
			return typeError(name, "string")
		}
		if err := validateLength(name, s, MaxNameLength); err != nil {
			return err
		}
		next.Name = s
	}
	*a = next
	return nil
}

func (a *Amenity) Attribute(name string) (any, bool) {
	if v, ok := a.attribute(name); ok {
		return v, true
	}
	if name == FieldName {
		return a.Name, true
	}
	return nil, false
}

func (a *Amenity) Clone() *Amenity {
	c := *a
	return &c
}

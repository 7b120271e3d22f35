package entity

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/oksasatya/go-hbnb/pkg/apperrors"
)

const (
	FieldText    = "text"
	FieldRating  = "rating"
	FieldUserID  = "user_id"
	FieldPlaceID = "place_id"
)

var ReviewAttributes = []string{FieldID, FieldCreatedAt, FieldUpdatedAt, FieldText, FieldRating, FieldUserID, FieldPlaceID}

// Review is a user's rating of a place. UserID and PlaceID are fixed at
// creation.
type Review struct {
	Base
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	UserID  string `json:"user_id"`
	PlaceID string `json:"place_id"`
}

type ReviewInput struct {
	Text    string
	Rating  int
	UserID  string
	PlaceID string
}

type ReviewPatch struct {
	Text   *string
	Rating *int
}

func NewReview(in ReviewInput, now time.Time) (*Review, error) {
	r := &Review{
		Base:    newBase(now),
		Text:    strings.TrimSpace(in.Text),
		Rating:  in.Rating,
		UserID:  in.UserID,
		PlaceID: in.PlaceID,
	}
	if err := validateText(r.Text); err != nil {
		return nil, err
	}
	if err := validateRating(r.Rating); err != nil {
		return nil, err
	}
	if err := validateRef(FieldUserID, r.UserID); err != nil {
		return nil, err
	}
	if err := validateRef(FieldPlaceID, r.PlaceID); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Review) Update(p ReviewPatch, now time.Time) (Fields, error) {
	fields := Fields{FieldUpdatedAt: now.UTC()}
	if p.Text != nil {
		fields[FieldText] = strings.TrimSpace(*p.Text)
	}
	if p.Rating != nil {
		fields[FieldRating] = *p.Rating
	}
	if err := r.Apply(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *Review) Apply(fields Fields) error {
	next := *r
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		v := fields[name]
		if ok, err := next.applyBase(name, v); ok {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case FieldText:
			s, ok := v.(string)
			if !ok {
				return typeError(name, "string")
			}
			if err := validateText(s); err != nil {
				return err
			}
			next.Text = s
		case FieldRating:
			n, ok := v.(int)
			if !ok {
				return typeError(name, "integer")
			}
			if err := validateRating(n); err != nil {
				return err
			}
			next.Rating = n
		default:
			return unknownField(name)
		}
	}
	*r = next
	return nil
}

func (r *Review) Attribute(name string) (any, bool) {
	if v, ok := r.attribute(name); ok {
		return v, true
	}
	switch name {
	case FieldText:
		return r.Text, true
	case FieldRating:
		return r.Rating, true
	case FieldUserID:
		return r.UserID, true
	case FieldPlaceID:
		return r.PlaceID, true
	}
	return nil, false
}

func (r *Review) Clone() *Review {
	c := *r
	return &c
}

func validateText(s string) error {
	if s == "" {
		return apperrors.NewValidation(FieldText, "is required")
	}
	return nil
}

package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-hbnb/pkg/apperrors"
)

// Fields is a set of attribute values keyed by attribute name. Attribute
// names double as column names in the relational store.
type Fields map[string]any

// Shared attribute names.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// Base is the metadata every entity carries. ID and CreatedAt never change
// once assigned.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newBase(now time.Time) Base {
	now = now.UTC()
	return Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

// GetID returns the entity identifier.
func (b Base) GetID() string { return b.ID }

func (b Base) attribute(name string) (any, bool) {
	switch name {
	case FieldID:
		return b.ID, true
	case FieldCreatedAt:
		return b.CreatedAt, true
	case FieldUpdatedAt:
		return b.UpdatedAt, true
	}
	return nil, false
}

// applyBase handles the metadata keys of a Fields set. It reports whether
// name was a metadata key.
func (b *Base) applyBase(name string, value any) (bool, error) {
	switch name {
	case FieldID, FieldCreatedAt:
		return true, apperrors.NewValidation(name, "is immutable")
	case FieldUpdatedAt:
		t, ok := value.(time.Time)
		if !ok {
			return true, typeError(name, "timestamp")
		}
		b.UpdatedAt = t.UTC()
		return true, nil
	}
	return false, nil
}

func typeError(field, want string) error {
	return apperrors.NewValidation(field, "must be a "+want)
}

func unknownField(field string) error {
	return apperrors.NewValidation(field, "is not a mutable attribute")
}

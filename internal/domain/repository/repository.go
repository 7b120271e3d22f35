package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-hbnb/internal/domain/entity"
)

var (
	ErrDuplicateID      = errors.New("duplicate id")
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// Entity is what a Repository can hold. Implementations are the pointer
// types in package entity.
type Entity[T any] interface {
	GetID() string
	Attribute(name string) (any, bool)
	Apply(fields entity.Fields) error
	Clone() T
}

// Repository is a keyed store for one entity kind. Absence is reported with
// a false flag, never an error.
type Repository[T Entity[T]] interface {
	Add(ctx context.Context, e T) (T, error)
	Get(ctx context.Context, id string) (T, bool, error)
	// GetForUpdate is Get, but holds the entity against concurrent writers
	// until the unit of work ends.
	GetForUpdate(ctx context.Context, id string) (T, bool, error)
	GetAll(ctx context.Context) ([]T, error)
	GetByAttribute(ctx context.Context, name string, value any) ([]T, error)
	Update(ctx context.Context, id string, fields entity.Fields) (T, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type (
	UserRepository    = Repository[*entity.User]
	PlaceRepository   = Repository[*entity.Place]
	AmenityRepository = Repository[*entity.Amenity]
	ReviewRepository  = Repository[*entity.Review]
)

// Repositories is the set handed to a unit of work.
type Repositories struct {
	Users     UserRepository
	Places    PlaceRepository
	Amenities AmenityRepository
	Reviews   ReviewRepository
}

// Store runs fn as a single atomic unit. Any error returned by fn discards
// every write made through the Repositories it received.
type Store interface {
	Atomic(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
}

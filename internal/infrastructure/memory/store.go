// Package memory is the in-process storage backend used in development and
// tests.
package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/go-hbnb/internal/domain/entity"
	"github.com/oksasatya/go-hbnb/internal/domain/repository"
)

// Store serializes every unit of work behind one process-wide lock, so a
// lookup, its checks and the following write are never interleaved with
// another unit.
type Store struct {
	mu sync.Mutex

	users     *Repository[*entity.User]
	places    *Repository[*entity.Place]
	amenities *Repository[*entity.Amenity]
	reviews   *Repository[*entity.Review]
}

func NewStore() *Store {
	return &Store{
		users:     NewRepository[*entity.User](entity.UserAttributes),
		places:    NewRepository[*entity.Place](entity.PlaceAttributes),
		amenities: NewRepository[*entity.Amenity](entity.AmenityAttributes),
		reviews:   NewRepository[*entity.Review](entity.ReviewAttributes),
	}
}

// Atomic runs fn under the store lock. Writes made by fn are undone when it
// returns an error or panics.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, r repository.Repositories) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var j journal
	defer func() {
		if p := recover(); p != nil {
			j.rollback()
			panic(p)
		}
		if err != nil {
			j.rollback()
		}
	}()

	return fn(ctx, repository.Repositories{
		Users:     txRepository[*entity.User]{s.users, &j},
		Places:    txRepository[*entity.Place]{s.places, &j},
		Amenities: txRepository[*entity.Amenity]{s.amenities, &j},
		Reviews:   txRepository[*entity.Review]{s.reviews, &j},
	})
}

var _ repository.Store = (*Store)(nil)

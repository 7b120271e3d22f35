package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/oksasatya/go-hbnb/internal/domain/entity"
	"github.com/oksasatya/go-hbnb/internal/domain/repository"
)

// Store runs each unit of work in its own database transaction. Uniqueness
// is backed by constraints, so of two racing writers the second fails with
// a conflict when it inserts.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, r repository.Repositories) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return translate("begin", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, translate("rollback", rbErr))
			}
		}
	}()

	if err = fn(ctx, repositories(tx)); err != nil {
		return err
	}
	return translate("commit", tx.Commit())
}

func repositories(q querier) repository.Repositories {
	return repository.Repositories{
		Users:     &Repository[*entity.User]{q: q, t: usersTable},
		Places:    &Repository[*entity.Place]{q: q, t: placesTable},
		Amenities: &Repository[*entity.Amenity]{q: q, t: amenitiesTable},
		Reviews:   &Repository[*entity.Review]{q: q, t: reviewsTable},
	}
}

var _ repository.Store = (*Store)(nil)

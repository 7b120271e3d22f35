package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hbnb/internal/domain/entity"
	"github.com/oksasatya/go-hbnb/internal/domain/policy"
	repo "github.com/oksasatya/go-hbnb/internal/domain/repository"
	"github.com/oksasatya/go-hbnb/pkg/apperrors"
)

// Facade is the single entry point for every use case. Each method runs as
// one Store.Atomic unit: references are resolved, the policy is consulted,
// the entity is validated, cross-entity invariants are checked and only then
// is anything written.
type Facade struct {
	Store  repo.Store
	Hasher entity.PasswordHasher
	Clock  func() time.Time
	Logger *logrus.Logger
}

func NewFacade(store repo.Store, hasher entity.PasswordHasher, logger *logrus.Logger) *Facade {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Facade{
		Store:  store,
		Hasher: hasher,
		Clock:  time.Now,
		Logger: logger,
	}
}

func (f *Facade) now() time.Time {
	return f.Clock().UTC()
}

// atomic runs fn in a unit of work. Classified errors pass through; anything
// else is a storage failure and is logged and wrapped as internal.
func (f *Facade) atomic(ctx context.Context, op string, fn func(ctx context.Context, r repo.Repositories) error) error {
	err := f.Store.Atomic(ctx, fn)
	if err == nil {
		return nil
	}
	var ae *apperrors.Error
	if errors.As(err, &ae) {
		return err
	}
	f.Logger.WithError(err).WithField("op", op).Error("storage operation failed")
	return apperrors.NewInternal(op+" failed", err)
}

func authorize(caller policy.Caller, action policy.Action, target policy.Target) error {
	if d := policy.Can(caller, action, target); !d.Allowed {
		if !caller.Authenticated() {
			return apperrors.NewUnauthorized(d.Reason)
		}
		return apperrors.NewForbidden(d.Reason)
	}
	return nil
}

// bindSelf defaults an empty reference to the caller and rejects a non-admin
// naming anyone else.
func bindSelf(caller policy.Caller, id *string, field string) error {
	if *id == "" && caller.Authenticated() {
		*id = caller.ID
	}
	if caller.IsAdmin() || *id == "" || *id == caller.ID {
		return nil
	}
	return apperrors.NewForbidden(field + " must be the authenticated user")
}

func mustGet[T repo.Entity[T]](ctx context.Context, r repo.Repository[T], resource, id string) (T, error) {
	e, ok, err := r.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		var zero T
		return zero, apperrors.NewNotFound(resource, id)
	}
	return e, nil
}

// mustLock is mustGet for an entity the caller is about to write. The
// entity stays locked until the unit of work ends.
func mustLock[T repo.Entity[T]](ctx context.Context, r repo.Repository[T], resource, id string) (T, error) {
	e, ok, err := r.GetForUpdate(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		var zero T
		return zero, apperrors.NewNotFound(resource, id)
	}
	return e, nil
}

func mustUpdate[T repo.Entity[T]](ctx context.Context, r repo.Repository[T], resource, id string, fields entity.Fields) (T, error) {
	e, ok, err := r.Update(ctx, id, fields)
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		var zero T
		return zero, apperrors.NewNotFound(resource, id)
	}
	return e, nil
}

func getAll[T repo.Entity[T]](ctx context.Context, f *Facade, op string, pick func(repo.Repositories) repo.Repository[T]) ([]T, error) {
	var out []T
	err := f.atomic(ctx, op, func(ctx context.Context, r repo.Repositories) error {
		all, err := pick(r).GetAll(ctx)
		out = all
		return err
	})
	return out, err
}

func getOne[T repo.Entity[T]](ctx context.Context, f *Facade, op, resource, id string, pick func(repo.Repositories) repo.Repository[T]) (T, error) {
	var out T
	err := f.atomic(ctx, op, func(ctx context.Context, r repo.Repositories) error {
		e, err := mustGet(ctx, pick(r), resource, id)
		out = e
		return err
	})
	return out, err
}

func users(r repo.Repositories) repo.UserRepository        { return r.Users }
func places(r repo.Repositories) repo.PlaceRepository      { return r.Places }
func amenities(r repo.Repositories) repo.AmenityRepository { return r.Amenities }
func reviews(r repo.Repositories) repo.ReviewRepository    { return r.Reviews }

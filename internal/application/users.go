package application

import (
	"context"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hbnb/internal/domain/entity"
	"github.com/oksasatya/go-hbnb/internal/domain/policy"
	repo "github.com/oksasatya/go-hbnb/internal/domain/repository"
	"github.com/oksasatya/go-hbnb/pkg/apperrors"
)

func errEmailTaken() error {
	return apperrors.NewConflict("email already registered")
}

// redact strips the password hash from a user leaving the facade.
func redact(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := u.Clone()
	c.PasswordHash = ""
	return c
}

func redactAll(us []*entity.User) []*entity.User {
	out := make([]*entity.User, 0, len(us))
	for _, u := range us {
		out = append(out, redact(u))
	}
	return out
}

// emailTaken reports whether a user other than exceptID holds email.
func emailTaken(ctx context.Context, r repo.UserRepository, email, exceptID string) (bool, error) {
	found, err := r.GetByAttribute(ctx, entity.FieldEmail, email)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(found, func(u *entity.User) bool { return u.ID != exceptID }), nil
}

// CreateUser registers an account. Anyone may register; setting is_admin
// requires an admin caller.
func (f *Facade) CreateUser(ctx context.Context, caller policy.Caller, in entity.UserInput) (*entity.User, error) {
	if in.IsAdmin {
		if err := authorize(caller, policy.CreateUserAsAdmin, policy.Target{}); err != nil {
			return nil, err
		}
	}
	// Hashing happens before the unit of work; it touches no shared state.
	u, err := entity.NewUser(in, f.Hasher, f.now())
	if err != nil {
		return nil, err
	}
	err = f.atomic(ctx, "create user", func(ctx context.Context, r repo.Repositories) error {
		taken, err := emailTaken(ctx, r.Users, u.Email, "")
		if err != nil {
			return err
		}
		if taken {
			return errEmailTaken()
		}
		u, err = r.Users.Add(ctx, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	f.Logger.WithFields(logrus.Fields{"user_id": u.ID, "is_admin": u.IsAdmin}).Info("user created")
	return redact(u), nil
}

func (f *Facade) GetUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := getOne(ctx, f, "get user", "user", id, users)
	if err != nil {
		return nil, err
	}
	return redact(u), nil
}

func (f *Facade) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	var u *entity.User
	err := f.atomic(ctx, "get user by email", func(ctx context.Context, r repo.Repositories) error {
		found, err := r.Users.GetByAttribute(ctx, entity.FieldEmail, email)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return apperrors.NewNotFound("user", email)
		}
		u = found[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return redact(u), nil
}

func (f *Facade) GetAllUsers(ctx context.Context) ([]*entity.User, error) {
	all, err := getAll(ctx, f, "list users", users)
	if err != nil {
		return nil, err
	}
	return redactAll(all), nil
}

// UpdateUser applies a partial update. Non-admins may only rename
// themselves.
func (f *Facade) UpdateUser(ctx context.Context, caller policy.Caller, id string, patch entity.UserPatch) (*entity.User, error) {
	var out *entity.User
	err := f.atomic(ctx, "update user", func(ctx context.Context, r repo.Repositories) error {
		u, err := mustLock(ctx, r.Users, "user", id)
		if err != nil {
			return err
		}
		if err := authorize(caller, policy.UpdateUser, policy.Target{OwnerID: u.ID, Fields: patch.Changed()}); err != nil {
			return err
		}
		fields, err := u.Update(patch, f.Hasher, f.now())
		if err != nil {
			return err
		}
		if email, ok := fields[entity.FieldEmail]; ok {
			taken, err := emailTaken(ctx, r.Users, email.(string), u.ID)
			if err != nil {
				return err
			}
			if taken {
				return errEmailTaken()
			}
		}
		out, err = mustUpdate(ctx, r.Users, "user", id, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	f.Logger.WithFields(logrus.Fields{"user_id": id, "by": caller.ID}).Info("user updated")
	return redact(out), nil
}

// Authenticate checks credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (f *Facade) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	var u *entity.User
	err := f.atomic(ctx, "authenticate", func(ctx context.Context, r repo.Repositories) error {
		found, err := r.Users.GetByAttribute(ctx, entity.FieldEmail, email)
		if err != nil {
			return err
		}
		if len(found) > 0 {
			u = found[0]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if u == nil || !u.VerifyPassword(f.Hasher, password) {
		f.Logger.WithField("email", email).Warn("login failed")
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return redact(u), nil
}

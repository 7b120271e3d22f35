package entity

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/oksasatya/go-hbnb/pkg/apperrors"
)

const (
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldPasswordHash = "password_hash"
	FieldIsAdmin      = "is_admin"
)

// UserAttributes are the names accepted by User.Attribute.
var UserAttributes = []string{FieldID, FieldCreatedAt, FieldUpdatedAt, FieldFirstName, FieldLastName, FieldEmail, FieldIsAdmin}

// PasswordHasher is a salted one-way hash. Implementations live in
// pkg/helpers.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// User is an account. PasswordHash is never serialized.
type User struct {
	Base
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

// UserInput carries the fields required to register a user.
type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsAdmin   bool
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	IsAdmin   *bool
}

// Changed lists the attribute names the patch touches.
func (p UserPatch) Changed() []string {
	var out []string
	if p.FirstName != nil {
		out = append(out, FieldFirstName)
	}
	if p.LastName != nil {
		out = append(out, FieldLastName)
	}
	if p.Email != nil {
		out = append(out, FieldEmail)
	}
	if p.Password != nil {
		out = append(out, FieldPassword)
	}
	if p.IsAdmin != nil {
		out = append(out, FieldIsAdmin)
	}
	return out
}

// NewUser validates the input and returns a user with a hashed password.
// The plaintext is not retained.
func NewUser(in UserInput, hasher PasswordHasher, now time.Time) (*User, error) {
	u := &User{
		Base:      newBase(now),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     NormalizeEmail(in.Email),
		IsAdmin:   in.IsAdmin,
	}
	if err := validateLength(FieldFirstName, u.FirstName, MaxNameLength); err != nil {
		return nil, err
	}
	if err := validateLength(FieldLastName, u.LastName, MaxNameLength); err != nil {
		return nil, err
	}
	if err := validateEmail(u.Email); err != nil {
		return nil, err
	}
	if err := u.HashPassword(hasher, in.Password); err != nil {
		return nil, err
	}
	return u, nil
}

// HashPassword replaces the stored hash with a hash of plain.
func (u *User) HashPassword(hasher PasswordHasher, plain string) error {
	hash, err := hashPassword(hasher, plain)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// VerifyPassword reports whether plain matches the stored hash.
func (u *User) VerifyPassword(hasher PasswordHasher, plain string) bool {
	if u.PasswordHash == "" || plain == "" {
		return false
	}
	return hasher.Verify(plain, u.PasswordHash)
}

func hashPassword(hasher PasswordHasher, plain string) (string, error) {
	if err := validatePassword(plain); err != nil {
		return "", err
	}
	hash, err := hasher.Hash(plain)
	if err != nil {
		return "", apperrors.NewInternal("hash password", err)
	}
	return hash, nil
}

// Update applies p, re-validating the touched fields, and returns the
// persisted attribute changes including the refreshed updated_at.
func (u *User) Update(p UserPatch, hasher PasswordHasher, now time.Time) (Fields, error) {
	fields := Fields{}
	if p.FirstName != nil {
		fields[FieldFirstName] = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		fields[FieldLastName] = strings.TrimSpace(*p.LastName)
	}
	if p.Email != nil {
		fields[FieldEmail] = NormalizeEmail(*p.Email)
	}
	if p.Password != nil {
		hash, err := hashPassword(hasher, *p.Password)
		if err != nil {
			return nil, err
		}
		fields[FieldPasswordHash] = hash
	}
	if p.IsAdmin != nil {
		fields[FieldIsAdmin] = *p.IsAdmin
	}
	fields[FieldUpdatedAt] = now.UTC()
	if err := u.Apply(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Apply assigns already-derived attribute values, validating each one. The
// user is left unchanged when any value is rejected.
func (u *User) Apply(fields Fields) error {
	next := *u
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		v := fields[name]
		if ok, err := next.applyBase(name, v); ok {
			if err != nil {
				return err
			}
			continue
		}
		switch name {
		case FieldFirstName, FieldLastName:
			s, ok := v.(string)
			if !ok {
				return typeError(name, "string")
			}
			if err := validateLength(name, s, MaxNameLength); err != nil {
				return err
			}
			if name == FieldFirstName {
				next.FirstName = s
			} else {
				next.LastName = s
			}
		case FieldEmail:
			s, ok := v.(string)
			if !ok {
				return typeError(name, "string")
			}
			if err := validateEmail(s); err != nil {
				return err
			}
			next.Email = s
		case FieldPasswordHash:
			s, ok := v.(string)
			if !ok || s == "" {
				return typeError(name, "non-empty string")
			}
			next.PasswordHash = s
		case FieldIsAdmin:
			b, ok := v.(bool)
			if !ok {
				return typeError(name, "boolean")
			}
			next.IsAdmin = b
		default:
			return unknownField(name)
		}
	}
	*u = next
	return nil
}

// Attribute returns a comparable attribute value for lookups.
func (u *User) Attribute(name string) (any, bool) {
	if v, ok := u.attribute(name); ok {
		return v, true
	}
	switch name {
	case FieldFirstName:
		return u.FirstName, true
	case FieldLastName:
		return u.LastName, true
	case FieldEmail:
		return u.Email, true
	case FieldIsAdmin:
		return u.IsAdmin, true
	}
	return nil, false
}

func (u *User) Clone() *User {
	c := *u
	return &c
}

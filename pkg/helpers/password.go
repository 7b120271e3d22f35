package helpers

import (
	"fmt"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-hbnb/internal/domain/entity"
)

// Both hashers satisfy the port users are created with. Verify never
// returns an error; a malformed hash simply does not match.
var (
	_ entity.PasswordHasher = BcryptHasher{}
	_ entity.PasswordHasher = Argon2Hasher{}
)

const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

// NewPasswordHasher returns the hasher named by kind. cost only applies to
// bcrypt; zero selects bcrypt.DefaultCost.
func NewPasswordHasher(kind string, cost int) (entity.PasswordHasher, error) {
	switch kind {
	case "", HasherBcrypt:
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return BcryptHasher{Cost: cost}, nil
	case HasherArgon2id:
		return Argon2Hasher{Params: argon2id.DefaultParams}, nil
	}
	return nil, fmt.Errorf("unknown password hasher %q", kind)
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

type Argon2Hasher struct {
	Params *argon2id.Params
}

func (h Argon2Hasher) Hash(plain string) (string, error) {
	return argon2id.CreateHash(plain, h.Params)
}

func (Argon2Hasher) Verify(plain, hash string) bool {
	ok, err := argon2id.ComparePasswordAndHash(plain, hash)
	return err == nil && ok
}

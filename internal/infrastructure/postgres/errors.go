package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-hbnb/internal/domain/repository"
	"github.com/oksasatya/go-hbnb/pkg/apperrors"
)

const uniqueViolation = "23505"

// Constraint names from db/migrations.
const (
	constraintUserEmail    = "users_email_lower_key"
	constraintReviewOnce   = "reviews_user_id_place_id_key"
	constraintPlaceAmenity = "place_amenities_pkey"
)

var conflictMessages = map[string]string{
	constraintUserEmail:    "email already registered",
	constraintReviewOnce:   "you have already reviewed this place",
	constraintPlaceAmenity: "amenity already attached to place",
}

// translate maps driver errors onto repository and application errors.
// Unique violations become conflicts, except on a table's primary key where
// they signal a duplicate id.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if msg, ok := conflictMessages[pgErr.ConstraintName]; ok {
			return apperrors.NewConflict(msg)
		}
		if strings.HasSuffix(pgErr.ConstraintName, "_pkey") {
			return repository.ErrDuplicateID
		}
		return apperrors.NewConflict("unique constraint " + pgErr.ConstraintName + " violated")
	}
	return fmt.Errorf("postgres: %s: %w", op, err)
}

package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hbnb/internal/domain/entity"
	"github.com/oksasatya/go-hbnb/internal/domain/policy"
	repo "github.com/oksasatya/go-hbnb/internal/domain/repository"
	"github.com/oksasatya/go-hbnb/pkg/apperrors"
)

// CreateReview records a review. The author defaults to the caller. Owners
// may not review their own place and each user reviews a place at most once.
func (f *Facade) CreateReview(ctx context.Context, caller policy.Caller, in entity.ReviewInput) (*entity.Review, error) {
	var out *entity.Review
	err := f.atomic(ctx, "create review", func(ctx context.Context, r repo.Repositories) error {
		if in.UserID == "" && caller.Authenticated() {
			in.UserID = caller.ID
		}
		if in.UserID != "" {
			if _, err := mustGet(ctx, r.Users, "user", in.UserID); err != nil {
				return err
			}
		}
		var place *entity.Place
		if in.PlaceID != "" {
			p, err := mustGet(ctx, r.Places, "place", in.PlaceID)
			if err != nil {
				return err
			}
			place = p
		}
		if err := authorize(caller, policy.CreateReview, policy.Target{}); err != nil {
			return err
		}
		if err := bindSelf(caller, &in.UserID, entity.FieldUserID); err != nil {
			return err
		}
		rv, err := entity.NewReview(in, f.now())
		if err != nil {
			return err
		}
		if place != nil && place.OwnerID == rv.UserID {
			return apperrors.NewForbidden("you cannot review your own place")
		}
		existing, err := r.Reviews.GetByAttribute(ctx, entity.FieldPlaceID, rv.PlaceID)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if e.UserID == rv.UserID {
				return apperrors.NewConflict("you have already reviewed this place")
			}
		}
		out, err = r.Reviews.Add(ctx, rv)
		return err
	})
	if err != nil {
		return nil, err
	}
	f.Logger.WithFields(logrus.Fields{"review_id": out.ID, "place_id": out.PlaceID, "user_id": out.UserID}).Info("review created")
	return out, nil
}

func (f *Facade) GetReview(ctx context.Context, id string) (*entity.Review, error) {
	return getOne(ctx, f, "get review", "review", id, reviews)
}

func (f *Facade) GetAllReviews(ctx context.Context) ([]*entity.Review, error) {
	return getAll(ctx, f, "list reviews", reviews)
}

// GetReviewsByPlace fails with not found when the place does not exist.
func (f *Facade) GetReviewsByPlace(ctx context.Context, placeID string) ([]*entity.Review, error) {
	exists := func(ctx context.Context, r repo.Repositories) error {
		_, err := mustGet(ctx, r.Places, "place", placeID)
		return err
	}
	return f.reviewsBy(ctx, "list place reviews", exists, entity.FieldPlaceID, placeID)
}

func (f *Facade) GetReviewsByUser(ctx context.Context, userID string) ([]*entity.Review, error) {
	exists := func(ctx context.Context, r repo.Repositories) error {
		_, err := mustGet(ctx, r.Users, "user", userID)
		return err
	}
	return f.reviewsBy(ctx, "list user reviews", exists, entity.FieldUserID, userID)
}

func (f *Facade) reviewsBy(ctx context.Context, op string, exists func(context.Context, repo.Repositories) error, field, id string) ([]*entity.Review, error) {
	var out []*entity.Review
	err := f.atomic(ctx, op, func(ctx context.Context, r repo.Repositories) error {
		if err := exists(ctx, r); err != nil {
			return err
		}
		var err error
		out, err = r.Reviews.GetByAttribute(ctx, field, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *Facade) UpdateReview(ctx context.Context, caller policy.Caller, id string, patch entity.ReviewPatch) (*entity.Review, error) {
	var out *entity.Review
	err := f.atomic(ctx, "update review", func(ctx context.Context, r repo.Repositories) error {
		rv, err := mustLock(ctx, r.Reviews, "review", id)
		if err != nil {
			return err
		}
		if err := authorize(caller, policy.UpdateReview, policy.Target{OwnerID: rv.UserID}); err != nil {
			return err
		}
		fields, err := rv.Update(patch, f.now())
		if err != nil {
			return err
		}
		out, err = mustUpdate(ctx, r.Reviews, "review", id, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	f.Logger.WithFields(logrus.Fields{"review_id": id, "by": caller.ID}).Info("review updated")
	return out, nil
}

func (f *Facade) DeleteReview(ctx context.Context, caller policy.Caller, id string) error {
	err := f.atomic(ctx, "delete review", func(ctx context.Context, r repo.Repositories) error {
		rv, err := mustLock(ctx, r.Reviews, "review", id)
		if err != nil {
			return err
		}
		if err := authorize(caller, policy.DeleteReview, policy.Target{OwnerID: rv.UserID}); err != nil {
			return err
		}
		removed, err := r.Reviews.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !removed {
			return apperrors.NewNotFound("review", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	f.Logger.WithFields(logrus.Fields{"review_id": id, "by": caller.ID}).Info("review deleted")
	return nil
}

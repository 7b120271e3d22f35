package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hbnb/internal/domain/entity"
	"github.com/oksasatya/go-hbnb/internal/domain/policy"
	repo "github.com/oksasatya/go-hbnb/internal/domain/repository"
	"github.com/oksasatya/go-hbnb/pkg/apperrors"
)

// resolveAmenities fails with not found for the first unknown id.
func resolveAmenities(ctx context.Context, r repo.AmenityRepository, ids []string) error {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, err := mustGet(ctx, r, "amenity", id); err != nil {
			return err
		}
	}
	return nil
}

// CreatePlace lists a place. The owner defaults to the caller; only an
// admin may list on behalf of someone else.
func (f *Facade) CreatePlace(ctx context.Context, caller policy.Caller, in entity.PlaceInput) (*entity.Place, error) {
	var out *entity.Place
	err := f.atomic(ctx, "create place", func(ctx context.Context, r repo.Repositories) error {
		if in.OwnerID == "" && caller.Authenticated() {
			in.OwnerID = caller.ID
		}
		if in.OwnerID != "" {
			if _, err := mustGet(ctx, r.Users, "user", in.OwnerID); err != nil {
				return err
			}
		}
		if err := resolveAmenities(ctx, r.Amenities, in.Amenities); err != nil {
			return err
		}
		if err := authorize(caller, policy.CreatePlace, policy.Target{}); err != nil {
			return err
		}
		if err := bindSelf(caller, &in.OwnerID, entity.FieldOwnerID); err != nil {
			return err
		}
		p, err := entity.NewPlace(in, f.now())
		if err != nil {
			return err
		}
		out, err = r.Places.Add(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	f.Logger.WithFields(logrus.Fields{"place_id": out.ID, "owner_id": out.OwnerID}).Info("place created")
	return out, nil
}

func (f *Facade) GetPlace(ctx context.Context, id string) (*entity.Place, error) {
	return getOne(ctx, f, "get place", "place", id, places)
}

func (f *Facade) GetAllPlaces(ctx context.Context) ([]*entity.Place, error) {
	return getAll(ctx, f, "list places", places)
}

// UpdatePlace applies a partial update. Only the owner or an admin may
// update, and only an admin may hand the place to another owner.
func (f *Facade) UpdatePlace(ctx context.Context, caller policy.Caller, id string, patch entity.PlacePatch) (*entity.Place, error) {
	var out *entity.Place
	err := f.atomic(ctx, "update place", func(ctx context.Context, r repo.Repositories) error {
		p, err := mustLock(ctx, r.Places, "place", id)
		if err != nil {
			return err
		}
		if patch.OwnerID != nil && *patch.OwnerID != "" {
			if _, err := mustGet(ctx, r.Users, "user", *patch.OwnerID); err != nil {
				return err
			}
		}
		if patch.Amenities != nil {
			if err := resolveAmenities(ctx, r.Amenities, *patch.Amenities); err != nil {
				return err
			}
		}
		if err := authorize(caller, policy.UpdatePlace, policy.Target{OwnerID: p.OwnerID}); err != nil {
			return err
		}
		if patch.OwnerID != nil && *patch.OwnerID != p.OwnerID && !caller.IsAdmin() {
			return apperrors.NewForbidden("only an admin may transfer a place")
		}
		fields, err := p.Update(patch, f.now())
		if err != nil {
			return err
		}
		out, err = mustUpdate(ctx, r.Places, "place", id, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	f.Logger.WithFields(logrus.Fields{"place_id": id, "by": caller.ID}).Info("place updated")
	return out, nil
}

// AddPlaceAmenity attaches an existing amenity to a place.
func (f *Facade) AddPlaceAmenity(ctx context.Context, caller policy.Caller, placeID, amenityID string) (*entity.Place, error) {
	var out *entity.Place
	err := f.atomic(ctx, "add place amenity", func(ctx context.Context, r repo.Repositories) error {
		p, err := mustLock(ctx, r.Places, "place", placeID)
		if err != nil {
			return err
		}
		if _, err := mustGet(ctx, r.Amenities, "amenity", amenityID); err != nil {
			return err
		}
		if err := authorize(caller, policy.UpdatePlace, policy.Target{OwnerID: p.OwnerID}); err != nil {
			return err
		}
		fields, err := p.AddAmenity(amenityID, f.now())
		if err != nil {
			return err
		}
		out, err = mustUpdate(ctx, r.Places, "place", placeID, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	f.Logger.WithFields(logrus.Fields{"place_id": placeID, "amenity_id": amenityID}).Info("amenity attached")
	return out, nil
}

// GetPlaceAmenities returns the amenities attached to a place in
// attachment order.
func (f *Facade) GetPlaceAmenities(ctx context.Context, placeID string) ([]*entity.Amenity, error) {
	var out []*entity.Amenity
	err := f.atomic(ctx, "list place amenities", func(ctx context.Context, r repo.Repositories) error {
		p, err := mustGet(ctx, r.Places, "place", placeID)
		if err != nil {
			return err
		}
		out = make([]*entity.Amenity, 0, len(p.Amenities))
		for _, id := range p.Amenities {
			a, ok, err := r.Amenities.Get(ctx, id)
			if err != nil {
				return err
			}
			if ok {
				out = append(out, a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

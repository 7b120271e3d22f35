package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hbnb/internal/domain/entity"
	"github.com/oksasatya/go-hbnb/internal/domain/policy"
	repo "github.com/oksasatya/go-hbnb/internal/domain/repository"
)

func (f *Facade) CreateAmenity(ctx context.Context, caller policy.Caller, in entity.AmenityInput) (*entity.Amenity, error) {
	if err := authorize(caller, policy.CreateAmenity, policy.Target{}); err != nil {
		return nil, err
	}
	a, err := entity.NewAmenity(in, f.now())
	if err != nil {
		return nil, err
	}
	err = f.atomic(ctx, "create amenity", func(ctx context.Context, r repo.Repositories) error {
		a, err = r.Amenities.Add(ctx, a)
		return err
	})
	if err != nil {
		return nil, err
	}
	f.Logger.WithFields(logrus.Fields{"amenity_id": a.ID, "by": caller.ID}).Info("amenity created")
	return a, nil
}

func (f *Facade) GetAmenity(ctx context.Context, id string) (*entity.Amenity, error) {
	return getOne(ctx, f, "get amenity", "amenity", id, amenities)
}

func (f *Facade) GetAllAmenities(ctx context.Context) ([]*entity.Amenity, error) {
	return getAll(ctx, f, "list amenities", amenities)
}

func (f *Facade) UpdateAmenity(ctx context.Context, caller policy.Caller, id string, patch entity.AmenityPatch) (*entity.Amenity, error) {
	var out *entity.Amenity
	err := f.atomic(ctx, "update amenity", func(ctx context.Context, r repo.Repositories) error {
		a, err := mustLock(ctx, r.Amenities, "amenity", id)
		if err != nil {
			return err
		}
		if err := authorize(caller, policy.UpdateAmenity, policy.Target{}); err != nil {
			return err
		}
		fields, err := a.Update(patch, f.now())
		if err != nil {
			return err
		}
		out, err = mustUpdate(ctx, r.Amenities, "amenity", id, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	f.Logger.WithFields(logrus.Fields{"amenity_id": id, "by": caller.ID}).Info("amenity updated")
	return out, nil
}

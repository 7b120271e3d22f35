package postgres

import (
	"context"
	"slices"

	"github.com/doug-martin/goqu/v9"

	"github.com/oksasatya/go-hbnb/internal/domain/entity"
)

const placeAmenitiesTable = "place_amenities"

func utc(b *entity.Base) {
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
}

func baseRecord(b entity.Base) goqu.Record {
	return goqu.Record{
		entity.FieldID:        b.ID,
		entity.FieldCreatedAt: b.CreatedAt,
		entity.FieldUpdatedAt: b.UpdatedAt,
	}
}

var usersTable = func() *table[*entity.User] {
	t := newTable[*entity.User]("users", []string{
		entity.FieldID, entity.FieldFirstName, entity.FieldLastName, entity.FieldEmail,
		entity.FieldPasswordHash, entity.FieldIsAdmin, entity.FieldCreatedAt, entity.FieldUpdatedAt,
	}, entity.UserAttributes)
	t.scan = func(s scanner) (*entity.User, error) {
		u := &entity.User{}
		if err := s.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		utc(&u.Base)
		return u, nil
	}
	t.record = func(u *entity.User) goqu.Record {
		rec := baseRecord(u.Base)
		rec[entity.FieldFirstName] = u.FirstName
		rec[entity.FieldLastName] = u.LastName
		rec[entity.FieldEmail] = u.Email
		rec[entity.FieldPasswordHash] = u.PasswordHash
		rec[entity.FieldIsAdmin] = u.IsAdmin
		return rec
	}
	return t
}()

var amenitiesTable = func() *table[*entity.Amenity] {
	t := newTable[*entity.Amenity]("amenities", []string{
		entity.FieldID, entity.FieldName, entity.FieldCreatedAt, entity.FieldUpdatedAt,
	}, entity.AmenityAttributes)
	t.scan = func(s scanner) (*entity.Amenity, error) {
		a := &entity.Amenity{}
		if err := s.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		utc(&a.Base)
		return a, nil
	}
	t.record = func(a *entity.Amenity) goqu.Record {
		rec := baseRecord(a.Base)
		rec[entity.FieldName] = a.Name
		return rec
	}
	return t
}()

var placesTable = func() *table[*entity.Place] {
	t := newTable[*entity.Place]("places", []string{
		entity.FieldID, entity.FieldTitle, entity.FieldDescription, entity.FieldPrice,
		entity.FieldLatitude, entity.FieldLongitude, entity.FieldOwnerID,
		entity.FieldCreatedAt, entity.FieldUpdatedAt,
	}, entity.PlaceAttributes)
	t.scan = func(s scanner) (*entity.Place, error) {
		p := &entity.Place{Amenities: []string{}}
		if err := s.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Latitude, &p.Longitude, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		utc(&p.Base)
		return p, nil
	}
	t.record = func(p *entity.Place) goqu.Record {
		rec := baseRecord(p.Base)
		rec[entity.FieldTitle] = p.Title
		rec[entity.FieldDescription] = p.Description
		rec[entity.FieldPrice] = p.Price
		rec[entity.FieldLatitude] = p.Latitude
		rec[entity.FieldLongitude] = p.Longitude
		rec[entity.FieldOwnerID] = p.OwnerID
		return rec
	}
	t.external[entity.FieldAmenities] = struct{}{}
	t.load = loadPlaceAmenities
	t.save = savePlaceAmenities
	return t
}()

// loadPlaceAmenities fills Amenities for every place with one query.
func loadPlaceAmenities(ctx context.Context, q querier, items []*entity.Place) error {
	byID := make(map[string]*entity.Place, len(items))
	ids := make([]string, 0, len(items))
	for _, p := range items {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	query, args, err := dialect.From(placeAmenitiesTable).
		Select("place_id", "amenity_id").
		Where(goqu.Ex{"place_id": ids}).
		Order(goqu.I("place_id").Asc(), goqu.I("position").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return translate("select place amenities", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var placeID, amenityID string
		if err := rows.Scan(&placeID, &amenityID); err != nil {
			return translate("scan place amenities", err)
		}
		if p, ok := byID[placeID]; ok {
			p.Amenities = append(p.Amenities, amenityID)
		}
	}
	return translate("select place amenities", rows.Err())
}

// savePlaceAmenities writes the difference between the stored amenity set
// of prev and that of next. A new link keeps its index in next as position.
func savePlaceAmenities(ctx context.Context, q querier, prev, next *entity.Place) error {
	var before []string
	if prev != nil {
		before = prev.Amenities
	}
	var removed []string
	for _, id := range before {
		if !slices.Contains(next.Amenities, id) {
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		query, args, err := dialect.Delete(placeAmenitiesTable).
			Where(goqu.Ex{"place_id": next.ID, "amenity_id": removed}).
			Prepared(true).ToSQL()
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return translate("delete place amenities", err)
		}
	}

	var rows []any
	for i, id := range next.Amenities {
		if !slices.Contains(before, id) {
			rows = append(rows, goqu.Record{"place_id": next.ID, "amenity_id": id, "position": i})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	query, args, err := dialect.Insert(placeAmenitiesTable).Rows(rows...).Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return translate("insert place amenities", err)
	}
	return nil
}

var reviewsTable = func() *table[*entity.Review] {
	t := newTable[*entity.Review]("reviews", []string{
		entity.FieldID, entity.FieldText, entity.FieldRating, entity.FieldUserID, entity.FieldPlaceID,
		entity.FieldCreatedAt, entity.FieldUpdatedAt,
	}, entity.ReviewAttributes)
	t.scan = func(s scanner) (*entity.Review, error) {
		r := &entity.Review{}
		if err := s.Scan(&r.ID, &r.Text, &r.Rating, &r.UserID, &r.PlaceID, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		utc(&r.Base)
		return r, nil
	}
	t.record = func(r *entity.Review) goqu.Record {
		rec := baseRecord(r.Base)
		rec[entity.FieldText] = r.Text
		rec[entity.FieldRating] = r.Rating
		rec[entity.FieldUserID] = r.UserID
		rec[entity.FieldPlaceID] = r.PlaceID
		return rec
	}
	return t
}()

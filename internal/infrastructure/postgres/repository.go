package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/oksasatya/go-hbnb/internal/domain/entity"
	"github.com/oksasatya/go-hbnb/internal/domain/repository"
)

var dialect = goqu.Dialect("postgres")

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// table describes how one entity kind maps onto a relation. Attributes in
// external are persisted by save and filled in by load rather than stored
// as columns. save receives the zero value as prev on insert.
type table[T repository.Entity[T]] struct {
	name     string
	columns  []any
	attrs    map[string]struct{}
	scan     func(s scanner) (T, error)
	record   func(e T) goqu.Record
	external map[string]struct{}
	load     func(ctx context.Context, q querier, items []T) error
	save     func(ctx context.Context, q querier, prev, next T) error
}

func newTable[T repository.Entity[T]](name string, columns, attrs []string) *table[T] {
	t := &table[T]{name: name, attrs: map[string]struct{}{}, external: map[string]struct{}{}}
	for _, c := range columns {
		t.columns = append(t.columns, c)
	}
	for _, a := range attrs {
		t.attrs[a] = struct{}{}
	}
	return t
}

// Repository is a repository.Repository over one table, bound to a
// transaction.
type Repository[T repository.Entity[T]] struct {
	q querier
	t *table[T]
}

func (r *Repository[T]) Add(ctx context.Context, e T) (T, error) {
	var zero T
	query, args, err := dialect.Insert(r.t.name).Rows(r.t.record(e)).Prepared(true).ToSQL()
	if err != nil {
		return zero, err
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return zero, translate("insert "+r.t.name, err)
	}
	if r.t.save != nil {
		var none T
		if err := r.t.save(ctx, r.q, none, e); err != nil {
			return zero, err
		}
	}
	return e.Clone(), nil
}

func (r *Repository[T]) Get(ctx context.Context, id string) (T, bool, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate takes a row lock held until the transaction ends.
func (r *Repository[T]) GetForUpdate(ctx context.Context, id string) (T, bool, error) {
	return r.get(ctx, id, true)
}

func (r *Repository[T]) get(ctx context.Context, id string, lock bool) (T, bool, error) {
	var zero T
	ds := dialect.From(r.t.name).Select(r.t.columns...).Where(goqu.Ex{entity.FieldID: id})
	if lock {
		ds = ds.ForUpdate(exp.Wait)
	}
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return zero, false, err
	}
	e, err := r.t.scan(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, translate("select "+r.t.name, err)
	}
	if r.t.load != nil {
		if err := r.t.load(ctx, r.q, []T{e}); err != nil {
			return zero, false, err
		}
	}
	return e, true, nil
}

func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.list(ctx, nil)
}

func (r *Repository[T]) GetByAttribute(ctx context.Context, name string, value any) ([]T, error) {
	if _, ok := r.t.attrs[name]; !ok {
		return nil, repository.ErrUnknownAttribute
	}
	return r.list(ctx, goqu.Ex{name: value})
}

func (r *Repository[T]) list(ctx context.Context, where exp.Ex) ([]T, error) {
	ds := dialect.From(r.t.name).Select(r.t.columns...)
	if where != nil {
		ds = ds.Where(where)
	}
	query, args, err := ds.Order(goqu.I(entity.FieldCreatedAt).Asc(), goqu.I(entity.FieldID).Asc()).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate("select "+r.t.name, err)
	}
	defer func() { _ = rows.Close() }()

	out := []T{}
	for rows.Next() {
		e, err := r.t.scan(rows)
		if err != nil {
			return nil, translate("scan "+r.t.name, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("select "+r.t.name, err)
	}
	if r.t.load != nil && len(out) > 0 {
		if err := r.t.load(ctx, r.q, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Update locks the row, validates fields against the current state and
// writes only the touched columns.
func (r *Repository[T]) Update(ctx context.Context, id string, fields entity.Fields) (T, bool, error) {
	var zero T
	cur, ok, err := r.get(ctx, id, true)
	if err != nil || !ok {
		return zero, ok, err
	}
	next := cur.Clone()
	if err := next.Apply(fields); err != nil {
		return zero, true, err
	}

	set := goqu.Record{}
	external := false
	for k, v := range fields {
		if _, ok := r.t.external[k]; ok {
			external = true
			continue
		}
		set[k] = v
	}
	if len(set) > 0 {
		query, args, err := dialect.Update(r.t.name).Set(set).Where(goqu.Ex{entity.FieldID: id}).Prepared(true).ToSQL()
		if err != nil {
			return zero, true, err
		}
		if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
			return zero, true, translate("update "+r.t.name, err)
		}
	}
	if external && r.t.save != nil {
		if err := r.t.save(ctx, r.q, cur, next); err != nil {
			return zero, true, err
		}
	}
	return next.Clone(), true, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := dialect.Delete(r.t.name).Where(goqu.Ex{entity.FieldID: id}).Prepared(true).ToSQL()
	if err != nil {
		return false, err
	}
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, translate("delete "+r.t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, translate("delete "+r.t.name, err)
	}
	return n > 0, nil
}

var _ repository.PlaceRepository = (*Repository[*entity.Place])(nil)

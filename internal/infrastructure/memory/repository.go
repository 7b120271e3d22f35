package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/oksasatya/go-hbnb/internal/domain/entity"
	"github.com/oksasatya/go-hbnb/internal/domain/repository"
)

// journal collects compensating actions for writes made inside a unit of
// work. A nil journal records nothing.
type journal []func()

func (j *journal) record(fn func()) {
	if j != nil {
		*j = append(*j, fn)
	}
}

// rollback runs the recorded actions newest first.
func (j journal) rollback() {
	for i := len(j) - 1; i >= 0; i-- {
		j[i]()
	}
}

// Repository is a map-backed repository.Repository. Entities are cloned on
// the way in and out so callers never alias stored state. Rows are kept in
// insertion order.
type Repository[T repository.Entity[T]] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
	attrs map[string]struct{}
}

// NewRepository returns an empty repository accepting lookups on attrs.
func NewRepository[T repository.Entity[T]](attrs []string) *Repository[T] {
	set := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		set[a] = struct{}{}
	}
	return &Repository[T]{rows: map[string]T{}, attrs: set}
}

func (r *Repository[T]) Add(_ context.Context, e T) (T, error) {
	return r.add(e, nil)
}

func (r *Repository[T]) Get(_ context.Context, id string) (T, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var zero T
	e, ok := r.rows[id]
	if !ok {
		return zero, false, nil
	}
	return e.Clone(), true, nil
}

// GetForUpdate is Get. Store.Atomic already serializes units of work.
func (r *Repository[T]) GetForUpdate(ctx context.Context, id string) (T, bool, error) {
	return r.Get(ctx, id)
}

func (r *Repository[T]) GetAll(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rows[id].Clone())
	}
	return out, nil
}

func (r *Repository[T]) GetByAttribute(_ context.Context, name string, value any) ([]T, error) {
	if _, ok := r.attrs[name]; !ok {
		return nil, repository.ErrUnknownAttribute
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []T{}
	for _, id := range r.order {
		e := r.rows[id]
		if v, ok := e.Attribute(name); ok && v == value {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

func (r *Repository[T]) Update(_ context.Context, id string, fields entity.Fields) (T, bool, error) {
	return r.update(id, fields, nil)
}

func (r *Repository[T]) Delete(_ context.Context, id string) (bool, error) {
	return r.delete(id, nil)
}

func (r *Repository[T]) add(e T, j *journal) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	id := e.GetID()
	if _, ok := r.rows[id]; ok {
		return zero, repository.ErrDuplicateID
	}
	r.rows[id] = e.Clone()
	r.order = append(r.order, id)
	j.record(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.remove(id)
	})
	return e.Clone(), nil
}

func (r *Repository[T]) update(id string, fields entity.Fields, j *journal) (T, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	cur, ok := r.rows[id]
	if !ok {
		return zero, false, nil
	}
	next := cur.Clone()
	if err := next.Apply(fields); err != nil {
		return zero, true, err
	}
	r.rows[id] = next
	j.record(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.rows[id] = cur
	})
	return next.Clone(), true, nil
}

func (r *Repository[T]) delete(id string, j *journal) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	at := slices.Index(r.order, id)
	r.remove(id)
	j.record(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.rows[id] = cur
		r.order = slices.Insert(r.order, at, id)
	})
	return true, nil
}

// remove must be called with mu held.
func (r *Repository[T]) remove(id string) {
	delete(r.rows, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

// txRepository is the view of a Repository handed to a unit of work; its
// writes are journaled so the unit can be rolled back.
type txRepository[T repository.Entity[T]] struct {
	*Repository[T]
	j *journal
}

func (t txRepository[T]) Add(_ context.Context, e T) (T, error) {
	return t.add(e, t.j)
}

func (t txRepository[T]) Update(_ context.Context, id string, fields entity.Fields) (T, bool, error) {
	return t.update(id, fields, t.j)
}

func (t txRepository[T]) Delete(_ context.Context, id string) (bool, error) {
	return t.delete(id, t.j)
}

var (
	_ repository.UserRepository   = (*Repository[*entity.User])(nil)
	_ repository.ReviewRepository = txRepository[*entity.Review]{}
)

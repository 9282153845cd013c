package state

import (
	"context"
	"slices"
	"sync"

	"github.com/target/admin-panel/internal/client"
)

// ResourceAPI is the remote CRUD surface a Resource holder drives.
type ResourceAPI[T, C, U any] interface {
	List(ctx context.Context, p client.ListParams) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, req C) (*T, error)
	Update(ctx context.Context, id string, req U) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Snapshot is an immutable view of a Resource holder.
type Snapshot[T any] struct {
	Items    []T
	Selected *T
	Loading  bool
	Error    *string
}

// Messages are the fallback error texts of one resource.
type Messages struct {
	FetchAll string
	FetchOne string
	Create   string
	Update   string
	Delete   string
}

// MessagesFor builds the default messages for a resource, e.g.
// MessagesFor("template", "templates") yields "Failed to fetch templates".
func MessagesFor(singular, plural string) Messages {
	return Messages{
		FetchAll: "Failed to fetch " + plural,
		FetchOne: "Failed to fetch " + singular,
		Create:   "Failed to create " + singular,
		Update:   "Failed to update " + singular,
		Delete:   "Failed to delete " + singular,
	}
}

const (
	opFetchAll = "fetchAll"
	opFetchOne = "fetchOne"
	opCreate   = "create"
	opUpdate   = "update"
	opDelete   = "delete"
)

// Resource holds the list and selection of one collection.
type Resource[T, C, U any] struct {
	api  ResourceAPI[T, C, U]
	id   func(T) string
	msgs Messages

	mu    sync.Mutex
	state Snapshot[T]
	ops   *latest
	subs  subscribers[Snapshot[T]]
}

// NewResource constructs a holder. id extracts a record's identifier.
func NewResource[T, C, U any](api ResourceAPI[T, C, U], id func(T) string, msgs Messages) *Resource[T, C, U] {
	if api == nil || id == nil {
		panic("state: NewResource requires api and id")
	}
	return &Resource[T, C, U]{api: api, id: id, msgs: msgs, ops: newLatest(), state: Snapshot[T]{Items: []T{}}}
}

// Subscribe registers fn to be called after every state transition and
// returns a function that unregisters it.
func (r *Resource[T, C, U]) Subscribe(fn func(Snapshot[T])) func() {
	return r.subs.add(fn)
}

// Snapshot returns a copy of the current state.
func (r *Resource[T, C, U]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyLocked()
}

func (r *Resource[T, C, U]) copyLocked() Snapshot[T] {
	s := r.state
	s.Items = slices.Clone(r.state.Items)
	if r.state.Selected != nil {
		sel := *r.state.Selected
		s.Selected = &sel
	}
	if r.state.Error != nil {
		s.Error = ptr(*r.state.Error)
	}
	return s
}

// mutate applies fn under the lock and notifies subscribers.
func (r *Resource[T, C, U]) mutate(fn func(s *Snapshot[T])) {
	r.mu.Lock()
	fn(&r.state)
	snap := r.copyLocked()
	r.mu.Unlock()
	r.subs.notify(snap)
}

func (r *Resource[T, C, U]) begin(ctx context.Context, op string) (context.Context, uint64) {
	cctx, ticket := r.ops.start(ctx, op)
	r.mutate(func(s *Snapshot[T]) {
		s.Loading = true
		s.Error = nil
	})
	return cctx, ticket
}

// end applies a result when ticket is still current. It reports false for a
// superseded call.
func (r *Resource[T, C, U]) end(op string, ticket uint64, err error, fallback string, apply func(s *Snapshot[T])) bool {
	if !r.ops.finish(op, ticket) {
		return false
	}
	loading := r.ops.inFlight()
	r.mutate(func(s *Snapshot[T]) {
		s.Loading = loading
		if err != nil {
			s.Error = ptr(errorMessage(err, fallback))
			return
		}
		if apply != nil {
			apply(s)
		}
	})
	return true
}

// FetchAll loads the list and replaces Items.
func (r *Resource[T, C, U]) FetchAll(ctx context.Context, p client.ListParams) ([]T, error) {
	cctx, ticket := r.begin(ctx, opFetchAll)
	items, err := r.api.List(cctx, p)
	if items == nil {
		items = []T{}
	}
	if !r.end(opFetchAll, ticket, err, r.msgs.FetchAll, func(s *Snapshot[T]) { s.Items = items }) {
		return nil, ErrSuperseded
	}
	return items, err
}

// FetchOne loads one record into Selected.
func (r *Resource[T, C, U]) FetchOne(ctx context.Context, id string) (*T, error) {
	cctx, ticket := r.begin(ctx, opFetchOne)
	item, err := r.api.Get(cctx, id)
	if !r.end(opFetchOne, ticket, err, r.msgs.FetchOne, func(s *Snapshot[T]) { s.Selected = item }) {
		return nil, ErrSuperseded
	}
	return item, err
}

// Create stores a record and appends it to Items.
func (r *Resource[T, C, U]) Create(ctx context.Context, req C) (*T, error) {
	cctx, ticket := r.begin(ctx, opCreate)
	item, err := r.api.Create(cctx, req)
	if !r.end(opCreate, ticket, err, r.msgs.Create, func(s *Snapshot[T]) { s.Items = append(s.Items, *item) }) {
		return nil, ErrSuperseded
	}
	return item, err
}

// Update patches a record, replacing it in Items and in Selected when it is selected.
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, req U) (*T, error) {
	cctx, ticket := r.begin(ctx, opUpdate)
	item, err := r.api.Update(cctx, id, req)
	ok := r.end(opUpdate, ticket, err, r.msgs.Update, func(s *Snapshot[T]) {
		for i := range s.Items {
			if r.id(s.Items[i]) == id {
				s.Items[i] = *item
			}
		}
		if s.Selected != nil && r.id(*s.Selected) == id {
			s.Selected = item
		}
	})
	if !ok {
		return nil, ErrSuperseded
	}
	return item, err
}

// Delete removes a record and filters it out of Items.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	cctx, ticket := r.begin(ctx, opDelete)
	err := r.api.Delete(cctx, id)
	ok := r.end(opDelete, ticket, err, r.msgs.Delete, func(s *Snapshot[T]) {
		s.Items = slices.DeleteFunc(s.Items, func(it T) bool { return r.id(it) == id })
		if s.Selected != nil && r.id(*s.Selected) == id {
			s.Selected = nil
		}
	})
	if !ok {
		return ErrSuperseded
	}
	return err
}

// ClearSelected drops the selection.
func (r *Resource[T, C, U]) ClearSelected() {
	r.mutate(func(s *Snapshot[T]) { s.Selected = nil })
}

// ClearError drops the error message.
func (r *Resource[T, C, U]) ClearError() {
	r.mutate(func(s *Snapshot[T]) { s.Error = nil })
}

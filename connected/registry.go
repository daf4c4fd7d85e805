package connected

import (
	"slices"

	"connected-collections/orderedset"
)

// Registry maps the identities of an instance to its live collections.
// It is created once at construction and owned by the instance.
type Registry struct {
	slots map[Identity]*Collection
	order []Identity
}

func newRegistry() *Registry {
	return &Registry{slots: make(map[Identity]*Collection)}
}

// Lookup returns the collection bound to id.
func (r *Registry) Lookup(id Identity) (*Collection, bool) {
	if r == nil {
		return nil, false
	}

	c, ok := r.slots[id]

	return c, ok
}

// Identities returns the identities in the order their collections were created.
func (r *Registry) Identities() []Identity {
	if r == nil {
		return nil
	}

	return slices.Clone(r.order)
}

// Len returns the number of collections.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.order)
}

func (r *Registry) bind(id Identity, field string, owner Instance) *Collection {
	c := &Collection{
		identity: id,
		field:    field,
		owner:    owner,
		members:  orderedset.New[Instance](),
	}
	r.slots[id] = c
	r.order = append(r.order, id)

	return c
}

// find walks the candidate identities and returns the first bound collection.
func (r *Registry) find(ids []Identity) (*Collection, bool) {
	for _, id := range ids {
		if c, ok := r.Lookup(id); ok {
			return c, true
		}
	}

	return nil, false
}

package connected

import (
	"fmt"
	"iter"

	"connected-collections/orderedset"
)

// Collection is a relationship collection: the instances currently
// referencing its owner through a matching field, in attach order.
// It is read-only; only field writes on the members change it.
type Collection struct {
	identity Identity
	field    string
	owner    Instance
	members  *orderedset.Set[Instance]
}

// Identity returns the relationship slot of the collection.
func (c *Collection) Identity() Identity {
	return c.identity
}

// Field returns the name of the owner's field the collection is bound to.
func (c *Collection) Field() string {
	return c.field
}

// Owner returns the instance holding the collection.
func (c *Collection) Owner() Instance {
	return c.owner
}

// Len returns the number of members.
func (c *Collection) Len() int {
	return c.members.Len()
}

// Has reports whether inst is a member. Membership is by identity.
func (c *Collection) Has(inst Instance) bool {
	return c.members.Has(inst)
}

// At returns the member at position i; negative positions count from the end.
func (c *Collection) At(i int) Instance {
	return c.members.At(i)
}

// IndexOf returns the position of inst, or -1.
func (c *Collection) IndexOf(inst Instance) int {
	return c.members.IndexOf(inst)
}

// All iterates members in attach order.
func (c *Collection) All() iter.Seq2[int, Instance] {
	return c.members.All()
}

// Backward iterates members in reverse attach order.
func (c *Collection) Backward() iter.Seq2[int, Instance] {
	return c.members.Backward()
}

// Members returns a snapshot of the members.
func (c *Collection) Members() []Instance {
	return c.members.Values()
}

func (c *Collection) String() string {
	return fmt.Sprintf("%s%v", c.identity, c.members)
}

// Members returns the members of c that are of type T, in order.
func Members[T Instance](c *Collection) []T {
	if c == nil {
		return nil
	}

	out := make([]T, 0, c.Len())

	for _, m := range c.members.All() {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}

	return out
}

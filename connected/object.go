package connected

import (
	"fmt"
	"maps"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Instance is implemented by every pointer to a struct embedding Object.
type Instance interface {
	connectedObject() *Object
}

// Object carries the connected state of an instance: its type, its
// registry and the values of its fields. Embed it in a struct and construct
// the struct with Type.Construct or New:
//
//	type Wheel struct {
//		connected.Object
//	}
//
//	w, err := connected.New[Wheel](wheelType)
//
// All field access goes through Get and Set so that relationships stay in sync.
type Object struct {
	typ      *Type
	schema   *Schema
	id       uuid.UUID
	self     Instance
	registry *Registry
	values   map[string]any
}

func (o *Object) connectedObject() *Object {
	return o
}

// Type returns the connected type of the instance, or nil before construction.
func (o *Object) Type() *Type {
	if o == nil {
		return nil
	}

	return o.typ
}

// ID returns the instance id assigned at construction.
func (o *Object) ID() uuid.UUID {
	return o.id
}

// Registry returns the relationship registry, or nil before construction.
func (o *Object) Registry() *Registry {
	if o == nil {
		return nil
	}

	return o.registry
}

// Constructed reports whether the instance has been constructed. A struct
// embedding a nil *Object never is.
func (o *Object) Constructed() bool {
	return o != nil && o.registry != nil
}

// Get returns the value of field name unchanged. It fails with ErrUnset when
// the field was never assigned, including collection fields left unbound.
func (o *Object) Get(name string) (any, error) {
	if !o.Constructed() {
		return nil, errors.Wrapf(ErrNotConstructed, "get %q", name)
	}

	v, ok := o.values[name]
	if !ok {
		return nil, errors.WithDetailf(ErrUnset, "%s.%s", o.typ.name, name)
	}

	return v, nil
}

// Collection returns the relationship collection bound to field name.
func (o *Object) Collection(name string) (*Collection, error) {
	v, err := o.Get(name)
	if err != nil {
		return nil, err
	}

	c, ok := v.(*Collection)
	if !ok {
		return nil, errors.WithDetailf(ErrNotCollection, "%s.%s", o.typ.name, name)
	}

	return c, nil
}

// MustCollection is like Collection but panics on error. Use it in typed
// accessors of fields the type is known to bind.
func (o *Object) MustCollection(name string) *Collection {
	c, err := o.Collection(name)
	if err != nil {
		panic(err)
	}

	return c
}

// Fields returns the names of the fields holding a value, sorted.
func (o *Object) Fields() []string {
	if o == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(o.values))
}

func (o *Object) String() string {
	if o == nil || o.typ == nil {
		return "<unconstructed>"
	}

	return fmt.Sprintf("%s#%s", o.typ.name, o.id.String()[:8])
}

// Value returns field name of inst as a T. A field holding nil yields the zero T.
func Value[T any](inst Instance, name string) (T, error) {
	var zero T

	v, err := inst.connectedObject().Get(name)
	if err != nil {
		return zero, err
	}

	if v == nil {
		return zero, nil
	}

	out, ok := v.(T)
	if !ok {
		return zero, errors.Newf("field %q holds %T, not %T", name, v, zero)
	}

	return out, nil
}

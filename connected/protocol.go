package connected

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"connected-collections/orderedset"
)

// Set assigns value to field name and keeps the relationship collections of
// the referenced instances in sync:
//
//  1. relationship collection fields cannot be assigned (*ImmutableFieldError);
//  2. the instance leaves the collections matched through the previous value;
//  3. it joins the collections matched through value;
//  4. value is stored.
//
// value may be an instance, nil, or an iterable of instances (slice, array,
// map keys, *Collection, anything with Members() []Instance). Other values
// are stored without relationship side effects. Map keys are attached in
// map iteration order, which is unspecified; use a slice or an
// *orderedset.Set when the attach order matters.
//
// An attach failure is returned as is: the value is not stored and the
// changes already made are kept.
func (o *Object) Set(name string, value any) error {
	if !o.Constructed() {
		return errors.Wrapf(ErrNotConstructed, "set %q", name)
	}

	if _, ok := o.schema.Field(name); ok {
		return errors.WithStack(&ImmutableFieldError{Type: o.typ.name, Field: name})
	}

	if err := o.detachField(name); err != nil {
		return err
	}

	ids := candidates(o.typ.ancestors, name)
	for _, target := range elements(value) {
		if err := o.attach(target, name, ids); err != nil {
			return err
		}
	}

	o.values[name] = value

	return nil
}

// Unset removes the value of field name, leaving every collection it
// was matched into. It fails with ErrUnset when there is no value.
func (o *Object) Unset(name string) error {
	if !o.Constructed() {
		return errors.Wrapf(ErrNotConstructed, "unset %q", name)
	}

	if _, ok := o.schema.Field(name); ok {
		return errors.WithStack(&ImmutableFieldError{Type: o.typ.name, Field: name})
	}

	if _, ok := o.values[name]; !ok {
		return errors.WithDetailf(ErrUnset, "%s.%s", o.typ.name, name)
	}

	if err := o.detachField(name); err != nil {
		return err
	}

	delete(o.values, name)

	return nil
}

func (o *Object) detachField(name string) error {
	old, err := o.Get(name)
	if errors.Is(err, ErrUnset) {
		return nil
	}

	if err != nil {
		return err
	}

	ids := candidates(o.typ.ancestors, name)
	for _, target := range elements(old) {
		o.detach(target, name, ids)
	}

	return nil
}

func (o *Object) detach(target Instance, field string, ids []Identity) {
	t := target.connectedObject()
	if t == nil || t.registry == nil || t.typ.universe != o.typ.universe {
		return
	}

	c, ok := t.registry.find(ids)
	if !ok || !c.members.Discard(o.self) {
		return
	}

	o.typ.universe.log.Debug("detached",
		zap.Stringer("member", o),
		zap.String("field", field),
		zap.Stringer("target", t),
		zap.Stringer("identity", c.identity))
	o.typ.universe.notify(Event{Op: OpDetach, Member: o.self, Target: target, Identity: c.identity, Field: field})
}

func (o *Object) attach(target Instance, field string, ids []Identity) error {
	t := target.connectedObject()
	if t == nil || t.registry == nil {
		return nil
	}

	if t.typ.universe != o.typ.universe {
		return errors.WithDetailf(ErrForeignUniverse, "%s.%s references %s", o.typ.name, field, t)
	}

	c, ok := t.registry.find(ids)
	if !ok || !c.members.Add(o.self) {
		return nil
	}

	o.typ.universe.log.Debug("attached",
		zap.Stringer("member", o),
		zap.String("field", field),
		zap.Stringer("target", t),
		zap.Stringer("identity", c.identity))
	o.typ.universe.notify(Event{Op: OpAttach, Member: o.self, Target: target, Identity: c.identity, Field: field})

	return nil
}

type membersLister interface {
	Members() []Instance
}

// elements expands a field value into the instances it references.
func elements(v any) []Instance {
	switch x := v.(type) {
	case nil:
		return nil
	case *orderedset.Set[Instance]:
		return x.Values()
	case membersLister:
		if isNilPointer(reflect.ValueOf(x)) {
			return nil
		}

		return x.Members()
	}

	if inst, ok := asInstance(reflect.ValueOf(v)); ok {
		return []Instance{inst}
	}

	rv := reflect.ValueOf(v)

	var out []Instance

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			if inst, ok := asInstance(rv.Index(i)); ok {
				out = append(out, inst)
			}
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if inst, ok := asInstance(iter.Key()); ok {
				out = append(out, inst)
			}
		}
	}

	return out
}

func asInstance(rv reflect.Value) (Instance, bool) {
	if !rv.IsValid() || isNilPointer(rv) || !rv.CanInterface() {
		return nil, false
	}

	inst, ok := rv.Interface().(Instance)

	return inst, ok
}

func isNilPointer(rv reflect.Value) bool {
	for rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}

		rv = rv.Elem()
	}

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

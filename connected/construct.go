package connected

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Construct makes inst an instance of t:
//
//  1. the schema of t is resolved (a *ConfigurationError stops here);
//  2. the registry is created and the instance gets its id;
//  3. for each type of the linearization, least specific first, its Init
//     runs and then an empty collection is bound to every connected field
//     it declares whose identity is not bound yet.
//
// An Init therefore sees the collections of every less specific type. An
// Init error is returned wrapped; the instance keeps its registry and
// cannot be constructed again.
func (t *Type) Construct(inst Instance) error {
	if inst == nil || isNilPointer(reflect.ValueOf(inst)) {
		return errors.Wrapf(ErrNotConstructed, "construct %s: nil instance", t.name)
	}

	if t.goType != nil && reflect.TypeOf(inst) != reflect.PointerTo(t.goType) {
		return errors.Newf("construct %s: expected *%s, got %T", t.name, t.goType, inst)
	}

	o := inst.connectedObject()
	if o == nil {
		return errors.Wrapf(ErrNotConstructed, "construct %s: %T embeds a nil *Object", t.name, inst)
	}

	if o.registry != nil {
		return errors.Wrapf(ErrAlreadyConstructed, "construct %s: instance of %s", t.name, o.typ.name)
	}

	schema, err := t.Schema()
	if err != nil {
		return err
	}

	o.registry = newRegistry()
	o.values = make(map[string]any)
	o.typ = t
	o.schema = schema
	o.self = inst
	o.id = uuid.New()

	for i := len(t.ancestors) - 1; i >= 0; i-- {
		a := t.ancestors[i]
		if a.init != nil {
			if err := a.init(inst); err != nil {
				return errors.Wrapf(err, "construct %s: init of %s", t.name, a.name)
			}
		}

		for _, f := range schema.declaredBy(a) {
			id := f.Identity()
			if _, ok := o.registry.Lookup(id); ok {
				continue
			}

			o.values[f.Name] = o.registry.bind(id, f.Name, inst)
		}
	}

	t.universe.log.Debug("instance constructed",
		zap.Stringer("instance", o),
		zap.Int("collections", o.registry.Len()))

	return nil
}

// MustConstruct is like Construct but panics on error.
func (t *Type) MustConstruct(inst Instance) {
	if err := t.Construct(inst); err != nil {
		panic(err)
	}
}

// New allocates a T and constructs it as an instance of t.
func New[T any, P interface {
	*T
	Instance
}](t *Type) (P, error) {
	p := P(new(T))
	if err := t.Construct(p); err != nil {
		return nil, err
	}

	return p, nil
}

package connected

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
)

// TypeBuilder collects a type declaration until Register is called.
type TypeBuilder struct {
	u      *Universe
	name   string
	bases  []*Type
	decls  []Declaration
	init   func(Instance) error
	goType reflect.Type
	errs   []error
}

// Declare starts the declaration of a connected type named name.
// The name should be fully qualified, e.g. "garage.Car".
func (u *Universe) Declare(name string) *TypeBuilder {
	return &TypeBuilder{u: u, name: name}
}

// Extends appends direct bases. Their order decides the linearization.
func (b *TypeBuilder) Extends(bases ...*Type) *TypeBuilder {
	b.bases = append(b.bases, bases...)
	return b
}

// Collection declares a read-only relationship collection field holding
// every instance of elem that references the owner. The optional qualifier
// restricts membership to instances referencing the owner through the field
// of that name.
func (b *TypeBuilder) Collection(field string, elem ElementRef, qualifier ...string) *TypeBuilder {
	d := Declaration{Field: field, Elem: elem}

	switch len(qualifier) {
	case 0:
	case 1:
		d.Qualifier = qualifier[0]
	default:
		b.errs = append(b.errs, configError(b.name, field,
			errors.WithDetailf(ErrInvalidDeclaration, "at most one qualifier, got %d", len(qualifier)), ""))
	}

	b.decls = append(b.decls, d)

	return b
}

// Init sets the construction logic of the type. It runs after the
// construction logic of every ancestor and before collections are bound.
func (b *TypeBuilder) Init(fn func(Instance) error) *TypeBuilder {
	b.init = fn
	return b
}

// Bind associates a Go struct type embedding Object with the type, so that
// GoType references resolve to it and construction checks the instance type.
func (b *TypeBuilder) Bind(goType reflect.Type) *TypeBuilder {
	for goType != nil && goType.Kind() == reflect.Pointer {
		goType = goType.Elem()
	}

	b.goType = goType

	return b
}

// Register validates the declaration and adds the type to the universe.
//
// Malformed declarations fail with a *ConfigurationError and nothing is
// registered. Otherwise the schema is resolved right away; when that fails
// (for instance on a forward reference) the registered type is returned
// together with the *ConfigurationError, and resolution is retried on every
// later Schema call or construction.
func (b *TypeBuilder) Register() (*Type, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	t := &Type{
		universe: b.u,
		name:     b.name,
		bases:    b.bases,
		decls:    b.decls,
		init:     b.init,
		goType:   b.goType,
	}

	ancestors, err := linearize(t)
	if err != nil {
		return nil, configError(b.name, "", err, "reorder the bases so that every type comes before its own bases")
	}

	t.ancestors = ancestors

	if err := b.u.register(t); err != nil {
		return nil, err
	}

	if _, err := t.Schema(); err != nil {
		return t, err
	}

	return t, nil
}

// MustRegister is like Register but panics on any error.
func (b *TypeBuilder) MustRegister() *Type {
	t, err := b.Register()
	if err != nil {
		panic(err)
	}

	return t
}

func (b *TypeBuilder) validate() error {
	if len(b.errs) > 0 {
		return b.errs[0]
	}

	if strings.TrimSpace(b.name) == "" {
		return configError(b.name, "", errors.WithDetail(ErrInvalidDeclaration, "empty type name"), "")
	}

	seenBases := make(map[*Type]struct{}, len(b.bases))
	for _, base := range b.bases {
		if base == nil {
			return configError(b.name, "", errors.WithDetail(ErrInvalidDeclaration, "nil base"), "")
		}

		if base.universe != b.u {
			return configError(b.name, "", errors.WithDetailf(ErrInvalidDeclaration,
				"base %s belongs to another universe", base.name), "")
		}

		if _, ok := seenBases[base]; ok {
			return configError(b.name, "", errors.WithDetailf(ErrInconsistentHierarchy,
				"duplicate base %s", base.name), "")
		}

		seenBases[base] = struct{}{}
	}

	seenFields := make(map[string]struct{}, len(b.decls))
	for _, d := range b.decls {
		if strings.TrimSpace(d.Field) == "" {
			return configError(b.name, d.Field, errors.WithDetail(ErrInvalidDeclaration, "empty field name"), "")
		}

		if d.Elem == nil {
			return configError(b.name, d.Field, errors.WithDetail(ErrInvalidDeclaration, "missing element type"),
				"use connected.Any for a collection of any type")
		}

		if _, ok := seenFields[d.Field]; ok {
			return configError(b.name, d.Field, errors.WithDetail(ErrInvalidDeclaration, "field declared twice"), "")
		}

		seenFields[d.Field] = struct{}{}
	}

	if b.goType != nil && !reflect.PointerTo(b.goType).Implements(instanceType) {
		return configError(b.name, "", errors.WithDetailf(ErrInvalidDeclaration,
			"Go type %s does not embed connected.Object", b.goType), "")
	}

	return nil
}

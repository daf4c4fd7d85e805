package connected

import (
	"reflect"
	"slices"
)

// Type is a connected type: a named participant of relationship maintenance,
// registered once in a Universe.
type Type struct {
	universe  *Universe
	name      string
	bases     []*Type
	decls     []Declaration
	init      func(Instance) error
	goType    reflect.Type
	ancestors []*Type
}

// Declaration is a relationship collection field as written in a type declaration.
type Declaration struct {
	Field     string
	Elem      ElementRef
	Qualifier string
}

// Name returns the fully-qualified type name.
func (t *Type) Name() string {
	return t.name
}

func (t *Type) String() string {
	return t.name
}

// Universe returns the universe the type is registered in.
func (t *Type) Universe() *Universe {
	return t.universe
}

// Bases returns the direct bases in declaration order.
func (t *Type) Bases() []*Type {
	return slices.Clone(t.bases)
}

// Ancestors returns the linearization of the type, most specific first,
// starting with t itself.
func (t *Type) Ancestors() []*Type {
	return slices.Clone(t.ancestors)
}

// Declarations returns the collection fields declared by t itself.
func (t *Type) Declarations() []Declaration {
	return slices.Clone(t.decls)
}

// GoType returns the Go type bound to t, or nil.
func (t *Type) GoType() reflect.Type {
	return t.goType
}

// IsA reports whether other appears in the linearization of t.
func (t *Type) IsA(other *Type) bool {
	return slices.Contains(t.ancestors, other)
}

// Schema returns the resolved relationship schema of t. A failed resolution
// is retried on every call until it succeeds; success is cached.
func (t *Type) Schema() (*Schema, error) {
	return t.universe.resolve(t)
}

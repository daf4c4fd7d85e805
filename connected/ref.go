package connected

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

// ElementRef names the element type of a relationship collection field.
// It is one of Any, a *Type, Named or GoType.
type ElementRef interface {
	resolveElement(u *Universe) (*Type, ElementKind, error)
	String() string
}

// Any is the universal top type.
var Any ElementRef = anyRef{}

type anyRef struct{}

func (anyRef) resolveElement(*Universe) (*Type, ElementKind, error) {
	return nil, ElementAny, nil
}

func (anyRef) String() string { return "any" }

// Named refers to a connected type by its fully-qualified name. The name is
// looked up when the schema is resolved; a name that is not registered by
// then is a forward reference and makes resolution fail.
func Named(name string) ElementRef {
	if name == "any" {
		return Any
	}

	return namedRef(name)
}

type namedRef string

func (n namedRef) resolveElement(u *Universe) (*Type, ElementKind, error) {
	if t := u.Lookup(string(n)); t != nil {
		return t, ElementConnected, nil
	}

	return nil, 0, errors.WithDetailf(ErrForwardReference, "%q is not registered", string(n))
}

func (n namedRef) String() string { return string(n) }

// GoType refers to a connected type through the Go type bound to it with
// TypeBuilder.Bind. Pointer types are dereferenced.
func GoType(t reflect.Type) ElementRef {
	return goTypeRef{t: t}
}

type goTypeRef struct {
	t reflect.Type
}

func (g goTypeRef) resolveElement(u *Universe) (*Type, ElementKind, error) {
	if g.t == nil {
		return nil, 0, errors.WithDetail(ErrNotConnected, "nil Go type")
	}

	base := g.t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	if base.Kind() == reflect.Interface && base.NumMethod() == 0 {
		return nil, ElementAny, nil
	}

	if t := u.LookupGoType(base); t != nil {
		return t, ElementConnected, nil
	}

	// A struct embedding Object is meant to be connected but was not bound yet.
	if reflect.PointerTo(base).Implements(instanceType) {
		return nil, 0, errors.WithDetailf(ErrForwardReference, "Go type %s is not bound to a connected type", base)
	}

	return nil, 0, errors.WithDetailf(ErrNotConnected, "Go type %s", base)
}

func (g goTypeRef) String() string {
	if g.t == nil {
		return "<nil>"
	}

	return g.t.String()
}

func (t *Type) resolveElement(u *Universe) (*Type, ElementKind, error) {
	if t == nil {
		return nil, 0, errors.WithDetail(ErrNotConnected, "nil type")
	}

	if t.universe != u {
		return nil, 0, errors.WithDetailf(ErrNotConnected, "%s is registered in another universe", t.name)
	}

	return t, ElementConnected, nil
}

var instanceType = reflect.TypeFor[Instance]()

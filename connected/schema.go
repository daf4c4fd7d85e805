package connected

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// RelationshipField is a resolved relationship collection field.
type RelationshipField struct {
	Name      string
	Owner     *Type // type that declared the field
	Elem      *Type // nil when Kind is ElementAny
	Kind      ElementKind
	Qualifier string
}

// Connected reports whether the element type is a connected type, i.e.
// whether instances get a collection bound for this field.
func (f RelationshipField) Connected() bool {
	return f.Kind == ElementConnected
}

// Identity returns the relationship slot the field is bound to.
func (f RelationshipField) Identity() Identity {
	if f.Elem == nil {
		return Identity{Type: Any.String(), Qualifier: f.Qualifier}
	}

	return Identity{Type: f.Elem.name, Qualifier: f.Qualifier}
}

// Schema is the ordered list of relationship fields of a type, including
// the ones inherited from its ancestors.
type Schema struct {
	typ    *Type
	fields []RelationshipField
	byName map[string]int
}

// Type returns the type the schema was resolved for.
func (s *Schema) Type() *Type {
	return s.typ
}

// Fields returns the fields, least specific declarations first.
func (s *Schema) Fields() []RelationshipField {
	return slices.Clone(s.fields)
}

// Field returns the field called name.
func (s *Schema) Field(name string) (RelationshipField, bool) {
	i, ok := s.byName[name]
	if !ok {
		return RelationshipField{}, false
	}

	return s.fields[i], true
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Identities returns the distinct identities of the connected fields, in the
// order construction claims them.
func (s *Schema) Identities() []Identity {
	var out []Identity

	for _, f := range s.bindOrder() {
		if id := f.Identity(); !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	return out
}

// Bound reports whether f is the field that receives the collection of its
// identity. A field whose identity an earlier binding claimed stays unset.
func (s *Schema) Bound(name string) bool {
	f, ok := s.Field(name)
	if !ok || !f.Connected() {
		return false
	}

	id := f.Identity()
	for _, g := range s.bindOrder() {
		if g.Identity() == id {
			return g.Name == name
		}
	}

	return false
}

// declaredBy returns the connected fields whose current declaration belongs
// to owner, in schema order.
func (s *Schema) declaredBy(owner *Type) []RelationshipField {
	var out []RelationshipField

	for _, f := range s.fields {
		if f.Owner == owner && f.Connected() {
			out = append(out, f)
		}
	}

	return out
}

// bindOrder lists the connected fields in the order construction binds
// them: grouped by declaring type, least specific first.
func (s *Schema) bindOrder() []RelationshipField {
	out := make([]RelationshipField, 0, len(s.fields))
	for i := len(s.typ.ancestors) - 1; i >= 0; i-- {
		out = append(out, s.declaredBy(s.typ.ancestors[i])...)
	}

	return out
}

// buildSchema walks the linearization of t from the least specific ancestor
// to t itself. A name declared again by a more specific type keeps its
// position and takes the newer declaration.
func buildSchema(u *Universe, t *Type) (*Schema, error) {
	s := &Schema{typ: t, byName: make(map[string]int)}

	for i := len(t.ancestors) - 1; i >= 0; i-- {
		owner := t.ancestors[i]

		for _, d := range owner.decls {
			elem, kind, err := d.Elem.resolveElement(u)
			if err != nil {
				hint := ""
				if errors.Is(err, ErrForwardReference) {
					hint = "register " + d.Elem.String() + " before " + owner.name +
						", or declare the collection on the type registered last"
				}

				if owner != t {
					err = errors.WithDetailf(err, "inherited by %s", t.name)
				}

				return nil, configError(owner.name, d.Field, err, hint)
			}

			f := RelationshipField{
				Name:      d.Field,
				Owner:     owner,
				Elem:      elem,
				Kind:      kind,
				Qualifier: d.Qualifier,
			}

			if k, ok := s.byName[f.Name]; ok {
				s.fields[k] = f
				continue
			}

			s.byName[f.Name] = len(s.fields)
			s.fields = append(s.fields, f)
		}
	}

	return s, nil
}

package connected

// Identity names one relationship slot: the fully-qualified name of the
// member type, optionally qualified with the name of the member's field
// that points at the owner.
type Identity struct {
	Type      string
	Qualifier string
}

// String renders the identity as Type or Type:Qualifier.
func (id Identity) String() string {
	if id.Qualifier == "" {
		return id.Type
	}

	return id.Type + ":" + id.Qualifier
}

// Qualified reports whether the identity carries a qualifier.
func (id Identity) Qualified() bool {
	return id.Qualifier != ""
}

// candidates returns the identities tried for a write to field on an
// instance whose linearization is ancestors: qualified before unqualified,
// most specific type first.
func candidates(ancestors []*Type, field string) []Identity {
	out := make([]Identity, 0, 2*len(ancestors))
	for _, t := range ancestors {
		out = append(out,
			Identity{Type: t.name, Qualifier: field},
			Identity{Type: t.name},
		)
	}

	return out
}

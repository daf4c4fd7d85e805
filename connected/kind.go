package connected

//go:generate go tool stringer -type=ElementKind,Op -output=kind_string.go

// ElementKind classifies the element type of a relationship field once resolved.
type ElementKind int

const (
	_ ElementKind = iota // zero value marks an unresolved element

	// ElementAny is the universal top type. Such fields are declared and
	// read-only, but no collection is bound for them.
	ElementAny
	// ElementConnected is a registered connected type; a collection is bound.
	ElementConnected
)

// Op is the kind of change reported to an Observer.
type Op int

const (
	_ Op = iota

	OpAttach
	OpDetach
)

package connected

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors. Use errors.Is to test for them; ConfigurationError and
// ImmutableFieldError wrap or match them.
var (
	// ErrForwardReference reports an element type that names a type not (yet) registered.
	ErrForwardReference = errors.New("forward references are not supported as collection element types")
	// ErrNotConnected reports an element type that is neither Any nor a registered connected type.
	ErrNotConnected = errors.New("element type is not a connected type")
	// ErrInvalidDeclaration reports a malformed type declaration.
	ErrInvalidDeclaration = errors.New("invalid type declaration")
	// ErrDuplicateType reports a second registration of the same type name.
	ErrDuplicateType = errors.New("type is already registered")
	// ErrInconsistentHierarchy reports bases that admit no linearization.
	ErrInconsistentHierarchy = errors.New("inconsistent type hierarchy")
	// ErrImmutableField reports a write to a relationship collection field.
	ErrImmutableField = errors.New("relationship collection fields are read-only")
	// ErrUnset is returned when reading a field that was never assigned.
	ErrUnset = errors.New("field is not set")
	// ErrNotConstructed reports use of an instance that has not been constructed.
	ErrNotConstructed = errors.New("instance is not constructed")
	// ErrAlreadyConstructed reports a second construction of the same instance.
	ErrAlreadyConstructed = errors.New("instance is already constructed")
	// ErrForeignUniverse reports a reference across two universes.
	ErrForeignUniverse = errors.New("instance belongs to another universe")
	// ErrNotCollection reports a collection lookup on a field that is not a bound collection.
	ErrNotCollection = errors.New("field is not a bound relationship collection")
)

// ConfigurationError is a defect in a type declaration or its schema.
// It is never recovered automatically.
type ConfigurationError struct {
	Type  string // offending type
	Field string // offending field, empty for type-level problems
	Err   error  // one of the sentinel errors above, possibly wrapped
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("connected type %s: %v", e.Type, e.Err)
	}

	return fmt.Sprintf("connected type %s has invalid field %q: %v", e.Type, e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ImmutableFieldError is returned for any direct write to a relationship collection field.
type ImmutableFieldError struct {
	Type  string
	Field string
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("%s is doing an invalid operation on %q: relationship collections are populated automatically and cannot be assigned",
		e.Type, e.Field)
}

// Is makes errors.Is(err, ErrImmutableField) hold.
func (e *ImmutableFieldError) Is(target error) bool {
	return target == ErrImmutableField
}

func configError(typ, field string, err error, hint string) error {
	var out error = &ConfigurationError{Type: typ, Field: field, Err: err}
	if hint != "" {
		out = errors.WithHint(out, hint)
	}

	return errors.WithStack(out)
}

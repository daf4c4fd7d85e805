package diagnostic

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"connected-collections/internal/common"
)

// Diagnostics holds the diagnostics of one check, by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single message.
type Diagnostic struct {
	Severity Severity `yaml:"severity"`
	// Code identifies the kind of problem, e.g. "duplicate_type".
	Code    string `yaml:"code"`
	Message string `yaml:"message"`
	// TypeName is the connected type the diagnostic is about, if any.
	TypeName string `yaml:"type,omitempty"`
	// Field is the collection field the diagnostic is about, if any.
	Field       string   `yaml:"field,omitempty"`
	Suggestions []string `yaml:"suggestions,omitempty"`
}

// Severity of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML renders the severity by name.
func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

// AddError adds an error diagnostic and returns it for further decoration.
func (d *Diagnostics) AddError(code, message, typeName, field string) *Diagnostic {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		TypeName: typeName,
		Field:    field,
	})

	return &d.Errors[len(d.Errors)-1]
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, field string) *Diagnostic {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		TypeName: typeName,
		Field:    field,
	})

	return &d.Warnings[len(d.Warnings)-1]
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, field string) *Diagnostic {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		TypeName: typeName,
		Field:    field,
	})

	return &d.Infos[len(d.Infos)-1]
}

// Suggest appends suggestions to the diagnostic.
func (d *Diagnostic) Suggest(s ...string) *Diagnostic {
	d.Suggestions = append(d.Suggestions, s...)
	return d
}

// HasErrors reports whether any error was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid reports whether no error was recorded.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Merge appends the diagnostics of other.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Error returns the error diagnostics joined into one error, or nil.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.Newf("%d declaration error(s): %s", len(d.Errors), strings.Join(parts, "; "))
}

// String formats the diagnostic as "[Type] field: [code] message".
func (d Diagnostic) String() string {
	var prefix []string
	if d.TypeName != "" {
		prefix = append(prefix, "["+d.TypeName+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

package declare

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"connected-collections/connected"
	"connected-collections/internal/diagnostic"
)

// Result lists the types Apply registered, in registration order.
type Result struct {
	Universe *connected.Universe
	Types    []*connected.Type
}

// Apply registers the types of doc in u, bases first. Types whose schema
// fails on a forward reference are resolved again once every type is
// registered. A type still failing is reported as an error; a type resolved
// on the second attempt gets an info diagnostic.
//
// Apply stops before registering anything when doc does not validate.
func Apply(doc *Document, u *connected.Universe) (*Result, *diagnostic.Diagnostics) {
	diags := validate(doc, u)
	if diags.HasErrors() {
		return nil, diags
	}

	order, err := inheritanceOrder(doc)
	if err != nil {
		diags.AddError("inheritance_cycle", err.Error(), "", "")
		return nil, diags
	}

	res := &Result{Universe: u}

	var pending []*connected.Type

	for _, i := range order {
		td := &doc.Types[i]

		b, ok := builder(td, u, diags)
		if !ok {
			continue
		}

		t, err := b.Register()

		switch {
		case err == nil:
			res.Types = append(res.Types, t)
		case t != nil && errors.Is(err, connected.ErrForwardReference):
			res.Types = append(res.Types, t)
			pending = append(pending, t)
		case t != nil:
			res.Types = append(res.Types, t)
			addError(diags, td.Name, err)
		default:
			addError(diags, td.Name, err)
		}
	}

	for _, t := range pending {
		if _, err := t.Schema(); err != nil {
			addError(diags, t.Name(), err)
			continue
		}

		diags.AddInfo("resolved_on_retry", "resolved after every type was registered", t.Name(), "")
	}

	for _, t := range res.Types {
		reportUnbound(t, diags)
	}

	return res, diags
}

func builder(td *TypeDecl, u *connected.Universe, diags *diagnostic.Diagnostics) (*connected.TypeBuilder, bool) {
	b := u.Declare(td.Name)

	for _, name := range td.Extends {
		base := u.Lookup(name)
		if base == nil {
			diags.AddError("base_not_registered", fmt.Sprintf("base %s could not be registered", name), td.Name, "")
			return nil, false
		}

		b.Extends(base)
	}

	for _, c := range td.Collections {
		b.Collection(c.Field, connected.Named(c.Of), c.Qualifier)
	}

	return b, true
}

// reportUnbound warns about fields that share their identity with an earlier
// field of the same schema: instances leave them unset.
func reportUnbound(t *connected.Type, diags *diagnostic.Diagnostics) {
	s, err := t.Schema()
	if err != nil {
		return
	}

	for _, f := range s.Fields() {
		if !f.Connected() || s.Bound(f.Name) || f.Owner != t {
			continue
		}

		diags.AddWarning("unbound_field",
			fmt.Sprintf("identity %s is already claimed by an earlier field; the field stays unset", f.Identity()),
			t.Name(), f.Name)
	}
}

func addError(diags *diagnostic.Diagnostics, typeName string, err error) {
	field := ""
	msg := err.Error()

	var cfg *connected.ConfigurationError
	if errors.As(err, &cfg) {
		typeName = cfg.Type
		field = cfg.Field
		msg = cfg.Err.Error()
	}

	diags.AddError(errorCode(err), msg, typeName, field).Suggest(errors.GetAllHints(err)...)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, connected.ErrForwardReference):
		return "forward_reference"
	case errors.Is(err, connected.ErrDuplicateType):
		return "duplicate_type"
	case errors.Is(err, connected.ErrInconsistentHierarchy):
		return "inconsistent_hierarchy"
	case errors.Is(err, connected.ErrNotConnected):
		return "not_connected"
	default:
		return "invalid_declaration"
	}
}

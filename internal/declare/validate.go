package declare

import (
	"fmt"
	"strings"

	"connected-collections/connected"
	"connected-collections/internal/diagnostic"
	"connected-collections/internal/match"
)

// Validate checks a document on its own: every base and element type must
// be declared in the document.
func Validate(doc *Document) *diagnostic.Diagnostics {
	return validate(doc, nil)
}

// validate checks doc; names registered in u count as declared.
func validate(doc *Document, u *connected.Universe) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if doc == nil {
		res.AddError("document_is_nil", "declaration document is nil", "", "")
		return res
	}

	if doc.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q", doc.Version), "", "").
			Suggest(`use version "1"`)
	}

	known := func(name string) bool {
		if _, ok := doc.Lookup(name); ok {
			return true
		}

		return u != nil && u.Lookup(name) != nil
	}

	declared := declaredNames(doc, u)
	seenTypes := map[string]struct{}{}

	for i := range doc.Types {
		td := &doc.Types[i]

		if strings.TrimSpace(td.Name) == "" {
			res.AddError("empty_type_name", fmt.Sprintf("type #%d has no name", i+1), "", "")
			continue
		}

		if _, ok := seenTypes[td.Name]; ok {
			res.AddError("duplicate_type", "type is declared more than once", td.Name, "")
			continue
		}

		seenTypes[td.Name] = struct{}{}

		if u != nil && u.Lookup(td.Name) != nil {
			res.AddError("duplicate_type", "type is already registered", td.Name, "")
		}

		seenBases := map[string]struct{}{}

		for _, base := range td.Extends {
			if _, ok := seenBases[base]; ok {
				res.AddError("duplicate_base", fmt.Sprintf("base %s is listed twice", base), td.Name, "")
				continue
			}

			seenBases[base] = struct{}{}

			if !known(base) {
				res.AddError("unknown_base", fmt.Sprintf("base %s is not declared", base), td.Name, "").
					Suggest(didYouMean(base, declared)...).
					Suggest("declare " + base)
			}
		}

		seenFields := map[string]struct{}{}

		for _, c := range td.Collections {
			if strings.TrimSpace(c.Field) == "" {
				res.AddError("empty_field", "collection has no field name", td.Name, "")
				continue
			}

			if _, ok := seenFields[c.Field]; ok {
				res.AddError("duplicate_field", "field is declared more than once", td.Name, c.Field)
				continue
			}

			seenFields[c.Field] = struct{}{}

			if c.Of != AnyElement && !known(c.Of) {
				res.AddError("unknown_element", fmt.Sprintf("element type %s is not declared", c.Of), td.Name, c.Field).
					Suggest(didYouMean(c.Of, declared)...).
					Suggest("declare "+c.Of, "use "+AnyElement+" to accept any type")
			}
		}
	}

	validateCycles(doc, res)

	return res
}

func declaredNames(doc *Document, u *connected.Universe) []string {
	names := make([]string, 0, len(doc.Types))
	for _, td := range doc.Types {
		names = append(names, td.Name)
	}

	if u != nil {
		for _, t := range u.Types() {
			names = append(names, t.Name())
		}
	}

	return names
}

func didYouMean(name string, declared []string) []string {
	var out []string
	for _, c := range match.Closest(name, declared, 3) {
		out = append(out, "did you mean "+c+"?")
	}

	return out
}

func validateCycles(doc *Document, res *diagnostic.Diagnostics) {
	order, err := inheritanceOrder(doc)
	if err == nil {
		return
	}

	placed := make(map[int]struct{}, len(order))
	for _, i := range order {
		placed[i] = struct{}{}
	}

	for i, td := range doc.Types {
		if _, ok := placed[i]; !ok {
			res.AddError("inheritance_cycle", "type is part of an inheritance cycle or extends one", td.Name, "")
		}
	}
}

// inheritanceOrder orders the type indices of doc so that every type comes
// after the bases it declares in the same document.
func inheritanceOrder(doc *Document) ([]int, error) {
	index := make(map[string]int, len(doc.Types))
	for i, td := range doc.Types {
		if _, ok := index[td.Name]; !ok {
			index[td.Name] = i
		}
	}

	return topoSort(len(doc.Types), func(i int) []int {
		var deps []int

		for _, base := range doc.Types[i].Extends {
			if j, ok := index[base]; ok {
				deps = append(deps, j)
			}
		}

		return deps
	})
}

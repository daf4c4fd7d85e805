package connected

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// linearize computes the C3 linearization of t from the linearizations of
// its bases. The result starts with t and lists every ancestor once, each
// before its own bases, honouring the declared base order.
func linearize(t *Type) ([]*Type, error) {
	seqs := make([][]*Type, 0, len(t.bases)+1)
	for _, b := range t.bases {
		seqs = append(seqs, slices.Clone(b.ancestors))
	}

	seqs = append(seqs, slices.Clone(t.bases))

	out := []*Type{t}

	for {
		seqs = slices.DeleteFunc(seqs, func(s []*Type) bool { return len(s) == 0 })
		if len(seqs) == 0 {
			return out, nil
		}

		var head *Type

		for _, s := range seqs {
			if !inTail(s[0], seqs) {
				head = s[0]
				break
			}
		}

		if head == nil {
			return nil, errors.WithDetailf(ErrInconsistentHierarchy,
				"cannot order bases %s", names(t.bases))
		}

		out = append(out, head)

		for i, s := range seqs {
			if s[0] == head {
				seqs[i] = s[1:]
			}
		}
	}
}

func inTail(t *Type, seqs [][]*Type) bool {
	for _, s := range seqs {
		if slices.Contains(s[1:], t) {
			return true
		}
	}

	return false
}

func names(types []*Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.name
	}

	return strings.Join(parts, ", ")
}

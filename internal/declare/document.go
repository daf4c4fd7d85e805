package declare

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"connected-collections/internal/common"
)

// Document is a declaration file.
type Document struct {
	Version string     `yaml:"version"`
	Types   []TypeDecl `yaml:"types"`
}

// TypeDecl declares one connected type.
type TypeDecl struct {
	Name        string           `yaml:"name"`
	Extends     StringOrArray    `yaml:"extends,omitempty"`
	Collections []CollectionDecl `yaml:"collections,omitempty"`
}

// CollectionDecl declares one relationship collection field.
type CollectionDecl struct {
	Field string `yaml:"field"`
	// Of is the element type name; "any" (the default) leaves the field unbound.
	Of        string `yaml:"of,omitempty"`
	Qualifier string `yaml:"qualifier,omitempty"`
}

// AnyElement is the element type name of collections accepting anything.
const AnyElement = "any"

// StringOrArray is a list of strings that may be written as a single scalar.
type StringOrArray []string

// UnmarshalYAML accepts either a single string or a sequence of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		if str == "" {
			*s = StringOrArray{}
		} else {
			*s = StringOrArray{str}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return errors.Newf("line %d: expected string or list of strings", node.Line)
	}
}

// MarshalYAML writes a single element as a scalar.
func (s StringOrArray) MarshalYAML() (any, error) {
	if v, ok := common.First(s); ok && common.IsSingle(s) {
		return v, nil
	}

	return []string(s), nil
}

// Lookup returns the declaration of the type called name.
func (d *Document) Lookup(name string) (*TypeDecl, bool) {
	for i := range d.Types {
		if d.Types[i].Name == name {
			return &d.Types[i], true
		}
	}

	return nil, false
}

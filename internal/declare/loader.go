package declare

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the declaration file at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read declaration file %s", path)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	return doc, nil
}

// Parse parses a YAML declaration document.
func Parse(data []byte) (*Document, error) {
	var doc Document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parse declaration YAML")
	}

	applyDefaults(&doc)

	return &doc, nil
}

// applyDefaults fills in optional values.
func applyDefaults(doc *Document) {
	if doc.Version == "" {
		doc.Version = "1"
	}

	for i := range doc.Types {
		for j := range doc.Types[i].Collections {
			c := &doc.Types[i].Collections[j]
			if c.Of == "" {
				c.Of = AnyElement
			}
		}
	}
}

// Marshal serializes a document to YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// WriteFile writes a document to path.
func WriteFile(doc *Document, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshal declarations")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write declaration file %s", path)
	}

	return nil
}

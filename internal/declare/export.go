package declare

import "connected-collections/connected"

// Export describes every type registered in u as a document. Applying the
// document to an empty universe registers the same types.
func Export(u *connected.Universe) *Document {
	doc := &Document{Version: "1"}

	for _, t := range u.Types() {
		td := TypeDecl{Name: t.Name()}

		for _, base := range t.Bases() {
			td.Extends = append(td.Extends, base.Name())
		}

		schema, err := t.Schema()

		for _, d := range t.Declarations() {
			c := CollectionDecl{Field: d.Field, Of: d.Elem.String(), Qualifier: d.Qualifier}

			// GoType references are written by the name of the bound type.
			if err == nil {
				if f, ok := schema.Field(d.Field); ok {
					c.Of = f.Identity().Type
				}
			}

			td.Collections = append(td.Collections, c)
		}

		doc.Types = append(doc.Types, td)
	}

	return doc
}

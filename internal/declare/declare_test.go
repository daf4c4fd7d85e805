package declare

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connected-collections/connected"
	"connected-collections/internal/diagnostic"
)

func codes(ds []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code)
	}

	return out
}

func TestParse_Defaults(t *testing.T) {
	doc, err := Parse([]byte(`
types:
  - name: a.Owner
    extends: a.Base
    collections:
      - field: things
  - name: a.Base
    extends: []
`))
	require.NoError(t, err)

	assert.Equal(t, "1", doc.Version)
	require.Len(t, doc.Types, 2)
	assert.Equal(t, StringOrArray{"a.Base"}, doc.Types[0].Extends)
	assert.Equal(t, AnyElement, doc.Types[0].Collections[0].Of)
	assert.Empty(t, doc.Types[1].Extends)

	td, ok := doc.Lookup("a.Base")
	require.True(t, ok)
	assert.Equal(t, "a.Base", td.Name)

	_, ok = doc.Lookup("a.Missing")
	assert.False(t, ok)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("types: [\n"))
	require.Error(t, err)

	_, err = Parse([]byte("types:\n  - name: a.X\n    extends: {a: b}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3: expected string or list of strings")
}

func TestLoadFile(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "garage.yaml"))
	require.NoError(t, err)
	assert.Len(t, doc.Types, 6)

	_, err = LoadFile(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestValidate(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "broken.yaml"))
	require.NoError(t, err)

	res := Validate(doc)
	assert.Equal(t, []string{"unknown_base", "unknown_element", "duplicate_field", "duplicate_type"}, codes(res.Errors))

	assert.Equal(t, []string{"document_is_nil"}, codes(Validate(nil).Errors))
}

func TestValidate_Cases(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want []string
	}{
		{
			name: "valid",
			doc: Document{Version: "1", Types: []TypeDecl{
				{Name: "a.A", Collections: []CollectionDecl{{Field: "bs", Of: "a.B"}, {Field: "xs", Of: AnyElement}}},
				{Name: "a.B", Extends: StringOrArray{"a.A"}},
			}},
		},
		{
			name: "version",
			doc:  Document{Version: "2"},
			want: []string{"unsupported_version"},
		},
		{
			name: "empty names",
			doc: Document{Version: "1", Types: []TypeDecl{
				{Name: ""},
				{Name: "a.A", Collections: []CollectionDecl{{Field: " ", Of: AnyElement}}},
			}},
			want: []string{"empty_type_name", "empty_field"},
		},
		{
			name: "unknown element",
			doc: Document{Version: "1", Types: []TypeDecl{
				{Name: "a.A", Collections: []CollectionDecl{{Field: "bs", Of: "a.B"}}},
			}},
			want: []string{"unknown_element"},
		},
		{
			name: "duplicate base",
			doc: Document{Version: "1", Types: []TypeDecl{
				{Name: "a.A"},
				{Name: "a.B", Extends: StringOrArray{"a.A", "a.A"}},
			}},
			want: []string{"duplicate_base"},
		},
		{
			name: "cycle",
			doc: Document{Version: "1", Types: []TypeDecl{
				{Name: "a.A", Extends: StringOrArray{"a.B"}},
				{Name: "a.B", Extends: StringOrArray{"a.A"}},
				{Name: "a.C", Extends: StringOrArray{"a.A"}},
				{Name: "a.D"},
			}},
			want: []string{"inheritance_cycle", "inheritance_cycle", "inheritance_cycle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(&tt.doc)
			if tt.want == nil {
				assert.True(t, res.IsValid(), spew.Sdump(res.Errors))
				return
			}

			assert.Equal(t, tt.want, codes(res.Errors))
		})
	}
}

func TestApply_ResolvesForwardReferencesOnRetry(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "garage.yaml"))
	require.NoError(t, err)

	u := connected.NewUniverse()
	res, diags := Apply(doc, u)
	require.True(t, diags.IsValid(), diags.Error())
	require.NotNil(t, res)

	names := make([]string, 0, len(res.Types))
	for _, typ := range res.Types {
		names = append(names, typ.Name())
	}

	// every base before the types extending it
	assert.Equal(t, []string{
		"garage.Vehicle", "garage.Car", "garage.Part",
		"garage.Wheel", "garage.Bolt", "garage.Person",
	}, names)

	var retried []string
	for _, d := range diags.Infos {
		require.Equal(t, "resolved_on_retry", d.Code)
		retried = append(retried, d.TypeName)
	}

	assert.ElementsMatch(t, []string{"garage.Vehicle", "garage.Car"}, retried)

	car := u.Lookup("garage.Car")
	require.NotNil(t, car)

	s, err := car.Schema()
	require.NoError(t, err)

	var fields []string
	for _, f := range s.Fields() {
		fields = append(fields, f.Name+"="+f.Identity().String())
	}

	assert.Equal(t, []string{
		"passengers=garage.Person",
		"stickers=any",
		"wheels=garage.Wheel",
		"spares=garage.Wheel:spare",
		"parts=garage.Part",
	}, fields)
}

func TestApply_UsableInstances(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "garage.yaml"))
	require.NoError(t, err)

	u := connected.NewUniverse()
	_, diags := Apply(doc, u)
	require.True(t, diags.IsValid())

	type inst struct{ connected.Object }

	car, wheel, bolt := &inst{}, &inst{}, &inst{}
	u.Lookup("garage.Car").MustConstruct(car)
	u.Lookup("garage.Wheel").MustConstruct(wheel)
	u.Lookup("garage.Bolt").MustConstruct(bolt)

	require.NoError(t, wheel.Set("car", car))
	require.NoError(t, bolt.Set("car", car))

	assert.Equal(t, []connected.Instance{wheel}, car.MustCollection("wheels").Members())
	assert.Equal(t, []connected.Instance{bolt}, car.MustCollection("parts").Members())
}

func TestApply_InvalidDocumentRegistersNothing(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "broken.yaml"))
	require.NoError(t, err)

	u := connected.NewUniverse()
	res, diags := Apply(doc, u)
	assert.Nil(t, res)
	assert.True(t, diags.HasErrors())
	assert.Empty(t, u.Types())
}

func TestApply_UnresolvableElement(t *testing.T) {
	// a.C cannot be linearized, so a.D never finds its element type.
	doc := &Document{Version: "1", Types: []TypeDecl{
		{Name: "a.D", Collections: []CollectionDecl{{Field: "cs", Of: "a.C"}}},
		{Name: "a.A"},
		{Name: "a.B", Extends: StringOrArray{"a.A"}},
		{Name: "a.C", Extends: StringOrArray{"a.A", "a.B"}},
	}}

	u := connected.NewUniverse()
	res, diags := Apply(doc, u)
	require.NotNil(t, res)

	assert.Equal(t, []string{"inconsistent_hierarchy", "forward_reference"}, codes(diags.Errors))

	fwd := diags.Errors[1]
	assert.Equal(t, "a.D", fwd.TypeName)
	assert.Equal(t, "cs", fwd.Field)
	assert.NotEmpty(t, fwd.Suggestions)

	assert.Nil(t, u.Lookup("a.C"))
	assert.NotNil(t, u.Lookup("a.D"), "the declaration is registered even though its schema fails")
}

func TestApply_BaseFromUniverse(t *testing.T) {
	u := connected.NewUniverse()
	u.Declare("a.Base").MustRegister()

	doc := &Document{Version: "1", Types: []TypeDecl{{Name: "a.Child", Extends: StringOrArray{"a.Base"}}}}
	assert.True(t, Validate(doc).HasErrors(), "a.Base is not declared in the document")

	res, diags := Apply(doc, u)
	require.True(t, diags.IsValid())
	require.Len(t, res.Types, 1)
	assert.True(t, res.Types[0].IsA(u.Lookup("a.Base")))

	_, diags = Apply(doc, u)
	assert.Equal(t, []string{"duplicate_type"}, codes(diags.Errors))
}

func TestApply_WarnsAboutUnboundFields(t *testing.T) {
	doc := &Document{Version: "1", Types: []TypeDecl{
		{Name: "a.Item"},
		{Name: "a.Owner", Collections: []CollectionDecl{
			{Field: "items", Of: "a.Item"},
			{Field: "more", Of: "a.Item"},
		}},
	}}

	_, diags := Apply(doc, connected.NewUniverse())
	require.True(t, diags.IsValid())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "unbound_field", diags.Warnings[0].Code)
	assert.Equal(t, "more", diags.Warnings[0].Field)
}

func TestExport_RoundTrip(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "garage.yaml"))
	require.NoError(t, err)

	u := connected.NewUniverse()
	_, diags := Apply(doc, u)
	require.True(t, diags.IsValid())

	path := filepath.Join(t.TempDir(), "export.yaml")
	require.NoError(t, WriteFile(Export(u), path))

	again, err := LoadFile(path)
	require.NoError(t, err)

	u2 := connected.NewUniverse()
	_, diags = Apply(again, u2)
	require.True(t, diags.IsValid(), diags.Error())
	assert.Equal(t, Export(u), Export(u2))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "extends: garage.Vehicle\n")
	assert.Contains(t, string(data), "qualifier: spare\n")
}

func TestExport_GoTypeElements(t *testing.T) {
	type wheel struct{ connected.Object }

	u := connected.NewUniverse()
	u.Declare("g.Wheel").Bind(reflect.TypeFor[wheel]()).MustRegister()
	u.Declare("g.Car").Collection("wheels", connected.GoType(reflect.TypeFor[*wheel]())).MustRegister()

	doc := Export(u)
	require.Len(t, doc.Types, 2)
	assert.Equal(t, []CollectionDecl{{Field: "wheels", Of: "g.Wheel"}}, doc.Types[1].Collections)
}

func TestTopoSort(t *testing.T) {
	order, err := topoSort(4, func(i int) []int {
		switch i {
		case 0:
			return []int{2}
		case 1:
			return []int{0, 3}
		default:
			return nil
		}
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 3, 1}, order)

	_, err = topoSort(2, func(i int) []int { return []int{1 - i} })
	require.ErrorIs(t, err, errCycle)

	_, err = topoSort(1, func(int) []int { return []int{5} })
	require.Error(t, err)

	order, err = topoSort(0, nil)
	require.NoError(t, err)
	assert.Empty(t, order)
}

func TestValidate_SuggestsDeclaredNames(t *testing.T) {
	doc := &Document{Version: "1", Types: []TypeDecl{
		{Name: "garage.Wheel"},
		{Name: "garage.Car", Extends: StringOrArray{"garage.Vehicel"}, Collections: []CollectionDecl{
			{Field: "wheels", Of: "garage.Wheeel"},
		}},
		{Name: "garage.Vehicle"},
	}}

	res := Validate(doc)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, []string{"did you mean garage.Vehicle?", "declare garage.Vehicel"}, res.Errors[0].Suggestions)
	assert.Equal(t, "did you mean garage.Wheel?", res.Errors[1].Suggestions[0])
}

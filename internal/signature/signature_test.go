package signature

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nieomylnieja/numpydoc/internal/typeinfo"
	"github.com/nieomylnieja/numpydoc/pkg/typeexpr"
)

var humanizer = typeinfo.New()

func TestReconcile_DeclarationOrder(t *testing.T) {
	in := Input{
		Documented: []Doc{{"baz", "This is very baz."}, {"bar", "This is very bar."}},
		Params: []Param{
			{Name: "bar", Type: typeexpr.NewNamed("int")},
			{Name: "baz", Type: typeexpr.NewNamed("str")},
		},
	}
	result, err := Reconcile(in, humanizer)
	require.NoError(t, err)
	assert.Equal(t, []Slot{
		{Name: "bar", Type: "int", Text: "This is very bar."},
		{Name: "baz", Type: "str", Text: "This is very baz."},
	}, result.Parameters)
	assert.Empty(t, result.OtherParameters)
}

func TestReconcile_Completeness(t *testing.T) {
	params := []Param{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}
	all := []Doc{{"d", "D."}, {"c", "C."}, {"b", "B."}, {"a", "A."}}

	t.Run("all documented", func(t *testing.T) {
		result, err := Reconcile(Input{Documented: all, Params: params}, humanizer)
		require.NoError(t, err)
		names := make([]string, 0, len(result.Parameters))
		for _, slot := range result.Parameters {
			names = append(names, slot.Name)
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, names)
	})
	for i := range all {
		omitted := all[i].Name
		t.Run(fmt.Sprintf("omit %s", omitted), func(t *testing.T) {
			docs := make([]Doc, 0, len(all)-1)
			docs = append(docs, all[:i]...)
			docs = append(docs, all[i+1:]...)
			_, err := Reconcile(Input{Documented: docs, Params: params}, humanizer)
			var missing *MissingError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, omitted, missing.Name)
		})
	}
}

func TestReconcile_OtherParameters(t *testing.T) {
	in := Input{
		Documented: []Doc{{"x", "The X."}},
		Other:      []Doc{{"verbose", "Be loud."}},
		Params: []Param{
			{Name: "verbose", Kind: KeywordOnly, Type: typeexpr.NewNamed("bool"), HasDefault: true, Default: false},
			{Name: "x", Type: typeexpr.NewNamed("float")},
		},
	}
	result, err := Reconcile(in, humanizer)
	require.NoError(t, err)
	assert.Equal(t, []Slot{{Name: "x", Type: "float", Text: "The X."}}, result.Parameters)
	assert.Equal(t, []Slot{{
		Name:     "verbose",
		Kind:     KeywordOnly,
		Type:     "bool",
		Optional: "optional, default: False",
		Text:     "Be loud.",
	}}, result.OtherParameters)
}

func TestReconcile_Receiver(t *testing.T) {
	in := Input{
		Documented: []Doc{{"self", "Ignored."}, {"x", "The X."}},
		Params:     []Param{{Name: "self"}, {Name: "x"}},
		Receiver:   "self",
		Strict:     true,
	}
	result, err := Reconcile(in, humanizer)
	require.NoError(t, err)
	assert.Equal(t, []Slot{{Name: "x", Text: "The X."}}, result.Parameters)
}

func TestReconcile_InlineHint(t *testing.T) {
	in := Input{
		Documented: []Doc{{"a", ""}},
		Params: []Param{
			{Name: "a", Type: typeexpr.NewAnnotated(typeexpr.NewNamed("int"), "The A.")},
			{Name: "b", Type: typeexpr.NewOptional(typeexpr.NewAnnotated(typeexpr.NewNamed("str"), "The B.")),
				HasDefault: true},
		},
	}
	result, err := Reconcile(in, humanizer)
	require.NoError(t, err)
	assert.Equal(t, []Slot{
		{Name: "a", Type: "int", Text: "The A."},
		{Name: "b", Type: "str or None", Optional: "optional", Text: "The B."},
	}, result.Parameters)
}

func TestReconcile_Strict(t *testing.T) {
	params := []Param{{Name: "x"}}
	tests := map[string]struct {
		in          Input
		expectedErr *UnknownError
	}{
		"unknown parameter": {
			in:          Input{Documented: []Doc{{"x", "X."}, {"y", "Y."}}, Params: params, Strict: true},
			expectedErr: &UnknownError{Name: "y"},
		},
		"unknown other parameter": {
			in:          Input{Documented: []Doc{{"x", "X."}}, Other: []Doc{{"z", "Z."}}, Params: params, Strict: true},
			expectedErr: &UnknownError{Name: "z", Other: true},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Reconcile(tc.in, humanizer)
			var unknown *UnknownError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, tc.expectedErr, unknown)
		})
	}
	t.Run("superset accepted when lenient", func(t *testing.T) {
		in := Input{Documented: []Doc{{"x", "X."}, {"y", "Y."}}, Params: params}
		result, err := Reconcile(in, humanizer)
		require.NoError(t, err)
		assert.Len(t, result.Parameters, 1)
	})
}

func TestSlot_Header(t *testing.T) {
	tests := map[string]struct {
		param    Param
		expected string
	}{
		"untyped": {
			param:    Param{Name: "bar"},
			expected: "bar",
		},
		"typed": {
			param:    Param{Name: "bar", Type: typeexpr.NewNamed("int")},
			expected: "bar : int",
		},
		"typed with default": {
			param:    Param{Name: "ddof", Type: typeexpr.NewNamed("int"), HasDefault: true, Default: int64(0)},
			expected: "ddof : int, optional, default: 0",
		},
		"typed with string default": {
			param:    Param{Name: "lang", Type: typeexpr.NewNamed("str"), HasDefault: true, Default: "en"},
			expected: "lang : str, optional, default: 'en'",
		},
		"untyped with default": {
			param:    Param{Name: "n", HasDefault: true, Default: 1.5},
			expected: "n : optional, default=1.5",
		},
		"untyped with None default": {
			param:    Param{Name: "n", HasDefault: true},
			expected: "n : optional",
		},
		"nullable with None default": {
			param: Param{
				Name:       "axis",
				Type:       typeexpr.NewOptional(typeexpr.NewNamed("int")),
				HasDefault: true,
			},
			expected: "axis : int or None, optional",
		},
		"var positional": {
			param:    Param{Name: "args", Kind: VarPositional, Type: typeexpr.NewNamed("str")},
			expected: "*args",
		},
		"var keyword": {
			param:    Param{Name: "kwargs", Kind: VarKeyword},
			expected: "**kwargs",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, newSlot(tc.param, "", humanizer).Header())
		})
	}
}

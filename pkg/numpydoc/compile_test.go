package numpydoc

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nieomylnieja/numpydoc/internal/arity"
	"github.com/nieomylnieja/numpydoc/internal/signature"
	"github.com/nieomylnieja/numpydoc/pkg/typeexpr"
)

var (
	typeInt = typeexpr.NewNamed("int")
	typeStr = typeexpr.NewNamed("str")
)

func TestCompile_Basic(t *testing.T) {
	req := Request{
		Summary: "this is a function",
		Parameters: Entries{
			{Name: "bar", Text: "this is very bar"},
			{Name: "baz", Text: "this is very baz"},
		},
		Returns: Text("amazingly qux"),
	}
	sig := Signature{
		Name:       "foo",
		Parameters: []Parameter{{Name: "bar", Type: typeInt}, {Name: "baz", Type: typeStr}},
		Return:     typeexpr.NewNamed("float"),
	}

	actual, err := Compile(req, sig)
	require.NoError(t, err)
	assert.Equal(t, `This is a function.

Parameters
----------
bar : int
    This is very bar.
baz : str
    This is very baz.

Returns
-------
float
    Amazingly qux.
`, actual)
}

func TestCompile_Empty(t *testing.T) {
	actual, err := Compile(Request{}, Signature{})
	require.NoError(t, err)
	assert.Empty(t, actual)
}

func TestCompile_UnnamedUntypedReturns(t *testing.T) {
	actual, err := Compile(Request{
		Summary: "This is a function.",
		Returns: Text("amazingly qux"),
	}, Signature{})
	require.NoError(t, err)
	assert.Equal(t, "This is a function.\n\nReturns\n-------\nAmazingly qux.\n", actual)
}

// A single block of text documents a multi-value tuple as a whole.
func TestCompile_TextAgainstTuple(t *testing.T) {
	actual, err := Compile(Request{
		Summary: "This is a function.",
		Returns: Text("a pair"),
	}, Signature{Return: typeexpr.NewTuple(typeStr, typeInt)})
	require.NoError(t, err)
	assert.Equal(t, "This is a function.\n\nReturns\n-------\ntuple[str, int]\n    A pair.\n", actual)
}

func TestCompile_NonBreakingSpace(t *testing.T) {
	actual, err := Compile(Request{Summary: "the parcel weighs 10\u00a0000 kg"}, Signature{}, WithLineWidth(20))
	require.NoError(t, err)
	assert.Equal(t, "The parcel weighs\n10\u00a0000 kg.\n", actual)
}

func TestCompile_Determinism(t *testing.T) {
	req := Request{
		Summary:    "Say hello to someone.",
		Parameters: Entries{{Name: "name", Text: "The name."}, {Name: "language", Text: "The language."}},
		Returns:    Entries{{Name: "greeting", Text: "A greeting."}, {Name: "length", Text: "Its length."}},
		SeeAlso:    Entries{{Name: "print", Text: "Prints stuff."}, {Name: "format"}},
		References: Entries{{Name: "1", Text: "Some citation."}},
	}
	sig := Signature{
		Parameters: []Parameter{
			{Name: "name", Type: typeStr},
			{Name: "language", Type: typeexpr.NewLiteral("en", "fr"), HasDefault: true, Default: "en"},
		},
		Return: typeexpr.NewTuple(typeStr, typeInt),
	}
	expected, err := Compile(req, sig)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Go(func() {
			results[i], _ = Compile(req, sig)
		})
	}
	wg.Wait()
	for _, actual := range results {
		assert.Equal(t, expected, actual)
	}
}

func TestCompile_ParameterCompleteness(t *testing.T) {
	for k := 1; k <= 4; k++ {
		params := make([]Parameter, 0, k)
		docs := make(Entries, 0, k)
		for i := range k {
			name := fmt.Sprintf("p%d", i)
			params = append(params, Parameter{Name: name})
			// Documented in reverse order.
			docs = append(Entries{{Name: name, Text: "Documented."}}, docs...)
		}
		sig := Signature{Parameters: params}

		t.Run(fmt.Sprintf("all %d documented", k), func(t *testing.T) {
			actual, err := Compile(Request{Parameters: docs}, sig)
			require.NoError(t, err)
			lastIndex := -1
			for _, param := range params {
				index := strings.Index(actual, "\n"+param.Name+"\n")
				require.Greater(t, index, lastIndex, "parameter %s out of order", param.Name)
				lastIndex = index
			}
		})
		for i := range docs {
			omitted := append(append(Entries{}, docs[:i]...), docs[i+1:]...)
			t.Run(fmt.Sprintf("%d parameters without %s", k, docs[i].Name), func(t *testing.T) {
				_, err := Compile(Request{Parameters: omitted}, sig)
				require.ErrorIs(t, err, ErrMissingParameterDoc)
				var missing *signature.MissingError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, docs[i].Name, missing.Name)
			})
		}
	}
}

func TestCompile_ArityLaw(t *testing.T) {
	for a := 2; a <= 4; a++ {
		elems := make([]typeexpr.Expr, a)
		for i := range elems {
			elems[i] = typeInt
		}
		sig := Signature{Return: typeexpr.NewTuple(elems...)}
		for _, n := range []int{a - 1, a, a + 1} {
			returns := make(Entries, n)
			for i := range returns {
				returns[i] = Entry{Name: fmt.Sprintf("v%d", i), Text: "A value."}
			}
			t.Run(fmt.Sprintf("A=%d N=%d", a, n), func(t *testing.T) {
				_, err := Compile(Request{Returns: returns}, sig)
				if n == a {
					assert.NoError(t, err)
					return
				}
				require.ErrorIs(t, err, ErrArityMismatch)
				var mismatch *arity.MismatchError
				assert.True(t, errors.As(err, &mismatch))
			})
		}
	}
}

func TestCompile_GuardOrder(t *testing.T) {
	tests := map[string]struct {
		req         Request
		sig         Signature
		expectedErr error
	}{
		"invalid signature before conflicting sections": {
			req:         Request{Returns: Text("a"), Yields: Text("b")},
			sig:         Signature{Parameters: []Parameter{{Name: ""}}},
			expectedErr: ErrInvalidSignature,
		},
		"conflicting sections before invalid payload": {
			req:         Request{Returns: Text("a"), Yields: List{"b"}},
			expectedErr: ErrConflictingReturnYield,
		},
		"invalid payload before missing parameter": {
			req:         Request{SeeAlso: Auto{}},
			sig:         Signature{Parameters: []Parameter{{Name: "x"}}},
			expectedErr: ErrInvalidPayload,
		},
		"missing parameter before arity mismatch": {
			req:         Request{Returns: Entries{{Name: "a"}, {Name: "b"}}},
			sig:         Signature{Parameters: []Parameter{{Name: "x"}}, Return: typeInt},
			expectedErr: ErrMissingParameterDoc,
		},
		"incompatible return type before arity mismatch": {
			req:         Request{Yields: Entries{{Name: "a"}, {Name: "b"}}},
			sig:         Signature{Return: typeInt},
			expectedErr: ErrIncompatibleReturnType,
		},
		"list returns": {
			req:         Request{Returns: List{"a"}},
			expectedErr: ErrInvalidPayload,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			actual, err := Compile(tc.req, tc.sig)
			require.ErrorIs(t, err, tc.expectedErr)
			assert.Empty(t, actual)
			assert.ErrorIs(t, Check(tc.req, tc.sig), tc.expectedErr)
		})
	}
}

func TestCompile_ErrorMessages(t *testing.T) {
	t.Run("arity mismatch", func(t *testing.T) {
		_, err := Compile(
			Request{Returns: Entries{{Name: "spam"}, {Name: "eggs"}}},
			Signature{Return: typeexpr.NewVariadicTuple(typeStr)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "more values documented than declared types")
	})
	t.Run("unknown attributes", func(t *testing.T) {
		_, err := Compile(
			Request{Attributes: Entries{{Name: "A"}, {Name: "X"}, {Name: "Y"}}},
			Signature{Name: "MyEnum", Members: []Member{{Name: "A", Value: int64(1)}}})
		require.ErrorIs(t, err, ErrUnknownAttributeDoc)
		assert.Contains(t, err.Error(), "attributes to document for MyEnum aren't members: X, Y")
	})
	t.Run("conflicting return and yield", func(t *testing.T) {
		_, err := Compile(Request{Returns: Text("a"), Yields: Text("b")}, Signature{})
		assert.EqualError(t, err, "cannot have both returns and yields")
	})
}

func TestCompile_Yields(t *testing.T) {
	tests := map[string]struct {
		ret      typeexpr.Expr
		expected string
	}{
		"no return type": {
			ret:      nil,
			expected: "Yields\n------\nA number.\n",
		},
		"bare iterator": {
			ret:      typeexpr.NewNamed("collections.abc.Iterator"),
			expected: "Yields\n------\nA number.\n",
		},
		"iterator": {
			ret:      typeexpr.NewGeneric("Iterator", typeInt),
			expected: "Yields\n------\nint\n    A number.\n",
		},
		"async iterable": {
			ret:      typeexpr.NewGeneric("typing.AsyncIterable", typeInt),
			expected: "Yields\n------\nint\n    A number.\n",
		},
		"annotated generator": {
			ret:      typeexpr.NewAnnotated(typeexpr.NewGeneric("Generator", typeInt, typeStr, typeexpr.NewNamed("None")), ""),
			expected: "Yields\n------\nint\n    A number.\n",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			actual, err := Compile(Request{Yields: Text("a number")}, Signature{Return: tc.ret})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestCompile_SeeAlso(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 6)
	tests := map[string]struct {
		seeAlso  Payload
		expected string
	}{
		"text": {
			seeAlso:  Text(" numpy.mean "),
			expected: "numpy.mean",
		},
		"list": {
			seeAlso:  List{"std", "var"},
			expected: "std\nvar",
		},
		"entries": {
			seeAlso:  Entries{{Name: "average", Text: "weighted average"}, {Name: "std"}},
			expected: "average : Weighted average.\nstd",
		},
		"long description": {
			seeAlso:  Entries{{Name: "average", Text: long}},
			expected: "average :\n    Lorem ipsum" + strings.TrimSuffix(strings.Repeat(" lorem ipsum", 5), " ") + ".",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			actual, err := Compile(Request{SeeAlso: tc.seeAlso}, Signature{})
			require.NoError(t, err)
			assert.Equal(t, "See Also\n--------\n"+tc.expected+"\n", actual)
		})
	}
}

func TestCompile_Attributes(t *testing.T) {
	t.Run("non-enumeration attributes", func(t *testing.T) {
		actual, err := Compile(Request{Attributes: Entries{{Name: "x", Text: "The x."}}}, Signature{})
		require.NoError(t, err)
		assert.Equal(t, "Attributes\n----------\nx\n    The x.\n", actual)
	})
	t.Run("undocumented members are stubbed", func(t *testing.T) {
		actual, err := Compile(Request{}, Signature{Members: []Member{
			{Name: "First", Value: "1st"},
			{Name: "Second", Value: true},
		}})
		require.NoError(t, err)
		assert.Equal(t, "Attributes\n----------\nFirst = \"1st\"\nSecond = True\n", actual)
	})
}

func TestCompile_Options(t *testing.T) {
	req := Request{
		Summary:    "compute the arithmetic mean along the specified axis",
		Parameters: Entries{{Name: "a", Text: "array containing numbers whose mean is desired"}},
	}
	sig := Signature{Parameters: []Parameter{{Name: "a", Type: typeexpr.NewNamed("ndarray")}}}

	t.Run("line width and indent", func(t *testing.T) {
		actual, err := Compile(req, sig, WithLineWidth(30), WithIndent("  "))
		require.NoError(t, err)
		assert.Equal(t, `Compute the arithmetic mean
along the specified axis.

Parameters
----------
a : ndarray
  Array containing numbers whose
  mean is desired.
`, actual)
	})
	t.Run("type rules", func(t *testing.T) {
		ndarray := typeexpr.Rule{
			Name: "ndarray",
			Match: func(e typeexpr.Expr) bool {
				n, ok := e.(typeexpr.Named)
				return ok && n.Name == "ndarray"
			},
			Format: func(typeexpr.Expr, func(typeexpr.Expr) string) string { return "numpy.ndarray" },
		}
		actual, err := Compile(req, sig, WithTypeRules(ndarray))
		require.NoError(t, err)
		assert.Contains(t, actual, "\na : numpy.ndarray\n")
	})
	t.Run("logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
		_, err := Compile(
			Request{Parameters: Entries{{Name: "First", Text: "The first."}}},
			Signature{Name: "MyEnum", Members: []Member{{Name: "First", Value: "1st"}}},
			WithLogger(logger))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "use attributes rather than parameters")
		assert.Contains(t, buf.String(), "name=MyEnum")
	})
}

package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const exampleSDL = `
"""
Example schema
"""
schema {
  query: Root
}

scalar DateTime @specifiedBy(url: "https://example.com/datetime")

enum Color {
  RED
  GREEN @deprecated(reason: "use RED")
}

input Filter {
  term: String = "all"
  limit: Int = 10
  colors: [Color!] = [RED]
}

type Root {
  items(filter: Filter): [Item!]
  legacy: String @deprecated
}

interface Named {
  name: String!
}

type Item implements Named {
  name: String!
  when: DateTime
}

union Thing = Item | Root

directive @weight(value: Float = 1.5) repeatable on FIELD | QUERY
`

func TestBuildFromSDL(t *testing.T) {
	s, err := BuildFromSDL(exampleSDL)
	require.NoError(t, err)

	require.Equal(t, "Root", s.QueryType)
	require.Equal(t, "Example schema", s.Description)
	require.NotNil(t, s.GetQueryType())
	require.Nil(t, s.GetMutationType())

	t.Run("builtins are present", func(t *testing.T) {
		for _, name := range []string{"String", "Int", "Float", "Boolean", "ID"} {
			require.NotNil(t, s.Types[name], "missing builtin scalar %s", name)
		}
		for _, name := range []string{"include", "skip", "deprecated", "specifiedBy"} {
			require.NotNil(t, s.GetDirective(name), "missing builtin directive %s", name)
		}
	})

	t.Run("object", func(t *testing.T) {
		root := s.Types["Root"]
		require.NotNil(t, root)
		require.Equal(t, TypeKindObject, root.Kind)

		items := root.Field("items")
		require.NotNil(t, items)
		require.Equal(t, "[Item!]", renderTypeRef(items.Type))
		filter := items.Argument("filter")
		require.NotNil(t, filter)
		require.Equal(t, "Filter", renderTypeRef(filter.Type))
		require.Nil(t, items.Argument("nope"))

		legacy := root.Field("legacy")
		require.NotNil(t, legacy)
		require.True(t, legacy.IsDeprecated)
		require.Equal(t, "No longer supported", legacy.DeprecationReason)

		require.Nil(t, root.Field("missing"))
	})

	t.Run("interface and union", func(t *testing.T) {
		item := s.Types["Item"]
		require.Equal(t, []string{"Named"}, item.Interfaces)
		require.Equal(t, TypeKindInterface, s.Types["Named"].Kind)

		thing := s.Types["Thing"]
		require.Equal(t, TypeKindUnion, thing.Kind)
		require.Equal(t, []string{"Item", "Root"}, thing.PossibleTypes)
		require.True(t, thing.IsComposite())
		require.False(t, s.Types["Color"].IsComposite())
	})

	t.Run("input object", func(t *testing.T) {
		filter := s.Types["Filter"]
		require.Equal(t, TypeKindInputObject, filter.Kind)

		term := filter.InputField("term")
		require.NotNil(t, term)
		require.Equal(t, "all", term.DefaultValue)
		require.Equal(t, int64(10), filter.InputField("limit").DefaultValue)
		require.Equal(t, []any{EnumLiteral("RED")}, filter.InputField("colors").DefaultValue)
		require.Nil(t, filter.InputField("missing"))
	})

	t.Run("enum", func(t *testing.T) {
		color := s.Types["Color"]
		require.Len(t, color.EnumValues, 2)
		require.True(t, color.EnumValues[1].IsDeprecated)
		require.Equal(t, "use RED", color.EnumValues[1].DeprecationReason)
	})

	t.Run("scalar", func(t *testing.T) {
		dt := s.Types["DateTime"]
		require.NotNil(t, dt.SpecifiedByURL)
		require.Equal(t, "https://example.com/datetime", *dt.SpecifiedByURL)
	})

	t.Run("directive definition", func(t *testing.T) {
		weight := s.GetDirective("weight")
		require.NotNil(t, weight)
		require.True(t, weight.IsRepeatable)
		require.Equal(t, []string{"FIELD", "QUERY"}, weight.Locations)
		value := weight.Argument("value")
		require.NotNil(t, value)
		require.Equal(t, 1.5, value.DefaultValue)
		require.Nil(t, weight.Argument("nope"))
	})
}

func TestRenderSnapshot(t *testing.T) {
	s, err := BuildFromSDL(exampleSDL)
	require.NoError(t, err)

	want := `"""
Example schema
"""
schema {
  query: Root
}

enum Color {
  RED
  GREEN @deprecated(reason: "use RED")
}

scalar DateTime @specifiedBy(url: "https://example.com/datetime")

input Filter {
  term: String = "all"
  limit: Int = 10
  colors: [Color!] = [RED]
}

type Item implements Named {
  name: String!
  when: DateTime
}

interface Named {
  name: String!
}

type Root {
  items(filter: Filter): [Item!]
  legacy: String @deprecated(reason: "No longer supported")
}

union Thing = Item | Root

directive @weight(value: Float = 1.5) repeatable on FIELD | QUERY
`
	if diff := cmp.Diff(want, Render(s)); diff != "" {
		t.Errorf("rendered schema mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	s, err := BuildFromSDL(exampleSDL)
	require.NoError(t, err)
	first := Render(s)

	reparsed, err := BuildFromSDL(first)
	require.NoError(t, err)
	if diff := cmp.Diff(first, Render(reparsed)); diff != "" {
		t.Errorf("render not stable (-want +got):\n%s", diff)
	}
}

func TestDefaultRootTypes(t *testing.T) {
	s, err := BuildFromSDL(`
		type Query { q: String }
		type Mutation { m: String }
	`)
	require.NoError(t, err)
	require.Equal(t, "Query", s.QueryType)
	require.Equal(t, "Mutation", s.MutationType)
	require.Equal(t, "", s.SubscriptionType)

	// Default root names: no schema block in the output.
	require.NotContains(t, Render(s), "schema {")
}

func TestExtensions(t *testing.T) {
	s, err := BuildFromSDL(`
		type Query { a: String }
		interface Tagged { tag: String }
		enum Color { RED }
		input Filter { term: String }

		extend type Query implements Tagged { tag: String b: Int }
		extend enum Color { GREEN }
		extend input Filter { limit: Int }
	`)
	require.NoError(t, err)

	q := s.Types["Query"]
	require.Equal(t, []string{"Tagged"}, q.Interfaces)
	require.NotNil(t, q.Field("b"))
	require.Len(t, s.Types["Color"].EnumValues, 2)
	require.NotNil(t, s.Types["Filter"].InputField("limit"))
}

func TestBuildErrors(t *testing.T) {
	t.Run("duplicate type", func(t *testing.T) {
		_, err := BuildFromSDL(`
			type A { x: String }
			type A { y: String }
		`)
		require.ErrorContains(t, err, `duplicate type definition "A"`)
	})

	t.Run("extend unknown type", func(t *testing.T) {
		_, err := BuildFromSDL(`
			type Query { a: String }
			extend type Missing { x: String }
		`)
		require.ErrorContains(t, err, `cannot extend unknown type "Missing"`)
	})

	t.Run("invalid SDL", func(t *testing.T) {
		_, err := BuildFromSDL(`type {`)
		require.Error(t, err)
	})
}

func TestTypeRefHelpers(t *testing.T) {
	inner := NamedType("User")
	list := ListType(NonNullType(inner))
	full := NonNullType(list)

	require.Equal(t, "[User!]!", renderTypeRef(full))
	require.True(t, full.IsNonNull())
	require.True(t, full.IsList())
	require.False(t, inner.IsList())
	require.Equal(t, "User", full.GetNamedType())
	require.Equal(t, "", (*TypeRef)(nil).GetNamedType())

	require.Equal(t, list, full.Nullable())
	require.Equal(t, list, full.Unwrap())
	require.Same(t, inner, inner.Nullable())
	require.Nil(t, (*TypeRef)(nil).Nullable())
}

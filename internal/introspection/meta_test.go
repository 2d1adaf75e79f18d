package introspection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/igorcanadi/graphql-js/internal/schema"
)

func TestMetaFieldShapes(t *testing.T) {
	require.Equal(t, "__schema", SchemaMetaField.Name)
	require.Equal(t, "__Schema", SchemaMetaField.Type.GetNamedType())
	require.True(t, SchemaMetaField.Type.IsNonNull())

	require.Equal(t, "__type", TypeMetaField.Name)
	require.Equal(t, "__Type", TypeMetaField.Type.GetNamedType())
	require.False(t, TypeMetaField.Type.IsNonNull())
	name := TypeMetaField.Argument("name")
	require.NotNil(t, name)
	require.True(t, name.Type.IsNonNull())
	require.Equal(t, "String", name.Type.GetNamedType())

	require.Equal(t, "__typename", TypeNameMetaField.Name)
	require.Equal(t, "String", TypeNameMetaField.Type.GetNamedType())
	require.True(t, TypeNameMetaField.Type.IsNonNull())
	require.Empty(t, TypeNameMetaField.Arguments)
}

func TestExtendSchema(t *testing.T) {
	original, err := schema.BuildFromSDL(`type Query { q: String }`)
	require.NoError(t, err)
	before := len(original.Types)

	extended := ExtendSchema(original)

	for _, name := range []string{
		"__Schema", "__Type", "__Field", "__InputValue",
		"__EnumValue", "__Directive", "__TypeKind", "__DirectiveLocation",
	} {
		require.NotNil(t, extended.Types[name], "missing introspection type %s", name)
		require.Nil(t, original.Types[name], "original schema mutated with %s", name)
	}
	require.Len(t, original.Types, before)

	// User types and roots carry over.
	require.Equal(t, original.QueryType, extended.QueryType)
	require.Same(t, original.Types["Query"], extended.Types["Query"])
}

func TestIntrospectionTypesAreWellFormed(t *testing.T) {
	s := ExtendSchema(&schema.Schema{Types: map[string]*schema.Type{}, Directives: map[string]*schema.Directive{}})

	st := s.Types["__Schema"]
	require.Equal(t, schema.TypeKindObject, st.Kind)
	require.NotNil(t, st.Field("types"))
	require.NotNil(t, st.Field("queryType"))
	require.NotNil(t, st.Field("directives"))

	tt := s.Types["__Type"]
	require.NotNil(t, tt.Field("kind"))
	require.Equal(t, "__TypeKind", tt.Field("kind").Type.GetNamedType())
	fields := tt.Field("fields")
	require.NotNil(t, fields)
	require.NotNil(t, fields.Argument("includeDeprecated"))

	require.Equal(t, schema.TypeKindEnum, s.Types["__TypeKind"].Kind)
	require.NotEmpty(t, s.Types["__TypeKind"].EnumValues)
	require.Equal(t, schema.TypeKindEnum, s.Types["__DirectiveLocation"].Kind)
}

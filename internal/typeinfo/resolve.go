package typeinfo

import (
	introspection "github.com/igorcanadi/graphql-js/internal/introspection"
	language "github.com/igorcanadi/graphql-js/internal/language"
	schema "github.com/igorcanadi/graphql-js/internal/schema"
)

// DefaultFieldResolver resolves a field node against the parent type.
// Meta-fields take precedence over declared fields of the same name:
// __schema and __type resolve only on the query root, __typename on any
// composite type. Unions declare no fields, so anything else under a union
// parent resolves to nil.
func DefaultFieldResolver(s *schema.Schema, parentType *schema.Type, field *language.Field) *schema.Field {
	name := field.Name
	if name == introspection.SchemaMetaField.Name && s.GetQueryType() == parentType {
		return introspection.SchemaMetaField
	}
	if name == introspection.TypeMetaField.Name && s.GetQueryType() == parentType {
		return introspection.TypeMetaField
	}
	if name == introspection.TypeNameMetaField.Name && parentType.IsComposite() {
		return introspection.TypeNameMetaField
	}
	switch parentType.Kind {
	case schema.TypeKindObject, schema.TypeKindInterface:
		return parentType.Field(name)
	}
	return nil
}

// TypeFromAST converts a syntactic type reference into a reference to the
// schema type it names, preserving list and non-null wrappers. It returns nil
// when the innermost named type is not defined in the schema.
func TypeFromAST(s *schema.Schema, t *language.Type) *schema.TypeRef {
	if t == nil {
		return nil
	}
	var inner *schema.TypeRef
	switch {
	case t.NamedType != "":
		if s.Types[t.NamedType] == nil {
			return nil
		}
		inner = schema.NamedType(t.NamedType)
	case t.Elem != nil:
		elem := TypeFromAST(s, t.Elem)
		if elem == nil {
			return nil
		}
		inner = schema.ListType(elem)
	default:
		return nil
	}
	if t.NonNull {
		return schema.NonNullType(inner)
	}
	return inner
}

package schema

import (
	"fmt"
	"strconv"

	language "github.com/igorcanadi/graphql-js/internal/language"
)

// BuildFromSDL parses an SDL document and builds the corresponding Schema.
// Type extensions are merged into their base definitions. Root operation types
// default to Query/Mutation/Subscription when no schema block names them.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}
	return BuildFromDocument(doc)
}

// BuildFromDocument builds a Schema from an already-parsed SDL document.
func BuildFromDocument(doc *language.SchemaDocument) (*Schema, error) {
	s := NewSchema("")
	// Builtins
	s.AddType(stringType).
		AddType(intType).
		AddType(floatType).
		AddType(booleanType).
		AddType(idType)
	s.AddDirective(includeDirective).
		AddDirective(skipDirective).
		AddDirective(deprecatedDirective).
		AddDirective(specifiedByDirective)

	for _, def := range doc.Definitions {
		if _, exists := s.Types[def.Name]; exists && !isBuiltinType(s.Types[def.Name]) {
			return nil, fmt.Errorf("duplicate type definition %q", def.Name)
		}
		s.AddType(buildDefinition(def))
	}
	for _, ext := range doc.Extensions {
		base := s.Types[ext.Name]
		if base == nil {
			return nil, fmt.Errorf("cannot extend unknown type %q", ext.Name)
		}
		mergeExtension(base, ext)
	}
	for _, dd := range doc.Directives {
		s.AddDirective(buildDirectiveDefinition(dd))
	}

	applySchemaDefinitions(s, doc.Schema)
	applySchemaDefinitions(s, doc.SchemaExtension)
	if s.QueryType == "" && s.Types["Query"] != nil {
		s.SetQueryType("Query")
	}
	if s.MutationType == "" && s.Types["Mutation"] != nil {
		s.SetMutationType("Mutation")
	}
	if s.SubscriptionType == "" && s.Types["Subscription"] != nil {
		s.SetSubscriptionType("Subscription")
	}
	return s, nil
}

func applySchemaDefinitions(s *Schema, defs []*language.SchemaDefinition) {
	for _, def := range defs {
		if def.Description != "" {
			s.Description = def.Description
		}
		for _, op := range def.OperationTypes {
			switch op.Operation {
			case language.Query:
				s.SetQueryType(op.Type)
			case language.Mutation:
				s.SetMutationType(op.Type)
			case language.Subscription:
				s.SetSubscriptionType(op.Type)
			}
		}
	}
}

func buildDefinition(def *language.Definition) *Type {
	switch def.Kind {
	case language.Object:
		t := NewType(def.Name, TypeKindObject, def.Description)
		for _, iface := range def.Interfaces {
			t.AddInterface(iface)
		}
		for _, fd := range def.Fields {
			t.AddField(buildField(fd))
		}
		return t
	case language.Interface:
		t := NewType(def.Name, TypeKindInterface, def.Description)
		for _, iface := range def.Interfaces {
			t.AddInterface(iface)
		}
		for _, fd := range def.Fields {
			t.AddField(buildField(fd))
		}
		return t
	case language.Union:
		t := NewType(def.Name, TypeKindUnion, def.Description)
		for _, name := range def.Types {
			t.AddPossibleType(name)
		}
		return t
	case language.Enum:
		t := NewType(def.Name, TypeKindEnum, def.Description)
		for _, val := range def.EnumValues {
			e := NewEnumValue(val.Name, val.Description)
			if reason, ok := deprecationReason(val.Directives); ok {
				e.Deprecate(reason)
			}
			t.AddEnumValue(e)
		}
		return t
	case language.InputObject:
		t := NewType(def.Name, TypeKindInputObject, def.Description)
		if def.Directives.ForName("oneOf") != nil {
			t.SetOneOf(true)
		}
		for _, fd := range def.Fields {
			t.AddInputField(buildInputField(fd))
		}
		return t
	default: // language.Scalar
		t := NewType(def.Name, TypeKindScalar, def.Description)
		if d := def.Directives.ForName("specifiedBy"); d != nil {
			if arg := d.Arguments.ForName("url"); arg != nil {
				t.SetSpecifiedByURL(arg.Value.Raw)
			}
		}
		return t
	}
}

func mergeExtension(base *Type, ext *language.Definition) {
	for _, iface := range ext.Interfaces {
		base.AddInterface(iface)
	}
	for _, name := range ext.Types {
		base.AddPossibleType(name)
	}
	switch base.Kind {
	case TypeKindInputObject:
		for _, fd := range ext.Fields {
			base.AddInputField(buildInputField(fd))
		}
	default:
		for _, fd := range ext.Fields {
			base.AddField(buildField(fd))
		}
	}
	for _, val := range ext.EnumValues {
		e := NewEnumValue(val.Name, val.Description)
		if reason, ok := deprecationReason(val.Directives); ok {
			e.Deprecate(reason)
		}
		base.AddEnumValue(e)
	}
}

func buildField(fd *language.FieldDefinition) *Field {
	f := NewField(fd.Name, fd.Description, buildTypeRef(fd.Type))
	if reason, ok := deprecationReason(fd.Directives); ok {
		f.Deprecate(reason)
	}
	for _, arg := range fd.Arguments {
		f.AddArgument(buildArgument(arg))
	}
	return f
}

func buildInputField(fd *language.FieldDefinition) *InputValue {
	v := NewInputValue(fd.Name, fd.Description, buildTypeRef(fd.Type)).
		SetDefault(valueFromAST(fd.DefaultValue))
	if reason, ok := deprecationReason(fd.Directives); ok {
		v.Deprecate(reason)
	}
	return v
}

func buildArgument(arg *language.ArgumentDefinition) *InputValue {
	v := NewInputValue(arg.Name, arg.Description, buildTypeRef(arg.Type)).
		SetDefault(valueFromAST(arg.DefaultValue))
	if reason, ok := deprecationReason(arg.Directives); ok {
		v.Deprecate(reason)
	}
	return v
}

func buildDirectiveDefinition(dd *language.DirectiveDefinition) *Directive {
	d := NewDirective(dd.Name, dd.Description).SetRepeatable(dd.IsRepeatable)
	for _, loc := range dd.Locations {
		d.AddLocation(string(loc))
	}
	for _, arg := range dd.Arguments {
		d.AddArgument(buildArgument(arg))
	}
	return d
}

func buildTypeRef(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(buildTypeRef(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	if t.Elem != nil {
		return ListType(buildTypeRef(t.Elem))
	}
	return nil
}

func deprecationReason(directives language.DirectiveList) (string, bool) {
	d := directives.ForName("deprecated")
	if d == nil {
		return "", false
	}
	if arg := d.Arguments.ForName("reason"); arg != nil {
		return arg.Value.Raw, true
	}
	return "No longer supported", true
}

// EnumLiteral is an enum value used in value position (default values).
// Distinct from string so rendering leaves it unquoted.
type EnumLiteral string

func valueFromAST(v *language.Value) any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case language.IntValue:
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return v.Raw
		}
		return n
	case language.FloatValue:
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return v.Raw
		}
		return f
	case language.BooleanValue:
		return v.Raw == "true"
	case language.StringValue, language.BlockValue:
		return v.Raw
	case language.EnumValue:
		return EnumLiteral(v.Raw)
	case language.NullValue:
		return nil
	case language.ListValue:
		items := make([]any, 0, len(v.Children))
		for _, c := range v.Children {
			items = append(items, valueFromAST(c.Value))
		}
		return items
	case language.ObjectValue:
		obj := make(map[string]any, len(v.Children))
		for _, c := range v.Children {
			obj[c.Name] = valueFromAST(c.Value)
		}
		return obj
	default: // variables have no place in schema default values
		return nil
	}
}

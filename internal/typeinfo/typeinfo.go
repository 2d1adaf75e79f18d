package typeinfo

import (
	language "github.com/igorcanadi/graphql-js/internal/language"
	schema "github.com/igorcanadi/graphql-js/internal/schema"
)

// FieldResolver resolves the schema field definition selected by a field node
// under the given parent composite type. A nil result means unresolved.
type FieldResolver func(s *schema.Schema, parentType *schema.Type, field *language.Field) *schema.Field

// TypeInfo tracks the type context of one traversal. The zero value is not
// usable; construct with New.
type TypeInfo struct {
	schema       *schema.Schema
	resolveField FieldResolver

	typeStack       []*schema.TypeRef
	parentTypeStack []*schema.Type
	inputTypeStack  []*schema.TypeRef
	fieldDefStack   []*schema.Field
	directive       *schema.Directive
	argument        *schema.InputValue
}

type Option func(*TypeInfo)

// WithFieldResolver replaces the default field resolution strategy.
func WithFieldResolver(r FieldResolver) Option {
	return func(ti *TypeInfo) { ti.resolveField = r }
}

// New creates a TypeInfo bound to the given schema. The schema is held by
// reference and never mutated.
func New(s *schema.Schema, opts ...Option) *TypeInfo {
	ti := &TypeInfo{schema: s, resolveField: DefaultFieldResolver}
	for _, opt := range opts {
		opt(ti)
	}
	return ti
}

// Schema returns the schema this TypeInfo is bound to.
func (ti *TypeInfo) Schema() *schema.Schema { return ti.schema }

// Type returns the output type applicable to the current node (nil if absent).
func (ti *TypeInfo) Type() *schema.TypeRef {
	if len(ti.typeStack) == 0 {
		return nil
	}
	return ti.typeStack[len(ti.typeStack)-1]
}

// ParentType returns the nearest enclosing composite type (nil if absent).
func (ti *TypeInfo) ParentType() *schema.Type {
	if len(ti.parentTypeStack) == 0 {
		return nil
	}
	return ti.parentTypeStack[len(ti.parentTypeStack)-1]
}

// InputType returns the input type applicable to the current value position
// (nil if absent).
func (ti *TypeInfo) InputType() *schema.TypeRef {
	if len(ti.inputTypeStack) == 0 {
		return nil
	}
	return ti.inputTypeStack[len(ti.inputTypeStack)-1]
}

// FieldDef returns the field definition selected by the current field node
// (nil if absent).
func (ti *TypeInfo) FieldDef() *schema.Field {
	if len(ti.fieldDefStack) == 0 {
		return nil
	}
	return ti.fieldDefStack[len(ti.fieldDefStack)-1]
}

// Directive returns the definition named by the current directive node (nil if
// absent).
func (ti *TypeInfo) Directive() *schema.Directive { return ti.directive }

// Argument returns the argument definition selected by the current argument
// node (nil if absent).
func (ti *TypeInfo) Argument() *schema.InputValue { return ti.argument }

// Enter pushes the context derived from node. Node kinds the tracker does not
// model are ignored.
func (ti *TypeInfo) Enter(node any) {
	switch n := node.(type) {
	case language.SelectionSet:
		var parent *schema.Type
		if named := ti.schema.Types[ti.Type().GetNamedType()]; named != nil && named.IsComposite() {
			parent = named
		}
		ti.parentTypeStack = append(ti.parentTypeStack, parent)

	case *language.Field:
		var fd *schema.Field
		if parent := ti.ParentType(); parent != nil {
			fd = ti.resolveField(ti.schema, parent, n)
		}
		ti.fieldDefStack = append(ti.fieldDefStack, fd)
		if fd != nil {
			ti.typeStack = append(ti.typeStack, fd.Type)
		} else {
			ti.typeStack = append(ti.typeStack, nil)
		}

	case *language.Directive:
		ti.directive = ti.schema.Directives[n.Name]

	case *language.OperationDefinition:
		var root *schema.Type
		switch n.Operation {
		case language.Query:
			root = ti.schema.GetQueryType()
		case language.Mutation:
			root = ti.schema.GetMutationType()
		case language.Subscription:
			root = ti.schema.GetSubscriptionType()
		}
		if root != nil {
			ti.typeStack = append(ti.typeStack, schema.NamedType(root.Name))
		} else {
			ti.typeStack = append(ti.typeStack, nil)
		}

	case *language.InlineFragment:
		ti.typeStack = append(ti.typeStack, ti.typeCondition(n.TypeCondition))

	case *language.FragmentDefinition:
		ti.typeStack = append(ti.typeStack, ti.typeCondition(n.TypeCondition))

	case *language.VariableDefinition:
		ti.inputTypeStack = append(ti.inputTypeStack, TypeFromAST(ti.schema, n.Type))

	case *language.Argument:
		var arg *schema.InputValue
		// Directive wins when both a directive and a field are in scope; the
		// grammar never places one argument token under both at once.
		if d := ti.directive; d != nil {
			arg = d.Argument(n.Name)
		} else if fd := ti.FieldDef(); fd != nil {
			arg = fd.Argument(n.Name)
		}
		ti.argument = arg
		if arg != nil {
			ti.inputTypeStack = append(ti.inputTypeStack, arg.Type)
		} else {
			ti.inputTypeStack = append(ti.inputTypeStack, nil)
		}

	case *language.Value:
		if n.Kind != language.ListValue {
			return
		}
		var item *schema.TypeRef
		if t := ti.InputType().Nullable(); t != nil && t.Kind == schema.TypeRefKindList {
			item = t.OfType
		}
		ti.inputTypeStack = append(ti.inputTypeStack, item)

	case *language.ChildValue:
		// Named children are input object fields; unnamed ones are list items,
		// which carry no context of their own.
		if n.Name == "" {
			return
		}
		var fieldType *schema.TypeRef
		if obj := ti.schema.Types[ti.InputType().GetNamedType()]; obj != nil && obj.Kind == schema.TypeKindInputObject {
			if f := obj.InputField(n.Name); f != nil {
				fieldType = f.Type
			}
		}
		ti.inputTypeStack = append(ti.inputTypeStack, fieldType)
	}
}

// Leave pops exactly what the matching Enter pushed for node.
func (ti *TypeInfo) Leave(node any) {
	switch n := node.(type) {
	case language.SelectionSet:
		ti.parentTypeStack = popType(ti.parentTypeStack)

	case *language.Field:
		ti.fieldDefStack = popField(ti.fieldDefStack)
		ti.typeStack = popTypeRef(ti.typeStack)

	case *language.Directive:
		ti.directive = nil

	case *language.OperationDefinition, *language.InlineFragment, *language.FragmentDefinition:
		ti.typeStack = popTypeRef(ti.typeStack)

	case *language.VariableDefinition:
		ti.inputTypeStack = popTypeRef(ti.inputTypeStack)

	case *language.Argument:
		ti.argument = nil
		ti.inputTypeStack = popTypeRef(ti.inputTypeStack)

	case *language.Value:
		if n.Kind == language.ListValue {
			ti.inputTypeStack = popTypeRef(ti.inputTypeStack)
		}

	case *language.ChildValue:
		if n.Name != "" {
			ti.inputTypeStack = popTypeRef(ti.inputTypeStack)
		}
	}
}

func (ti *TypeInfo) typeCondition(cond string) *schema.TypeRef {
	if cond == "" {
		return ti.Type()
	}
	if ti.schema.Types[cond] == nil {
		return nil
	}
	return schema.NamedType(cond)
}

func popTypeRef(s []*schema.TypeRef) []*schema.TypeRef {
	if len(s) == 0 {
		return s
	}
	return s[:len(s)-1]
}

func popType(s []*schema.Type) []*schema.Type {
	if len(s) == 0 {
		return s
	}
	return s[:len(s)-1]
}

func popField(s []*schema.Field) []*schema.Field {
	if len(s) == 0 {
		return s
	}
	return s[:len(s)-1]
}

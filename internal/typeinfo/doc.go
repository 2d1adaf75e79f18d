// Package typeinfo maintains the type context of a depth-first traversal over
// a GraphQL query document.
//
// # Overview
//
// A TypeInfo instance is driven by an external traversal that calls Enter and
// Leave in matched pairs for every AST node, in document order. Between the
// Enter and the matching Leave for a node, the accessors report the context
// applicable to that node and its descendants:
//   - Type: the output type currently applicable (the declared type of the
//     innermost field, fragment condition, or operation root).
//   - ParentType: the nearest enclosing composite type (object, interface, or
//     union) carrying the current selection set.
//   - InputType: the input type applicable to the current value position
//     (variable declaration, argument, list item, or input object field).
//   - FieldDef: the schema field definition selected by the innermost field node.
//   - Directive, Argument: the definitions named by the current directive and
//     argument nodes. These never nest, so they are single slots, not stacks.
//
// # Contract
//
//   - Enter and Leave must be called in strictly matched pairs, depth-first.
//     After the matching Leave, every stack has the length it had before Enter.
//   - Node kinds the tracker does not model are ignored; the traversal may pass
//     every node it visits.
//   - Lookups that fail (unknown field, unknown directive, unknown argument,
//     type condition naming an undefined type, non-list or non-input-object
//     narrowing) degrade to nil. The tracker never reports an error and never
//     stops a traversal; consumers decide whether nil context is a problem.
//   - One TypeInfo serves one traversal. The schema it is bound to is shared
//     and never mutated; concurrent traversals each need their own instance.
//
// # Field resolution
//
// Field nodes resolve against the parent composite type via a FieldResolver.
// The default resolver understands the __schema, __type, and __typename
// meta-fields and falls back to the parent type's declared fields; it returns
// nil under a union parent (unions declare no fields). A custom resolver can
// be injected with WithFieldResolver.
package typeinfo

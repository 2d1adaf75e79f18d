// Package visitor walks a parsed query document depth-first, delivering every
// node to a Visitor as a strictly paired Enter/Leave sequence in document
// order. It is the traversal side of the typeinfo contract: wrap a visitor
// with WithTypeInfo and its callbacks observe the type context of each node.
package visitor

import (
	language "github.com/igorcanadi/graphql-js/internal/language"
	typeinfo "github.com/igorcanadi/graphql-js/internal/typeinfo"
)

// Visitor receives paired Enter/Leave callbacks for every node visited.
type Visitor interface {
	Enter(node any)
	Leave(node any)
}

// Walk traverses doc: operations first, then fragment definitions. Selection
// set events are emitted only for non-empty selection sets.
func Walk(doc *language.QueryDocument, v Visitor) {
	w := walker{visitor: v}
	for _, op := range doc.Operations {
		w.walkOperation(op)
	}
	for _, frag := range doc.Fragments {
		w.walkFragmentDefinition(frag)
	}
}

type walker struct {
	visitor Visitor
}

func (w *walker) walkOperation(op *language.OperationDefinition) {
	w.visitor.Enter(op)
	for _, vd := range op.VariableDefinitions {
		w.walkVariableDefinition(vd)
	}
	w.walkDirectives(op.Directives)
	w.walkSelectionSet(op.SelectionSet)
	w.visitor.Leave(op)
}

func (w *walker) walkVariableDefinition(vd *language.VariableDefinition) {
	w.visitor.Enter(vd)
	if vd.DefaultValue != nil {
		w.walkValue(vd.DefaultValue)
	}
	w.walkDirectives(vd.Directives)
	w.visitor.Leave(vd)
}

func (w *walker) walkSelectionSet(set language.SelectionSet) {
	if len(set) == 0 {
		return
	}
	w.visitor.Enter(set)
	for _, selection := range set {
		switch sel := selection.(type) {
		case *language.Field:
			w.walkField(sel)
		case *language.InlineFragment:
			w.walkInlineFragment(sel)
		case *language.FragmentSpread:
			w.walkFragmentSpread(sel)
		}
	}
	w.visitor.Leave(set)
}

func (w *walker) walkField(f *language.Field) {
	w.visitor.Enter(f)
	w.walkArguments(f.Arguments)
	w.walkDirectives(f.Directives)
	w.walkSelectionSet(f.SelectionSet)
	w.visitor.Leave(f)
}

func (w *walker) walkInlineFragment(frag *language.InlineFragment) {
	w.visitor.Enter(frag)
	w.walkDirectives(frag.Directives)
	w.walkSelectionSet(frag.SelectionSet)
	w.visitor.Leave(frag)
}

func (w *walker) walkFragmentSpread(spread *language.FragmentSpread) {
	w.visitor.Enter(spread)
	w.walkDirectives(spread.Directives)
	w.visitor.Leave(spread)
}

func (w *walker) walkFragmentDefinition(frag *language.FragmentDefinition) {
	w.visitor.Enter(frag)
	w.walkDirectives(frag.Directives)
	w.walkSelectionSet(frag.SelectionSet)
	w.visitor.Leave(frag)
}

func (w *walker) walkDirectives(directives language.DirectiveList) {
	for _, d := range directives {
		w.visitor.Enter(d)
		w.walkArguments(d.Arguments)
		w.visitor.Leave(d)
	}
}

func (w *walker) walkArguments(args language.ArgumentList) {
	for _, arg := range args {
		w.visitor.Enter(arg)
		w.walkValue(arg.Value)
		w.visitor.Leave(arg)
	}
}

func (w *walker) walkValue(v *language.Value) {
	w.visitor.Enter(v)
	switch v.Kind {
	case language.ListValue:
		// List items are unnamed children; visit their values directly.
		for _, c := range v.Children {
			w.walkValue(c.Value)
		}
	case language.ObjectValue:
		for _, c := range v.Children {
			w.walkChildValue(c)
		}
	}
	w.visitor.Leave(v)
}

func (w *walker) walkChildValue(c *language.ChildValue) {
	w.visitor.Enter(c)
	w.walkValue(c.Value)
	w.visitor.Leave(c)
}

// Visitors combines visitors: Enter runs in order, Leave in reverse order.
func Visitors(vs ...Visitor) Visitor { return multi(vs) }

type multi []Visitor

func (m multi) Enter(node any) {
	for _, v := range m {
		v.Enter(node)
	}
}

func (m multi) Leave(node any) {
	for i := len(m) - 1; i >= 0; i-- {
		m[i].Leave(node)
	}
}

// WithTypeInfo binds ti to the traversal: ti enters each node before v sees it
// and leaves after, so v's callbacks observe the context of the node itself.
func WithTypeInfo(ti *typeinfo.TypeInfo, v Visitor) Visitor {
	return typeInfoVisitor{ti: ti, inner: v}
}

type typeInfoVisitor struct {
	ti    *typeinfo.TypeInfo
	inner Visitor
}

func (t typeInfoVisitor) Enter(node any) {
	t.ti.Enter(node)
	t.inner.Enter(node)
}

func (t typeInfoVisitor) Leave(node any) {
	t.inner.Leave(node)
	t.ti.Leave(node)
}

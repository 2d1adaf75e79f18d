package visitor

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/igorcanadi/graphql-js/internal/language"
)

func mustParseQuery(t *testing.T, query string) *language.QueryDocument {
	t.Helper()
	doc, err := language.ParseQuery(query)
	require.NoError(t, err, "failed to parse query")
	return doc
}

// tracer records one line per Enter/Leave with a label for the node kind.
type tracer struct {
	events []string
	depth  int
}

func label(node any) string {
	switch n := node.(type) {
	case *language.OperationDefinition:
		return fmt.Sprintf("operation %s", n.Operation)
	case *language.VariableDefinition:
		return fmt.Sprintf("vardef $%s", n.Variable)
	case language.SelectionSet:
		return "selectionset"
	case *language.Field:
		return fmt.Sprintf("field %s", n.Name)
	case *language.InlineFragment:
		return fmt.Sprintf("inline %s", n.TypeCondition)
	case *language.FragmentSpread:
		return fmt.Sprintf("spread %s", n.Name)
	case *language.FragmentDefinition:
		return fmt.Sprintf("fragment %s", n.Name)
	case *language.Directive:
		return fmt.Sprintf("directive %s", n.Name)
	case *language.Argument:
		return fmt.Sprintf("argument %s", n.Name)
	case *language.Value:
		return fmt.Sprintf("value %s", n.Raw)
	case *language.ChildValue:
		return fmt.Sprintf("childvalue %s", n.Name)
	default:
		return fmt.Sprintf("%T", node)
	}
}

func (tr *tracer) Enter(node any) {
	tr.events = append(tr.events, fmt.Sprintf("%*senter %s", tr.depth*2, "", label(node)))
	tr.depth++
}

func (tr *tracer) Leave(node any) {
	tr.depth--
	tr.events = append(tr.events, fmt.Sprintf("%*sleave %s", tr.depth*2, "", label(node)))
}

func TestWalkOrder(t *testing.T) {
	doc := mustParseQuery(t, `
		query Q($v: Boolean = false) {
			a(x: 1) @skip(if: $v) {
				b
				... on T { c }
				...f
			}
		}
		fragment f on T { d }
	`)
	tr := &tracer{}
	Walk(doc, tr)

	want := []string{
		"enter operation query",
		"  enter vardef $v",
		"    enter value false",
		"    leave value false",
		"  leave vardef $v",
		"  enter selectionset",
		"    enter field a",
		"      enter argument x",
		"        enter value 1",
		"        leave value 1",
		"      leave argument x",
		"      enter directive skip",
		"        enter argument if",
		"          enter value v",
		"          leave value v",
		"        leave argument if",
		"      leave directive skip",
		"      enter selectionset",
		"        enter field b",
		"        leave field b",
		"        enter inline T",
		"          enter selectionset",
		"            enter field c",
		"            leave field c",
		"          leave selectionset",
		"        leave inline T",
		"        enter spread f",
		"        leave spread f",
		"      leave selectionset",
		"    leave field a",
		"  leave selectionset",
		"leave operation query",
		"enter fragment f",
		"  enter selectionset",
		"    enter field d",
		"    leave field d",
		"  leave selectionset",
		"leave fragment f",
	}
	if diff := cmp.Diff(want, tr.events); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkValues(t *testing.T) {
	doc := mustParseQuery(t, `{ a(x: {k: [1, 2]}) }`)
	tr := &tracer{}
	Walk(doc, tr)

	want := []string{
		"enter operation query",
		"  enter selectionset",
		"    enter field a",
		"      enter argument x",
		"        enter value ",
		"          enter childvalue k",
		"            enter value ",
		"              enter value 1",
		"              leave value 1",
		"              enter value 2",
		"              leave value 2",
		"            leave value ",
		"          leave childvalue k",
		"        leave value ",
		"      leave argument x",
		"    leave field a",
		"  leave selectionset",
		"leave operation query",
	}
	if diff := cmp.Diff(want, tr.events); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}
}

// balance checks that Enter/Leave calls pair up like brackets.
type balance struct {
	t     *testing.T
	stack []any
}

func (b *balance) Enter(node any) { b.stack = append(b.stack, node) }

func (b *balance) Leave(node any) {
	require.NotEmpty(b.t, b.stack, "Leave without matching Enter: %s", label(node))
	top := b.stack[len(b.stack)-1]
	require.Equal(b.t, label(top), label(node), "unbalanced Enter/Leave")
	b.stack = b.stack[:len(b.stack)-1]
}

func TestWalkIsBalanced(t *testing.T) {
	doc := mustParseQuery(t, `
		query ($f: Filter = {tags: ["x"]}) {
			a { b(v: [{k: 1}]) @d(e: 2) ... { c } }
		}
	`)
	b := &balance{t: t}
	Walk(doc, b)
	require.Empty(t, b.stack, "Enter without matching Leave")
}

func TestEmptySelectionSetsAreSkipped(t *testing.T) {
	doc := mustParseQuery(t, `{ a }`)
	tr := &tracer{}
	Walk(doc, tr)

	want := []string{
		"enter operation query",
		"  enter selectionset",
		"    enter field a",
		"    leave field a",
		"  leave selectionset",
		"leave operation query",
	}
	if diff := cmp.Diff(want, tr.events); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestVisitorsCombinesInOrder(t *testing.T) {
	var got []string
	mk := func(name string) Visitor {
		return &funcVisitor{
			enter: func(any) { got = append(got, "enter "+name) },
			leave: func(any) { got = append(got, "leave "+name) },
		}
	}
	doc := mustParseQuery(t, `{ a }`)
	Walk(doc, Visitors(mk("first"), mk("second")))

	require.NotEmpty(t, got)
	require.Equal(t, "enter first", got[0])
	require.Equal(t, "enter second", got[1])
	require.Equal(t, "leave second", got[len(got)-2])
	require.Equal(t, "leave first", got[len(got)-1])
}

type funcVisitor struct {
	enter func(any)
	leave func(any)
}

func (f *funcVisitor) Enter(node any) { f.enter(node) }
func (f *funcVisitor) Leave(node any) { f.leave(node) }

// Package lint reports unresolved references in a query document: fields,
// arguments, directives, and fragment type conditions that do not match any
// schema definition. It is a thin consumer of the typeinfo contract; full
// validation-rule coverage is not its job.
package lint

import (
	"fmt"

	language "github.com/igorcanadi/graphql-js/internal/language"
	schema "github.com/igorcanadi/graphql-js/internal/schema"
	typeinfo "github.com/igorcanadi/graphql-js/internal/typeinfo"
	visitor "github.com/igorcanadi/graphql-js/internal/visitor"
)

// Problem is one unresolved reference, located in the query source.
type Problem struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// Check walks doc against s and reports every unresolved reference.
// A nil or empty result means the document only names things s defines.
func Check(s *schema.Schema, doc *language.QueryDocument) []Problem {
	ti := typeinfo.New(s)
	c := &checker{ti: ti}
	visitor.Walk(doc, visitor.WithTypeInfo(ti, c))
	return c.problems
}

type checker struct {
	ti       *typeinfo.TypeInfo
	problems []Problem
}

func (c *checker) Enter(node any) {
	switch n := node.(type) {
	case *language.Field:
		// Only report when the parent is known; an unknown parent was already
		// reported at the node that failed to resolve it.
		if c.ti.ParentType() != nil && c.ti.FieldDef() == nil {
			c.add(fmt.Sprintf("Cannot query field '%s' on type '%s'", n.Name, c.ti.ParentType().Name), n.Position)
		}

	case *language.Directive:
		if c.ti.Directive() == nil {
			c.add(fmt.Sprintf("Unknown directive '@%s'", n.Name), n.Position)
		}

	case *language.Argument:
		if c.ti.Argument() != nil {
			return
		}
		if d := c.ti.Directive(); d != nil {
			c.add(fmt.Sprintf("Unknown argument '%s' on directive '@%s'", n.Name, d.Name), n.Position)
		} else if fd := c.ti.FieldDef(); fd != nil {
			c.add(fmt.Sprintf("Unknown argument '%s' on field '%s'", n.Name, fd.Name), n.Position)
		}

	case *language.InlineFragment:
		c.checkTypeCondition(n.TypeCondition, n.Position)

	case *language.FragmentDefinition:
		c.checkTypeCondition(n.TypeCondition, n.Position)
	}
}

func (c *checker) Leave(node any) {}

func (c *checker) checkTypeCondition(cond string, pos *language.Position) {
	if cond != "" && c.ti.Schema().Types[cond] == nil {
		c.add(fmt.Sprintf("Unknown type '%s'", cond), pos)
	}
}

func (c *checker) add(message string, pos *language.Position) {
	p := Problem{Message: message}
	if pos != nil {
		p.Line = pos.Line
		p.Column = pos.Column
	}
	c.problems = append(c.problems, p)
}

package lint

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/igorcanadi/graphql-js/internal/language"
	"github.com/igorcanadi/graphql-js/internal/schema"
)

const testSDL = `
type Query {
  user(id: ID!): User
  pet: Pet
}

type User {
  name: String
}

type Dog {
  barks: Boolean
}

union Pet = Dog | User
`

func buildSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.BuildFromSDL(testSDL)
	require.NoError(t, err)
	return s
}

func check(t *testing.T, query string) []Problem {
	t.Helper()
	doc, err := language.ParseQuery(query)
	require.NoError(t, err, "failed to parse query")
	return Check(buildSchema(t), doc)
}

func messages(problems []Problem) []string {
	var out []string
	for _, p := range problems {
		out = append(out, p.Message)
	}
	return out
}

func TestCleanDocument(t *testing.T) {
	problems := check(t, `
		query ($v: Boolean!) {
			user(id: "1") @include(if: $v) {
				name
				__typename
			}
			pet {
				... on Dog { barks }
			}
		}
	`)
	require.Empty(t, problems)
}

func TestUnknownField(t *testing.T) {
	got := messages(check(t, `{ user(id: "1") { email } }`))
	want := []string{`Cannot query field 'email' on type 'User'`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("problems mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownFieldNotCascaded(t *testing.T) {
	// Children of an unresolved field have no parent type and must not pile
	// on additional reports.
	got := messages(check(t, `{ user(id: "1") { profile { bio } } }`))
	want := []string{`Cannot query field 'profile' on type 'User'`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("problems mismatch (-want +got):\n%s", diff)
	}
}

func TestUnionFieldReported(t *testing.T) {
	got := messages(check(t, `{ pet { barks } }`))
	want := []string{`Cannot query field 'barks' on type 'Pet'`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("problems mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownDirective(t *testing.T) {
	got := messages(check(t, `{ user(id: "1") @uppercase { name } }`))
	want := []string{`Unknown directive '@uppercase'`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("problems mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownArguments(t *testing.T) {
	t.Run("on field", func(t *testing.T) {
		got := messages(check(t, `{ user(handle: "x") { name } }`))
		want := []string{`Unknown argument 'handle' on field 'user'`}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("problems mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("on directive", func(t *testing.T) {
		got := messages(check(t, `{ user(id: "1") @skip(when: true) { name } }`))
		want := []string{`Unknown argument 'when' on directive '@skip'`}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("problems mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unresolved owner is silent", func(t *testing.T) {
		// The unknown field and directive are reported; their arguments
		// have no declaration to check against.
		got := messages(check(t, `{ bogus(x: 1) @nope(y: 2) }`))
		want := []string{
			`Cannot query field 'bogus' on type 'Query'`,
			`Unknown directive '@nope'`,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("problems mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestUnknownTypeConditions(t *testing.T) {
	got := messages(check(t, `
		{ pet { ... on Robot { serial } ...droid } }
		fragment droid on Android { model }
	`))
	want := []string{
		`Unknown type 'Robot'`,
		`Unknown type 'Android'`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("problems mismatch (-want +got):\n%s", diff)
	}
}

func TestProblemPositions(t *testing.T) {
	problems := check(t, "{\n  user(id: \"1\") {\n    email\n  }\n}")
	require.Len(t, problems, 1)
	require.Equal(t, 3, problems[0].Line)
	require.Greater(t, problems[0].Column, 0)
}

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSDL = `
type Query {
  user(id: ID!): User
}

type User {
  id: ID!
  name: String
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func captureOutput(t *testing.T, fn func() error) (stdout, stderr string, err error) {
	t.Helper()
	oldOut, oldErr := os.Stdout, os.Stderr
	defer func() {
		os.Stdout, os.Stderr = oldOut, oldErr
	}()

	outR, outW, _ := os.Pipe()
	errR, errW, _ := os.Pipe()
	os.Stdout, os.Stderr = outW, errW

	doneOut := make(chan struct{})
	var bufOut bytes.Buffer
	go func() { io.Copy(&bufOut, outR); close(doneOut) }()

	doneErr := make(chan struct{})
	var bufErr bytes.Buffer
	go func() { io.Copy(&bufErr, errR); close(doneErr) }()

	err = fn()
	outW.Close()
	errW.Close()
	<-doneOut
	<-doneErr
	stdout, stderr = bufOut.String(), bufErr.String()
	return
}

func TestHelp(t *testing.T) {
	out, _, err := captureOutput(t, func() error {
		return run([]string{"help", "check"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "check FLAGS")
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := captureOutput(t, func() error {
		return run([]string{"frobnicate"})
	})
	require.Error(t, err)
}

func TestCheckClean(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, dir, "schema.graphql", testSDL)
	queryFile := writeFile(t, dir, "q.graphql", `{ user(id: "1") { id name } }`)

	out, _, err := captureOutput(t, func() error {
		return run([]string{"check", "-schema", schemaFile, queryFile})
	})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCheckReportsProblems(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, dir, "schema.graphql", testSDL)
	queryFile := writeFile(t, dir, "q.graphql", `{ user(id: "1") { email } }`)

	out, _, err := captureOutput(t, func() error {
		return run([]string{"check", "-schema", schemaFile, queryFile})
	})
	require.Error(t, err)
	require.Contains(t, out, "Cannot query field 'email' on type 'User'")
	require.Contains(t, out, queryFile+":")
}

func TestRenderSDL(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, dir, "schema.graphql", testSDL)

	out, _, err := captureOutput(t, func() error {
		return run([]string{"render-sdl", "-schema", schemaFile})
	})
	require.NoError(t, err)
	require.Contains(t, out, "type Query")
	require.Contains(t, out, "type User")
	require.NotContains(t, out, "__Schema")
}

func TestRenderSDLWithIntrospection(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, dir, "schema.graphql", testSDL)

	out, _, err := captureOutput(t, func() error {
		return run([]string{"render-sdl", "-schema", schemaFile, "-introspection"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "type __Schema")
}

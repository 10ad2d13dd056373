package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	doc := `widgets:
  - name: ids
    kind: list-box
    separator: ","
    regex: "[0-9]+"
    default: "1,2"
    required: true
  - name: colors
    options: [red, green]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widgets.yaml"), []byte(doc), 0o644))
	return dir
}

func TestSplitCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "split", "--text", "a,b;;c", "--separator", ",;")
	require.NoError(t, err)

	var values []string
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	assert.Equal(t, []string{"a", "b", "c"}, values)
}

func TestSplitCommand_StdinKeepsEmptyValues(t *testing.T) {
	out, _, err := runCLI(t, "a\n\nb\n", "split", "--omit-empty=false")
	require.NoError(t, err)

	var values []string
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	assert.Equal(t, []string{"a", "", "b"}, values)
}

func TestSplitCommand_UnsupportedEscapeWarns(t *testing.T) {
	out, stderr, err := runCLI(t, "", "split", "--text", "a,b", "--separator", `,\q`)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Unsupported escape sequence")

	var values []string
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	assert.Equal(t, []string{"a,b"}, values)
}

func TestValidateCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "validate", "--text", "1,22,x", "--separator", ",", "--regex", `\d+`)
	var exit *exitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 1, exit.code)
	assert.Equal(t, "Value 3 is not valid:\nThe given input 'x' is not valid.", exit.message)
	assert.Empty(t, out)

	out, _, err = runCLI(t, "", "validate", "--text", "1,22", "--separator", ",", "--regex", `\d+`)
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	_, _, err = runCLI(t, "", "validate", "--text", "1", "--regex", "(")
	require.Error(t, err)
	assert.False(t, errors.As(err, &exit))
}

func TestWidgetCommand(t *testing.T) {
	dir := writeConfig(t)

	out, _, err := runCLI(t, "", "widget", "ids", "--config", dir, "--text", "4,5")
	require.NoError(t, err)
	assert.Contains(t, out, `"values": [`)
	assert.Contains(t, out, `"valid": true`)

	_, _, err = runCLI(t, "", "widget", "colors", "--config", dir, "--text", "red,blue")
	var exit *exitError
	require.True(t, errors.As(err, &exit))
	assert.Contains(t, exit.message, "'blue' is not one of the possible values.")

	_, _, err = runCLI(t, "", "widget", "missing", "--config", dir, "--text", "x")
	require.ErrorContains(t, err, `widget "missing" not found`)
}

func TestSchemaCommand(t *testing.T) {
	dir := writeConfig(t)

	out, _, err := runCLI(t, "", "schema", "ids", "--config", dir)
	require.NoError(t, err)
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "array", schema["type"])

	out, _, err = runCLI(t, "", "schema", "ids", "--config", dir, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "type: array")

	_, _, err = runCLI(t, "", "schema", "ids", "--config", dir, "--format", "xml")
	require.ErrorContains(t, err, "unsupported format")
}

func TestRenderCommand(t *testing.T) {
	dir := writeConfig(t)
	themePath := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(themePath, []byte("name: acme\ntokens:\n  brand: \"#123456\"\n"), 0o644))

	out, _, err := runCLI(t, "", "render", "ids", "--config", dir, "--theme-file", themePath, "--theme", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, `data-widget="ids"`)
	assert.Contains(t, out, "<li>1</li>")
}

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polypheny/polytype/polytype"
)

func run(t *testing.T, s *session, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(s)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func newTestSession() *session {
	return &session{factory: polytype.NewFactory(nil)}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "least restrictive",
			args: []string{"lrt", "INTEGER", "BIGINT"},
			want: "BIGINT NOT NULL\n",
		},
		{
			name: "least restrictive nullable",
			args: []string{"lrt", "INTEGER NULL", "DECIMAL(10, 2)"},
			want: "DECIMAL(12, 2)\n",
		},
		{
			name: "no common type",
			args: []string{"lrt", "INTEGER", "VARCHAR"},
			want: "no common type\n",
		},
		{
			name: "strict cast",
			args: []string{"cast", "INTEGER", "VARCHAR"},
			want: "VARCHAR NOT NULL can't be cast to INTEGER NOT NULL\n",
		},
		{
			name: "coercing cast",
			args: []string{"cast", "--coerce", "INTEGER", "VARCHAR"},
			want: "VARCHAR NOT NULL can be cast to INTEGER NOT NULL\n",
		},
		{
			name: "assign",
			args: []string{"assign", "BIGINT", "INTEGER"},
			want: "INTEGER NOT NULL can be assigned to BIGINT NOT NULL\n",
		},
		{
			name: "assign across families",
			args: []string{"assign", "INTEGER", "DATE"},
			want: "DATE NOT NULL can't be assigned to INTEGER NOT NULL\n",
		},
		{
			name: "json arguments",
			args: []string{"--describe-json", "lrt", `{"kind":"SMALLINT"}`, `"INTEGER NULL"`},
			want: "INTEGER\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, newTestSession(), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := [][]string{
		{"lrt"},
		{"lrt", "INTEGR"},
		{"cast", "INTEGER"},
		{"--describe-json", "describe", "{"},
		{"graph"},
		{"graph", "--precedence", "NOPE"},
		{"graph", "--precedence", "MAP"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := run(t, newTestSession(), args...)
			assert.Error(t, err)
		})
	}
}

func TestDescribe(t *testing.T) {
	got, err := run(t, newTestSession(), "describe", "ROW(a INTEGER, b VARCHAR(3) ARRAY)")
	require.NoError(t, err)

	assert.Contains(t, got, "RecordType(INTEGER NOT NULL a, VARCHAR(3) NOT NULL ARRAY NOT NULL b) NOT NULL")
	assert.Contains(t, got, "b:\n")
	assert.Contains(t, got, "  component:\n")
	assert.Contains(t, got, "    | digest    | VARCHAR(3) NOT NULL")
	assert.Contains(t, got, "| charset   | ISO-8859-1")
}

func TestDescribeJSON(t *testing.T) {
	got, err := run(t, newTestSession(), "--describe-json", "describe", `{"kind":"DECIMAL","precision":5,"scale":2,"nullable":true}`)
	require.NoError(t, err)

	assert.Contains(t, got, "| DECIMAL(5, 2)")
	assert.Contains(t, got, "| NUMERIC")
	assert.Contains(t, got, "| nullable  | true")
}

func TestRules(t *testing.T) {
	strict, err := run(t, newTestSession(), "rules")
	require.NoError(t, err)
	assert.Regexp(t, `\| SMALLINT +\| TINYINT, SMALLINT +\|`, strict)

	coerce, err := run(t, newTestSession(), "rules", "--coerce")
	require.NoError(t, err)
	assert.Greater(t, len(coerce), len(strict))
}

func TestGraph(t *testing.T) {
	got, err := run(t, newTestSession(), "graph", "MAP(VARCHAR, INTEGER)")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "digraph"), got)
	assert.Contains(t, got, "MAP_0")

	got, err = run(t, newTestSession(), "graph", "--lattice")
	require.NoError(t, err)
	assert.Contains(t, got, "TINYINT->SMALLINT")

	got, err = run(t, newTestSession(), "graph", "--precedence", "timestamp")
	require.NoError(t, err)
	assert.Contains(t, got, "TIMESTAMP->DATE")
}

func TestCache(t *testing.T) {
	s := newTestSession()
	_, err := run(t, s, "lrt", "SMALLINT", "TINYINT")
	require.NoError(t, err)

	got, err := run(t, s, "cache")
	require.NoError(t, err)
	assert.Contains(t, got, "SMALLINT NOT NULL")
	assert.Contains(t, got, "TINYINT NOT NULL")
}

func TestExecuteLine(t *testing.T) {
	s := newTestSession()
	assert.NoError(t, s.executeLine(""))
	assert.NoError(t, s.executeLine("cast --coerce 'VARCHAR(5) CHARACTER SET \"UTF-8\"' INTEGER"))
	assert.Error(t, s.executeLine("repl"))
	assert.Error(t, s.executeLine("describe 'INTEGER"))
}

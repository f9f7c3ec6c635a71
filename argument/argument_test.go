package argument

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasvieiramay/apidoc/config"
	"github.com/lucasvieiramay/apidoc/internal/testutil"
	"github.com/lucasvieiramay/apidoc/loader"
	"github.com/lucasvieiramay/apidoc/node"
)

func TestReplaceArgument(t *testing.T) {
	tree := node.FromAny(map[string]any{
		"a": "${x}",
		"b": []any{"${x}", map[string]any{"c": "${x}", "d": 5}},
	})

	got := ReplaceArgument(tree, "x", "v")

	want := map[string]any{
		"a": "v",
		"b": []any{"v", map[string]any{"c": "v", "d": int64(5)}},
	}
	if diff := cmp.Diff(want, got.ToAny()); diff != "" {
		t.Errorf("ReplaceArgument mismatch (-want +got):\n%s", diff)
	}

	a, _ := tree.Get("a")
	s, _ := a.StringValue()
	assert.Equal(t, "${x}", s, "input must not be modified")
}

func TestReplaceArgumentCases(t *testing.T) {
	tests := []struct {
		name  string
		tree  string
		arg   string
		value any
		want  any
	}{
		{
			name:  "no placeholder",
			tree:  `{a: plain, b: 3}`,
			arg:   "x",
			value: "v",
			want:  map[string]any{"a": "plain", "b": int64(3)},
		},
		{
			name:  "several occurrences in one string",
			tree:  `{uri: "https://${host}/api?h=${host}"}`,
			arg:   "host",
			value: "example.com",
			want:  map[string]any{"uri": "https://example.com/api?h=example.com"},
		},
		{
			name:  "numeric value",
			tree:  `{uri: "http://localhost:${port}"}`,
			arg:   "port",
			value: 8080,
			want:  map[string]any{"uri": "http://localhost:8080"},
		},
		{
			name:  "keys are untouched",
			tree:  `{"${x}": "${x}"}`,
			arg:   "x",
			value: "v",
			want:  map[string]any{"${x}": "v"},
		},
		{
			name:  "other names are untouched",
			tree:  `{a: "${y} ${x}"}`,
			arg:   "x",
			value: true,
			want:  map[string]any{"a": "${y} true"},
		},
		{
			name:  "null value",
			tree:  `{a: "[${x}]"}`,
			arg:   "x",
			value: nil,
			want:  map[string]any{"a": "[]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReplaceArgument(testutil.Tree(t, tt.tree), tt.arg, tt.value)
			if diff := cmp.Diff(tt.want, got.ToAny()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReplaceArgumentKeepsKeyOrder(t *testing.T) {
	tree := testutil.Tree(t, "z: ${x}\na: ${x}\nm: 1\n")
	got := ReplaceArgument(tree, "x", "v")
	assert.Equal(t, []string{"z", "a", "m"}, got.Keys())
}

func TestReplaceArguments(t *testing.T) {
	tree := testutil.Tree(t, `{base: "${url}/items"}`)
	args := config.Arguments{
		{Name: "url", Value: "https://${host}"},
		{Name: "host", Value: "example.com"},
	}

	got := ReplaceArguments(tree, args)
	v, ok := got.Get("base")
	require.True(t, ok)
	s, _ := v.StringValue()
	assert.Equal(t, "https://example.com/items", s)
}

func TestUnresolved(t *testing.T) {
	tree := testutil.Tree(t, `
a: "${one} and ${two}"
b: ["${one}", 3, "${three}"]
c: "$notaplaceholder"
`)
	assert.Equal(t, []string{"one", "two", "three"}, Unresolved(tree))
	assert.Empty(t, Unresolved(ReplaceArguments(tree, config.Arguments{
		{Name: "one", Value: 1}, {Name: "two", Value: 2}, {Name: "three", Value: 3},
	})))
}

func TestSubstitutorLogs(t *testing.T) {
	var rec recordingLogger
	s := &Substitutor{Logger: &rec}
	s.ReplaceArgument(testutil.Tree(t, `{a: "${x}", b: "${x}", c: y}`), "x", "v")
	require.Len(t, rec.messages, 1)
	assert.Equal(t, "substituted argument", rec.messages[0])
	assert.Equal(t, []any{"name", "x", "scalars", 2}, rec.attrs[0])
}

type recordingLogger struct {
	messages []string
	attrs    [][]any
}

func (r *recordingLogger) Debug(msg string, attrs ...any) {
	r.messages = append(r.messages, msg)
	r.attrs = append(r.attrs, attrs)
}
func (r *recordingLogger) Info(string, ...any)       {}
func (r *recordingLogger) Warn(string, ...any)       {}
func (r *recordingLogger) Error(string, ...any)      {}
func (r *recordingLogger) With(...any) loader.Logger { return r }

package merger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasvieiramay/apidoc/internal/testutil"
	"github.com/lucasvieiramay/apidoc/loader"
	"github.com/lucasvieiramay/apidoc/node"
)

func TestMergeSources(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		want      map[string]any
	}{
		{
			name:      "no fragments",
			fragments: nil,
			want:      map[string]any{},
		},
		{
			name:      "single fragment",
			fragments: []string{`{a: 1, b: {c: x}}`},
			want:      map[string]any{"a": int64(1), "b": map[string]any{"c": "x"}},
		},
		{
			name:      "later scalar wins",
			fragments: []string{`{a: 1}`, `{a: 2}`},
			want:      map[string]any{"a": int64(2)},
		},
		{
			name:      "nested partial override",
			fragments: []string{`{v: {label: One, uri: /one}}`, `{v: {label: Uno}}`},
			want:      map[string]any{"v": map[string]any{"label": "Uno", "uri": "/one"}},
		},
		{
			name:      "sequences are replaced not concatenated",
			fragments: []string{`{tags: [a, b]}`, `{tags: [c]}`},
			want:      map[string]any{"tags": []any{"c"}},
		},
		{
			name:      "type conflict last writer wins",
			fragments: []string{`{a: {b: 1}}`, `{a: text}`, `{c: 1}`, `{c: {d: 2}}`},
			want:      map[string]any{"a": "text", "c": map[string]any{"d": int64(2)}},
		},
		{
			name:      "three fragments accumulate",
			fragments: []string{`{versions: {v1: {}}}`, `{versions: {v2: {}}}`, `{categories: {c: {}}}`},
			want: map[string]any{
				"versions":   map[string]any{"v1": map[string]any{}, "v2": map[string]any{}},
				"categories": map[string]any{"c": map[string]any{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fragments []*node.Node
			for _, src := range tt.fragments {
				fragments = append(fragments, testutil.Tree(t, src))
			}
			got := MergeSources(fragments)
			if diff := cmp.Diff(tt.want, got.ToAny()); diff != "" {
				t.Errorf("MergeSources mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeSourcesSingleFragmentIsIdentity(t *testing.T) {
	f := testutil.Tree(t, `
versions:
  v2: {methods: {b: {}, a: {}}}
  v1: {}
`)
	got := MergeSources([]*node.Node{f})
	assert.True(t, got.Equal(f))
	assert.NotSame(t, f, got)

	versions, _ := got.Get("versions")
	assert.Equal(t, []string{"v2", "v1"}, versions.Keys())
}

func TestMergeSourcesKeyOrder(t *testing.T) {
	a := testutil.Tree(t, `{versions: {v2: {}, v1: {}}}`)
	b := testutil.Tree(t, `{versions: {v3: {}, v1: {label: x}}}`)

	got := MergeSources([]*node.Node{a, b})
	versions, _ := got.Get("versions")
	assert.Equal(t, []string{"v2", "v1", "v3"}, versions.Keys(), "new keys append after first-seen keys")
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	a := testutil.Tree(t, `{v: {x: 1, nested: {y: 2}}}`)
	b := testutil.Tree(t, `{v: {x: 3, nested: {z: 4}}}`)
	aBefore, bBefore := a.Clone(), b.Clone()

	got := Merge(a, b)

	assert.True(t, a.Equal(aBefore), "base must not be modified")
	assert.True(t, b.Equal(bBefore), "override must not be modified")

	want := map[string]any{"v": map[string]any{"x": int64(3), "nested": map[string]any{"y": int64(2), "z": int64(4)}}}
	if diff := cmp.Diff(want, got.ToAny()); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}

	// the result shares no nodes with the override
	nested, ok := got.Lookup([]string{"v", "nested"})
	require.True(t, ok)
	nested.Set("extra", node.NewScalar(true))
	assert.True(t, b.Equal(bBefore))
}

func TestMergeNilHandling(t *testing.T) {
	base := testutil.Tree(t, `{a: 1}`)
	assert.True(t, Merge(base, nil).Equal(base))
	assert.True(t, Merge(nil, base).Equal(base))

	got := MergeSources([]*node.Node{nil, base, nil})
	assert.True(t, got.Equal(base))
}

func TestMergerLogsKindChanges(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	m := New()
	m.Logger = loader.NewSlogAdapter(slog.New(handler))
	m.MergeSources([]*node.Node{
		testutil.Tree(t, `{a: {b: 1}}`),
		testutil.Tree(t, `{a: [1]}`),
	})

	assert.Contains(t, buf.String(), "merging fragment")
	assert.Contains(t, buf.String(), "path=a")
	assert.Contains(t, buf.String(), "was=mapping")
}

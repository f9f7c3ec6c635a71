package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasvieiramay/apidoc/docerrors"
	"github.com/lucasvieiramay/apidoc/internal/testutil"
)

func TestLoadFromFileFormats(t *testing.T) {
	dir := testutil.WriteTxtar(t, `
-- doc.yaml --
versions:
  v2: {label: Second}
  v1: {label: First}
-- doc.json --
{"versions": {"v2": {"label": "Second"}, "v1": {"label": "First"}}}
-- doc.toml --
[versions.v2]
label = "Second"

[versions.v1]
label = "First"
-- doc.txt --
{"versions": {"v2": {"label": "Second"}, "v1": {"label": "First"}}}
`)

	want := map[string]any{
		"versions": map[string]any{
			"v2": map[string]any{"label": "Second"},
			"v1": map[string]any{"label": "First"},
		},
	}

	for _, name := range []string{"doc.yaml", "doc.json", "doc.toml", "doc.txt"} {
		t.Run(name, func(t *testing.T) {
			tree, err := LoadFromFile(filepath.Join(dir, name))
			require.NoError(t, err)
			if diff := cmp.Diff(want, tree.ToAny()); diff != "" {
				t.Errorf("decoded tree mismatch (-want +got):\n%s", diff)
			}

			versions, ok := tree.Get("versions")
			require.True(t, ok)
			assert.Equal(t, []string{"v2", "v1"}, versions.Keys(), "source order must be kept")
		})
	}
}

func TestLoadFromFileTOMLKeyOrder(t *testing.T) {
	path := testutil.WriteTempFile(t, "order.toml", `
zeta = 1
alpha = "a"

[categories.second]
order = 2

[categories.first]
order = 1

[[versions.v1.examples]]
name = "one"
id = 1
`)

	tree, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "categories", "versions"}, tree.Keys())

	categories, _ := tree.Get("categories")
	assert.Equal(t, []string{"second", "first"}, categories.Keys())

	examples, ok := tree.Lookup([]string{"versions", "v1", "examples"})
	require.True(t, ok)
	require.True(t, examples.IsSequence())
	items := examples.Items()
	require.Len(t, items, 1)
	assert.Equal(t, []string{"name", "id"}, items[0].Keys())
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("invalid YAML", func(t *testing.T) {
		path := testutil.WriteTempFile(t, "bad.yaml", "a: [unclosed\n")
		_, err := LoadFromFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, docerrors.ErrParse)
	})

	t.Run("invalid TOML", func(t *testing.T) {
		path := testutil.WriteTempFile(t, "bad.toml", "a = = 1\n")
		_, err := LoadFromFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, docerrors.ErrParse)
	})

	t.Run("top level sequence", func(t *testing.T) {
		path := testutil.WriteTempFile(t, "list.yaml", "- a\n- b\n")
		_, err := LoadFromFile(path)
		require.Error(t, err)

		var structErr *docerrors.StructureError
		require.ErrorAs(t, err, &structErr)
		assert.Equal(t, "mapping", structErr.Expected)
		assert.Equal(t, "sequence", structErr.Actual)
	})

	t.Run("directory given as file", func(t *testing.T) {
		_, err := LoadFromFile(t.TempDir())
		assert.ErrorIs(t, err, docerrors.ErrConfig)
	})

	t.Run("file too large", func(t *testing.T) {
		path := testutil.WriteTempFile(t, "big.yaml", "a: "+strings.Repeat("x", 64)+"\n")
		l := New()
		l.MaxFileSize = 16
		_, err := l.LoadFromFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, docerrors.ErrParse)
		assert.Contains(t, err.Error(), "exceeds maximum")
	})
}

func TestLoadFromFileEmpty(t *testing.T) {
	path := testutil.WriteTempFile(t, "empty.yaml", "")
	tree, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, tree.IsMapping())
	assert.Equal(t, 0, tree.Len())
}

func TestLoadFromFileCommentOnly(t *testing.T) {
	path := testutil.WriteTempFile(t, "notes.yaml", "# nothing yet\n\n# still nothing\n")
	tree, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, tree.IsMapping())
	assert.Equal(t, 0, tree.Len())
}

func TestLoadAllFromDirectory(t *testing.T) {
	dir := testutil.WriteTxtar(t, `
-- b.yaml --
name: b
-- a.json --
{"name": "a"}
-- c.toml --
name = "c"
-- .hidden.yaml --
name: hidden
-- notes.md --
# not a fragment
-- sub/d.yaml --
name: d
`)

	fragments, err := LoadAllFromDirectory(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range fragments {
		n, ok := f.Get("name")
		require.True(t, ok)
		s, _ := n.StringValue()
		names = append(names, s)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestLoadAllFromDirectoryErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadAllFromDirectory(filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("bad fragment aborts", func(t *testing.T) {
		dir := testutil.WriteTxtar(t, `
-- a.yaml --
ok: true
-- b.yaml --
key: {bad
`)
		_, err := LoadAllFromDirectory(dir)
		assert.ErrorIs(t, err, docerrors.ErrParse)
	})

	t.Run("empty directory", func(t *testing.T) {
		fragments, err := LoadAllFromDirectory(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, fragments)
	})
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.yaml", FormatYAML},
		{"a.YML", FormatYAML},
		{"dir/a.json", FormatJSON},
		{"a.toml", FormatTOML},
		{"a.txt", FormatUnknown},
		{"noext", FormatUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFromPath(tt.path), tt.path)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, ParseFormat("YML"))
	assert.Equal(t, FormatJSON, ParseFormat(" json "))
	assert.Equal(t, FormatTOML, ParseFormat("toml"))
	assert.Equal(t, FormatUnknown, ParseFormat("xml"))
}

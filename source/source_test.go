package source

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasvieiramay/apidoc/config"
	"github.com/lucasvieiramay/apidoc/docerrors"
	"github.com/lucasvieiramay/apidoc/extender"
	"github.com/lucasvieiramay/apidoc/internal/testutil"
	"github.com/lucasvieiramay/apidoc/loader"
	"github.com/lucasvieiramay/apidoc/merger"
	"github.com/lucasvieiramay/apidoc/model"
	"github.com/lucasvieiramay/apidoc/node"
)

type fakeLoader struct {
	dirCalls  []string
	fileCalls []string
	dirs      [][]*node.Node
	files     []*node.Node
	err       error
}

func (f *fakeLoader) LoadAllFromDirectory(dir string) ([]*node.Node, error) {
	f.dirCalls = append(f.dirCalls, dir)
	if f.err != nil {
		return nil, f.err
	}
	out := f.dirs[0]
	f.dirs = f.dirs[1:]
	return out, nil
}

func (f *fakeLoader) LoadFromFile(path string) (*node.Node, error) {
	f.fileCalls = append(f.fileCalls, path)
	out := f.files[0]
	f.files = f.files[1:]
	return out, nil
}

type fakeMerger struct {
	calls  [][]*node.Node
	result *node.Node
}

func (f *fakeMerger) MergeSources(fragments []*node.Node) *node.Node {
	f.calls = append(f.calls, fragments)
	return f.result
}

type fakeExtender struct {
	trees  []*node.Node
	paths  [][]string
	result *node.Node
}

func (f *fakeExtender) Extends(tree *node.Node, paths ...string) (*node.Node, error) {
	f.trees = append(f.trees, tree)
	f.paths = append(f.paths, paths)
	return f.result, nil
}

func kv(k, v string) *node.Node {
	n := node.NewMapping()
	n.Set(k, node.NewScalar(v))
	return n
}

func TestCollaboratorDefaults(t *testing.T) {
	s := New()

	assert.IsType(t, &loader.Loader{}, s.LoaderOrDefault())
	assert.IsType(t, &merger.Merger{}, s.MergerOrDefault())
	assert.IsType(t, &extender.Extender{}, s.ExtenderOrDefault())

	fl, fm, fe := &fakeLoader{}, &fakeMerger{}, &fakeExtender{}
	s.Loader, s.Merger, s.Extender = fl, fm, fe
	assert.Same(t, fl, s.LoaderOrDefault())
	assert.Same(t, fm, s.MergerOrDefault())
	assert.Same(t, fe, s.ExtenderOrDefault())

	s.Loader, s.Merger, s.Extender = nil, nil, nil
	assert.IsType(t, &loader.Loader{}, s.LoaderOrDefault())
	assert.IsType(t, &merger.Merger{}, s.MergerOrDefault())
	assert.IsType(t, &extender.Extender{}, s.ExtenderOrDefault())
}

func TestCreateFromConfigCallOrder(t *testing.T) {
	fl := &fakeLoader{
		dirs:  [][]*node.Node{{kv("a", "b"), kv("c", "d")}, {kv("z", "y")}},
		files: []*node.Node{kv("e", "f"), kv("g", "h")},
	}
	merged := kv("i", "j")
	fm := &fakeMerger{result: merged}
	fe := &fakeExtender{result: testutil.Tree(t, `{versions: {v1: {methods: {m: {uri: "${var}"}}}}}`)}

	s := &Source{Loader: fl, Merger: fm, Extender: fe}
	cfg := &config.Config{Input: config.Input{
		Directories: []string{"directory1", "directory2"},
		Files:       []string{"file1", "file2"},
		Arguments:   config.Arguments{{Name: "var", Value: "value"}},
	}}

	res, err := s.Run(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, res.Root)

	assert.Equal(t, []string{"directory1", "directory2"}, fl.dirCalls)
	assert.Equal(t, []string{"file1", "file2"}, fl.fileCalls)

	require.Len(t, fm.calls, 1)
	var got []any
	for _, f := range fm.calls[0] {
		got = append(got, f.ToAny())
	}
	want := []any{
		map[string]any{"a": "b"},
		map[string]any{"c": "d"},
		map[string]any{"z": "y"},
		map[string]any{"e": "f"},
		map[string]any{"g": "h"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge input mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, fe.trees, 1)
	assert.Same(t, merged, fe.trees[0])
	assert.Equal(t, []string{
		"categories/?",
		"versions/?",
		"versions/?/methods/?",
		"versions/?/types/?",
		"versions/?/references/?",
	}, fe.paths[0])

	uri, ok := res.Tree.Lookup([]string{"versions", "v1", "methods", "m", "uri"})
	require.True(t, ok)
	assert.Equal(t, "value", uri.Value())
	assert.Empty(t, res.Unresolved)
}

func TestReplaceArgument(t *testing.T) {
	root := node.FromAny(map[string]any{
		"a": "${a1}",
		"b": []any{"c", "${a1}", map[string]any{"d": "${a1}", "e": "f", "g": 123}},
	})

	got := New().ReplaceArgument(root, "a1", "v")

	want := map[string]any{
		"a": "v",
		"b": []any{"c", "v", map[string]any{"d": "v", "e": "f", "g": int64(123)}},
	}
	if diff := cmp.Diff(want, got.ToAny()); diff != "" {
		t.Errorf("ReplaceArgument mismatch (-want +got):\n%s", diff)
	}
}

func TestHideAndRemove(t *testing.T) {
	root := model.NewRoot()
	v1, v2 := model.NewVersion("v1"), model.NewVersion("v2")
	root.AddVersion(v1)
	root.AddVersion(v2)
	c1, c2 := model.NewCategory("c1"), model.NewCategory("c2")
	root.AddCategory(c1)
	root.AddCategory(c2)
	for _, v := range []*model.Version{v1, v2} {
		m1, m2 := model.NewMethod("m1"), model.NewMethod("m2")
		m1.Category, m2.Category = "c1", "c2"
		v.AddMethod(m1)
		v.AddMethod(m2)
	}

	s := New()
	s.HideFilteredElements(root, config.Filter{
		Versions:   config.FilterRule{Excludes: []string{"v1"}},
		Categories: config.FilterRule{Includes: []string{"c1"}},
	})
	s.RemoveHiddenElements(root)

	assert.Equal(t, []string{"v2"}, root.VersionOrder)
	assert.Equal(t, []string{"m1"}, root.Versions["v2"].MethodOrder)
}

func TestRunEndToEnd(t *testing.T) {
	dir := testutil.WriteTxtar(t, `
-- docs/01-categories.yaml --
categories:
  users: {order: 1}
  admin: {order: 2}
-- docs/02-v1.yaml --
versions:
  v1:
    uri: "https://${host}/v1"
    methods:
      list_users: {uri: /users, category: users}
      purge: {uri: /purge, category: admin}
-- docs/03-v2.json --
{"versions": {"v2": {"extends": "v1", "methods": {"create_user": {"extends": "list_users", "method": "post"}}}}}
-- extra.toml --
[versions.beta]
label = "Beta"
`)

	cfg := &config.Config{
		Input: config.Input{
			Directories: []string{filepath.Join(dir, "docs")},
			Files:       []string{filepath.Join(dir, "extra.toml")},
			Arguments:   config.Arguments{{Name: "host", Value: "api.example.com"}},
		},
		Filter: config.Filter{
			Versions:   config.FilterRule{Excludes: []string{"beta"}},
			Categories: config.FilterRule{Excludes: []string{"admin"}},
		},
	}

	res, err := New().Run(context.Background(), cfg)
	require.NoError(t, err)

	var versions []string
	for _, v := range res.Root.Versions() {
		versions = append(versions, v.Name)
	}
	assert.Equal(t, []string{"v1", "v2"}, versions)

	v2 := res.Root.Model().Versions["v2"]
	assert.Equal(t, "https://api.example.com/v1", v2.URI)
	assert.ElementsMatch(t, []string{"list_users", "create_user"}, v2.MethodOrder)
	assert.Equal(t, "POST", v2.Methods["create_user"].HTTPMethod)
	assert.Equal(t, "/users", v2.Methods["create_user"].URI)

	categories := res.Root.Categories()
	require.Len(t, categories, 1)
	assert.Equal(t, "users", categories[0].Name)
	assert.Equal(t, 2, len(categories[0].Methods))
	assert.Equal(t, []string{"v1", "v2"}, categories[0].Methods[1].Versions())

	assert.Equal(t, 2, res.Stats.Versions)
	assert.Equal(t, 1, res.Stats.Categories)
}

func TestRunErrors(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := New().Run(context.Background(), nil)
		assert.ErrorIs(t, err, docerrors.ErrConfig)
	})

	t.Run("no input", func(t *testing.T) {
		_, err := New().CreateFromConfig(context.Background(), config.Default())
		assert.ErrorIs(t, err, docerrors.ErrConfig)
	})

	t.Run("loader failure", func(t *testing.T) {
		boom := errors.New("boom")
		s := &Source{Loader: &fakeLoader{err: boom}}
		cfg := &config.Config{Input: config.Input{Directories: []string{"d"}}}
		_, err := s.Run(context.Background(), cfg)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("reference error", func(t *testing.T) {
		path := testutil.WriteTempFile(t, "doc.yaml", "versions: {v1: {extends: v0}}\n")
		cfg := &config.Config{Input: config.Input{Files: []string{path}}}
		_, err := New().Run(context.Background(), cfg)
		assert.ErrorIs(t, err, docerrors.ErrReference)
	})

	t.Run("missing versions", func(t *testing.T) {
		path := testutil.WriteTempFile(t, "doc.yaml", "categories: {}\n")
		cfg := &config.Config{Input: config.Input{Files: []string{path}}}
		_, err := New().Run(context.Background(), cfg)
		assert.ErrorIs(t, err, docerrors.ErrStructure)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		path := testutil.WriteTempFile(t, "doc.yaml", "versions: {}\n")
		cfg := &config.Config{Input: config.Input{Files: []string{path}}}
		_, err := New().Run(ctx, cfg)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunReportsUnresolvedPlaceholders(t *testing.T) {
	path := testutil.WriteTempFile(t, "doc.yaml", "versions: {v1: {uri: '${host}'}}\n")
	cfg := &config.Config{Input: config.Input{Files: []string{path}}}

	res, err := New().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"host"}, res.Unresolved)
}

func TestRunSkipsEmptyFragments(t *testing.T) {
	dir := testutil.WriteTxtar(t, `
-- a.yaml --
versions: {v1: {}}
-- b.yaml --
# methods are added in a later release
-- c.yaml --
`)
	cfg := &config.Config{Input: config.Input{Directories: []string{dir}}}

	res, err := New().Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, res.Root.Versions(), 1)
	assert.Equal(t, "v1", res.Root.Versions()[0].Name)
}

func TestMergeFromConfig(t *testing.T) {
	dir := testutil.WriteTxtar(t, `
-- a.yaml --
versions: {v1: {methods: {a: {uri: "/${p}"}}}}
-- b.yaml --
versions: {v1: {methods: {b: {extends: a}}}}
`)
	cfg := &config.Config{Input: config.Input{
		Directories: []string{dir},
		Arguments:   config.Arguments{{Name: "p", Value: "x"}},
	}}

	tree, err := New().MergeFromConfig(context.Background(), cfg)
	require.NoError(t, err)

	want := map[string]any{"versions": map[string]any{"v1": map[string]any{"methods": map[string]any{
		"a": map[string]any{"uri": "/x"},
		"b": map[string]any{"uri": "/x"},
	}}}}
	if diff := cmp.Diff(want, tree.ToAny()); diff != "" {
		t.Errorf("merged tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWithOptions(t *testing.T) {
	dir := testutil.WriteTxtar(t, `
-- apidoc.yaml --
input:
  files: [doc.yaml]
-- doc.yaml --
versions: {v1: {methods: {m: {category: nope}}}}
`)

	res, err := BuildWithOptions(WithConfigFile(filepath.Join(dir, "apidoc.yaml")))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Methods)

	_, err = BuildWithOptions(
		WithConfigFile(filepath.Join(dir, "apidoc.yaml")),
		WithStrictReferences(true),
	)
	assert.ErrorIs(t, err, docerrors.ErrReference)
}

func TestBuildWithOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"no config", nil},
		{"nil config", []Option{WithConfig(nil)}},
		{"two configs", []Option{WithConfig(config.Default()), WithConfigFile("a.yaml")}},
		{"nil context", []Option{WithConfig(config.Default()), WithContext(nil)}}, //nolint:staticcheck // nil context is rejected
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildWithOptions(tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid options")
		})
	}
}

package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v4"

	"github.com/lucasvieiramay/apidoc/docerrors"
	"github.com/lucasvieiramay/apidoc/node"
)

// DefaultMaxFileSize is the largest fragment file read when MaxFileSize is 0.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024 // 10MB

// Loader reads documentation fragments from disk.
type Loader struct {
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger
	// MaxFileSize is the maximum fragment size in bytes.
	// Default: 10MB
	MaxFileSize int64
}

// New creates a new Loader instance with default settings.
func New() *Loader {
	return &Loader{}
}

func (l *Loader) log() Logger {
	return OrNop(l.Logger)
}

func (l *Loader) maxFileSize() int64 {
	if l.MaxFileSize > 0 {
		return l.MaxFileSize
	}
	return DefaultMaxFileSize
}

// LoadFromFile reads one fragment. The format comes from the file extension;
// files without a known extension are sniffed as JSON or YAML.
// The top level of a fragment must be a mapping.
func (l *Loader) LoadFromFile(path string) (*node.Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read file: %w", err)
	}
	if info.IsDir() {
		return nil, &docerrors.ConfigError{
			Option:  "file",
			Value:   path,
			Message: "is a directory",
		}
	}
	if info.Size() > l.maxFileSize() {
		return nil, &docerrors.ParseError{
			Path:    path,
			Message: fmt.Sprintf("file size %d exceeds maximum of %d bytes", info.Size(), l.maxFileSize()),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read file: %w", err)
	}

	format := FormatFromPath(path)
	if format == FormatUnknown {
		format = formatFromContent(data)
	}

	tree, err := l.LoadBytes(data, format, path)
	if err != nil {
		return nil, err
	}
	l.log().Debug("loaded fragment", "path", path, "format", string(format), "keys", tree.Len())
	return tree, nil
}

// LoadAllFromDirectory reads every fragment file directly inside dir, in
// lexical file name order. Subdirectories, hidden files and files without a
// .yaml, .yml, .json or .toml extension are skipped.
func (l *Loader) LoadAllFromDirectory(dir string) ([]*node.Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read directory: %w", err)
	}

	var fragments []*node.Node
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isFragmentFile(name) {
			l.log().Debug("skipping directory entry", "dir", dir, "name", name)
			continue
		}
		tree, err := l.LoadFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, tree)
	}

	l.log().Debug("loaded directory", "dir", dir, "fragments", len(fragments))
	return fragments, nil
}

// LoadBytes decodes one fragment held in memory. source names the fragment in
// error messages. An empty document yields an empty mapping.
func (l *Loader) LoadBytes(data []byte, format Format, source string) (*node.Node, error) {
	if int64(len(data)) > l.maxFileSize() {
		return nil, &docerrors.ParseError{
			Path:    source,
			Message: fmt.Sprintf("content size %d exceeds maximum of %d bytes", len(data), l.maxFileSize()),
		}
	}

	var (
		tree *node.Node
		err  error
	)
	if format == FormatTOML {
		tree, err = decodeTOML(data, source)
	} else {
		// JSON is a subset of YAML
		tree, err = decodeYAML(data, source)
	}
	if err != nil {
		return nil, err
	}

	if tree == nil {
		l.log().Debug("empty fragment", "source", source)
		return node.NewMapping(), nil
	}
	if !tree.IsMapping() {
		return nil, &docerrors.StructureError{
			Path:     source,
			Expected: "mapping",
			Actual:   node.KindName(tree),
			Message:  "a fragment must be a mapping at the top level",
		}
	}
	return tree, nil
}

func decodeYAML(data []byte, source string) (*node.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &docerrors.ParseError{Path: source, Message: "invalid YAML/JSON", Cause: err}
	}
	tree, err := node.FromYAML(&doc)
	if err != nil {
		return nil, &docerrors.ParseError{Path: source, Message: "invalid YAML/JSON", Cause: err}
	}
	return tree, nil
}

func decodeTOML(data []byte, source string) (*node.Node, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, &docerrors.ParseError{Path: source, Message: "invalid TOML", Cause: err}
	}
	return tomlToNode(raw, newKeyOrder(md.Keys()), nil), nil
}

// keyOrder records, for every table path, the order in which its keys first
// appear in a TOML document. Array-of-table elements share the path of their
// array.
type keyOrder map[string][]string

func newKeyOrder(keys []toml.Key) keyOrder {
	order := make(keyOrder)
	seen := make(map[string]bool)
	for _, key := range keys {
		for i := range key {
			parent := strings.Join(key[:i], "\x00")
			id := parent + "\x01" + key[i]
			if seen[id] {
				continue
			}
			seen[id] = true
			order[parent] = append(order[parent], key[i])
		}
	}
	return order
}

// keysOf returns the keys of m in document order, followed by any keys the
// metadata did not report, sorted.
func (o keyOrder) keysOf(path []string, m map[string]any) []string {
	known := o[strings.Join(path, "\x00")]
	keys := make([]string, 0, len(m))
	for _, k := range known {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range m {
		if !slices.Contains(keys, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

func tomlToNode(v any, order keyOrder, path []string) *node.Node {
	switch val := v.(type) {
	case map[string]any:
		m := node.NewMapping()
		for _, k := range order.keysOf(path, val) {
			m.Set(k, tomlToNode(val[k], order, append(slices.Clip(path), k)))
		}
		return m
	case []map[string]any:
		s := node.NewSequence()
		for _, item := range val {
			s.Append(tomlToNode(item, order, path))
		}
		return s
	case []any:
		s := node.NewSequence()
		for _, item := range val {
			s.Append(tomlToNode(item, order, path))
		}
		return s
	default:
		return node.NewScalar(val)
	}
}

var defaultLoader = New()

// LoadFromFile reads one fragment using a default Loader.
func LoadFromFile(path string) (*node.Node, error) {
	return defaultLoader.LoadFromFile(path)
}

// LoadAllFromDirectory reads every fragment of dir using a default Loader.
func LoadAllFromDirectory(dir string) ([]*node.Node, error) {
	return defaultLoader.LoadAllFromDirectory(dir)
}

package extender

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"github.com/lucasvieiramay/apidoc/docerrors"
	"github.com/lucasvieiramay/apidoc/internal/pathpattern"
	"github.com/lucasvieiramay/apidoc/loader"
	"github.com/lucasvieiramay/apidoc/merger"
	"github.com/lucasvieiramay/apidoc/node"
)

// DefaultPaths are the patterns extended when building documentation, in the
// order they are applied.
var DefaultPaths = []string{
	"categories/?",
	"versions/?",
	"versions/?/methods/?",
	"versions/?/types/?",
	"versions/?/references/?",
}

const (
	// DefaultExtendsKey is the key naming the bases of a mapping.
	DefaultExtendsKey = "extends"
	// DefaultRemovedKey is the key marking a mapping for deletion.
	DefaultRemovedKey = "removed"
)

// Extender resolves "extends" references in a raw tree.
//
// Concurrency: an Extender holds no state between calls and may be shared.
type Extender struct {
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger loader.Logger
	// ExtendsKey is the key holding references. Default: "extends"
	ExtendsKey string
	// RemovedKey is the key marking mappings to delete. Default: "removed"
	RemovedKey string
	// Separator joins pattern and reference segments. Default: "/"
	Separator string
}

// New creates a new Extender with default settings.
func New() *Extender {
	return &Extender{}
}

func (e *Extender) log() loader.Logger {
	return loader.OrNop(e.Logger)
}

func (e *Extender) extendsKey() string {
	return valueOrDefault(e.ExtendsKey, DefaultExtendsKey)
}

func (e *Extender) removedKey() string {
	return valueOrDefault(e.RemovedKey, DefaultRemovedKey)
}

func (e *Extender) separator() string {
	return valueOrDefault(e.Separator, pathpattern.DefaultSeparator)
}

func valueOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Extends returns a copy of tree in which every mapping found at one of the
// patterns and holding an extends key has been laid on top of its bases.
// With no patterns, DefaultPaths is used. The input tree is not modified.
func (e *Extender) Extends(tree *node.Node, paths ...string) (*node.Node, error) {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	if !tree.IsMapping() {
		return nil, &docerrors.StructureError{
			Expected: "mapping",
			Actual:   node.KindName(tree),
			Message:  "the merged tree must be a mapping",
		}
	}

	patterns := make([]*pathpattern.Pattern, 0, len(paths))
	for _, p := range paths {
		pattern, err := pathpattern.ParseWithSeparator(p, e.separator())
		if err != nil {
			return nil, &docerrors.ConfigError{Option: "paths", Value: p, Cause: err}
		}
		patterns = append(patterns, pattern)
	}

	run := &extendRun{
		e:        e,
		root:     tree.Clone(),
		patterns: patterns,
	}

	for _, pattern := range patterns {
		matches := pattern.Find(run.root)
		e.log().Debug("applying extend pattern", "pattern", pattern.String(), "matches", len(matches))
		for _, m := range matches {
			if err := run.resolve(pattern, m.Path, nil); err != nil {
				return nil, fmt.Errorf("extender: %w", err)
			}
		}
	}

	run.removeMarked()
	return run.root, nil
}

// extendRun holds the working tree of one Extends call.
type extendRun struct {
	e        *Extender
	root     *node.Node
	patterns []*pathpattern.Pattern
}

func (r *extendRun) join(path []string) string {
	return strings.Join(path, r.e.separator())
}

// resolve extends the mapping at path, resolving its bases first. stack holds
// the paths currently being resolved.
func (r *extendRun) resolve(pattern *pathpattern.Pattern, path []string, stack []string) error {
	key := r.join(path)
	if slices.Contains(stack, key) {
		return &docerrors.CycleError{Chain: append(slices.Clone(stack), key)}
	}

	local, ok := r.root.Lookup(path)
	if !ok || !local.IsMapping() {
		return nil
	}
	raw, ok := local.Get(r.e.extendsKey())
	if !ok {
		return nil
	}

	refs, err := r.references(raw, key)
	if err != nil {
		return err
	}
	stack = append(slices.Clip(stack), key)

	m, _ := pattern.MatchPath(path)
	extended := node.NewMapping()
	for _, ref := range refs {
		target, err := pattern.Resolve(m, ref)
		if err != nil {
			return &docerrors.ReferenceError{Ref: ref, Path: key, Cause: err}
		}
		targetKey := r.join(target)

		base, ok := r.root.Lookup(target)
		if !ok {
			return &docerrors.ReferenceError{Ref: ref, Path: key, Message: "nothing found at " + targetKey}
		}
		if !base.IsMapping() {
			return &docerrors.StructureError{
				Path:     targetKey,
				Expected: "mapping",
				Actual:   node.KindName(base),
				Message:  "extended by " + key,
			}
		}

		if _, hasExtends := base.Get(r.e.extendsKey()); hasExtends {
			basePattern, ok := r.patternFor(target)
			if !ok {
				r.e.log().Debug("base outside extend patterns, its extends is ignored", "path", targetKey)
			} else {
				if err := r.resolve(basePattern, target, stack); err != nil {
					return err
				}
				base, _ = r.root.Lookup(target)
			}
		}

		base = base.Clone()
		base.Delete(r.e.extendsKey())
		// a base marked for removal does not pass the mark on
		base.Delete(r.e.removedKey())
		extended = merger.Merge(extended, base)
	}

	own := local.Clone()
	own.Delete(r.e.extendsKey())
	extended = merger.Merge(extended, own)

	r.replace(path, extended)
	r.e.log().Debug("extended mapping", "path", key, "bases", refs)
	return nil
}

// references reads an extends value: a string or a sequence of strings.
func (r *extendRun) references(raw *node.Node, key string) ([]string, error) {
	if s, ok := raw.StringValue(); ok {
		return []string{s}, nil
	}
	if raw.IsSequence() {
		items := raw.Items()
		refs := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.StringValue()
			if !ok {
				return nil, r.invalidExtends(key, item)
			}
			refs = append(refs, s)
		}
		return refs, nil
	}
	return nil, r.invalidExtends(key, raw)
}

func (r *extendRun) invalidExtends(key string, got *node.Node) error {
	return &docerrors.StructureError{
		Path:     key + r.e.separator() + r.e.extendsKey(),
		Expected: "string or sequence of strings",
		Actual:   node.KindName(got),
	}
}

// patternFor returns the first pattern matching path. Relative references of
// a base are read against its own pattern.
func (r *extendRun) patternFor(path []string) (*pathpattern.Pattern, bool) {
	for _, p := range r.patterns {
		if _, ok := p.MatchPath(path); ok {
			return p, true
		}
	}
	return nil, false
}

func (r *extendRun) replace(path []string, value *node.Node) {
	if len(path) == 0 {
		r.root = value
		return
	}
	parent, ok := r.root.Lookup(path[:len(path)-1])
	if !ok || !parent.IsMapping() {
		return
	}
	parent.Set(path[len(path)-1], value)
}

// removeMarked deletes every matched mapping whose removed key is true and
// strips the removed key from the others.
func (r *extendRun) removeMarked() {
	var marked [][]string
	for _, pattern := range r.patterns {
		for _, m := range pattern.Find(r.root) {
			if !m.Node.IsMapping() {
				continue
			}
			flag, ok := m.Node.Get(r.e.removedKey())
			if !ok {
				continue
			}
			if cast.ToBool(flag.Value()) {
				marked = append(marked, m.Path)
				continue
			}
			m.Node.Delete(r.e.removedKey())
		}
	}

	for _, path := range marked {
		parent, ok := r.root.Lookup(path[:len(path)-1])
		if !ok {
			continue
		}
		if parent.Delete(path[len(path)-1]) {
			r.e.log().Debug("removed mapping", "path", r.join(path))
		}
	}
}

var defaultExtender = New()

// Extends extends tree using a default Extender.
func Extends(tree *node.Node, paths ...string) (*node.Node, error) {
	return defaultExtender.Extends(tree, paths...)
}

// Package merger deep-merges documentation fragments into a single tree.
//
// Fragments are merged left to right. When two fragments define the same key,
// nested mappings are merged recursively; any other value from the later
// fragment replaces the earlier one, even when the kinds differ. New keys are
// appended after the keys already present, so the result lists keys in the
// order they were first seen.
//
// Merging never fails and never modifies its inputs:
//
//	merged := merger.MergeSources(fragments)
//
// [Merge] exposes the two-way merge that the extender uses to lay a mapping on
// top of its base.
package merger

import (
	"slices"
	"strings"

	"github.com/lucasvieiramay/apidoc/loader"
	"github.com/lucasvieiramay/apidoc/node"
)

// Merger merges fragment trees.
//
// Concurrency: a Merger holds no state between calls and may be shared.
type Merger struct {
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger loader.Logger
}

// New creates a new Merger instance.
func New() *Merger {
	return &Merger{}
}

// MergeSources merges fragments from left to right and returns a new tree.
// nil fragments are skipped. With no fragments the result is an empty mapping.
func (m *Merger) MergeSources(fragments []*node.Node) *node.Node {
	log := loader.OrNop(m.Logger)

	result := node.NewMapping()
	for i, fragment := range fragments {
		if fragment == nil {
			continue
		}
		log.Debug("merging fragment", "index", i, "keys", fragment.Len())
		result = merge(result, fragment, nil, log)
	}
	return result
}

// Merge lays override on top of base and returns a new tree.
func Merge(base, override *node.Node) *node.Node {
	return merge(base, override, nil, loader.NopLogger{})
}

func merge(base, override *node.Node, path []string, log loader.Logger) *node.Node {
	if override == nil {
		return base.Clone()
	}
	if !base.IsMapping() || !override.IsMapping() {
		logKindChange(log, path, base, override)
		return override.Clone()
	}

	result := base.Clone()
	for _, key := range override.Keys() {
		overrideValue, _ := override.Get(key)
		baseValue, exists := result.Get(key)
		childPath := append(slices.Clip(path), key)
		if exists && baseValue.IsMapping() && overrideValue.IsMapping() {
			result.Set(key, merge(baseValue, overrideValue, childPath, log))
			continue
		}
		if exists {
			logKindChange(log, childPath, baseValue, overrideValue)
		}
		result.Set(key, overrideValue.Clone())
	}
	return result
}

func logKindChange(log loader.Logger, path []string, before, after *node.Node) {
	if before == nil || after == nil || before.Kind() == after.Kind() {
		return
	}
	log.Debug("later fragment replaces value of another kind",
		"path", strings.Join(path, "/"),
		"was", node.KindName(before),
		"now", node.KindName(after))
}

var defaultMerger = New()

// MergeSources merges fragments using a default Merger.
func MergeSources(fragments []*node.Node) *node.Node {
	return defaultMerger.MergeSources(fragments)
}

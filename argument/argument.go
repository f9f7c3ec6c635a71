// Package argument substitutes "${name}" placeholders in a documentation tree.
//
// Substitution is textual and applies to string scalars only: mapping keys,
// numbers, booleans and nulls are never changed. Values of any type are
// converted to their string form with spf13/cast, so an argument holding 8080
// replaces "${port}" with "8080". A nil value becomes the empty string;
// configurations reject null arguments before they get here.
//
//	tree = argument.ReplaceArgument(tree, "host", "api.example.com")
package argument

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/lucasvieiramay/apidoc/config"
	"github.com/lucasvieiramay/apidoc/loader"
	"github.com/lucasvieiramay/apidoc/node"
)

// Substitutor replaces argument placeholders.
type Substitutor struct {
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger loader.Logger
}

// New creates a new Substitutor instance.
func New() *Substitutor {
	return &Substitutor{}
}

// Placeholder returns the placeholder text for name.
func Placeholder(name string) string {
	return "${" + name + "}"
}

// ReplaceArgument returns a copy of tree in which every "${name}" inside a
// string scalar is replaced by the string form of value.
func (s *Substitutor) ReplaceArgument(tree *node.Node, name string, value any) *node.Node {
	placeholder := Placeholder(name)
	replacement := cast.ToString(value)

	count := 0
	out := replace(tree, func(str string) string {
		if !strings.Contains(str, placeholder) {
			return str
		}
		count++
		return strings.ReplaceAll(str, placeholder, replacement)
	})
	loader.OrNop(s.Logger).Debug("substituted argument", "name", name, "scalars", count)
	return out
}

// ReplaceArguments applies every argument in order. A later argument sees the
// result of the earlier ones, so a value may itself contain a placeholder
// that a following argument resolves.
func (s *Substitutor) ReplaceArguments(tree *node.Node, args config.Arguments) *node.Node {
	out := tree.Clone()
	for _, arg := range args {
		out = s.ReplaceArgument(out, arg.Name, arg.Value)
	}
	return out
}

func replace(n *node.Node, fn func(string) string) *node.Node {
	switch {
	case n.IsMapping():
		out := node.NewMapping()
		for _, key := range n.Keys() {
			child, _ := n.Get(key)
			out.Set(key, replace(child, fn))
		}
		return out
	case n.IsSequence():
		items := n.Items()
		out := make([]*node.Node, len(items))
		for i, item := range items {
			out[i] = replace(item, fn)
		}
		return node.NewSequence(out...)
	default:
		if s, ok := n.StringValue(); ok {
			return node.NewScalar(fn(s))
		}
		return n.Clone()
	}
}

var placeholderPattern = regexp.MustCompile(`\$\{([^{}]+)\}`)

// Unresolved returns the names of placeholders still present in tree, in the
// order they are first found.
func Unresolved(tree *node.Node) []string {
	var names []string
	seen := make(map[string]bool)
	tree.Walk(func(_ []string, n *node.Node) bool {
		s, ok := n.StringValue()
		if !ok {
			return true
		}
		for _, m := range placeholderPattern.FindAllStringSubmatch(s, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				names = append(names, m[1])
			}
		}
		return true
	})
	return names
}

var defaultSubstitutor = New()

// ReplaceArgument replaces one argument using a default Substitutor.
func ReplaceArgument(tree *node.Node, name string, value any) *node.Node {
	return defaultSubstitutor.ReplaceArgument(tree, name, value)
}

// ReplaceArguments replaces every argument using a default Substitutor.
func ReplaceArguments(tree *node.Node, args config.Arguments) *node.Node {
	return defaultSubstitutor.ReplaceArguments(tree, args)
}

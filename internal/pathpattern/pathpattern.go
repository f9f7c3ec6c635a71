// Package pathpattern matches separator-delimited key patterns against a raw tree.
//
// A pattern is a list of keys joined by a separator ("/" by default). The
// segment "?" is a wildcard that matches every key at its level:
//
//   - categories/?             every category
//   - versions/?/methods/?     every method of every version
//
// Only mappings are traversed; sequences and scalars never match a segment.
package pathpattern

import (
	"fmt"
	"strings"

	"github.com/lucasvieiramay/apidoc/node"
)

const (
	// DefaultSeparator separates pattern segments.
	DefaultSeparator = "/"
	// Wildcard is the segment that matches any key.
	Wildcard = "?"
)

// Pattern represents a parsed path pattern.
type Pattern struct {
	raw       string
	separator string
	segments  []Segment
}

// Segment represents a single segment of a pattern.
type Segment interface {
	// segmentType returns a string identifying the segment type for debugging.
	segmentType() string
}

// ChildSegment matches one literal key.
type ChildSegment struct {
	Key string
}

func (s ChildSegment) segmentType() string { return "child" }

// WildcardSegment matches any key.
type WildcardSegment struct{}

func (s WildcardSegment) segmentType() string { return "wildcard" }

// Parse parses a pattern using DefaultSeparator.
func Parse(expr string) (*Pattern, error) {
	return ParseWithSeparator(expr, DefaultSeparator)
}

// MustParse is like Parse but panics on error. It is meant for package-level
// pattern tables.
func MustParse(expr string) *Pattern {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseWithSeparator parses a pattern whose segments are joined by sep.
func ParseWithSeparator(expr, sep string) (*Pattern, error) {
	if sep == "" {
		return nil, fmt.Errorf("pathpattern: empty separator")
	}
	if expr == "" {
		return nil, fmt.Errorf("pathpattern: empty pattern")
	}

	parts := strings.Split(expr, sep)
	segments := make([]Segment, 0, len(parts))
	for i, part := range parts {
		switch part {
		case "":
			return nil, fmt.Errorf("pathpattern: empty segment %d in %q", i, expr)
		case Wildcard:
			segments = append(segments, WildcardSegment{})
		default:
			segments = append(segments, ChildSegment{Key: part})
		}
	}

	return &Pattern{raw: expr, separator: sep, segments: segments}, nil
}

// String returns the original pattern expression.
func (p *Pattern) String() string {
	return p.raw
}

// Separator returns the separator the pattern was parsed with.
func (p *Pattern) Separator() string {
	return p.separator
}

// Segments returns the parsed segments.
func (p *Pattern) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// Wildcards returns the number of wildcard segments.
func (p *Pattern) Wildcards() int {
	n := 0
	for _, seg := range p.segments {
		if _, ok := seg.(WildcardSegment); ok {
			n++
		}
	}
	return n
}

// Match is one location of a tree matched by a pattern.
type Match struct {
	// Path is the full key path of the match.
	Path []string
	// Captures holds the keys bound to each wildcard, in pattern order.
	Captures []string
	// Node is the value found at Path.
	Node *node.Node
}

// Key joins the match path with the pattern separator.
func (m Match) Key(sep string) string {
	return strings.Join(m.Path, sep)
}

// Find returns every location of root matched by the pattern, in mapping
// order.
func (p *Pattern) Find(root *node.Node) []Match {
	current := []Match{{Node: root}}
	for _, seg := range p.segments {
		var next []Match
		for _, m := range current {
			next = append(next, applySegment(m, seg)...)
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

func applySegment(m Match, seg Segment) []Match {
	if !m.Node.IsMapping() {
		return nil
	}

	switch s := seg.(type) {
	case ChildSegment:
		child, ok := m.Node.Get(s.Key)
		if !ok {
			return nil
		}
		return []Match{m.child(s.Key, child, false)}
	case WildcardSegment:
		keys := m.Node.Keys()
		out := make([]Match, 0, len(keys))
		for _, k := range keys {
			child, _ := m.Node.Get(k)
			out = append(out, m.child(k, child, true))
		}
		return out
	default:
		return nil
	}
}

func (m Match) child(key string, n *node.Node, capture bool) Match {
	out := Match{
		Path:     append(append(make([]string, 0, len(m.Path)+1), m.Path...), key),
		Captures: m.Captures,
		Node:     n,
	}
	if capture {
		out.Captures = append(append(make([]string, 0, len(m.Captures)+1), m.Captures...), key)
	}
	return out
}

// MatchPath reports whether path is matched by the pattern and returns the
// match with its captures. The returned Match has no Node.
func (p *Pattern) MatchPath(path []string) (Match, bool) {
	if len(path) != len(p.segments) {
		return Match{}, false
	}
	m := Match{Path: append([]string(nil), path...)}
	for i, seg := range p.segments {
		switch s := seg.(type) {
		case ChildSegment:
			if path[i] != s.Key {
				return Match{}, false
			}
		case WildcardSegment:
			m.Captures = append(m.Captures, path[i])
		}
	}
	return m, true
}

// Resolve turns a reference written inside a match into a full key path.
//
// A reference starting with the separator is an absolute path from the root.
// Otherwise a reference of k segments replaces the keys bound to the last k
// wildcards of the match, so under versions/?/methods/? the reference "m0"
// names versions/<same version>/methods/m0 and "v1/m0" names
// versions/v1/methods/m0. It fails when the reference has more segments than
// the pattern has wildcards.
func (p *Pattern) Resolve(m Match, ref string) ([]string, error) {
	if strings.HasPrefix(ref, p.separator) {
		parts := strings.Split(strings.TrimPrefix(ref, p.separator), p.separator)
		if err := checkParts(parts, ref); err != nil {
			return nil, err
		}
		return parts, nil
	}

	parts := strings.Split(ref, p.separator)
	if err := checkParts(parts, ref); err != nil {
		return nil, err
	}
	if len(m.Path) != len(p.segments) {
		return nil, fmt.Errorf("pathpattern: %q is not a match of pattern %q", strings.Join(m.Path, p.separator), p.raw)
	}
	wildcards := p.Wildcards()
	if len(parts) > wildcards {
		return nil, fmt.Errorf("pathpattern: reference %q has %d segments but pattern %q has %d wildcards",
			ref, len(parts), p.raw, wildcards)
	}

	// positions of wildcard segments to overwrite
	overwrite := make(map[int]string, len(parts))
	seen := 0
	first := wildcards - len(parts)
	for i, seg := range p.segments {
		if _, ok := seg.(WildcardSegment); !ok {
			continue
		}
		if seen >= first {
			overwrite[i] = parts[seen-first]
		}
		seen++
	}

	out := make([]string, len(m.Path))
	copy(out, m.Path)
	for i, key := range overwrite {
		out[i] = key
	}
	return out, nil
}

func checkParts(parts []string, ref string) error {
	for _, part := range parts {
		if part == "" {
			return fmt.Errorf("pathpattern: empty segment in reference %q", ref)
		}
	}
	return nil
}

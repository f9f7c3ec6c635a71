package node

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

const mergeKey = "<<"

// FromYAML converts a decoded yaml.Node into a tree, keeping the key order of
// the source document. Aliases are expanded and "<<" merge keys are applied
// without overriding keys written explicitly in the mapping.
//
// An empty document yields a nil node.
func FromYAML(doc *yaml.Node) (*Node, error) {
	return fromYAML(doc, 0)
}

// maxAliasDepth bounds alias expansion so that self-referencing anchors cannot
// recurse forever.
const maxAliasDepth = 64

func fromYAML(y *yaml.Node, aliasDepth int) (*Node, error) {
	// An empty or comment-only stream decodes to a node of kind 0.
	if y == nil || y.Kind == 0 {
		return nil, nil
	}

	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return nil, nil
		}
		return fromYAML(y.Content[0], aliasDepth)

	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth {
			return nil, fmt.Errorf("node: alias nesting exceeds %d levels at line %d", maxAliasDepth, y.Line)
		}
		return fromYAML(y.Alias, aliasDepth+1)

	case yaml.MappingNode:
		m := NewMapping()
		var merged []*Node
		for i := 0; i+1 < len(y.Content); i += 2 {
			keyNode, valNode := y.Content[i], y.Content[i+1]
			val, err := fromYAML(valNode, aliasDepth)
			if err != nil {
				return nil, err
			}
			if keyNode.Kind == yaml.ScalarNode && keyNode.Value == mergeKey && keyNode.Tag != "!!str" {
				merged = append(merged, mergeSources(val)...)
				continue
			}
			m.Set(keyNode.Value, val)
		}
		for _, src := range merged {
			for _, k := range src.keys {
				if _, exists := m.values[k]; !exists {
					m.Set(k, src.values[k].Clone())
				}
			}
		}
		return m, nil

	case yaml.SequenceNode:
		s := NewSequence()
		for _, item := range y.Content {
			child, err := fromYAML(item, aliasDepth)
			if err != nil {
				return nil, err
			}
			s.Append(child)
		}
		return s, nil

	case yaml.ScalarNode:
		var v any
		if err := y.Decode(&v); err != nil {
			return nil, fmt.Errorf("node: line %d: %w", y.Line, err)
		}
		return NewScalar(v), nil

	default:
		return nil, fmt.Errorf("node: unsupported YAML node kind %d at line %d", y.Kind, y.Line)
	}
}

// mergeSources returns the mappings named by a "<<" value, which is either a
// single mapping or a sequence of mappings.
func mergeSources(val *Node) []*Node {
	switch {
	case val.IsMapping():
		return []*Node{val}
	case val.IsSequence():
		var out []*Node
		for _, item := range val.items {
			if item.IsMapping() {
				out = append(out, item)
			}
		}
		return out
	default:
		return nil
	}
}

// ToYAML converts the tree into a yaml.Node, keeping key order.
func (n *Node) ToYAML() *yaml.Node {
	if n == nil {
		return scalarNode("!!null", "null")
	}
	switch n.kind {
	case MappingKind:
		out := &yaml.Node{Kind: yaml.MappingNode, Content: make([]*yaml.Node, 0, len(n.keys)*2)}
		for _, k := range n.keys {
			out.Content = append(out.Content, scalarNode("!!str", k), n.values[k].ToYAML())
		}
		return out
	case SequenceKind:
		out := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(n.items))}
		for _, item := range n.items {
			out.Content = append(out.Content, item.ToYAML())
		}
		return out
	default:
		return scalarToYAML(n.value)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (n *Node) MarshalYAML() (any, error) {
	return n.ToYAML(), nil
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func scalarToYAML(v any) *yaml.Node {
	switch val := v.(type) {
	case nil:
		return scalarNode("!!null", "null")
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val))
	case int64:
		return scalarNode("!!int", strconv.FormatInt(val, 10))
	case float64:
		switch {
		case math.IsInf(val, 1):
			return scalarNode("!!float", ".inf")
		case math.IsInf(val, -1):
			return scalarNode("!!float", "-.inf")
		case math.IsNaN(val):
			return scalarNode("!!float", ".nan")
		}
		s := strconv.FormatFloat(val, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return scalarNode("!!float", s)
	case string:
		return scalarNode("!!str", val)
	default:
		return scalarNode("!!str", fmt.Sprint(val))
	}
}

// MarshalJSON implements json.Marshaler, writing mapping keys in order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.kind {
	case MappingKind:
		buf.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := n.values[k].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case SequenceKind:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return writeJSONValue(buf, n.value)
	}
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("node: %w", err)
	}
	buf.Write(data)
	return nil
}

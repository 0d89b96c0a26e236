package twlint

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// parseYAML reads YAML and JSON sources. Going through yaml.Node keeps key
// order, duplicate keys and positions, all of which a plain map would lose.
func parseYAML(name string, data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, malformed(name, Pos{}, "", "%s", strings.TrimPrefix(err.Error(), "yaml: "))
	}

	// Empty file
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Mapping(), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Value{}, malformed(name, nodePos(root), "", "config root must be a mapping, got %s", yamlKindName(root))
	}

	return fromYAMLNode(root, 0), nil
}

// maxAliasDepth bounds alias expansion so self-referencing anchors terminate.
const maxAliasDepth = 32

func fromYAMLNode(n *yaml.Node, depth int) Value {
	pos := nodePos(n)

	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil || depth > maxAliasDepth {
			return Value{Kind: KindNull, Pos: pos}
		}
		v := fromYAMLNode(n.Alias, depth+1)
		v.Pos = pos
		return v

	case yaml.MappingNode:
		v := Mapping()
		v.Pos = pos
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			v.Entries = append(v.Entries, Entry{
				Key:    key.Value,
				KeyPos: nodePos(key),
				Value:  fromYAMLNode(val, depth),
			})
		}
		return v

	case yaml.SequenceNode:
		v := List()
		v.Pos = pos
		for _, item := range n.Content {
			v.Items = append(v.Items, fromYAMLNode(item, depth))
		}
		return v

	case yaml.ScalarNode:
		var v Value
		switch n.ShortTag() {
		case "!!int", "!!float":
			v = Number(n.Value)
		case "!!bool":
			v = Value{Kind: KindBool, Text: strings.ToLower(n.Value)}
		case "!!null":
			v = Null()
		case exprTag:
			v = Expr(n.Value)
		default:
			v = String(n.Value)
		}
		v.Pos = pos
		return v

	default:
		return Value{Kind: KindNull, Pos: pos}
	}
}

func nodePos(n *yaml.Node) Pos {
	return Pos{Line: n.Line, Column: n.Column}
}

func yamlKindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}

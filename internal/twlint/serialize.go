package twlint

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// exprTag marks opaque JavaScript expressions in YAML output so they load
// back as expressions.
const exprTag = "!js"

// WriteTree serializes a tree in the given syntax.
func WriteTree(w io.Writer, v Value, format SourceFormat) error {
	switch format {
	case FormatYAML:
		return WriteYAML(w, v)
	case FormatJSON:
		return WriteJSON(w, v)
	case FormatJS:
		return WriteJS(w, v)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WriteYAML serializes a tree as YAML, keeping key order and duplicates.
func WriteYAML(w io.Writer, v Value) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLNode(v)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func toYAMLNode(v Value) *yaml.Node {
	switch v.Kind {
	case KindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.Entries {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
				toYAMLNode(e.Value))
		}
		return n
	case KindList:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items {
			n.Content = append(n.Content, toYAMLNode(item))
		}
		return n
	case KindNumber:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.Text}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.Text}
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case KindExpr:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: exprTag, Value: v.Text, Style: yaml.TaggedStyle | yaml.DoubleQuotedStyle}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Text}
	}
}

// WriteJSON serializes a tree as indented JSON. Expressions become strings,
// since JSON has nothing else to hold them.
func WriteJSON(w io.Writer, v Value) error {
	bw := bufio.NewWriter(w)
	if err := writeJSONValue(bw, v, 0); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

func writeJSONValue(w *bufio.Writer, v Value, depth int) error {
	indent := strings.Repeat("  ", depth+1)
	closing := strings.Repeat("  ", depth)

	switch v.Kind {
	case KindMapping:
		if len(v.Entries) == 0 {
			_, err := w.WriteString("{}")
			return err
		}
		w.WriteString("{\n")
		for i, e := range v.Entries {
			w.WriteString(indent)
			w.WriteString(quoteJSON(e.Key))
			w.WriteString(": ")
			if err := writeJSONValue(w, e.Value, depth+1); err != nil {
				return err
			}
			if i < len(v.Entries)-1 {
				w.WriteByte(',')
			}
			w.WriteByte('\n')
		}
		w.WriteString(closing)
		_, err := w.WriteString("}")
		return err

	case KindList:
		if len(v.Items) == 0 {
			_, err := w.WriteString("[]")
			return err
		}
		w.WriteString("[\n")
		for i, item := range v.Items {
			w.WriteString(indent)
			if err := writeJSONValue(w, item, depth+1); err != nil {
				return err
			}
			if i < len(v.Items)-1 {
				w.WriteByte(',')
			}
			w.WriteByte('\n')
		}
		w.WriteString(closing)
		_, err := w.WriteString("]")
		return err

	case KindNumber:
		text, ok := numberLiteral(v.Text)
		if !ok {
			text = quoteJSON(v.Text)
		}
		_, err := w.WriteString(text)
		return err
	case KindBool:
		_, err := w.WriteString(v.Text)
		return err
	case KindNull:
		_, err := w.WriteString("null")
		return err
	default:
		_, err := w.WriteString(quoteJSON(v.Text))
		return err
	}
}

func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// numberLiteral renders a number in the decimal form JSON and JavaScript
// share. Other spellings (0x1F, 0o17, 1_000, +5, .5) are converted; values
// without a finite form such as .inf and .nan report false.
func numberLiteral(text string) (string, bool) {
	if jsonNumber.MatchString(text) {
		return text, true
	}
	clean := strings.ReplaceAll(text, "_", "")
	if i, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return strconv.FormatInt(i, 10), true
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", false
	}
	return strconv.FormatFloat(f, 'g', -1, 64), true
}

// WriteJS serializes a tree as an ES module config.
func WriteJS(w io.Writer, v Value) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("export default ")
	writeJSValue(bw, v, 0)
	bw.WriteString(";\n")
	return bw.Flush()
}

var jsIdent = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func writeJSValue(w *bufio.Writer, v Value, depth int) {
	indent := strings.Repeat("  ", depth+1)
	closing := strings.Repeat("  ", depth)

	switch v.Kind {
	case KindMapping:
		if len(v.Entries) == 0 {
			w.WriteString("{}")
			return
		}
		w.WriteString("{\n")
		for _, e := range v.Entries {
			w.WriteString(indent)
			if jsIdent.MatchString(e.Key) {
				w.WriteString(e.Key)
			} else {
				w.WriteString(quoteJS(e.Key))
			}
			w.WriteString(": ")
			writeJSValue(w, e.Value, depth+1)
			w.WriteString(",\n")
		}
		w.WriteString(closing)
		w.WriteString("}")

	case KindList:
		if len(v.Items) == 0 {
			w.WriteString("[]")
			return
		}
		w.WriteString("[\n")
		for _, item := range v.Items {
			w.WriteString(indent)
			writeJSValue(w, item, depth+1)
			w.WriteString(",\n")
		}
		w.WriteString(closing)
		w.WriteString("]")

	case KindNumber:
		if text, ok := numberLiteral(v.Text); ok {
			w.WriteString(text)
		} else {
			w.WriteString(quoteJS(v.Text))
		}
	case KindBool, KindExpr:
		w.WriteString(v.Text)
	case KindNull:
		w.WriteString("null")
	default:
		w.WriteString(quoteJS(v.Text))
	}
}

// quoteJS renders a single-quoted JavaScript string literal.
func quoteJS(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('\'')
	return b.String()
}

package twlint

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		file string
		src  string
	}{
		{name: "tailwind.config.js", file: "tailwind.config.js"},
		{name: "theme.yaml", file: "theme.yaml"},
		{
			name: "duplicate stops",
			file: "dup.yaml",
			src: `content: [./src/**/*.tsx]
theme:
  extend:
    animation:
      float: float 6s ease-in-out infinite
      float: float 3s linear infinite
    keyframes:
      float:
        "0%, 100%": { transform: translateY(0) }
        "0%, 100%": { transform: translateY(5px) }
`,
		},
		{
			name: "content files form with raw entries",
			file: "files.yaml",
			src: `prefix: tw-
content:
  files:
    - raw: '<div class="p-4">'
    - ./src/**/*.vue
  extract: {}
theme:
  colors: { brand: red }
  keyframes:
    blink: { "50%": { opacity: 0 } }
  extend: {}
plugins: []
important: true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(tt.src)
			if tt.src == "" {
				var err error
				data, err = os.ReadFile(filepath.Join("testdata", tt.file))
				require.NoError(t, err)
			}

			cfg, err := LoadBytes(tt.file, data)
			require.NoError(t, err)

			encoded := Encode(cfg)
			assert.True(t, encoded.Equal(cfg.Tree), "encoded tree differs from the parsed tree")
		})
	}
}

func TestEncodeWithoutTree(t *testing.T) {
	cfg := &Config{
		Content: Content{Set: true, Files: []Pattern{{Glob: "./src/**/*.tsx"}}},
		Theme: Theme{
			Set:       true,
			ExtendSet: true,
			Extend: Section{
				AnimationSet: true,
				Animation:    []Animation{{Name: "float", Value: "float 6s ease-in-out infinite"}},
				KeyframesSet: true,
				Keyframes: []Keyframes{{
					Name: "float",
					Stops: []Stop{{
						Selector:     "0%, 100%",
						Declarations: []Declaration{{Property: "opacity", Value: "1", Numeric: true}},
					}},
				}},
			},
		},
	}

	want := Mapping(
		E("content", List(String("./src/**/*.tsx"))),
		E("theme", Mapping(
			E("extend", Mapping(
				E("animation", Mapping(E("float", String("float 6s ease-in-out infinite")))),
				E("keyframes", Mapping(E("float", Mapping(
					E("0%, 100%", Mapping(E("opacity", Number("1")))),
				)))),
			)),
		)),
	)

	assert.True(t, Encode(cfg).Equal(want))
}

func TestEncodeReflectsEdits(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "theme.yaml"))
	require.NoError(t, err)

	cfg.Theme.Extend.Animation[0].Value = "float 3s linear infinite"

	got, ok := Encode(cfg).Lookup("theme", "extend", "animation", "float")
	require.True(t, ok)
	assert.Equal(t, "float 3s linear infinite", got.Text)

	dark, ok := Encode(cfg).Get("darkMode")
	require.True(t, ok)
	assert.Equal(t, "class", dark.Text)
}

func TestWriteTreeRoundTrip(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "tailwind.config.js"))
	require.NoError(t, err)
	tree := Encode(cfg)

	for _, format := range []SourceFormat{FormatYAML, FormatJSON, FormatJS} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteTree(&buf, tree, format))

			reparsed, err := ParseTree("out."+string(format), buf.Bytes())
			require.NoError(t, err, buf.String())
			assert.True(t, reparsed.Equal(tree), "tree changed after writing %s:\n%s", format, buf.String())
		})
	}
}

func TestWriteYAMLKeepsExpressionsAndStrings(t *testing.T) {
	tree := Mapping(
		E("important", String("true")),
		E("opacity", Number("0.5")),
		E("darkMode", Bool(false)),
		E("prefix", Null()),
		E("plugins", List(Expr("require('@tailwindcss/forms')"))),
	)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, tree))
	assert.Contains(t, buf.String(), `!js "require('@tailwindcss/forms')"`)

	reparsed, err := ParseTree("out.yaml", buf.Bytes())
	require.NoError(t, err)
	assert.True(t, reparsed.Equal(tree), buf.String())
}

func TestWriteJS(t *testing.T) {
	tree := Mapping(
		E("content", List(String("./src/**/*.{js,ts}"))),
		E("theme", Mapping(E("extend", Mapping(E("keyframes", Mapping(
			E("fade-in", Mapping(E("0%, 100%", Mapping(E("opacity", Number("0")))))),
		)))))),
		E("plugins", List(Expr("require('@tailwindcss/forms')"))),
		E("quote", String("it's")),
	)

	var buf bytes.Buffer
	require.NoError(t, WriteJS(&buf, tree))
	out := buf.String()

	assert.Contains(t, out, "export default {\n")
	assert.Contains(t, out, "  content: [\n    './src/**/*.{js,ts}',\n  ],\n")
	assert.Contains(t, out, "'fade-in': {")
	assert.Contains(t, out, "'0%, 100%': {")
	assert.Contains(t, out, "opacity: 0,")
	assert.Contains(t, out, "require('@tailwindcss/forms'),")
	assert.Contains(t, out, `quote: 'it\'s',`)
	assert.True(t, len(out) > 0 && out[len(out)-2:] == ";\n")
}

func TestWriteJSONEscaping(t *testing.T) {
	tree := Mapping(
		E("backgroundImage", Mapping(E("hero", String(`url("<hero>.png")`)))),
		E("plugins", List(Expr("require('x')"))),
		E("empty", Mapping()),
	)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, tree))
	out := buf.String()

	assert.Contains(t, out, `"hero": "url(\"<hero>.png\")"`)
	assert.Contains(t, out, `"require('x')"`, "expressions become strings in JSON")
	assert.Contains(t, out, `"empty": {}`)
}

func TestWriteNumberSpellings(t *testing.T) {
	tests := []struct {
		text     string
		wantJSON string
		wantJS   string
	}{
		{"42", "42", "42"},
		{"-0.25", "-0.25", "-0.25"},
		{"1e3", "1e3", "1e3"},
		{"0x1F", "31", "31"},
		{"0o17", "15", "15"},
		{"1_000", "1000", "1000"},
		{"+12", "12", "12"},
		{".5", "0.5", "0.5"},
		{".inf", `".inf"`, "'.inf'"},
		{".nan", `".nan"`, "'.nan'"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tree := Mapping(E("n", Number(tt.text)))

			var jsonOut bytes.Buffer
			require.NoError(t, WriteJSON(&jsonOut, tree))
			assert.Contains(t, jsonOut.String(), `"n": `+tt.wantJSON+"\n")
			assert.True(t, json.Valid(jsonOut.Bytes()), jsonOut.String())

			var jsOut bytes.Buffer
			require.NoError(t, WriteJS(&jsOut, tree))
			assert.Contains(t, jsOut.String(), "n: "+tt.wantJS+",\n")
		})
	}
}

func TestWriteJSONFromYAMLNumbers(t *testing.T) {
	tree, err := ParseTree("theme.yaml", []byte("hex: 0x1F\noctal: 0o17\nbig: .inf\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, tree))
	assert.True(t, json.Valid(buf.Bytes()), buf.String())

	var back map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, float64(31), back["hex"])
	assert.Equal(t, float64(15), back["octal"])
	assert.Equal(t, ".inf", back["big"])
}

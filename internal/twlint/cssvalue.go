package twlint

import (
	"strings"
	"unicode"

	"github.com/tdewolff/parse/v2/css"
)

// imageFunctions start a valid background-image value.
var imageFunctions = map[string]bool{
	"linear-gradient(":           true,
	"radial-gradient(":           true,
	"conic-gradient(":            true,
	"repeating-linear-gradient(": true,
	"repeating-radial-gradient(": true,
	"repeating-conic-gradient(":  true,
	"url(":                       true,
	"image-set(":                 true,
	"-webkit-image-set(":         true,
	"image(":                     true,
	"cross-fade(":                true,
	"element(":                   true,
	"var(":                       true,
}

// CheckValueSyntax reports the first syntax problem in a CSS value, or ""
// when the value lexes cleanly. Only structure is checked: whether the value
// suits its property is left to the build tool.
func CheckValueSyntax(value string) string {
	if strings.TrimSpace(value) == "" {
		return "empty value"
	}

	depth := 0
	for _, tok := range lexCSS(value) {
		switch tok.tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth < 0 {
				return "unexpected \")\""
			}
		case css.BadStringToken:
			return "unterminated string"
		case css.BadURLToken:
			return "malformed url()"
		case css.SemicolonToken:
			return "unexpected \";\" ends the declaration early"
		case css.LeftBraceToken, css.RightBraceToken:
			return "unexpected brace"
		}
	}
	if depth > 0 {
		return "unclosed parenthesis"
	}
	return ""
}

// CheckImageValue reports why a value is not a CSS image, or "".
func CheckImageValue(value string) string {
	tokens := lexCSS(value)
	if len(tokens) == 0 {
		return "empty value"
	}

	first := tokens[0]
	switch first.tt {
	case css.FunctionToken:
		if imageFunctions[strings.ToLower(first.text)] {
			return ""
		}
		return "\"" + strings.TrimSuffix(first.text, "(") + "()\" is not an image function"
	case css.URLToken:
		return ""
	case css.IdentToken:
		if strings.EqualFold(first.text, "none") || cssWideKeywords[strings.ToLower(first.text)] {
			return ""
		}
	}
	return "value does not start with a gradient, url() or other image function"
}

// CSSPropertyName converts a camel-cased property key to its CSS spelling:
// backgroundPosition -> background-position, WebkitTransform ->
// -webkit-transform. Custom properties and kebab-case names pass through.
func CSSPropertyName(key string) string {
	if strings.HasPrefix(key, "--") || strings.ContainsRune(key, '-') {
		return key
	}

	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 || isVendorPrefixed(key) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	name := b.String()
	if strings.HasPrefix(key, "ms") && len(key) > 2 && unicode.IsUpper(rune(key[2])) {
		name = "-" + name
	}
	return name
}

func isVendorPrefixed(key string) bool {
	for _, p := range []string{"Webkit", "Moz", "O"} {
		if strings.HasPrefix(key, p) && len(key) > len(p) && unicode.IsUpper(rune(key[len(p)])) {
			return true
		}
	}
	return false
}

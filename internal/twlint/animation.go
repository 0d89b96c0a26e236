package twlint

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// AnimationRef is what one comma-separated item of an animation shorthand
// refers to.
type AnimationRef struct {
	Keyframes string // referenced keyframes name, "" if none found
	None      bool   // "none" or a CSS-wide keyword: intentionally no animation
	Dynamic   bool   // contains var(), so the name cannot be resolved statically
}

// Keyword groups of the animation longhands other than animation-name. Each
// group consumes at most one identifier, in shorthand order, so
// "ease ease 1s" names keyframes "ease".
var animationKeywordGroups = []map[string]bool{
	{"linear": true, "ease": true, "ease-in": true, "ease-out": true, "ease-in-out": true, "step-start": true, "step-end": true},
	{"infinite": true},
	{"normal": true, "reverse": true, "alternate": true, "alternate-reverse": true},
	{"none": true, "forwards": true, "backwards": true, "both": true},
	{"running": true, "paused": true},
}

var cssWideKeywords = map[string]bool{
	"initial":      true,
	"inherit":      true,
	"unset":        true,
	"revert":       true,
	"revert-layer": true,
}

// ParseAnimationRefs extracts the keyframes names an animation shorthand
// refers to, one ref per comma-separated animation.
func ParseAnimationRefs(value string) []AnimationRef {
	var refs []AnimationRef
	for _, segment := range splitTopLevel(value) {
		refs = append(refs, parseSingleAnimation(segment))
	}
	return refs
}

func parseSingleAnimation(tokens []cssToken) AnimationRef {
	var ref AnimationRef
	used := make([]bool, len(animationKeywordGroups))
	idents := 0
	sawNone := false
	depth := 0

	for _, tok := range tokens {
		switch tok.tt {
		case css.FunctionToken:
			if strings.EqualFold(tok.text, "var(") {
				ref.Dynamic = true
			}
			depth++
			continue
		case css.LeftParenthesisToken:
			depth++
			continue
		case css.RightParenthesisToken:
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth > 0 {
			continue
		}

		switch tok.tt {
		case css.IdentToken:
			idents++
			word := strings.ToLower(tok.text)
			if cssWideKeywords[word] {
				ref.None = true
				continue
			}
			if word == "none" {
				sawNone = true
			}
			if consumed := consumeKeyword(word, used); consumed {
				continue
			}
			if ref.Keyframes == "" {
				ref.Keyframes = tok.text
			}
		case css.StringToken:
			if ref.Keyframes == "" {
				ref.Keyframes = unquoteCSS(tok.text)
			}
		}
	}

	// A lone "none" is animation-name: none.
	if ref.Keyframes == "" && sawNone && idents == 1 {
		ref.None = true
	}
	if ref.Keyframes == "none" {
		ref.Keyframes = ""
		ref.None = true
	}
	return ref
}

func consumeKeyword(word string, used []bool) bool {
	for i, group := range animationKeywordGroups {
		if !used[i] && group[word] {
			used[i] = true
			return true
		}
	}
	return false
}

type cssToken struct {
	tt   css.TokenType
	text string
}

// lexCSS tokenizes a CSS value, dropping whitespace and comments.
func lexCSS(value string) []cssToken {
	var tokens []cssToken
	lexer := css.NewLexer(parse.NewInputString(value))
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		if tt == css.WhitespaceToken || tt == css.CommentToken {
			continue
		}
		tokens = append(tokens, cssToken{tt: tt, text: string(text)})
	}
	return tokens
}

// splitTopLevel tokenizes a value and splits it on commas outside parentheses.
func splitTopLevel(value string) [][]cssToken {
	var segments [][]cssToken
	var current []cssToken
	depth := 0

	for _, tok := range lexCSS(value) {
		switch tok.tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				segments = append(segments, current)
				current = nil
				continue
			}
		}
		current = append(current, tok)
	}
	if len(current) > 0 || len(segments) > 0 {
		segments = append(segments, current)
	}
	return segments
}

func unquoteCSS(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

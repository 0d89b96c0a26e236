package twlint

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// parseJS reads a JavaScript config module. The exported object literal is
// converted to a Value; anything that is not plain data (calls, identifiers,
// functions) is kept as an opaque expression holding its source text.
func parseJS(name string, data []byte) (Value, error) {
	ast, err := js.Parse(parse.NewInputBytes(data), js.Options{})
	if err != nil {
		var perr *parse.Error
		if errors.As(err, &perr) {
			return Value{}, malformed(name, Pos{Line: perr.Line, Column: perr.Column}, "", "%s", perr.Message)
		}
		return Value{}, malformed(name, Pos{}, "", "%v", err)
	}

	c := &jsConverter{
		name:   name,
		src:    data,
		masked: maskComments(data),
		lines:  newLineIndex(data),
		vars:   make(map[string]js.IExpr),
	}

	export, anchor := c.findExport(ast.List)
	if export == nil {
		return Value{}, malformed(name, Pos{}, "", "no `export default` or `module.exports` found")
	}

	export, anchor = c.resolve(export, anchor)
	obj, ok := export.(*js.ObjectExpr)
	if !ok {
		return Value{}, malformed(name, Pos{}, "", "exported config must be an object literal")
	}

	c.seek(anchor...)
	return c.object(obj)
}

// jsConverter walks the AST in source order. The AST carries no offsets, so
// positions are recovered by scanning forward through masked, a copy of the
// source with comments blanked out.
type jsConverter struct {
	name   string
	src    []byte
	masked []byte
	lines  lineIndex
	cursor int
	vars   map[string]js.IExpr
}

// findExport returns the expression exported by the module and the tokens
// that introduce it, remembering top-level variable initializers so
// `export default config` resolves.
func (c *jsConverter) findExport(stmts []js.IStmt) (js.IExpr, []string) {
	var export js.IExpr
	var anchor []string
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *js.VarDecl:
			for _, b := range s.List {
				if v, ok := b.Binding.(*js.Var); ok && b.Default != nil {
					c.vars[string(v.Data)] = b.Default
				}
			}
		case *js.ExportStmt:
			if s.Default && s.Decl != nil {
				export, anchor = s.Decl, []string{"export", "default"}
			}
		case *js.ExprStmt:
			if bin, ok := s.Value.(*js.BinaryExpr); ok && bin.Op == js.EqToken && isModuleExports(bin.X) {
				export, anchor = bin.Y, []string{"module", ".", "exports"}
			}
		}
	}
	return export, anchor
}

func isModuleExports(expr js.IExpr) bool {
	dot, ok := expr.(*js.DotExpr)
	if !ok || dot.Optional {
		return false
	}
	module, ok := dot.X.(*js.Var)
	return ok && string(module.Name()) == "module" && dot.Y.String() == "exports"
}

// resolve unwraps parentheses, top-level variable references and config
// helper calls such as defineConfig({...}). Following a variable moves the
// anchor to its declaration.
func (c *jsConverter) resolve(expr js.IExpr, anchor []string) (js.IExpr, []string) {
	for i := 0; i < 8; i++ {
		switch e := expr.(type) {
		case *js.GroupExpr:
			expr = e.X
		case *js.Var:
			init, ok := c.vars[string(e.Data)]
			if !ok {
				return expr, anchor
			}
			expr, anchor = init, []string{string(e.Data), "="}
		case *js.CallExpr:
			if len(e.Args.List) == 0 {
				return expr, anchor
			}
			if _, ok := e.Args.List[0].Value.(*js.ObjectExpr); !ok {
				return expr, anchor
			}
			expr = e.Args.List[0].Value
		default:
			return expr, anchor
		}
	}
	return expr, anchor
}

func (c *jsConverter) object(obj *js.ObjectExpr) (Value, error) {
	v := Mapping()
	v.Pos = c.locate([]byte("{"))

	for _, prop := range obj.List {
		if prop.Spread {
			return Value{}, malformed(c.name, c.locate([]byte("...")), "", "object spread cannot be read statically")
		}
		if prop.Name == nil {
			name := ""
			if m, ok := prop.Value.(*js.MethodDecl); ok {
				name = m.Name.String()
			}
			return Value{}, malformed(c.name, c.locate([]byte(name)), name, "method definition cannot be read statically")
		}
		if prop.Name.IsComputed() {
			return Value{}, malformed(c.name, c.locate([]byte("[")), "", "computed property name cannot be read statically")
		}

		keyPos := c.locateKey(prop.Name.Literal)
		key := string(prop.Name.Literal.Data)
		if prop.Name.Literal.TokenType == js.StringToken {
			key = unquoteJS(prop.Name.Literal.Data)
		}

		// `{ colors }` parses like `{ colors: colors }`; only the source tells
		// them apart.
		if ref, ok := prop.Value.(*js.Var); ok && prop.Name.IsIdent(ref.Name()) && c.peek() != ':' {
			return Value{}, malformed(c.name, keyPos, key, "shorthand property cannot be read statically")
		}

		val, err := c.value(prop.Value)
		if err != nil {
			return Value{}, err
		}
		v.Entries = append(v.Entries, Entry{Key: key, KeyPos: keyPos, Value: val})
	}

	c.skip([]byte("}"))
	return v, nil
}

func (c *jsConverter) array(arr *js.ArrayExpr) (Value, error) {
	v := List()
	v.Pos = c.locate([]byte("["))

	for _, el := range arr.List {
		if el.Spread {
			return Value{}, malformed(c.name, c.locate([]byte("...")), "", "array spread cannot be read statically")
		}
		if el.Value == nil {
			// Elision `[a, , b]`
			v.Items = append(v.Items, Null())
			continue
		}
		item, err := c.value(el.Value)
		if err != nil {
			return Value{}, err
		}
		v.Items = append(v.Items, item)
	}

	c.skip([]byte("]"))
	return v, nil
}

func (c *jsConverter) value(expr js.IExpr) (Value, error) {
	switch e := expr.(type) {
	case *js.ObjectExpr:
		return c.object(e)
	case *js.ArrayExpr:
		return c.array(e)
	case *js.GroupExpr:
		return c.value(e.X)
	case *js.LiteralExpr:
		return c.literal(e), nil
	default:
		return c.expr(), nil
	}
}

func (c *jsConverter) literal(lit *js.LiteralExpr) Value {
	pos := c.locate(lit.Data)

	var v Value
	switch lit.TokenType {
	case js.StringToken:
		v = String(unquoteJS(lit.Data))
	case js.TrueToken:
		v = Bool(true)
	case js.FalseToken:
		v = Bool(false)
	case js.NullToken:
		v = Null()
	default:
		if len(lit.Data) > 0 && (isDigit(lit.Data[0]) || lit.Data[0] == '.') {
			v = Number(string(lit.Data))
		} else {
			v = Expr(string(lit.Data))
		}
	}
	v.Pos = pos
	return v
}

// expr captures the opaque expression that starts at the cursor. It runs up
// to the first comma or closing bracket outside any nesting, and its text is
// the source as written.
func (c *jsConverter) expr() Value {
	start := c.cursor
	for start < len(c.masked) && (isSpace(c.masked[start]) || c.masked[start] == ':' || c.masked[start] == ',') {
		start++
	}
	if start >= len(c.masked) {
		return Expr("")
	}

	end := start
	depth := 0
	jsTokens(c.masked[start:], func(tt js.TokenType, off int, data []byte) bool {
		switch tt {
		case js.WhitespaceToken, js.LineTerminatorToken, js.CommentToken, js.CommentLineTerminatorToken:
			return true
		case js.OpenBraceToken, js.OpenParenToken, js.OpenBracketToken:
			depth++
		case js.CloseBraceToken, js.CloseParenToken, js.CloseBracketToken:
			if depth == 0 {
				return false
			}
			depth--
		case js.CommaToken, js.SemicolonToken:
			if depth == 0 {
				return false
			}
		}
		end = start + off + len(data)
		return true
	})

	v := Expr(string(c.src[start:end]))
	v.Pos = c.lines.pos(c.src, start)
	c.cursor = end
	return v
}

// locateKey finds a property name. The parser strips the quotes from string
// keys that are valid identifiers or numbers, so a quote right around the
// match is taken as part of the key.
func (c *jsConverter) locateKey(lit js.LiteralExpr) Pos {
	if lit.TokenType == js.StringToken || len(lit.Data) == 0 || c.cursor >= len(c.masked) {
		return c.locate(lit.Data)
	}
	i := bytes.Index(c.masked[c.cursor:], lit.Data)
	if i < 0 {
		return Pos{}
	}
	off := c.cursor + i
	end := off + len(lit.Data)
	if off > 0 && end < len(c.masked) && isQuote(c.masked[off-1]) && c.masked[end] == c.masked[off-1] {
		off--
		end++
	}
	c.cursor = end
	return c.lines.pos(c.src, off)
}

// locate finds the next occurrence of raw at or after the cursor and moves the
// cursor past it. Literals are visited in source order, so a forward scan
// recovers their positions.
func (c *jsConverter) locate(raw []byte) Pos {
	if len(raw) == 0 || c.cursor >= len(c.masked) {
		return Pos{}
	}
	i := bytes.Index(c.masked[c.cursor:], raw)
	if i < 0 {
		return Pos{}
	}
	off := c.cursor + i
	c.cursor = off + len(raw)
	return c.lines.pos(c.src, off)
}

func (c *jsConverter) skip(raw []byte) {
	if c.cursor >= len(c.masked) {
		return
	}
	if i := bytes.Index(c.masked[c.cursor:], raw); i >= 0 {
		c.cursor += i + len(raw)
	}
}

// seek moves the cursor to the first place where the significant tokens
// spell out seq. The cursor stays put when seq never appears.
func (c *jsConverter) seek(seq ...string) {
	if len(seq) == 0 {
		return
	}
	match, start := 0, 0
	jsTokens(c.masked, func(tt js.TokenType, off int, data []byte) bool {
		switch tt {
		case js.WhitespaceToken, js.LineTerminatorToken, js.CommentToken, js.CommentLineTerminatorToken:
			return true
		}
		if string(data) != seq[match] {
			match = 0
		}
		if string(data) == seq[match] {
			if match == 0 {
				start = off
			}
			match++
			if match == len(seq) {
				c.cursor = start
				return false
			}
		}
		return true
	})
}

// peek returns the next byte after the cursor that is not whitespace.
func (c *jsConverter) peek() byte {
	for i := c.cursor; i < len(c.masked); i++ {
		if !isSpace(c.masked[i]) {
			return c.masked[i]
		}
	}
	return 0
}

// maskComments returns a copy of src with every comment replaced by spaces.
// Line breaks stay, so offsets and line numbers match the original. If src
// does not lex, it is returned unchanged.
func maskComments(src []byte) []byte {
	out := make([]byte, 0, len(src))
	ok := jsTokens(src, func(tt js.TokenType, _ int, data []byte) bool {
		if tt != js.CommentToken && tt != js.CommentLineTerminatorToken {
			out = append(out, data...)
			return true
		}
		for _, b := range data {
			if b == '\n' || b == '\r' {
				out = append(out, b)
			} else {
				out = append(out, ' ')
			}
		}
		return true
	})
	if !ok || len(out) != len(src) {
		return src
	}
	return out
}

// jsTokens lexes src and calls fn with every token and its byte offset until
// fn returns false. A slash where an operand is expected is read as a regular
// expression. It reports false when the source does not lex.
func jsTokens(src []byte, fn func(tt js.TokenType, off int, data []byte) bool) bool {
	in := parse.NewInputBytes(src)
	defer in.Restore()
	l := js.NewLexer(in)

	prev := js.ErrorToken
	off := 0
	for {
		tt, data := l.Next()
		if (tt == js.DivToken || tt == js.DivEqToken) && operandExpected(prev) {
			tt, data = l.RegExp()
		}
		if tt == js.ErrorToken {
			return errors.Is(l.Err(), io.EOF)
		}
		if !fn(tt, off, data) {
			return true
		}
		off += len(data)

		switch tt {
		case js.WhitespaceToken, js.LineTerminatorToken, js.CommentToken, js.CommentLineTerminatorToken:
		default:
			prev = tt
		}
	}
}

func operandExpected(prev js.TokenType) bool {
	switch prev {
	case js.ErrorToken, js.ReturnToken, js.TypeofToken:
		return true
	case js.CloseBraceToken, js.CloseParenToken, js.CloseBracketToken,
		js.IncrToken, js.DecrToken:
		return false
	}
	return js.IsPunctuator(prev)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isQuote(b byte) bool {
	return b == '\'' || b == '"'
}

// lineIndex maps byte offsets to 1-based line/column positions.
type lineIndex []int

func newLineIndex(src []byte) lineIndex {
	idx := lineIndex{0}
	for i, b := range src {
		if b == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func (idx lineIndex) pos(src []byte, off int) Pos {
	line := sort.Search(len(idx), func(i int) bool { return idx[i] > off }) - 1
	col := utf8.RuneCount(src[idx[line]:off]) + 1
	return Pos{Line: line + 1, Column: col}
}

// unquoteJS decodes a quoted JavaScript string literal.
func unquoteJS(raw []byte) string {
	if len(raw) < 2 {
		return string(raw)
	}
	s := raw[1 : len(raw)-1]
	if bytes.IndexByte(s, '\\') < 0 {
		return string(s)
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case 'x':
			if r, ok := hexRune(s[i+1:], 2); ok {
				b.WriteRune(r)
				i += 2
			} else {
				b.WriteByte('x')
			}
		case 'u':
			rest := s[i+1:]
			if len(rest) > 0 && rest[0] == '{' {
				if end := bytes.IndexByte(rest, '}'); end > 1 {
					if r, ok := hexRune(rest[1:end], end-1); ok {
						b.WriteRune(r)
						i += end + 1
						continue
					}
				}
			}
			if r, ok := hexRune(rest, 4); ok {
				b.WriteRune(r)
				i += 4
			} else {
				b.WriteByte('u')
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func hexRune(s []byte, n int) (rune, bool) {
	if len(s) < n || n == 0 {
		return 0, false
	}
	var r rune
	for _, c := range s[:n] {
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | rune(c-'0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | rune(c-'a'+10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | rune(c-'A'+10)
		default:
			return 0, false
		}
	}
	return r, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

package template

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType identifies the type of token.
type TokenType int

// TokenType constants for template text tokens.
const (
	TokenText          TokenType = iota // Literal text
	TokenInterpolation                  // {{ expr }}
	TokenBlock                          // @if, @for, ... control flow keyword
	TokenEOF                            // End of input
)

func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "TEXT"
	case TokenInterpolation:
		return "INTERPOLATION"
	case TokenBlock:
		return "BLOCK"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// blockKeywords are the built-in control flow blocks.
var blockKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "empty": true,
	"switch": true, "case": true, "default": true,
	"defer": true, "placeholder": true, "loading": true,
}

// Token represents a lexical token.
type Token struct {
	Type  TokenType
	Value string // expression for interpolations, keyword for blocks
	Pos   Position
}

// Lexer splits template text into literal text, interpolations and control
// flow keywords. Markup structure is left to the HTML tokenizer.
type Lexer struct {
	input    string
	file     string
	pos      int // current position in input
	line     int // current line number (1-based)
	col      int // current column number (1-based)
	lastLine int // line at start of current token
	lastCol  int // column at start of current token
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input, file string) *Lexer {
	return &Lexer{input: input, file: file, line: 1, col: 1}
}

// Tokenize converts the input into a slice of tokens ending in TokenEOF.
// On an unclosed interpolation it returns the tokens read so far along with
// a *LexError.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) nextToken() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.position()}, nil
	}
	if l.matchString("{{") {
		return l.scanInterpolation()
	}
	if kw := l.blockAt(); kw != "" {
		l.markStart()
		for range len(kw) + 1 {
			l.advance()
		}
		return Token{Type: TokenBlock, Value: kw, Pos: l.startPosition()}, nil
	}
	return l.scanText(), nil
}

// scanText scans literal text up to the next interpolation or block.
func (l *Lexer) scanText() Token {
	l.markStart()
	start := l.pos
	l.advance()
	for l.pos < len(l.input) && !l.matchString("{{") && l.blockAt() == "" {
		l.advance()
	}
	return Token{Type: TokenText, Value: l.input[start:l.pos], Pos: l.startPosition()}
}

// scanInterpolation scans a {{ expr }} interpolation. Braces inside the
// expression, as in object literals, nest.
func (l *Lexer) scanInterpolation() (Token, error) {
	l.markStart()
	l.pos += 2
	l.col += 2

	exprStart := l.pos
	depth := 0
	for l.pos < len(l.input) {
		if depth == 0 && l.matchString("}}") {
			expr := strings.TrimSpace(l.input[exprStart:l.pos])
			l.pos += 2
			l.col += 2
			return Token{Type: TokenInterpolation, Value: expr, Pos: l.startPosition()}, nil
		}
		switch l.peek() {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
		l.advance()
	}

	return Token{}, NewLexError(l.startPosition(), "unclosed interpolation: missing '}}'")
}

// blockAt returns the control flow keyword starting at the current '@', or
// "" when there is none. An '@' preceded by a word character, as in an
// e-mail address, is text.
func (l *Lexer) blockAt() string {
	if l.peek() != '@' {
		return ""
	}
	if l.pos > 0 {
		prev, _ := utf8.DecodeLastRuneInString(l.input[:l.pos])
		if isWordRune(prev) {
			return ""
		}
	}
	end := l.pos + 1
	for end < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[end:])
		if !isWordRune(r) {
			break
		}
		end += size
	}
	kw := l.input[l.pos+1 : end]
	if !blockKeywords[kw] {
		return ""
	}
	return kw
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// peek returns the current rune without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// advance moves to the next rune, updating position tracking.
func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *Lexer) matchString(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

func (l *Lexer) markStart() {
	l.lastLine = l.line
	l.lastCol = l.col
}

func (l *Lexer) position() Position {
	return Position{File: l.file, Line: l.line, Column: l.col}
}

func (l *Lexer) startPosition() Position {
	return Position{File: l.file, Line: l.lastLine, Column: l.lastCol}
}

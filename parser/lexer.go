package parser

import (
	"unicode"
	"unicode/utf8"
)

// Kind identifies the lexical class of a token.
type Kind int

const (
	EOF Kind = iota
	ILLEGAL
	IDENT
	STRING
	NUMBER
	LPAREN   // (
	RPAREN   // )
	LBRACK   // [
	RBRACK   // ]
	LT       // <
	GT       // >
	COMMA    // ,
	COLON    // :
	PATHSEP  // ::
	SEMI     // ;
	ARROW    // ->
	STAR     // *
	AMP      // &
	ASSIGN   // =
	HASH     // #
	BANG     // !
	LBRACE   // {
	RBRACE   // }
)

var kindNames = map[Kind]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	IDENT:   "IDENT",
	STRING:  "STRING",
	NUMBER:  "NUMBER",
	LPAREN:  "(",
	RPAREN:  ")",
	LBRACK:  "[",
	RBRACK:  "]",
	LT:      "<",
	GT:      ">",
	COMMA:   ",",
	COLON:   ":",
	PATHSEP: "::",
	SEMI:    ";",
	ARROW:   "->",
	STAR:    "*",
	AMP:     "&",
	ASSIGN:  "=",
	HASH:    "#",
	BANG:    "!",
	LBRACE:  "{",
	RBRACE:  "}",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Token is one lexeme of a source line. Pos and End are byte offsets into
// the line, so the original text of a token run is line[first.Pos:last.End].
type Token struct {
	Kind Kind
	Lit  string
	Pos  int
	End  int
}

var punct = map[byte]Kind{
	'(': LPAREN,
	')': RPAREN,
	'[': LBRACK,
	']': RBRACK,
	'<': LT,
	'>': GT,
	',': COMMA,
	';': SEMI,
	'*': STAR,
	'&': AMP,
	'=': ASSIGN,
	'#': HASH,
	'!': BANG,
	'{': LBRACE,
	'}': RBRACE,
}

// Lexer splits a single line of declaration source into tokens.
// Block comments are skipped and a line comment ends the token stream.
type Lexer struct {
	input string
	pos   int
}

// NewLexer returns a lexer over one line of input.
func NewLexer(line string) *Lexer {
	return &Lexer{input: line}
}

// Tokenize lexes the whole line. The returned slice never contains the
// trailing EOF token.
func Tokenize(line string) []Token {
	l := NewLexer(line)

	var toks []Token
	for {
		tok := l.Next()
		if tok.Kind == EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// Next returns the next token, or an EOF token at the end of the line.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Kind: EOF, Pos: l.pos, End: l.pos}
	}

	start := l.pos
	ch := l.input[l.pos]

	switch {
	case ch == '/' && l.peek(1) == '/':
		l.pos = len(l.input)
		return Token{Kind: EOF, Pos: start, End: start}

	case ch == '/' && l.peek(1) == '*':
		l.skipBlockComment()
		return l.Next()

	case ch == '-' && l.peek(1) == '>':
		l.pos += 2
		return l.token(ARROW, start)

	case ch == ':':
		if l.peek(1) == ':' {
			l.pos += 2
			return l.token(PATHSEP, start)
		}
		l.pos++
		return l.token(COLON, start)

	case ch == '"':
		l.readString()
		return l.token(STRING, start)

	case ch == 'r' && l.peek(1) == '#' && isIdentStart(l.runeAt(l.pos+2)):
		l.pos += 2
		l.readIdent()
		return l.token(IDENT, start)

	case ch >= '0' && ch <= '9':
		for l.pos < len(l.input) && isIdentPart(l.runeAt(l.pos)) {
			l.pos++
		}
		return l.token(NUMBER, start)
	}

	if k, ok := punct[ch]; ok {
		l.pos++
		return l.token(k, start)
	}

	if isIdentStart(l.runeAt(l.pos)) {
		l.readIdent()
		return l.token(IDENT, start)
	}

	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	return l.token(ILLEGAL, start)
}

func (l *Lexer) token(k Kind, start int) Token {
	return Token{Kind: k, Lit: l.input[start:l.pos], Pos: start, End: l.pos}
}

func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) runeAt(i int) rune {
	if i >= len(l.input) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.input[i:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

// skipBlockComment consumes a /* */ comment, nested ones included. An
// unterminated comment runs to the end of the line.
func (l *Lexer) skipBlockComment() {
	depth := 0
	for l.pos < len(l.input) {
		switch {
		case l.input[l.pos] == '/' && l.peek(1) == '*':
			depth++
			l.pos += 2
		case l.input[l.pos] == '*' && l.peek(1) == '/':
			depth--
			l.pos += 2
			if depth == 0 {
				return
			}
		default:
			l.pos++
		}
	}
}

func (l *Lexer) readIdent() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !isIdentPart(r) {
			return
		}
		l.pos += size
	}
}

// readString consumes a double-quoted literal. An unterminated literal runs
// to the end of the line.
func (l *Lexer) readString() {
	l.pos++
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '\\':
			l.pos += 2
		case '"':
			l.pos++
			return
		default:
			l.pos++
		}
	}
	l.pos = len(l.input)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

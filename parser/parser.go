package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedParam reports a parameter that is not of the form
	// `name: type`.
	ErrMalformedParam = errors.New("malformed parameter")

	// ErrDuplicateFunction reports a second declaration of a name that was
	// already extracted.
	ErrDuplicateFunction = errors.New("duplicate function")
)

// ParseError locates a fatal problem inside a declaration.
type ParseError struct {
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

const fnKeyword = "fn"

// Scanner extracts extern function declarations from source text one at a
// time. Like bufio.Scanner it is consumed once; scanning the same text again
// needs a new Scanner.
type Scanner struct {
	lines []string
	next  int
	fn    Function
	err   error
	seen  map[string]int
}

// NewScanner returns a Scanner over src. Line endings must already be
// normalized to "\n", see Decode. Block comments are blanked before
// scanning.
func NewScanner(src string) *Scanner {
	return &Scanner{
		lines: strings.Split(blankBlockComments(src), "\n"),
		seen:  make(map[string]int),
	}
}

// Next advances to the next declaration. It returns false at the end of the
// input or after a fatal error, which Err then reports.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}

	for s.next < len(s.lines) {
		lineNo := s.next + 1
		line := s.lines[s.next]
		s.next++

		fn, ok, err := parseLine(line, lineNo)
		if err != nil {
			s.err = err
			return false
		}
		if !ok {
			continue
		}

		key := SanitizeName(fn.Name)
		if prev, dup := s.seen[key]; dup {
			s.err = &ParseError{
				Line:   lineNo,
				Column: Tokenize(line)[1].Pos + 1,
				Msg:    fmt.Sprintf("function %s already declared on line %d", fn.Name, prev),
				Err:    ErrDuplicateFunction,
			}
			return false
		}
		s.seen[key] = lineNo

		s.fn = fn
		return true
	}

	return false
}

// Function returns the declaration found by the last successful Next.
func (s *Scanner) Function() Function {
	return s.fn
}

// Err returns the fatal error that stopped the scan, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Parse extracts every declaration in src, in source order.
func Parse(src string) ([]Function, error) {
	var funcs []Function

	s := NewScanner(src)
	for s.Next() {
		funcs = append(funcs, s.Function())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return funcs, nil
}

// parseLine recognizes
//
//	fn NAME ( PARAMS ) [-> TYPE] ;
//
// spanning the whole line. ok is false when the line is not a declaration.
// Once the line is known to be a declaration a bad parameter is an error.
func parseLine(line string, lineNo int) (Function, bool, error) {
	toks := Tokenize(line)

	if len(toks) < 5 {
		return Function{}, false, nil
	}
	if toks[0].Kind != IDENT || toks[0].Lit != fnKeyword {
		return Function{}, false, nil
	}
	if toks[1].Kind != IDENT || toks[2].Kind != LPAREN {
		return Function{}, false, nil
	}

	closing := matchParen(toks, 2)
	if closing < 0 {
		return Function{}, false, nil
	}

	last := len(toks) - 1
	if toks[last].Kind != SEMI {
		return Function{}, false, nil
	}

	tail := toks[closing+1 : last]
	if hasTopLevel(tail, SEMI) {
		return Function{}, false, nil
	}

	var ret string
	switch {
	case len(tail) == 0:
	case tail[0].Kind == ARROW && len(tail) > 1:
		ret = rawText(line, tail[1:])
	default:
		return Function{}, false, nil
	}

	params, err := parseParams(line, lineNo, toks[3:closing])
	if err != nil {
		return Function{}, false, err
	}

	fn := Function{
		Name:       toks[1].Lit,
		Params:     params,
		ReturnType: ret,
		Line:       lineNo,
	}

	return fn, true, nil
}

// matchParen returns the index of the ")" closing the "(" at open, or -1.
func matchParen(toks []Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Kind {
		case LPAREN:
			depth++
		case RPAREN:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseParams(line string, lineNo int, toks []Token) ([]Param, error) {
	if len(toks) == 0 {
		return nil, nil
	}

	segments := splitTopLevel(toks)

	params := make([]Param, 0, len(segments))
	for i, seg := range segments {
		if len(seg) == 0 {
			if i == len(segments)-1 && i > 0 {
				break
			}
			return nil, malformed(line, lineNo, toks, seg, "empty parameter")
		}

		if len(seg) < 3 || seg[0].Kind != IDENT || seg[1].Kind != COLON {
			return nil, malformed(line, lineNo, toks, seg,
				fmt.Sprintf("parameter %q is not of the form name: type", rawText(line, seg)))
		}

		params = append(params, Param{
			Name: seg[0].Lit,
			Type: rawText(line, seg[2:]),
		})
	}

	return params, nil
}

// hasTopLevel reports whether a token of kind k occurs outside (), <> and
// []. A ";" inside an array type such as [u8; 4] is not a terminator.
func hasTopLevel(toks []Token, k Kind) bool {
	depth := 0
	for _, tok := range toks {
		switch tok.Kind {
		case LPAREN, LT, LBRACK:
			depth++
		case RPAREN, GT, RBRACK:
			depth--
		case k:
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// splitTopLevel splits on commas that are not nested inside (), <> or [].
func splitTopLevel(toks []Token) [][]Token {
	var segments [][]Token

	depth := 0
	start := 0
	for i, tok := range toks {
		switch tok.Kind {
		case LPAREN, LT, LBRACK:
			depth++
		case RPAREN, GT, RBRACK:
			depth--
		case COMMA:
			if depth == 0 {
				segments = append(segments, toks[start:i])
				start = i + 1
			}
		}
	}
	segments = append(segments, toks[start:])

	return segments
}

func malformed(line string, lineNo int, all, seg []Token, msg string) error {
	col := 1
	switch {
	case len(seg) > 0:
		col = seg[0].Pos + 1
	case len(all) > 0:
		col = all[0].Pos + 1
	}

	return &ParseError{
		Line:   lineNo,
		Column: col,
		Msg:    fmt.Sprintf("%s in %q", msg, strings.TrimSpace(line)),
		Err:    ErrMalformedParam,
	}
}

// rawText returns the source text spanned by toks with runs of whitespace
// collapsed to one space.
func rawText(line string, toks []Token) string {
	if len(toks) == 0 {
		return ""
	}
	text := line[toks[0].Pos:toks[len(toks)-1].End]
	return strings.Join(strings.Fields(text), " ")
}

// blankBlockComments replaces every /* */ comment, nested ones included,
// with spaces. Newlines are kept so line and column numbers do not move.
// Line comments and string literals are copied through untouched.
func blankBlockComments(src string) string {
	if !strings.Contains(src, "/*") {
		return src
	}

	out := []byte(src)
	depth := 0
	inLine, inString := false, false

	for i := 0; i < len(out); i++ {
		ch := out[i]
		var next byte
		if i+1 < len(out) {
			next = out[i+1]
		}

		switch {
		case depth > 0:
			switch {
			case ch == '/' && next == '*':
				depth++
				out[i], out[i+1] = ' ', ' '
				i++
			case ch == '*' && next == '/':
				depth--
				out[i], out[i+1] = ' ', ' '
				i++
			case ch != '\n':
				out[i] = ' '
			}

		case inLine:
			if ch == '\n' {
				inLine = false
			}

		case inString:
			switch ch {
			case '\\':
				i++
			case '"', '\n':
				inString = false
			}

		case ch == '/' && next == '/':
			inLine = true
			i++

		case ch == '/' && next == '*':
			depth = 1
			out[i], out[i+1] = ' ', ' '
			i++

		case ch == '"':
			inString = true
		}
	}

	return string(out)
}

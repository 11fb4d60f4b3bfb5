// Package typemap translates Rust FFI type tokens into C# unmanaged types.
package typemap

import "regexp"

// Void is the C# type used when a declaration has no return type.
const Void = "void"

// Table holds the literal source tokens with a fixed C# representation.
var Table = map[string]string{
	"bool":          "byte",
	"c_char":        "byte",
	"c_void":        "void",
	"u4c":           "uint",
	"ByondCallback": "delegate* unmanaged[Cdecl]<void*, CByondValue>",

	"u8":    "byte",
	"i8":    "sbyte",
	"u16":   "ushort",
	"i16":   "short",
	"u32":   "uint",
	"i32":   "int",
	"u64":   "ulong",
	"i64":   "long",
	"f32":   "float",
	"f64":   "double",
	"usize": "nuint",
	"isize": "nint",
}

var pointerRe = regexp.MustCompile(`^\*\s*(?:const|mut)\b\s*(.+)$`)
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Rule is one step of type resolution. Resolve reports whether the rule
// applies to tok; m is passed so rules can recurse.
type Rule struct {
	Name    string
	Resolve func(m *Mapper, tok string) (string, bool)
}

var rules []Rule

// resolvePointer recurses through Mapper.Map, so the list is built in init
// to avoid an initialization cycle.
func init() {
	rules = []Rule{
		{Name: "absent", Resolve: resolveAbsent},
		{Name: "table", Resolve: resolveTable},
		{Name: "pointer", Resolve: resolvePointer},
		{Name: "passthrough", Resolve: resolvePassthrough},
	}
}

// Rules returns the resolution rules in the order they are tried.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Unresolved is a token that no rule translated and that was emitted as
// written. Suspicious is set when the token is not even a plain identifier,
// which almost certainly produces invalid C#.
type Unresolved struct {
	Token      string
	Suspicious bool
}

// Mapper applies the rules and remembers which tokens fell through to
// passthrough. A Mapper is not safe for concurrent use.
type Mapper struct {
	unresolved []Unresolved
	seen       map[string]bool
}

// New returns an empty Mapper.
func New() *Mapper {
	return &Mapper{seen: make(map[string]bool)}
}

// Map returns the C# type for a source type token. The empty token means
// "no type" and maps to void.
func (m *Mapper) Map(tok string) string {
	for _, r := range rules {
		if out, ok := r.Resolve(m, tok); ok {
			return out
		}
	}

	// passthrough always applies.
	return tok
}

// Unresolved returns the passthrough tokens in the order first seen.
func (m *Mapper) Unresolved() []Unresolved {
	out := make([]Unresolved, len(m.unresolved))
	copy(out, m.unresolved)
	return out
}

func resolveAbsent(_ *Mapper, tok string) (string, bool) {
	if tok == "" {
		return Void, true
	}
	return "", false
}

func resolveTable(_ *Mapper, tok string) (string, bool) {
	out, ok := Table[tok]
	return out, ok
}

func resolvePointer(m *Mapper, tok string) (string, bool) {
	match := pointerRe.FindStringSubmatch(tok)
	if match == nil {
		return "", false
	}
	return m.Map(match[1]) + "*", true
}

func resolvePassthrough(m *Mapper, tok string) (string, bool) {
	if m.seen != nil && !m.seen[tok] {
		m.seen[tok] = true
		m.unresolved = append(m.unresolved, Unresolved{
			Token:      tok,
			Suspicious: !identRe.MatchString(tok),
		})
	}
	return tok, true
}

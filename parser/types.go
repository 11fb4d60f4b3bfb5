package parser

// Param is one parameter of an extern declaration. Type holds the type
// token as written in the source, with inner whitespace collapsed.
type Param struct {
	Name string
	Type string
}

// Function is one extern function signature. Name is kept as written,
// including any r# prefix; see SanitizeName. An empty ReturnType means the
// declaration had no return clause.
type Function struct {
	Name       string
	Params     []Param
	ReturnType string
	Line       int
}

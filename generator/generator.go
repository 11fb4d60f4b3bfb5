package generator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/ardanlabs/trampolinegen/parser"
	"github.com/ardanlabs/trampolinegen/typemap"
)

const (
	stubsHeader       = "Function stubs"
	definitionsHeader = "Trampoline definition"
	fillHeader        = "Trampoline fill"
)

var stubTmpl = template.Must(template.New("stub").Parse(`
    [UnmanagedCallersOnly(CallConvs = [typeof(CallConvCdecl)])]
    private static {{.Return}} {{.Name}}({{.Params}}) {
        throw new NotImplementedException();
    }
`))

// Generator renders one extraction result three ways. All passes read the
// same slice, so entry i of every pass belongs to the same function.
type Generator struct {
	funcs  []parser.Function
	mapper *typemap.Mapper
}

func New(funcs []parser.Function, mapper *typemap.Mapper) *Generator {
	return &Generator{
		funcs:  funcs,
		mapper: mapper,
	}
}

// Generate returns the three passes joined under their section markers.
func (g *Generator) Generate() (string, error) {
	stubs, err := g.Stubs()
	if err != nil {
		return "", fmt.Errorf("generating stubs: %w", err)
	}

	var buf bytes.Buffer

	writeHeader(&buf, stubsHeader)
	for _, s := range stubs {
		fmt.Fprintln(&buf, s)
	}

	writeHeader(&buf, definitionsHeader)
	for _, f := range g.Fields() {
		fmt.Fprintln(&buf, f)
	}

	writeHeader(&buf, fillHeader)
	for _, a := range g.Assignments() {
		fmt.Fprintln(&buf, a)
	}

	return buf.String(), nil
}

// Stubs renders one [UnmanagedCallersOnly] placeholder method per function.
func (g *Generator) Stubs() ([]string, error) {
	out := make([]string, 0, len(g.funcs))

	for _, fn := range g.funcs {
		var params []string
		for _, p := range fn.Params {
			params = append(params, fmt.Sprintf("%s %s", g.mapper.Map(p.Type), parser.SanitizeName(p.Name)))
		}

		var buf bytes.Buffer
		err := stubTmpl.Execute(&buf, map[string]string{
			"Return": g.mapper.Map(fn.ReturnType),
			"Name":   parser.SanitizeName(fn.Name),
			"Params": strings.Join(params, ", "),
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name, err)
		}

		out = append(out, buf.String())
	}

	return out, nil
}

// Fields renders one function pointer field of the trampoline struct per
// function. The return type is the last type argument.
func (g *Generator) Fields() []string {
	out := make([]string, 0, len(g.funcs))

	for _, fn := range g.funcs {
		var types []string
		for _, p := range fn.Params {
			types = append(types, g.mapper.Map(p.Type))
		}
		types = append(types, g.mapper.Map(fn.ReturnType))

		out = append(out, fmt.Sprintf("        public delegate* unmanaged[Cdecl]<%s> %s;", strings.Join(types, ", "), parser.SanitizeName(fn.Name)))
	}

	return out
}

// Assignments renders the initializer entries binding every field to the
// native symbol of the same name.
func (g *Generator) Assignments() []string {
	out := make([]string, 0, len(g.funcs))

	for _, fn := range g.funcs {
		name := parser.SanitizeName(fn.Name)
		out = append(out, fmt.Sprintf("            %s = &%s,", name, name))
	}

	return out
}

func writeHeader(buf *bytes.Buffer, title string) {
	fmt.Fprintf(buf, "//\n// %s\n//\n", title)
}

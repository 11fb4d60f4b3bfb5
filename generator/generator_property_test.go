package generator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ardanlabs/trampolinegen/parser"
	"github.com/ardanlabs/trampolinegen/typemap"
)

var paramTypes = []string{"bool", "*const c_char", "*mut CByondValue", "u4c", "*mut *const c_void", "ByondCallback"}

// buildSource renders one declaration per entry of arities, interleaved with
// lines the extractor must skip.
func buildSource(arities []int, withReturn []bool) string {
	var b strings.Builder
	for i, n := range arities {
		fmt.Fprintf(&b, "// decl %d\n", i)

		params := make([]string, n)
		for j := range params {
			params[j] = fmt.Sprintf("p%d: %s", j, paramTypes[(i+j)%len(paramTypes)])
		}

		ret := ""
		if i < len(withReturn) && withReturn[i] {
			ret = " -> bool"
		}
		fmt.Fprintf(&b, "    fn f_%d(%s)%s;\n", i, strings.Join(params, ", "), ret)
	}
	return b.String()
}

func TestPropertyPassesAlign(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("all passes have one entry per function in order", prop.ForAll(
		func(arities []int, withReturn []bool) bool {
			funcs, err := parser.Parse(buildSource(arities, withReturn))
			if err != nil || len(funcs) != len(arities) {
				return false
			}

			g := New(funcs, typemap.New())
			stubs, err := g.Stubs()
			if err != nil {
				return false
			}
			fields := g.Fields()
			assigns := g.Assignments()

			if len(stubs) != len(funcs) || len(fields) != len(funcs) || len(assigns) != len(funcs) {
				return false
			}

			for i := range funcs {
				name := fmt.Sprintf("f_%d", i)
				if !strings.Contains(stubs[i], " "+name+"(") ||
					!strings.HasSuffix(fields[i], "> "+name+";") ||
					assigns[i] != fmt.Sprintf("            %s = &%s,", name, name) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 5)),
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("field type arguments are params then return", prop.ForAll(
		func(arities []int) bool {
			funcs, err := parser.Parse(buildSource(arities, nil))
			if err != nil {
				return false
			}

			m := typemap.New()
			fields := New(funcs, m).Fields()
			for i, fn := range funcs {
				var types []string
				for _, p := range fn.Params {
					types = append(types, m.Map(p.Type))
				}
				types = append(types, "void")

				want := fmt.Sprintf("<%s> %s;", strings.Join(types, ", "), fn.Name)
				if !strings.HasSuffix(fields[i], want) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 5)),
	))

	properties.Property("zero parameter stubs have an empty list", prop.ForAll(
		func(count int) bool {
			funcs, err := parser.Parse(buildSource(make([]int, count), nil))
			if err != nil {
				return false
			}

			g := New(funcs, typemap.New())
			stubs, err := g.Stubs()
			if err != nil {
				return false
			}
			for i, s := range stubs {
				if !strings.Contains(s, fmt.Sprintf("private static void f_%d() {", i)) {
					return false
				}
			}
			return len(g.Fields()) == count && len(g.Assignments()) == count
		},
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}

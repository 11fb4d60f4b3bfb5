package parser

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain", []byte("fn a();\n"), "fn a();\n"},
		{"utf8 bom", []byte("\xEF\xBB\xBFfn a();"), "fn a();"},
		{"crlf", []byte("fn a();\r\nfn b();\r\n"), "fn a();\nfn b();\n"},
		{"utf16le bom", []byte{0xFF, 0xFE, 'f', 0, 'n', 0, ' ', 0, 'a', 0}, "fn a"},
		{"utf16be bom", []byte{0xFE, 0xFF, 0, 'f', 0, 'n', 0, ' ', 0, 'a'}, "fn a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodedSourceParses(t *testing.T) {
	src, err := Decode([]byte("\xEF\xBB\xBF    fn Byond_GetDMBVersion() -> u4c;\r\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	funcs, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(funcs) != 1 || funcs[0].Name != "Byond_GetDMBVersion" {
		t.Fatalf("Parse() = %v", funcs)
	}
}

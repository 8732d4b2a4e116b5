package objmodel

import (
	"reflect"
	"testing"
)

func TestDirectiveAndPayload(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantKind    string
		wantPayload string
	}{
		{"vertex", "v 1 2 3", "v", "1 2 3"},
		{"leading whitespace", "   \tvn 0 0 1", "vn", "0 0 1"},
		{"crlf", "usemtl Wood\r", "usemtl", "Wood"},
		{"trailing blanks", "g body  \t ", "g", "body"},
		{"no payload", "g", "g", ""},
		{"blank", "  \t ", "", ""},
		{"empty", "", "", ""},
		{"comment", "# made by hand", "#", "made by hand"},
		{"glued comment", "#made", "#made", ""},
		{"spaces in payload", "mtllib my model.mtl", "mtllib", "my model.mtl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := directive(tt.line); got != tt.wantKind {
				t.Errorf("directive(%q) = %q, want %q", tt.line, got, tt.wantKind)
			}
			if got := payload(tt.line); got != tt.wantPayload {
				t.Errorf("payload(%q) = %q, want %q", tt.line, got, tt.wantPayload)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		sep  byte
		want []string
	}{
		{"1/2/3", '/', []string{"1", "2", "3"}},
		{"1//3", '/', []string{"1", "", "3"}},
		{"1/2", '/', []string{"1", "2"}},
		{"1", '/', []string{"1"}},
		{"1/2/", '/', []string{"1", "2"}},
		{"", '/', nil},
		{"a  b", ' ', []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		if got := split(tt.in, tt.sep); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("split(%q, %q) = %q, want %q", tt.in, tt.sep, got, tt.want)
		}
	}
}

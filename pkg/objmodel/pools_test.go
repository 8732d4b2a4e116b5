package objmodel

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestResolveIndex(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		size    int
		want    int
		wantErr error
	}{
		{"first", 1, 3, 0, nil},
		{"last", 3, 3, 2, nil},
		{"relative last", -1, 3, 2, nil},
		{"relative first", -3, 3, 0, nil},
		{"zero", 0, 3, 0, errIndexZero},
		{"past end", 4, 3, 0, errOutOfRange},
		{"relative past start", -4, 3, 0, errOutOfRange},
		{"empty pool", 1, 0, 0, errOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveIndex(tt.index, tt.size)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("resolveIndex(%d, %d) error = %v, want %v", tt.index, tt.size, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveIndex(%d, %d) unexpected error: %v", tt.index, tt.size, err)
			}
			if got != tt.want {
				t.Errorf("resolveIndex(%d, %d) = %d, want %d", tt.index, tt.size, got, tt.want)
			}
		})
	}
}

func TestAddPosition(t *testing.T) {
	var p attributePools
	if err := p.addPosition("1 2 3", 2); err != nil {
		t.Fatalf("addPosition: %v", err)
	}
	if err := p.addPosition("1 2 3 0.5 0.1 0.2", 1); err != nil {
		t.Fatalf("addPosition with colour: %v", err)
	}
	if err := p.addPosition("4", 1); err != nil {
		t.Fatalf("addPosition short: %v", err)
	}

	want := []mgl32.Vec4{{2, 4, 6, 1}, {1, 2, 3, 1}, {4, 0, 0, 1}}
	for i, w := range want {
		if p.positions[i] != w {
			t.Errorf("positions[%d] = %v, want %v", i, p.positions[i], w)
		}
	}
}

func TestAddNormalAndUV(t *testing.T) {
	var p attributePools
	if err := p.addNormal("0 1 0 1"); err != nil {
		t.Fatalf("addNormal: %v", err)
	}
	if err := p.addUV("0.25 0.75 0"); err != nil {
		t.Fatalf("addUV: %v", err)
	}

	if want := (mgl32.Vec4{0, 1, 0, 0}); p.normals[0] != want {
		t.Errorf("normal = %v, want %v", p.normals[0], want)
	}
	if want := (mgl32.Vec2{0.25, 0.75}); p.uvs[0] != want {
		t.Errorf("uv = %v, want %v", p.uvs[0], want)
	}
}

func TestParseVectorErrors(t *testing.T) {
	for _, data := range []string{"1 x 3", "nan-ish", "1,0 2 3"} {
		if _, err := parseVector(data); err == nil {
			t.Errorf("parseVector(%q) expected error", data)
		}
	}
	if _, err := parseScalar(""); err == nil {
		t.Error("parseScalar(\"\") expected error")
	}
	if f, err := parseScalar("0.3 ignored"); err != nil || f != 0.3 {
		t.Errorf("parseScalar = %v, %v; want 0.3", f, err)
	}
}

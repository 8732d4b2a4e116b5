package objmodel

import (
	"errors"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestParseTriplet(t *testing.T) {
	tests := []struct {
		token   string
		want    triplet
		wantErr bool
	}{
		{"1", triplet{1, 0, 0}, false},
		{"1/2", triplet{1, 2, 0}, false},
		{"1/2/3", triplet{1, 2, 3}, false},
		{"1//3", triplet{1, 0, 3}, false},
		{"-1/-1/-1", triplet{-1, -1, -1}, false},
		{"/2/3", triplet{}, true},
		{"a/2/3", triplet{}, true},
		{"1/b", triplet{}, true},
		{"1/2/c", triplet{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := parseTriplet(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTriplet(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseTriplet(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestFaceTokens(t *testing.T) {
	got := faceTokens("1/1  2/2\t3/3 ")
	want := []string{"1/1", "2/2", "3/3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("faceTokens = %q, want %q", got, want)
	}
}

func quadPools() *attributePools {
	return &attributePools{
		positions: []mgl32.Vec4{
			{0, 0, 0, 1}, {1, 0, 0, 1}, {1, 1, 0, 1}, {0, 1, 0, 1},
		},
		normals: []mgl32.Vec4{{0, 0, 1, 0}},
		uvs:     []mgl32.Vec2{{0, 0}, {1, 1}},
	}
}

func TestAssembleFaceFan(t *testing.T) {
	tests := []struct {
		name        string
		tokens      []string
		wantIndices []uint32
	}{
		{"triangle", []string{"1", "2", "3"}, []uint32{0, 1, 2}},
		{"quad", []string{"1", "2", "3", "4"}, []uint32{0, 1, 2, 0, 2, 3}},
		{"pentagon", []string{"1", "2", "3", "4", "1"}, []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh := newMesh("")
			if err := quadPools().assembleFace(mesh, tt.tokens); err != nil {
				t.Fatalf("assembleFace: %v", err)
			}
			if len(mesh.Vertices) != len(tt.tokens) {
				t.Errorf("vertices = %d, want %d", len(mesh.Vertices), len(tt.tokens))
			}
			if !reflect.DeepEqual(mesh.Indices, tt.wantIndices) {
				t.Errorf("indices = %v, want %v", mesh.Indices, tt.wantIndices)
			}
			if want := 3 * (len(tt.tokens) - 2); len(mesh.Indices) != want {
				t.Errorf("index count = %d, want %d", len(mesh.Indices), want)
			}
		})
	}
}

func TestAssembleFaceOffsetsSecondFace(t *testing.T) {
	p := quadPools()
	mesh := newMesh("")
	if err := p.assembleFace(mesh, []string{"1", "2", "3"}); err != nil {
		t.Fatal(err)
	}
	if err := p.assembleFace(mesh, []string{"1", "3", "4"}); err != nil {
		t.Fatal(err)
	}

	want := []uint32{0, 1, 2, 3, 4, 5}
	if !reflect.DeepEqual(mesh.Indices, want) {
		t.Errorf("indices = %v, want %v", mesh.Indices, want)
	}
	for _, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Vertices) {
			t.Errorf("index %d out of range for %d vertices", idx, len(mesh.Vertices))
		}
	}
}

func TestAssembleFaceAttributes(t *testing.T) {
	mesh := newMesh("")
	if err := quadPools().assembleFace(mesh, []string{"1/1/1", "2//1", "-1/-1"}); err != nil {
		t.Fatalf("assembleFace: %v", err)
	}

	want := []Vertex{
		{Position: mgl32.Vec4{0, 0, 0, 1}, Normal: mgl32.Vec4{0, 0, 1, 0}, UV: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec4{1, 0, 0, 1}, Normal: mgl32.Vec4{0, 0, 1, 0}},
		{Position: mgl32.Vec4{0, 1, 0, 1}, UV: mgl32.Vec2{1, 1}},
	}
	for i, w := range want {
		if !mesh.Vertices[i].Equal(w) {
			t.Errorf("vertex %d = %+v, want %+v", i, mesh.Vertices[i], w)
		}
	}
}

func TestAssembleFaceErrors(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		wantErr error
	}{
		{"two vertices", []string{"1", "2"}, errShortFace},
		{"position zero", []string{"0", "1", "2"}, errIndexZero},
		{"position out of range", []string{"1", "2", "9"}, errOutOfRange},
		{"normal out of range", []string{"1//2", "2", "3"}, errOutOfRange},
		{"uv out of range", []string{"1/3", "2", "3"}, errOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh := newMesh("")
			err := quadPools().assembleFace(mesh, tt.tokens)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("assembleFace error = %v, want %v", err, tt.wantErr)
			}
			if len(mesh.Vertices) != 0 || len(mesh.Indices) != 0 {
				t.Errorf("mesh modified on error: %d vertices, %d indices", len(mesh.Vertices), len(mesh.Indices))
			}
		})
	}
}

package objmodel

import (
	"errors"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/encoding/korean"
)

const triangleOBJ = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func newTestModel(files fstest.MapFS) *Model {
	return New(Options{FS: files})
}

func mapFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fsys
}

func mustLoad(t *testing.T, m *Model, name string) {
	t.Helper()
	if err := m.Load(name, 1); err != nil {
		t.Fatalf("Load(%q): %v", name, err)
	}
}

func TestLoadSingleTriangle(t *testing.T) {
	m := newTestModel(mapFS(map[string]string{"tri.obj": triangleOBJ}))
	mustLoad(t, m, "tri.obj")

	if !m.IsLoaded() {
		t.Fatal("IsLoaded() = false after successful Load")
	}
	if m.MeshCount() != 1 {
		t.Fatalf("MeshCount() = %d, want 1", m.MeshCount())
	}
	mesh := m.MeshByIndex(0)
	if len(mesh.Vertices) != 3 {
		t.Errorf("vertices = %d, want 3", len(mesh.Vertices))
	}
	if want := []uint32{0, 1, 2}; !reflect.DeepEqual(mesh.Indices, want) {
		t.Errorf("indices = %v, want %v", mesh.Indices, want)
	}
	for i, v := range mesh.Vertices {
		if want := (mgl32.Vec4{0, 0, 1, 0}); v.Normal != want {
			t.Errorf("vertex %d normal = %v, want %v", i, v.Normal, want)
		}
	}
	if mesh.Name != "" {
		t.Errorf("implicit mesh name = %q, want empty", mesh.Name)
	}
	if mesh.HasMaterial() || m.MeshMaterial(mesh) != nil {
		t.Error("implicit mesh should have no material")
	}
}

func TestLoadQuadFanOrder(t *testing.T) {
	obj := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	m := newTestModel(mapFS(map[string]string{"quad.obj": obj}))
	mustLoad(t, m, "quad.obj")

	mesh := m.MeshByIndex(0)
	if want := []uint32{0, 1, 2, 0, 2, 3}; !reflect.DeepEqual(mesh.Indices, want) {
		t.Errorf("indices = %v, want %v", mesh.Indices, want)
	}
	wantPos := []mgl32.Vec4{{0, 0, 0, 1}, {1, 0, 0, 1}, {1, 1, 0, 1}, {0, 1, 0, 1}}
	for i, w := range wantPos {
		if mesh.Vertices[i].Position != w {
			t.Errorf("vertex %d position = %v, want %v", i, mesh.Vertices[i].Position, w)
		}
	}
	if got := m.Stats(); got != (Stats{Meshes: 1, Vertices: 4, Indices: 6, Triangles: 2}) {
		t.Errorf("Stats() = %+v", got)
	}
}

func TestLoadExplicitNormalsSkipSynthesis(t *testing.T) {
	// A normal pool that faces never reference still disables synthesis.
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 1 0 0\nf 1 2 3\nf 1//1 2//1 3//1\n"
	m := newTestModel(mapFS(map[string]string{"n.obj": obj}))
	mustLoad(t, m, "n.obj")

	mesh := m.MeshByIndex(0)
	for i := 0; i < 3; i++ {
		if mesh.Vertices[i].Normal != (mgl32.Vec4{}) {
			t.Errorf("vertex %d normal = %v, want zero", i, mesh.Vertices[i].Normal)
		}
	}
	for i := 3; i < 6; i++ {
		if want := (mgl32.Vec4{1, 0, 0, 0}); mesh.Vertices[i].Normal != want {
			t.Errorf("vertex %d normal = %v, want %v", i, mesh.Vertices[i].Normal, want)
		}
	}
}

func TestLoadNegativeIndices(t *testing.T) {
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\nv 5 5 5\nf -4 -3 -1\n"
	m := newTestModel(mapFS(map[string]string{"rel.obj": obj}))
	mustLoad(t, m, "rel.obj")

	mesh := m.MeshByIndex(0)
	if want := (mgl32.Vec4{5, 5, 5, 1}); mesh.Vertices[5].Position != want {
		t.Errorf("relative vertex = %v, want %v", mesh.Vertices[5].Position, want)
	}
}

func TestLoadScale(t *testing.T) {
	m := newTestModel(mapFS(map[string]string{"tri.obj": "v 1 2 3 4\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"}))
	if err := m.Load("tri.obj", 0.5); err != nil {
		t.Fatal(err)
	}
	if want := (mgl32.Vec4{0.5, 1, 1.5, 1}); m.MeshByIndex(0).Vertices[0].Position != want {
		t.Errorf("scaled position = %v, want %v", m.MeshByIndex(0).Vertices[0].Position, want)
	}
}

func TestLoadGroups(t *testing.T) {
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\n" +
		"g first\nf 1 2 3\n" +
		"g empty\n" +
		"o second\nf 1 2 3\nf 3 2 1\n"
	m := newTestModel(mapFS(map[string]string{"g.obj": obj}))
	mustLoad(t, m, "g.obj")

	if m.MeshCount() != 2 {
		t.Fatalf("MeshCount() = %d, want 2", m.MeshCount())
	}
	if m.MeshByName("empty") != nil {
		t.Error("empty group must not become a mesh")
	}
	second := m.MeshByName("second")
	if second == nil || second != m.MeshByIndex(1) {
		t.Fatalf("MeshByName(second) = %v", second)
	}
	if second.TriangleCount() != 2 {
		t.Errorf("second.TriangleCount() = %d, want 2", second.TriangleCount())
	}
	if m.MeshByIndex(2) != nil || m.MeshByIndex(-1) != nil {
		t.Error("out-of-range MeshByIndex should return nil")
	}
}

func TestLoadMaterialLibrary(t *testing.T) {
	files := mapFS(map[string]string{
		"models/x.obj": "mtllib x.mtl\nusemtl M\n" + triangleOBJ,
		"models/x.mtl": "newmtl M\nKd 1 0 0\nd 0.5\n",
	})
	m := newTestModel(files)
	mustLoad(t, m, "models/x.obj")

	if m.Path() != "models/" {
		t.Errorf("Path() = %q, want %q", m.Path(), "models/")
	}
	if m.Filename() != "models/x.obj" {
		t.Errorf("Filename() = %q", m.Filename())
	}
	if m.MaterialCount() != 1 {
		t.Fatalf("MaterialCount() = %d, want 1", m.MaterialCount())
	}
	mat := m.MaterialByName("M")
	if mat == nil {
		t.Fatal("MaterialByName(M) = nil")
	}
	if want := (mgl32.Vec4{1, 0, 0, 0.5}); mat.Diffuse != want {
		t.Errorf("Kd = %v, want %v", mat.Diffuse, want)
	}
	if got := m.MeshMaterial(m.MeshByIndex(0)); got != mat {
		t.Errorf("mesh material = %v, want M", got)
	}
}

func TestLoadUsemtlBeforeNewmtl(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	files := mapFS(map[string]string{
		"a.obj": "usemtl Foo\nmtllib a.mtl\n" + triangleOBJ,
		"a.mtl": "newmtl Foo\nKd 1 1 1\n",
	})
	m := New(Options{FS: files, Logger: zap.New(core)})
	mustLoad(t, m, "a.obj")

	if m.MeshByIndex(0).HasMaterial() {
		t.Error("usemtl before newmtl must leave the mesh without material")
	}
	if logs.FilterMessage("unknown material ignored").Len() != 1 {
		t.Error("expected unknown material debug entry")
	}
}

func TestLoadPendingMaterial(t *testing.T) {
	obj := "mtllib m.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\n" +
		"usemtl Red\n" +
		"g a\nf 1 2 3\n" +
		"g b\nf 1 2 3\n" +
		"g c\nf 1 2 3\n" +
		"usemtl Blue\n" +
		"g d\nf 1 2 3\n"
	files := mapFS(map[string]string{
		"m.obj": obj,
		"m.mtl": "newmtl Red\nKd 1 0 0\nnewmtl Blue\nKd 0 0 1\n",
	})
	m := newTestModel(files)
	mustLoad(t, m, "m.obj")

	want := map[string]string{"a": "Red", "b": "", "c": "Blue", "d": "Blue"}
	for name, matName := range want {
		mat := m.MeshMaterial(m.MeshByName(name))
		got := ""
		if mat != nil {
			got = mat.Name
		}
		if got != matName {
			t.Errorf("mesh %s material = %q, want %q", name, got, matName)
		}
	}
}

func TestLoadMissingMaterialLibrary(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m := New(Options{
		FS:     mapFS(map[string]string{"a.obj": "mtllib gone.mtl\nusemtl X\n" + triangleOBJ}),
		Logger: zap.New(core),
	})
	mustLoad(t, m, "a.obj")

	if m.MaterialCount() != 0 {
		t.Errorf("MaterialCount() = %d, want 0", m.MaterialCount())
	}
	entries := logs.FilterMessage("material library not found").All()
	if len(entries) != 1 {
		t.Fatalf("warn entries = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["mtllib"]; got != "gone.mtl" {
		t.Errorf("logged mtllib = %v, want gone.mtl", got)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	m := newTestModel(mapFS(map[string]string{"empty.obj": ""}))
	err := m.Load("empty.obj", 1)
	if !errors.Is(err, ErrEmptyFile) || !errors.Is(err, ErrOpen) {
		t.Fatalf("Load error = %v, want ErrEmptyFile wrapping ErrOpen", err)
	}
	if m.IsLoaded() || m.MeshCount() != 0 || m.MaterialCount() != 0 {
		t.Errorf("model not empty: loaded=%v meshes=%d materials=%d", m.IsLoaded(), m.MeshCount(), m.MaterialCount())
	}
}

func TestLoadMissingFile(t *testing.T) {
	m := newTestModel(fstest.MapFS{})
	if err := m.Load("nope.obj", 1); !errors.Is(err, ErrOpen) {
		t.Errorf("Load error = %v, want ErrOpen", err)
	}
}

func TestLoadNoMeshes(t *testing.T) {
	m := newTestModel(mapFS(map[string]string{"v.obj": "# only points\nv 0 0 0\ng lonely\n"}))
	if err := m.Load("v.obj", 1); !errors.Is(err, ErrNoMeshes) {
		t.Errorf("Load error = %v, want ErrNoMeshes", err)
	}
	if m.IsLoaded() || m.Filename() != "" {
		t.Error("failed load should leave the model empty")
	}
}

func TestLoadFormatErrors(t *testing.T) {
	tests := []struct {
		name          string
		obj           string
		mtl           string
		wantFile      string
		wantLine      int
		wantDirective string
	}{
		{"bad position", "v 0 zero 0\n", "", "bad.obj", 1, "v"},
		{"bad uv", "vt 0 u\n", "", "bad.obj", 1, "vt"},
		{"bad normal", "vn 0 0 one\n", "", "bad.obj", 1, "vn"},
		{"out of range face", triangleOBJ + "f 1 2 4\n", "", "bad.obj", 5, "f"},
		{"zero index", triangleOBJ + "f 0 1 2\n", "", "bad.obj", 5, "f"},
		{"short face", triangleOBJ + "f 1 2\n", "", "bad.obj", 5, "f"},
		{"non-numeric face", triangleOBJ + "f 1 2 x\n", "", "bad.obj", 5, "f"},
		{"bad colour", "mtllib bad.mtl\n" + triangleOBJ, "newmtl M\nKd 1 red 0\n", "bad.mtl", 2, "Kd"},
		{"bad shininess", "mtllib bad.mtl\n" + triangleOBJ, "newmtl M\nNs high\n", "bad.mtl", 2, "Ns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{"bad.obj": tt.obj}
			if tt.mtl != "" {
				files["bad.mtl"] = tt.mtl
			}
			m := newTestModel(mapFS(files))

			err := m.Load("bad.obj", 1)
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("Load error = %v, want ErrFormat", err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Load error %T is not a *FormatError", err)
			}
			if fe.File != tt.wantFile || fe.Line != tt.wantLine || fe.Directive != tt.wantDirective {
				t.Errorf("FormatError = %s:%d %s, want %s:%d %s",
					fe.File, fe.Line, fe.Directive, tt.wantFile, tt.wantLine, tt.wantDirective)
			}
			if m.IsLoaded() || m.MeshCount() != 0 || m.MaterialCount() != 0 {
				t.Error("failed load should leave the model empty")
			}
		})
	}
}

func TestLoadTwiceAndUnload(t *testing.T) {
	m := newTestModel(mapFS(map[string]string{"tri.obj": triangleOBJ}))
	mustLoad(t, m, "tri.obj")

	if err := m.Load("tri.obj", 1); !errors.Is(err, ErrAlreadyLoaded) {
		t.Fatalf("second Load error = %v, want ErrAlreadyLoaded", err)
	}
	if m.MeshCount() != 1 {
		t.Errorf("rejected Load changed MeshCount to %d", m.MeshCount())
	}

	world := mgl32.Translate3D(1, 2, 3)
	m.SetWorldMatrix(world)
	m.Unload()

	if m.IsLoaded() || m.MeshCount() != 0 || m.MaterialCount() != 0 || m.Path() != "" || m.Filename() != "" {
		t.Error("Unload should reset meshes, materials and file information")
	}
	if m.WorldMatrix() != world {
		t.Error("Unload should keep the world matrix")
	}

	mustLoad(t, m, "tri.obj")
	if m.MeshCount() != 1 {
		t.Errorf("MeshCount() after reload = %d, want 1", m.MeshCount())
	}
}

func TestNewDefaults(t *testing.T) {
	m := New(Options{})
	if m.WorldMatrix() != mgl32.Ident4() {
		t.Error("default world matrix should be identity")
	}
	if _, ok := m.fs.(OSFileSystem); !ok {
		t.Errorf("default FS = %T, want OSFileSystem", m.fs)
	}
	if m.MaterialByIndex(0) != nil || m.MeshMaterial(nil) != nil {
		t.Error("empty model queries should return nil")
	}
}

func TestLoadCharset(t *testing.T) {
	src := "mtllib 의자.mtl\nusemtl 나무\ng 의자\n" + triangleOBJ
	obj, err := korean.EUCKR.NewEncoder().String(src)
	if err != nil {
		t.Fatal(err)
	}
	mtl, err := korean.EUCKR.NewEncoder().String("newmtl 나무\nmap_Kd 나무.png\n")
	if err != nil {
		t.Fatal(err)
	}
	files := mapFS(map[string]string{"chair.obj": obj, "의자.mtl": mtl})

	m := New(Options{FS: files, Charset: korean.EUCKR})
	mustLoad(t, m, "chair.obj")

	mesh := m.MeshByName("의자")
	if mesh == nil {
		t.Fatal("decoded mesh name not found")
	}
	mat := m.MeshMaterial(mesh)
	if mat == nil || mat.Name != "나무" {
		t.Fatalf("mesh material = %v, want 나무", mat)
	}
	if got := mat.Texture(DiffuseTexture); got != "나무.png" {
		t.Errorf("diffuse texture = %q, want %q", got, "나무.png")
	}
}

func TestLoadCommentsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := New(Options{
		FS:     mapFS(map[string]string{"c.obj": "# exported by hand\n" + triangleOBJ}),
		Logger: zap.New(core),
	})
	mustLoad(t, m, "c.obj")

	comments := logs.FilterMessage("comment").All()
	if len(comments) != 1 || comments[0].ContextMap()["text"] != "exported by hand" {
		t.Errorf("comment entries = %v", comments)
	}
	if logs.FilterMessage("model loaded").Len() != 1 {
		t.Error("expected model loaded info entry")
	}
}

func TestLoadCubeFromDisk(t *testing.T) {
	m := New(Options{})
	mustLoad(t, m, "testdata/cube.obj")

	if m.MeshCount() != 1 {
		t.Fatalf("MeshCount() = %d, want 1", m.MeshCount())
	}
	cube := m.MeshByName("Cube")
	if cube == nil {
		t.Fatal("mesh Cube not found")
	}
	if got, want := m.Stats(), (Stats{Meshes: 1, Materials: 1, Vertices: 24, Indices: 36, Triangles: 12}); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
	for _, idx := range cube.Indices {
		if int(idx) >= len(cube.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
	lo, hi := cube.Bounds()
	if lo != (mgl32.Vec3{-0.5, -0.5, -0.5}) || hi != (mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("Bounds() = %v %v", lo, hi)
	}

	wood := m.MeshMaterial(cube)
	if wood == nil || wood.Name != "Wood" {
		t.Fatalf("cube material = %v, want Wood", wood)
	}
	if wood.SpecularExponent() != 32 || wood.RefractionIndex() != 1.45 || wood.Opacity() != 1 {
		t.Errorf("scalars Ns=%v Ni=%v d=%v", wood.SpecularExponent(), wood.RefractionIndex(), wood.Opacity())
	}
	if got := wood.Texture(DiffuseTexture); got != "testdata/textures/wood.png" {
		t.Errorf("diffuse texture = %q", got)
	}
	if got := wood.Texture(NormalTexture); got != "testdata/textures/wood_n.png" {
		t.Errorf("normal texture = %q", got)
	}
	if got := wood.Texture(SpecularTexture); got != "" {
		t.Errorf("specular texture = %q, want empty", got)
	}
}

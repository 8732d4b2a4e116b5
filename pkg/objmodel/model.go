// Package objmodel loads Wavefront OBJ models and their MTL material
// libraries into indexed triangle meshes.
//
// A Model is loaded in one blocking call and then queried by a renderer:
//
//	m := objmodel.New(objmodel.Options{})
//	if err := m.Load("models/chair.obj", 1.0); err != nil {
//		// discard the model
//	}
//	for i := 0; i < m.MeshCount(); i++ {
//		mesh := m.MeshByIndex(i)
//		mat := m.MeshMaterial(mesh)
//		...
//	}
//
// A Model is not safe for concurrent use; independent models may be loaded
// on separate goroutines.
package objmodel

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// maxLineSize bounds a single OBJ/MTL line.
const maxLineSize = 4 << 20

// Options configures a Model. The zero value reads from the OS filesystem,
// discards log output and treats input as UTF-8.
type Options struct {
	FS      FileSystem
	Logger  *zap.Logger
	Charset encoding.Encoding // Source text encoding, nil for UTF-8
}

// Model is a loaded OBJ file: its meshes, its materials and a world transform.
type Model struct {
	fs      FileSystem
	log     *zap.Logger
	charset encoding.Encoding

	path      string // Base directory, with trailing separator
	filename  string // Path passed to Load
	meshes    []*Mesh
	materials []*Material
	world     mgl32.Mat4
	loaded    bool
}

// Stats summarizes a loaded model.
type Stats struct {
	Meshes    int `yaml:"meshes"`
	Materials int `yaml:"materials"`
	Vertices  int `yaml:"vertices"`
	Indices   int `yaml:"indices"`
	Triangles int `yaml:"triangles"`
}

// New creates an empty model.
func New(opts Options) *Model {
	m := &Model{
		fs:      opts.FS,
		log:     opts.Logger,
		charset: opts.Charset,
		world:   mgl32.Ident4(),
	}
	if m.fs == nil {
		m.fs = OSFileSystem{}
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	return m
}

// Load parses the OBJ file at filename, scaling every position by scale.
// Referenced material libraries are resolved relative to the file's directory.
//
// On error the model is left empty and must not be rendered. Load must not be
// called again before Unload.
func (m *Model) Load(filename string, scale float32) error {
	if m.loaded {
		return ErrAlreadyLoaded
	}

	m.log.Info("loading model", zap.String("file", filename))
	info, err := m.fs.Stat(filename)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrOpen, filename, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, filename)
	}
	m.log.Debug("model file opened", zap.Int64("sizeKB", info.Size()/1024))

	m.path = baseDir(filename)
	m.filename = filename

	l := &loader{model: m, scale: scale, pendingMaterial: NoMaterial}
	if err := l.run(filename); err != nil {
		m.Unload()
		return err
	}
	if len(m.meshes) == 0 {
		m.Unload()
		return fmt.Errorf("%w: %s", ErrNoMeshes, filename)
	}

	m.loaded = true
	st := m.Stats()
	m.log.Info("model loaded",
		zap.String("file", filename),
		zap.Int("meshes", st.Meshes),
		zap.Int("materials", st.Materials),
		zap.Int("triangles", st.Triangles),
		zap.Bool("synthesizedNormals", len(l.pools.normals) == 0),
	)
	return nil
}

// Unload clears meshes, materials and file information, returning the model
// to its empty state. The world matrix is kept.
func (m *Model) Unload() {
	m.meshes = nil
	m.materials = nil
	m.path = ""
	m.filename = ""
	m.loaded = false
}

// IsLoaded reports whether the last Load succeeded.
func (m *Model) IsLoaded() bool { return m.loaded }

// Path returns the base directory of the loaded file, including the
// trailing separator, or "" when the file had no directory component.
func (m *Model) Path() string { return m.path }

// Filename returns the path passed to Load.
func (m *Model) Filename() string { return m.filename }

// WorldMatrix returns the model's world transform.
func (m *Model) WorldMatrix() mgl32.Mat4 { return m.world }

// SetWorldMatrix replaces the model's world transform.
func (m *Model) SetWorldMatrix(w mgl32.Mat4) { m.world = w }

// MeshCount returns the number of meshes.
func (m *Model) MeshCount() int { return len(m.meshes) }

// MeshByIndex returns the mesh at index i, or nil when out of range.
func (m *Model) MeshByIndex(i int) *Mesh {
	if i < 0 || i >= len(m.meshes) {
		return nil
	}
	return m.meshes[i]
}

// MeshByName returns the first mesh with the given name, or nil.
func (m *Model) MeshByName(name string) *Mesh {
	for _, mesh := range m.meshes {
		if mesh.Name == name {
			return mesh
		}
	}
	return nil
}

// MaterialCount returns the number of materials.
func (m *Model) MaterialCount() int { return len(m.materials) }

// MaterialByIndex returns the material at index i, or nil when out of range.
func (m *Model) MaterialByIndex(i int) *Material {
	if i < 0 || i >= len(m.materials) {
		return nil
	}
	return m.materials[i]
}

// MaterialByName returns the first material with the given name, or nil.
func (m *Model) MaterialByName(name string) *Material {
	return m.MaterialByIndex(m.materialIndex(name))
}

// MeshMaterial returns the material assigned to mesh, or nil.
func (m *Model) MeshMaterial(mesh *Mesh) *Material {
	if mesh == nil {
		return nil
	}
	return m.MaterialByIndex(mesh.MaterialIndex)
}

// Stats returns mesh, material and geometry totals.
func (m *Model) Stats() Stats {
	st := Stats{Meshes: len(m.meshes), Materials: len(m.materials)}
	for _, mesh := range m.meshes {
		st.Vertices += len(mesh.Vertices)
		st.Indices += len(mesh.Indices)
		st.Triangles += mesh.TriangleCount()
	}
	return st
}

func (m *Model) materialIndex(name string) int {
	for i, mat := range m.materials {
		if mat.Name == name {
			return i
		}
	}
	return NoMaterial
}

// readLines streams the non-blank, non-comment lines of a file to fn as
// (line number, directive, payload).
func (m *Model) readLines(name string, fn func(lineNo int, kind, data string) error) error {
	f, err := m.fs.Open(name)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrOpen, name, err)
	}
	defer f.Close()

	var r io.Reader = f
	if m.charset != nil {
		r = transform.NewReader(f, m.charset.NewDecoder())
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		kind := directive(line)
		if kind == "" {
			continue
		}
		data := payload(line)
		if strings.HasPrefix(kind, "#") {
			m.log.Debug("comment", zap.String("file", name), zap.String("text", data))
			continue
		}
		if err := fn(lineNo, kind, data); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return nil
}

// baseDir returns filename up to and including its last '/' or '\'.
func baseDir(filename string) string {
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		return filename[:i+1]
	}
	return ""
}

// loader holds the per-Load parse state.
type loader struct {
	model           *Model
	scale           float32
	pools           attributePools
	current         *Mesh
	pendingMaterial int
}

func (l *loader) run(filename string) error {
	m := l.model
	err := m.readLines(filename, func(lineNo int, kind, data string) error {
		fail := func(cause error) error {
			return &FormatError{File: filename, Line: lineNo, Directive: kind, Err: cause}
		}

		switch kind {
		case "mtllib":
			return l.loadMaterialLibrary(data)
		case "g", "o":
			m.log.Debug("group", zap.String("name", data))
			l.flush()
			l.startMesh(data)
		case "v":
			if err := l.pools.addPosition(data, l.scale); err != nil {
				return fail(err)
			}
		case "vt":
			if err := l.pools.addUV(data); err != nil {
				return fail(err)
			}
		case "vn":
			if err := l.pools.addNormal(data); err != nil {
				return fail(err)
			}
		case "f":
			if l.current == nil {
				l.startMesh("")
			}
			if err := l.pools.assembleFace(l.current, faceTokens(data)); err != nil {
				return fail(err)
			}
		case "usemtl":
			idx := m.materialIndex(data)
			if idx == NoMaterial {
				m.log.Debug("unknown material ignored", zap.String("material", data), zap.Int("line", lineNo))
				return nil
			}
			l.pendingMaterial = idx
			if l.current != nil {
				l.current.MaterialIndex = idx
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	l.flush()

	if len(l.pools.normals) == 0 {
		for _, mesh := range m.meshes {
			mesh.synthesizeNormals()
		}
	}
	return nil
}

// startMesh begins a new current mesh, handing it any pending material.
func (l *loader) startMesh(name string) {
	l.current = newMesh(name)
	if l.pendingMaterial != NoMaterial {
		l.current.MaterialIndex = l.pendingMaterial
		l.pendingMaterial = NoMaterial
	}
}

// flush appends the current mesh to the model if it holds any vertices.
func (l *loader) flush() {
	if l.current != nil && len(l.current.Vertices) > 0 {
		l.model.meshes = append(l.model.meshes, l.current)
	}
	l.current = nil
}

// objtool is a CLI utility for inspecting Wavefront OBJ models.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/internal/texture"
	"github.com/Faultbox/objview/pkg/encoding"
	"github.com/Faultbox/objview/pkg/objmodel"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	args = args[1:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args, stdout, stderr)
	case "meshes", "ls":
		err = cmdMeshes(args, stdout, stderr)
	case "materials", "mtl":
		err = cmdMaterials(args, stdout, stderr)
	case "textures", "tex":
		err = cmdTextures(args, stdout, stderr)
	case "dump":
		err = cmdDump(args, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `objtool - Wavefront OBJ/MTL model utility

Usage:
  objtool <command> [options] <file.obj>

Commands:
  info <file.obj>              Show model statistics
  meshes <file.obj> [pattern]  List meshes (optional name filter)
  materials <file.obj>         List materials and their textures
  textures <file.obj>          Check that referenced textures decode
  dump <file.obj>              Write the parsed model as YAML

Options (all commands):
  -scale float     Uniform scale applied to positions (default 1)
  -charset name    Text encoding of OBJ/MTL files (e.g. euc-kr)
  -v               Log parser diagnostics to stderr

Examples:
  objtool info models/chair.obj
  objtool meshes -scale 0.01 models/city.obj "road*"
  objtool dump -charset euc-kr models/korean.obj > korean.yaml`)
}

// modelFlags are shared by every command that opens a model.
type modelFlags struct {
	fs      *flag.FlagSet
	scale   *float64
	charset *string
	verbose *bool
}

func newModelFlags(name string, stderr io.Writer) *modelFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return &modelFlags{
		fs:      fs,
		scale:   fs.Float64("scale", 1, "Uniform scale applied to positions"),
		charset: fs.String("charset", "", "Text encoding of OBJ/MTL files"),
		verbose: fs.Bool("v", false, "Log parser diagnostics to stderr"),
	}
}

// parse reads flags and returns the positional arguments, requiring at
// least the model path.
func (f *modelFlags) parse(args []string, usage string) ([]string, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, errUsage
	}
	if f.fs.NArg() < 1 {
		fmt.Fprintln(f.fs.Output(), "Usage: objtool "+usage)
		return nil, errUsage
	}
	return f.fs.Args(), nil
}

// load parses the model at path with the command's flags.
func (f *modelFlags) load(path string, stderr io.Writer) (*objmodel.Model, error) {
	charset, err := encoding.Lookup(*f.charset)
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if *f.verbose {
		log, err = logger.NewConsole("debug", zapcore.AddSync(stderr))
		if err != nil {
			return nil, err
		}
	}

	m := objmodel.New(objmodel.Options{Logger: log, Charset: charset})
	if err := m.Load(path, float32(*f.scale)); err != nil {
		return nil, err
	}
	return m, nil
}

func cmdInfo(args []string, stdout, stderr io.Writer) error {
	f := newModelFlags("info", stderr)
	pos, err := f.parse(args, "info <file.obj>")
	if err != nil {
		return err
	}
	m, err := f.load(pos[0], stderr)
	if err != nil {
		return err
	}

	st := m.Stats()
	minB, maxB := bounds(m)
	fmt.Fprintf(stdout, "Model:     %s\n", m.Filename())
	fmt.Fprintf(stdout, "Meshes:    %d\n", st.Meshes)
	fmt.Fprintf(stdout, "Materials: %d\n", st.Materials)
	fmt.Fprintf(stdout, "Vertices:  %d\n", st.Vertices)
	fmt.Fprintf(stdout, "Triangles: %d\n", st.Triangles)
	fmt.Fprintf(stdout, "Textures:  %d\n", len(textureFiles(m)))
	fmt.Fprintf(stdout, "Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		minB[0], minB[1], minB[2], maxB[0], maxB[1], maxB[2])
	return nil
}

func cmdMeshes(args []string, stdout, stderr io.Writer) error {
	f := newModelFlags("meshes", stderr)
	pos, err := f.parse(args, "meshes <file.obj> [pattern]")
	if err != nil {
		return err
	}
	m, err := f.load(pos[0], stderr)
	if err != nil {
		return err
	}

	pattern := ""
	if len(pos) > 1 {
		pattern = strings.ToLower(pos[1])
	}

	count := 0
	for i := 0; i < m.MeshCount(); i++ {
		mesh := m.MeshByIndex(i)
		name := mesh.Name
		if name == "" {
			name = "(unnamed)"
		}
		if pattern != "" {
			matched, _ := filepath.Match(pattern, strings.ToLower(mesh.Name))
			if !matched && !strings.Contains(strings.ToLower(mesh.Name), pattern) {
				continue
			}
		}

		material := "-"
		if mat := m.MeshMaterial(mesh); mat != nil {
			material = mat.Name
		}
		fmt.Fprintf(stdout, "%-24s %8d verts %8d tris  %s\n",
			name, len(mesh.Vertices), mesh.TriangleCount(), material)
		count++
	}

	if pattern != "" {
		fmt.Fprintf(stderr, "\n(%d meshes matched)\n", count)
	}
	return nil
}

func cmdMaterials(args []string, stdout, stderr io.Writer) error {
	f := newModelFlags("materials", stderr)
	pos, err := f.parse(args, "materials <file.obj>")
	if err != nil {
		return err
	}
	m, err := f.load(pos[0], stderr)
	if err != nil {
		return err
	}

	if m.MaterialCount() == 0 {
		fmt.Fprintln(stderr, "No materials")
		return nil
	}
	for i := 0; i < m.MaterialCount(); i++ {
		mat := m.MaterialByIndex(i)
		fmt.Fprintln(stdout, mat.Name)
		fmt.Fprintf(stdout, "  Ka %.3f %.3f %.3f  Ni %.3f\n", mat.Ambient[0], mat.Ambient[1], mat.Ambient[2], mat.RefractionIndex())
		fmt.Fprintf(stdout, "  Kd %.3f %.3f %.3f  d  %.3f\n", mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2], mat.Opacity())
		fmt.Fprintf(stdout, "  Ks %.3f %.3f %.3f  Ns %.3f\n", mat.Specular[0], mat.Specular[1], mat.Specular[2], mat.SpecularExponent())
		for slot := objmodel.TextureSlot(0); slot < objmodel.TextureSlotCount; slot++ {
			if name := mat.Texture(slot); name != "" {
				fmt.Fprintf(stdout, "  %-8s %s\n", slot, name)
			}
		}
	}
	return nil
}

func cmdTextures(args []string, stdout, stderr io.Writer) error {
	f := newModelFlags("textures", stderr)
	pos, err := f.parse(args, "textures <file.obj>")
	if err != nil {
		return err
	}
	m, err := f.load(pos[0], stderr)
	if err != nil {
		return err
	}

	missing := 0
	for _, name := range textureFiles(m) {
		w, h, format, err := probeTexture(name)
		if err != nil {
			fmt.Fprintf(stdout, "FAIL %s: %v\n", name, err)
			missing++
			continue
		}
		fmt.Fprintf(stdout, "ok   %s (%s %dx%d)\n", name, format, w, h)
	}
	if missing > 0 {
		return fmt.Errorf("%d texture(s) unusable", missing)
	}
	return nil
}

func cmdDump(args []string, stdout, stderr io.Writer) error {
	f := newModelFlags("dump", stderr)
	out := f.fs.String("o", "", "Write YAML to file instead of stdout")
	pos, err := f.parse(args, "dump [-o out.yaml] <file.obj>")
	if err != nil {
		return err
	}
	m, err := f.load(pos[0], stderr)
	if err != nil {
		return err
	}

	if *out == "" {
		return writeDump(stdout, m)
	}
	file, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := writeDump(file, m); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Wrote: %s\n", *out)
	return nil
}

// textureFiles lists the distinct texture paths referenced by m's materials
// in first-use order.
func textureFiles(m *objmodel.Model) []string {
	seen := make(map[string]bool)
	var files []string
	for i := 0; i < m.MaterialCount(); i++ {
		mat := m.MaterialByIndex(i)
		for slot := objmodel.TextureSlot(0); slot < objmodel.TextureSlotCount; slot++ {
			name := mat.Texture(slot)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			files = append(files, name)
		}
	}
	return files
}

// probeTexture decodes a texture file and returns its size and format.
func probeTexture(name string) (w, h int, format string, err error) {
	file, err := os.Open(name)
	if err != nil {
		return 0, 0, "", err
	}
	defer file.Close()

	img, format, err := texture.Decode(file, name)
	if err != nil {
		return 0, 0, "", err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), format, nil
}

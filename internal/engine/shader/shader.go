// Package shader provides OpenGL shader compilation utilities and the
// viewer's built-in GLSL programs.
package shader

import (
	"embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/*.vert shaders/*.frag
var sources embed.FS

// Built-in program names.
const (
	ObjProgram    = "obj"    // Lit, textured OBJ meshes
	LineProgram   = "line"   // Coloured line lists (reference grid)
	SkyboxProgram = "skybox" // Cube-map background
)

// Source returns the vertex and fragment source of a built-in program.
func Source(name string) (vertex, fragment string, err error) {
	v, err := sources.ReadFile("shaders/" + name + ".vert")
	if err != nil {
		return "", "", fmt.Errorf("shader %q: %w", name, err)
	}
	f, err := sources.ReadFile("shaders/" + name + ".frag")
	if err != nil {
		return "", "", fmt.Errorf("shader %q: %w", name, err)
	}
	return string(v), string(f), nil
}

// Program is a linked shader program with a uniform location cache.
type Program struct {
	ID       uint32
	name     string
	uniforms map[string]int32
}

// Load compiles and links a built-in program.
func Load(name string) (*Program, error) {
	vert, frag, err := Source(name)
	if err != nil {
		return nil, err
	}
	id, err := CompileProgram(vert, frag)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", name, err)
	}
	return &Program{ID: id, name: name, uniforms: make(map[string]int32)}, nil
}

// Use makes p the current program.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Uniform returns the cached location of a uniform, -1 when the program
// does not use it.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := GetUniform(p.ID, name)
	p.uniforms[name] = loc
	return loc
}

// SetMat4 uploads a column-major 4x4 matrix.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, &m[0])
}

// SetVec4 uploads a 4-component vector.
func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4f(p.Uniform(name), v[0], v[1], v[2], v[3])
}

// SetVec3 uploads a 3-component vector.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.Uniform(name), v[0], v[1], v[2])
}

// SetInt uploads an integer or sampler unit.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Uniform(name), v)
}

// SetBool uploads a boolean as 0 or 1.
func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.Uniform(name), i)
}

// Delete frees the GL program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", stage, msg)
	}

	return shader, nil
}

func infoLog(obj uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var logLen int32
	getiv(obj, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return "(no log)"
	}
	log := make([]byte, logLen)
	getLog(obj, logLen, nil, &log[0])
	return string(log[:logLen-1])
}

// GetUniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objview/internal/engine/shader"
)

// Grid draws the XZ reference grid as a line list.
type Grid struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	count   int32
}

// NewGrid compiles the line program and uploads the grid lines.
func NewGrid() (*Grid, error) {
	program, err := shader.Load(shader.LineProgram)
	if err != nil {
		return nil, fmt.Errorf("grid shader: %w", err)
	}
	g := &Grid{program: program}

	verts := gridVertices()
	g.count = int32(len(verts))

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*lineVertexStride, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, lineVertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, lineVertexStride, 16)
	gl.BindVertexArray(0)

	return g, nil
}

// Render draws the grid.
func (g *Grid) Render(projView mgl32.Mat4) {
	g.program.Use()
	g.program.SetMat4("uProjectionView", projView)
	gl.BindVertexArray(g.vao)
	gl.DrawArrays(gl.LINES, 0, g.count)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (g *Grid) Destroy() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
		g.vbo = 0
	}
	g.program.Delete()
}

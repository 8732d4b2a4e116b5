package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objview/internal/engine/debug"
	"github.com/Faultbox/objview/internal/engine/shader"
)

// SelectionColor outlines the selected mesh.
var SelectionColor = mgl32.Vec4{1, 0.85, 0.1, 1}

// Selection draws a wireframe box around the selected mesh.
type Selection struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	visible bool
}

// NewSelection compiles the line program and allocates the box buffer.
func NewSelection() (*Selection, error) {
	program, err := shader.Load(shader.LineProgram)
	if err != nil {
		return nil, fmt.Errorf("selection shader: %w", err)
	}
	s := &Selection{program: program}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, debug.BBoxWireframeVertexCount*lineVertexStride, nil, gl.DYNAMIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, lineVertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, lineVertexStride, 16)
	gl.BindVertexArray(0)

	return s, nil
}

// SetBox outlines the box spanned by minB and maxB in model space.
func (s *Selection) SetBox(minB, maxB mgl32.Vec3) {
	verts := selectionVertices(minB, maxB)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*lineVertexStride, unsafe.Pointer(&verts[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	s.visible = true
}

// Hide stops drawing the box.
func (s *Selection) Hide() {
	s.visible = false
}

// Visible reports whether a box is shown.
func (s *Selection) Visible() bool {
	return s.visible
}

// Render draws the box. mvp maps model space to clip space.
func (s *Selection) Render(mvp mgl32.Mat4) {
	if !s.visible {
		return
	}
	s.program.Use()
	s.program.SetMat4("uProjectionView", mvp)
	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.LINES, 0, debug.BBoxWireframeVertexCount)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (s *Selection) Destroy() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
		s.vao = 0
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
		s.vbo = 0
	}
	s.program.Delete()
}

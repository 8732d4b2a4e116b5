package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Faultbox/objview/internal/texture"
	"github.com/Faultbox/objview/pkg/objmodel"
)

// Preview and list limits
const (
	previewInitialSize = 512
	previewMaxSize     = 8192
	maxListItems       = 200

	clickSlop = 4 // Pixels the mouse may move between press and release
)

// previewSize converts the available panel area into framebuffer
// dimensions, never smaller than 1x1.
func previewSize(availX, availY float32) (w, h int32) {
	clamp := func(v float32) int32 {
		switch {
		case v < 1:
			return 1
		case v > previewMaxSize:
			return previewMaxSize
		default:
			return int32(v)
		}
	}
	return clamp(availX), clamp(availY)
}

// meshLabel formats a mesh entry for the info panel.
func meshLabel(m *objmodel.Model, mesh *objmodel.Mesh) string {
	name := mesh.Name
	if name == "" {
		name = "(unnamed)"
	}
	label := fmt.Sprintf("%s (V:%d T:%d)", name, len(mesh.Vertices), mesh.TriangleCount())
	if mat := m.MeshMaterial(mesh); mat != nil {
		label += " [" + mat.Name + "]"
	}
	return label
}

// textureLabel formats a cached texture entry for the info panel.
func textureLabel(info texture.Info) string {
	return fmt.Sprintf("%s %dx%d (refs %d)", filepath.Base(info.Name), info.Width, info.Height, info.Refs)
}

// snapshotName returns the file name for a snapshot taken at t.
func snapshotName(t time.Time) string {
	return fmt.Sprintf("snapshot-%s.png", t.Format("20060102-150405"))
}

// Framebuffer preview of the loaded model.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/camera"
	"github.com/Faultbox/objview/internal/engine/picking"
	"github.com/Faultbox/objview/internal/engine/scene"
	"github.com/Faultbox/objview/internal/engine/ui"
)

// renderPreview draws the scene into the preview framebuffer, shows it as an
// image filling the panel and feeds mouse and keyboard input to the active
// camera while the image is hovered.
func (app *App) renderPreview(dt float32) {
	avail := imgui.ContentRegionAvail()
	w, h := previewSize(avail.X, avail.Y)
	if fw, fh := app.preview.Size(); fw != w || fh != h {
		app.preview.Resize(w, h)
		app.free.Resize(int(w), int(h))
	}

	view, projection, eye := app.cameraMatrices(w, h)
	restore := app.preview.BindWithViewport()
	app.scene.RenderWithView(view, projection, eye)
	restore()

	// Display rendered texture (flip V for OpenGL)
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(app.preview.ColorTexture()))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(float32(w), float32(h)),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)
	app.hovered = imgui.IsItemHovered()
	app.trackPointer(imgui.ItemRectMin(), w, h, projection.Mul4(view))

	if app.useOrbit {
		if app.hovered {
			if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
				delta := imgui.CurrentIO().MouseDelta()
				app.orbit.HandleDrag(delta.X, delta.Y)
			}
			if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
				app.orbit.HandleZoom(wheel)
			}
		}
		return
	}

	var move camera.Movement
	if app.hovered {
		move = ui.Movement()
	}
	app.free.Update(dt, move)
}

// trackPointer casts a ray under the mouse for the grid readout and picks a
// mesh when the left button is released without dragging.
func (app *App) trackPointer(origin imgui.Vec2, w, h int32, projView mgl32.Mat4) {
	if !app.hovered {
		app.gridHit = false
		app.pressed = false
		return
	}
	mouse := imgui.MousePos()
	ray := picking.ScreenToRay(mouse.X-origin.X, mouse.Y-origin.Y, float32(w), float32(h), projView.Inv())

	var x, z float32
	x, z, app.gridHit = ray.IntersectPlaneY(0)
	app.gridPoint = mgl32.Vec3{x, 0, z}

	if imgui.IsMouseClickedBool(imgui.MouseButtonLeft) {
		app.pressAt = mouse
		app.pressed = true
		return
	}
	if !app.pressed || imgui.IsMouseDown(imgui.MouseButtonLeft) {
		return
	}
	app.pressed = false
	if dx, dy := mouse.X-app.pressAt.X, mouse.Y-app.pressAt.Y; dx*dx+dy*dy > clickSlop*clickSlop {
		return
	}

	hit, ok := picking.PickMesh(app.session.Model(), ray)
	if !ok {
		app.selectMesh(-1)
		return
	}
	app.selectMesh(hit.Mesh)
	app.log.Debug("mesh picked",
		zap.Int("mesh", hit.Mesh),
		zap.Float32("distance", hit.Distance))
}

// selectMesh outlines mesh i, or clears the outline when i is out of range.
func (app *App) selectMesh(i int) {
	mesh := app.session.Model().MeshByIndex(i)
	if mesh == nil {
		app.selected = -1
		app.scene.ClearSelection()
		return
	}
	app.selected = i
	minB, maxB := mesh.Bounds()
	app.scene.Select(minB, maxB)
}

// cameraMatrices returns the view, projection and eye position of the
// active camera for a w x h target.
func (app *App) cameraMatrices(w, h int32) (view, projection mgl32.Mat4, eye mgl32.Vec3) {
	if app.useOrbit {
		return app.orbit.ViewMatrix(), camera.Perspective(int(w), int(h)), app.orbit.Position()
	}
	return app.free.View(), app.free.Projection(), app.free.Position()
}

// eye returns the active camera position.
func (app *App) eye() mgl32.Vec3 {
	if app.useOrbit {
		return app.orbit.Position()
	}
	return app.free.Position()
}

func (app *App) modelBounds() (minB, maxB mgl32.Vec3) {
	return scene.ModelBounds(app.session.Model())
}

// saveSnapshot writes the preview framebuffer to a PNG in the snapshot
// directory.
func (app *App) saveSnapshot() {
	path := filepath.Join(app.snapshotDir, snapshotName(time.Now()))
	if err := app.writeSnapshot(path); err != nil {
		app.log.Warn("snapshot failed", zap.String("path", path), zap.Error(err))
		app.showNotification(fmt.Sprintf("Snapshot failed: %v", err))
		return
	}
	app.log.Info("snapshot saved", zap.String("path", path))
	app.showNotification("Saved: " + filepath.Base(path))
}

func (app *App) writeSnapshot(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := app.preview.Snapshot(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

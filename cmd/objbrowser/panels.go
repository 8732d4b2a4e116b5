// ImGui panels for the model browser.
package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/ui"
	"github.com/Faultbox/objview/internal/event"
	"github.com/Faultbox/objview/pkg/objmodel"
)

// Layout dimensions
const (
	optionsPanelWidth = float32(340)
	statusBarHeight   = float32(30)
	minScale          = float32(0.1)
	maxScale          = float32(10)
)

// Status colors
var (
	statusOKColor    = imgui.NewVec4(0.4, 0.8, 0.4, 1)
	statusErrorColor = imgui.NewVec4(1, 0.4, 0.4, 1)
)

func (app *App) renderMenuBar() {
	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Open...") {
				app.openFileDialog()
			}
			if imgui.MenuItemBool("Reload") {
				app.requestLoad()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Save Snapshot (F12)") {
				app.snapshotRequested = true
			}
			imgui.EndMenu()
		}
		if imgui.BeginMenu("View") {
			imgui.Checkbox("Orbit Camera", &app.useOrbit)
			imgui.Checkbox("Frame Data", &app.cfg.Viewer.ShowFrameData)
			if imgui.MenuItemBool("Frame Model (F)") {
				app.frameModel()
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}
}

// openFileDialog shows a native file dialog to select an OBJ file.
func (app *App) openFileDialog() {
	dir := filepath.Dir(app.modelPath)
	scale := app.scale
	// The dialog blocks, so it runs off the main thread and posts its result
	// to the dispatcher queue, which is drained in render().
	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			SetStartDir(dir).
			Title("Open Model").
			Load()

		if err != nil {
			if err != dialog.ErrCancelled {
				app.log.Warn("file dialog error", zap.Error(err))
			}
			return
		}

		app.events.Post(&event.ModelLoadRequested{Path: filename, Scale: scale})
	}()
}

func (app *App) renderLayout(dt float32) {
	workPos, workSize := ui.Viewport()
	contentHeight := workSize.Y - statusBarHeight
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	// Left panel - options and model info
	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(optionsPanelWidth, contentHeight))
	if imgui.BeginV("Model Render Options", nil, flags) {
		app.renderOptions()
		imgui.Separator()
		app.renderModelInfo()
	}
	imgui.End()

	// Center panel - preview
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+optionsPanelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-optionsPanelWidth, contentHeight))
	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("Preview", nil, flags|imgui.WindowFlagsNoScrollbar|imgui.WindowFlagsNoScrollWithMouse) {
		app.renderPreview(dt)
	}
	imgui.End()
	imgui.PopStyleVar()

	// Status bar at bottom
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()
}

// renderOptions renders the skybox, background, path and scale controls.
func (app *App) renderOptions() {
	if imgui.Checkbox("Render Skybox", &app.scene.RenderSkybox) {
		app.cfg.Viewer.RenderSkybox = app.scene.RenderSkybox
	}
	if !app.scene.HasSkybox() {
		imgui.SameLine()
		imgui.TextDisabled("(not loaded)")
	}

	if imgui.ColorEdit3("Background", &app.background) {
		app.scene.Background = app.background
		app.cfg.Viewer.Background = app.background
	}

	az := imgui.SliderFloat("Light azimuth", &app.cfg.Viewer.LightAzimuth, 0, 360)
	el := imgui.SliderFloat("Light elevation", &app.cfg.Viewer.LightElevation, -90, 90)
	if az || el {
		app.scene.SetSun(app.cfg.Viewer.LightAzimuth, app.cfg.Viewer.LightElevation)
	}

	imgui.Spacing()
	imgui.Text("Model:")
	imgui.SetNextItemWidth(-1)
	enter := imgui.InputTextWithHint("##path", "path/to/model.obj", &app.modelPath, imgui.InputTextFlagsEnterReturnsTrue, nil)

	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##scale", &app.scale, minScale, maxScale, "Scale %.2f", imgui.SliderFlagsLogarithmic)

	canLoad := app.modelPath != ""
	imgui.BeginDisabledV(!canLoad)
	if imgui.ButtonV("Load", imgui.NewVec2(-1, 0)) || (enter && canLoad) {
		app.requestLoad()
	}
	imgui.EndDisabled()

	if imgui.ButtonV("Open...", imgui.NewVec2(-1, 0)) {
		app.openFileDialog()
	}
}

// renderModelInfo renders mesh, material and texture lists for the
// displayed model.
func (app *App) renderModelInfo() {
	m := app.session.Model()
	if !m.IsLoaded() {
		imgui.TextDisabled("No model loaded")
		return
	}

	path, scale := app.session.Current()
	imgui.TextWrapped(path)
	st := m.Stats()
	imgui.Text(fmt.Sprintf("Scale: %.2f", scale))
	imgui.Text(fmt.Sprintf("Vertices: %d  Triangles: %d", st.Vertices, st.Triangles))

	minB, maxB := app.modelBounds()
	imgui.Text(fmt.Sprintf("Min: (%.2f, %.2f, %.2f)", minB[0], minB[1], minB[2]))
	imgui.Text(fmt.Sprintf("Max: (%.2f, %.2f, %.2f)", maxB[0], maxB[1], maxB[2]))

	imgui.Separator()

	if imgui.TreeNodeExStrV(fmt.Sprintf("Meshes (%d)", st.Meshes), imgui.TreeNodeFlagsDefaultOpen) {
		for i := 0; i < m.MeshCount() && i < maxListItems; i++ {
			mesh := m.MeshByIndex(i)
			label := fmt.Sprintf("%s##mesh%d", meshLabel(m, mesh), i)
			if imgui.SelectableBoolV(label, app.selected == i, 0, imgui.NewVec2(0, 0)) {
				app.selectMesh(i)
			}
		}
		if m.MeshCount() > maxListItems {
			imgui.TextDisabled(fmt.Sprintf("... and %d more", m.MeshCount()-maxListItems))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV(fmt.Sprintf("Materials (%d)", st.Materials), imgui.TreeNodeFlagsNone) {
		for i := 0; i < m.MaterialCount() && i < maxListItems; i++ {
			app.renderMaterial(m.MaterialByIndex(i))
		}
		imgui.TreePop()
	}

	infos := app.textures.Textures()
	if imgui.TreeNodeExStrV(fmt.Sprintf("Textures (%d)", len(infos)), imgui.TreeNodeFlagsNone) {
		for _, info := range infos {
			imgui.Text(textureLabel(info))
		}
		imgui.TreePop()
	}
}

func (app *App) renderMaterial(mat *objmodel.Material) {
	isOpen := imgui.TreeNodeExStrV(mat.Name, imgui.TreeNodeFlagsNone)
	if !isOpen {
		return
	}
	imgui.Text(fmt.Sprintf("Ka: %.2f %.2f %.2f", mat.Ambient[0], mat.Ambient[1], mat.Ambient[2]))
	imgui.Text(fmt.Sprintf("Kd: %.2f %.2f %.2f", mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2]))
	imgui.Text(fmt.Sprintf("Ks: %.2f %.2f %.2f", mat.Specular[0], mat.Specular[1], mat.Specular[2]))
	imgui.Text(fmt.Sprintf("Ns: %.1f  d: %.2f  Ni: %.2f", mat.SpecularExponent(), mat.Opacity(), mat.RefractionIndex()))
	for slot := objmodel.TextureSlot(0); slot < objmodel.TextureSlotCount; slot++ {
		if name := mat.Texture(slot); name != "" {
			ok := app.textures.Exists(name)
			color := statusOKColor
			if !ok {
				color = statusErrorColor
			}
			imgui.TextColored(color, fmt.Sprintf("%s: %s", slot, filepath.Base(name)))
			if imgui.IsItemHovered() {
				imgui.SetTooltip(name)
			}
		}
	}
	imgui.TreePop()
}

func (app *App) renderStatusBar() {
	switch {
	case app.status == "":
		imgui.TextDisabled("Open a model with File > Open... or type a path and press Enter")
	case app.statusErr:
		imgui.TextColored(statusErrorColor, app.status)
	default:
		imgui.Text(app.status)
	}
}

// renderFrameData renders the frame timing overlay in the top right corner.
func (app *App) renderFrameData() {
	if !app.cfg.Viewer.ShowFrameData {
		return
	}
	workPos, workSize := ui.Viewport()
	overlayFlags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoInputs
	imgui.SetNextWindowPosV(imgui.NewVec2(workPos.X+workSize.X-10, workPos.Y+10), imgui.CondAlways, imgui.NewVec2(1, 0))
	imgui.SetNextWindowBgAlpha(0.6)
	if imgui.BeginV("Frame Data", nil, overlayFlags) {
		imgui.Text(fmt.Sprintf("%.3f ms/frame (%.1f FPS)", app.stats.Milliseconds(), app.stats.FPS()))
		mouse := imgui.MousePos()
		imgui.Text(fmt.Sprintf("Mouse: (%.0f, %.0f)", mouse.X, mouse.Y))
		if app.session.Model().IsLoaded() {
			pos := app.eye()
			imgui.Text(fmt.Sprintf("Camera: (%.1f, %.1f, %.1f)", pos[0], pos[1], pos[2]))
		}
		if app.gridHit {
			imgui.Text(fmt.Sprintf("Grid: (%.2f, %.2f)", app.gridPoint[0], app.gridPoint[2]))
		}
		if mesh := app.session.Model().MeshByIndex(app.selected); mesh != nil {
			imgui.Text("Selected: " + meshLabel(app.session.Model(), mesh))
		}
	}
	imgui.End()
}

// renderNotification shows the last notification for two seconds.
func (app *App) renderNotification() {
	if app.notifyMsg == "" {
		return
	}
	if time.Since(app.notifyTime) >= 2*time.Second {
		app.notifyMsg = ""
		return
	}
	workPos, _ := ui.Viewport()
	notifyFlags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+optionsPanelWidth+10, workPos.Y+10))
	imgui.SetNextWindowBgAlpha(0.85)
	if imgui.BeginV("##Notify", nil, notifyFlags) {
		imgui.Text(app.notifyMsg)
	}
	imgui.End()
}

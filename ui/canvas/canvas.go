// Package canvas provides the annotation surface widget.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"palmlines/internal/drag"
	"palmlines/internal/editor"
	"palmlines/internal/pointer"
	"palmlines/internal/render"
	"palmlines/internal/surface"
	"palmlines/pkg/geometry"
)

// AnnotationCanvas shows an editor's surface and feeds it pointer events.
// The raster is rendered at the surface's internal resolution and stretched
// by fyne to the widget size; the editor maps positions back.
type AnnotationCanvas struct {
	widget.BaseWidget

	editor *editor.Editor
	log    zerolog.Logger
	raster *fynecanvas.Raster

	// Last rendered frame, reused while the surface size is unchanged
	output  *image.RGBA
	surface surface.Surface

	// Last pointer position, for DragEnd which carries none
	lastPos fyne.Position
	// pressed is set by MouseDown so Dragged does not synthesize a second down
	pressed bool

	onDragState func(drag.State)
}

// NewAnnotationCanvas creates a canvas bound to ed and subscribes it to the
// editor's repaint notifications.
func NewAnnotationCanvas(ed *editor.Editor, log zerolog.Logger) *AnnotationCanvas {
	ac := &AnnotationCanvas{
		editor:  ed,
		log:     log,
		surface: ed.Surface(),
	}
	ac.raster = fynecanvas.NewRaster(ac.draw)
	ac.raster.ScaleMode = fynecanvas.ImageScaleSmooth
	ac.raster.SetMinSize(surfaceSize(ac.surface))
	ac.ExtendBaseWidget(ac)

	ed.OnRedraw(ac.redraw)
	return ac
}

func surfaceSize(s surface.Surface) fyne.Size {
	return fyne.NewSize(float32(s.Width), float32(s.Height))
}

// OnDragStateChange sets a callback fired after every pointer event with the
// resulting drag state.
func (ac *AnnotationCanvas) OnDragStateChange(fn func(drag.State)) {
	ac.onDragState = fn
}

// redraw runs on the UI thread whenever the editor changes.
func (ac *AnnotationCanvas) redraw() {
	if s := ac.editor.Surface(); s != ac.surface {
		ac.surface = s
		ac.raster.SetMinSize(surfaceSize(s))
		ac.log.Debug().Str("surface", s.String()).Msg("Canvas: surface resized")
	}
	ac.Refresh()
}

// Refresh repaints the raster.
func (ac *AnnotationCanvas) Refresh() {
	ac.raster.Refresh()
	ac.BaseWidget.Refresh()
}

// draw is the raster generator. The requested pixel size is ignored: the
// image is produced at surface resolution and scaled by the raster.
func (ac *AnnotationCanvas) draw(w, h int) image.Image {
	s := ac.editor.Surface()
	if ac.output == nil || ac.output.Bounds().Dx() != s.Width || ac.output.Bounds().Dy() != s.Height {
		ac.output = render.NewTarget(s)
	}
	if err := ac.editor.Render(ac.output); err != nil {
		ac.log.Error().Err(err).Int("w", w).Int("h", h).Msg("Canvas: render failed")
	}
	return ac.output
}

// RenderedOutput returns the last frame drawn.
func (ac *AnnotationCanvas) RenderedOutput() *image.RGBA {
	return ac.output
}

func (ac *AnnotationCanvas) bounds() geometry.Rect {
	size := ac.Size()
	return geometry.NewRect(0, 0, float64(size.Width), float64(size.Height))
}

func (ac *AnnotationCanvas) route(fn func(pointer.Event, geometry.Rect) drag.State, pos fyne.Position) {
	ac.lastPos = pos
	s := fn(pointer.At(float64(pos.X), float64(pos.Y)), ac.bounds())
	if ac.onDragState != nil {
		ac.onDragState(s)
	}
}

// MouseDown implements desktop.Mouseable.
func (ac *AnnotationCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	ac.pressed = true
	ac.route(ac.editor.PointerDown, ev.Position)
}

// MouseUp implements desktop.Mouseable.
func (ac *AnnotationCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	ac.pressed = false
	ac.route(ac.editor.PointerUp, ev.Position)
}

// MouseIn implements desktop.Hoverable.
func (ac *AnnotationCanvas) MouseIn(ev *desktop.MouseEvent) {
	ac.lastPos = ev.Position
}

// MouseMoved implements desktop.Hoverable.
func (ac *AnnotationCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if !drag.IsDragging(ac.editor.DragState()) {
		ac.lastPos = ev.Position
		return
	}
	ac.route(ac.editor.PointerMove, ev.Position)
}

// MouseOut implements desktop.Hoverable.
func (ac *AnnotationCanvas) MouseOut() {
	ac.pressed = false
	ac.route(ac.editor.PointerLeave, ac.lastPos)
}

// Dragged implements fyne.Draggable. Touch drivers deliver no MouseDown, so
// the first drag event stands in for it at the drag's starting point.
func (ac *AnnotationCanvas) Dragged(ev *fyne.DragEvent) {
	if !ac.pressed {
		ac.pressed = true
		ac.route(ac.editor.PointerDown, ev.Position.Subtract(ev.Dragged))
	}
	ac.route(ac.editor.PointerMove, ev.Position)
}

// DragEnd implements fyne.Draggable.
func (ac *AnnotationCanvas) DragEnd() {
	ac.pressed = false
	ac.route(ac.editor.PointerUp, ac.lastPos)
}

// MinSize tracks the surface size.
func (ac *AnnotationCanvas) MinSize() fyne.Size {
	return ac.raster.MinSize()
}

// CreateRenderer implements fyne.Widget.
func (ac *AnnotationCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &annotationCanvasRenderer{canvas: ac}
}

type annotationCanvasRenderer struct {
	canvas *AnnotationCanvas
}

func (r *annotationCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *annotationCanvasRenderer) MinSize() fyne.Size {
	return r.canvas.raster.MinSize()
}

func (r *annotationCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *annotationCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *annotationCanvasRenderer) Destroy() {}

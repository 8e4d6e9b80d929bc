// Package editor ties the annotation pieces together. An Editor owns the
// curve set, drag state, loaded image and show-lines flag, routes pointer
// events through the mapper and drag machine, and repaints on change.
package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"palmlines/internal/config"
	"palmlines/internal/curve"
	"palmlines/internal/drag"
	pimage "palmlines/internal/image"
	"palmlines/internal/pointer"
	"palmlines/internal/render"
	"palmlines/internal/surface"
	"palmlines/pkg/geometry"
)

// ErrImageDecode is delivered when a loaded image cannot be decoded.
var ErrImageDecode = errors.New("editor: image decode failed")

// Decoder turns raw bytes into an image.
type Decoder interface {
	Decode(ctx context.Context, data []byte) (image.Image, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(ctx context.Context, data []byte) (image.Image, error)

// Decode calls f.
func (f DecoderFunc) Decode(ctx context.Context, data []byte) (image.Image, error) {
	return f(ctx, data)
}

// StandardDecoder decodes with the formats registered by internal/image.
var StandardDecoder Decoder = DecoderFunc(func(ctx context.Context, data []byte) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, err := pimage.DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	return src.Image, nil
})

// Dispatcher runs fn on the editor's owning thread.
type Dispatcher func(fn func())

func inline(fn func()) { fn() }

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Editor) { e.log = log }
}

// WithDispatcher sets where load completions run. The default runs them on
// the decoding goroutine.
func WithDispatcher(d Dispatcher) Option {
	return func(e *Editor) {
		if d != nil {
			e.dispatch = d
		}
	}
}

// WithDecoder replaces StandardDecoder.
func WithDecoder(d Decoder) Option {
	return func(e *Editor) {
		if d != nil {
			e.decoder = d
		}
	}
}

// WithStyle sets the render style.
func WithStyle(s render.Style) Option {
	return func(e *Editor) { e.style = s }
}

// WithHitRadius sets the pick distance for handles.
func WithHitRadius(r float64) Option {
	return func(e *Editor) { e.hitRadius = r }
}

// WithMaxSurface sets the box loaded images are fitted into.
func WithMaxSurface(width, height int) Option {
	return func(e *Editor) { e.maxWidth, e.maxHeight = width, height }
}

// WithInitialSurface sets the surface used before any image is loaded.
func WithInitialSurface(s surface.Surface) Option {
	return func(e *Editor) { e.surface = s }
}

// Snapshot is a read-only copy of the editor state.
type Snapshot struct {
	Surface   surface.Surface `json:"surface"`
	Image     image.Image     `json:"-"`
	Curves    []curve.Curve   `json:"curves"`
	ShowLines bool            `json:"showLines"`
	ImageID   uuid.UUID       `json:"imageId"`
}

// Editor is safe for concurrent use. Redraw listeners run without the lock
// held, so they may call back into the editor.
type Editor struct {
	log       zerolog.Logger
	dispatch  Dispatcher
	decoder   Decoder
	style     render.Style
	hitRadius float64
	maxWidth  int
	maxHeight int

	mu         sync.RWMutex
	surface    surface.Surface
	curves     *curve.Set
	img        image.Image
	background *image.RGBA
	imageID    uuid.UUID
	showLines  bool
	drag       drag.State
	redraw     []func()
}

// New creates an editor for the given curve definitions.
func New(defs []curve.Definition, opts ...Option) (*Editor, error) {
	e := &Editor{
		log:       zerolog.Nop(),
		dispatch:  inline,
		decoder:   StandardDecoder,
		style:     render.DefaultStyle(),
		hitRadius: drag.DefaultHitRadius,
		maxWidth:  600,
		maxHeight: 600,
		surface:   surface.New(600, 450),
		showLines: true,
		drag:      drag.Idle{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.surface.Empty() {
		return nil, fmt.Errorf("initial surface %s: %w", e.surface, surface.ErrInvalidDimensions)
	}
	if e.maxWidth <= 0 || e.maxHeight <= 0 {
		return nil, fmt.Errorf("max surface %dx%d: %w", e.maxWidth, e.maxHeight, surface.ErrInvalidDimensions)
	}

	set, err := curve.NewSet(defs, e.surface.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to create curves: %w", err)
	}
	e.curves = set
	return e, nil
}

// NewFromConfig creates an editor from loaded settings. opts are applied
// after the config-derived ones.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Editor, error) {
	defs, err := cfg.Definitions()
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithStyle(cfg.Style()),
		WithHitRadius(cfg.Interaction.HitRadius),
		WithMaxSurface(cfg.Surface.MaxWidth, cfg.Surface.MaxHeight),
		WithInitialSurface(surface.New(cfg.Surface.InitialWidth, cfg.Surface.InitialHeight)),
	}
	return New(defs, append(base, opts...)...)
}

// OnRedraw registers fn to be called whenever the surface needs repainting.
func (e *Editor) OnRedraw(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.redraw = append(e.redraw, fn)
	e.mu.Unlock()
}

func (e *Editor) notify() {
	e.mu.RLock()
	listeners := append([]func(){}, e.redraw...)
	e.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}

// LoadImage decodes data in the background. On success the image replaces
// the current one, the surface is refitted, curves return to their default
// geometry and any drag ends. On failure nothing changes. The result is sent
// on the returned channel after the change has been applied through the
// dispatcher. Concurrent loads are not cancelled; whichever finishes
// decoding last wins.
func (e *Editor) LoadImage(ctx context.Context, data []byte) <-chan error {
	return e.load(ctx, func() ([]byte, error) { return data, nil })
}

// LoadImageFile reads path and loads it like LoadImage.
func (e *Editor) LoadImageFile(ctx context.Context, path string) <-chan error {
	return e.load(ctx, func() ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		return data, nil
	})
}

func (e *Editor) load(ctx context.Context, read func() ([]byte, error)) <-chan error {
	done := make(chan error, 1)
	go func() {
		img, err := e.decode(ctx, read)
		e.dispatch(func() {
			if err == nil {
				err = e.apply(img)
			}
			if err != nil {
				e.log.Warn().Err(err).Msg("Editor: image load failed")
			}
			done <- err
			close(done)
		})
	}()
	return done
}

func (e *Editor) decode(ctx context.Context, read func() ([]byte, error)) (image.Image, error) {
	data, err := read()
	if err != nil {
		return nil, err
	}
	img, err := e.decoder.Decode(ctx, data)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, fmt.Errorf("image load: %w", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrImageDecode, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrImageDecode)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("image load: %w", err)
	}
	return img, nil
}

func (e *Editor) apply(img image.Image) error {
	b := img.Bounds()
	s, err := surface.Fit(b.Dx(), b.Dy(), e.maxWidth, e.maxHeight)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrImageDecode, err)
	}
	background := render.Stretch(img, s)
	id := uuid.New()

	e.mu.Lock()
	prev := e.drag
	e.img = img
	e.background = background
	e.imageID = id
	e.surface = s
	e.drag = drag.Idle{}
	e.curves.Reset(s.Size())
	e.mu.Unlock()

	e.log.Info().
		Str("image", id.String()).
		Str("natural", fmt.Sprintf("%dx%d", b.Dx(), b.Dy())).
		Str("surface", s.String()).
		Stringer("previousDrag", prev).
		Msg("Editor: image loaded")
	e.notify()
	return nil
}

// ResetLines restores every curve to its default geometry on the current
// surface. The image and visibility flags are left alone.
func (e *Editor) ResetLines() {
	e.mu.Lock()
	e.curves.Reset(e.surface.Size())
	e.mu.Unlock()
	e.log.Debug().Msg("Editor: lines reset")
	e.notify()
}

// ToggleLinesVisible flips the global show-lines flag and returns the new
// value. Hiding the lines ends any drag.
func (e *Editor) ToggleLinesVisible() bool {
	e.mu.Lock()
	e.showLines = !e.showLines
	show := e.showLines
	if !show {
		e.drag = drag.Idle{}
	}
	e.mu.Unlock()
	e.log.Debug().Bool("show", show).Msg("Editor: lines toggled")
	e.notify()
	return show
}

// SetShowLines sets the global show-lines flag. Hiding the lines ends any
// drag. Setting the current value is a no-op.
func (e *Editor) SetShowLines(show bool) {
	e.mu.Lock()
	if e.showLines == show {
		e.mu.Unlock()
		return
	}
	e.showLines = show
	if !show {
		e.drag = drag.Idle{}
	}
	e.mu.Unlock()
	e.log.Debug().Bool("show", show).Msg("Editor: lines set")
	e.notify()
}

// UpdateCurvePoint moves one control point, clamped to the surface. Unknown
// curves and out-of-range indices are logged and ignored.
func (e *Editor) UpdateCurvePoint(name string, index int, p geometry.Point) bool {
	e.mu.Lock()
	err := e.setPoint(name, index, p)
	e.mu.Unlock()
	if err != nil {
		e.log.Warn().Err(err).Str("curve", name).Int("index", index).Msg("Editor: ignoring point update")
		return false
	}
	e.notify()
	return true
}

// setPoint requires e.mu held for writing.
func (e *Editor) setPoint(name string, index int, p geometry.Point) error {
	return e.curves.SetPoint(name, index, e.surface.Size().Clamp(p))
}

// SetCurveVisible sets one curve's visibility flag.
func (e *Editor) SetCurveVisible(name string, visible bool) bool {
	e.mu.Lock()
	err := e.curves.SetVisible(name, visible)
	e.mu.Unlock()
	if err != nil {
		e.log.Warn().Err(err).Str("curve", name).Msg("Editor: ignoring visibility change")
		return false
	}
	e.notify()
	return true
}

// PointerDown starts a drag when ev lands on a handle.
func (e *Editor) PointerDown(ev pointer.Event, bounds geometry.Rect) drag.State {
	return e.handle(drag.Down, ev, bounds)
}

// PointerMove moves the grabbed handle, if any.
func (e *Editor) PointerMove(ev pointer.Event, bounds geometry.Rect) drag.State {
	return e.handle(drag.Move, ev, bounds)
}

// PointerUp ends any drag.
func (e *Editor) PointerUp(ev pointer.Event, bounds geometry.Rect) drag.State {
	return e.handle(drag.Up, ev, bounds)
}

// PointerLeave ends any drag.
func (e *Editor) PointerLeave(ev pointer.Event, bounds geometry.Rect) drag.State {
	return e.handle(drag.Leave, ev, bounds)
}

func (e *Editor) handle(kind drag.EventKind, ev pointer.Event, bounds geometry.Rect) drag.State {
	e.mu.Lock()
	p := pointer.ToSurface(ev, bounds, e.surface)
	env := drag.Env{
		Enabled:   e.img != nil && e.showLines,
		Curves:    e.curves,
		HitRadius: e.hitRadius,
		Bounds:    e.surface.Size(),
	}
	prev := e.drag
	next, eff := drag.Transition(prev, drag.Event{Kind: kind, Point: p}, env)
	e.drag = next

	var err error
	moved := false
	if u := eff.Update; u != nil {
		if err = e.setPoint(u.Curve, u.Index, u.Point); err == nil {
			moved = true
		}
	}
	e.mu.Unlock()

	if err != nil {
		e.log.Warn().Err(err).Stringer("state", next).Msg("Editor: drag update rejected")
	}
	if next != prev {
		e.log.Debug().Stringer("from", prev).Stringer("to", next).Stringer("event", kind).Msg("Editor: drag state")
	}
	if moved {
		e.notify()
	}
	return next
}

// DragState returns the current drag state.
func (e *Editor) DragState() drag.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.drag
}

// Surface returns the current drawing surface.
func (e *Editor) Surface() surface.Surface {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.surface
}

// ShowLines reports the global show-lines flag.
func (e *Editor) ShowLines() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.showLines
}

// HasImage reports whether an image is loaded.
func (e *Editor) HasImage() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.img != nil
}

// Snapshot returns a deep copy of the state.
func (e *Editor) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{
		Surface:   e.surface,
		Image:     e.img,
		Curves:    e.curves.Curves(),
		ShowLines: e.showLines,
		ImageID:   e.imageID,
	}
}

// Render repaints dst, which should match Surface.
func (e *Editor) Render(dst *image.RGBA) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var bg image.Image
	if e.background != nil {
		bg = e.background
	}
	return render.Render(dst, bg, e.curves, e.showLines, e.style)
}

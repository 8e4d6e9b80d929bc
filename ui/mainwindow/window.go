// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"palmlines/internal/app"
	"palmlines/internal/drag"
	pimage "palmlines/internal/image"
	"palmlines/internal/version"
	"palmlines/ui/canvas"
	"palmlines/ui/prefs"
)

const (
	appTitle = "Palmlines"

	defaultWidth  = 760
	defaultHeight = 620
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	prefs  *prefs.Prefs
	log    zerolog.Logger
	canvas *canvas.AnnotationCanvas

	statusBar *widget.Label
	toggleBtn *widget.Button
	resetBtn  *widget.Button
}

// New creates the main window and restores its size and line visibility
// from p.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs, log zerolog.Logger) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
		log:    log,
	}

	state.Editor.SetShowLines(p.Bool(prefs.KeyShowLines, true))

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	mw.Resize(fyne.NewSize(
		float32(p.Float(prefs.KeyWindowWidth, defaultWidth)),
		float32(p.Float(prefs.KeyWindowHeight, defaultHeight)),
	))
	mw.SetCloseIntercept(func() {
		mw.SavePreferences()
		mw.Close()
	})
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewAnnotationCanvas(mw.state.Editor, mw.log)
	mw.statusBar = widget.NewLabel("Load a photo of a palm to start")

	content := container.NewBorder(
		mw.createToolbar(),                // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		container.NewCenter(mw.canvas),    // center
	)
	mw.SetContent(content)
}

// createToolbar creates the load/reset/toggle buttons.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	loadBtn := widget.NewButton("Load image", mw.onLoadImage)
	mw.resetBtn = widget.NewButton("Reset lines", mw.onResetLines)
	mw.toggleBtn = widget.NewButton(toggleLabel(mw.state.Editor.ShowLines()), mw.onToggleLines)
	mw.updateButtons()

	return container.NewHBox(loadBtn, mw.resetBtn, mw.toggleBtn)
}

func toggleLabel(show bool) string {
	if show {
		return "Hide lines"
	}
	return "Show lines"
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onLoadImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.SavePreferences()
			mw.app.Quit()
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Reset Lines", mw.onResetLines),
		fyne.NewMenuItem("Show/Hide Lines", mw.onToggleLines),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for session and canvas events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data any) {
		name := mw.state.ImageName()
		mw.SetTitle(appTitle + " - " + name)
		mw.updateButtons()
		mw.updateStatus(fmt.Sprintf("Loaded %s (%s)", name, mw.state.Editor.Surface()))
	})
	mw.state.On(app.EventImageLoadFailed, func(data any) {
		if err, ok := data.(error); ok {
			dialog.ShowError(err, mw.Window)
			mw.updateStatus("Could not load image")
		}
	})
	mw.state.On(app.EventLinesReset, func(any) {
		mw.updateStatus("Lines reset")
	})
	mw.state.On(app.EventLinesToggled, func(data any) {
		show, _ := data.(bool)
		mw.toggleBtn.SetText(toggleLabel(show))
		mw.updateButtons()
	})

	mw.canvas.OnDragStateChange(func(s drag.State) {
		if d, ok := s.(drag.Dragging); ok {
			mw.updateStatus(fmt.Sprintf("Moving %s line, point %d", d.Curve, d.Index+1))
		}
	})
}

// updateButtons enables line actions only when they can have an effect.
func (mw *MainWindow) updateButtons() {
	if mw.state.Editor.HasImage() {
		mw.resetBtn.Enable()
	} else {
		mw.resetBtn.Disable()
	}
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) onLoadImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if reader == nil {
			return
		}
		reader.Close()

		path := reader.URI().Path()
		mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(path))
		mw.updateStatus("Loading " + filepath.Base(path) + "...")
		mw.state.OpenImage(context.Background(), path)
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(pimage.Extensions))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onResetLines() {
	mw.state.ResetLines()
}

func (mw *MainWindow) onToggleLines() {
	mw.state.ToggleLines()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s %s\n\n"+
			"Trace the heart, head, life and fate lines on a photo of a hand.\n"+
			"Drag the handles to move a line; Reset puts them back.",
			appTitle, version.String()),
		mw.Window)
}

// SavePreferences stores window size and line visibility.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
		mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	}
	mw.prefs.SetBool(prefs.KeyShowLines, mw.state.Editor.ShowLines())
	if err := mw.prefs.Save(); err != nil {
		mw.log.Warn().Err(err).Str("path", mw.prefs.Path()).Msg("MainWindow: failed to save preferences")
	}
}

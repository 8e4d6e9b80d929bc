package mainwindow

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palmlines/internal/app"
	"palmlines/internal/config"
	"palmlines/ui/prefs"
)

func newWindow(t *testing.T, p *prefs.Prefs) *MainWindow {
	t.Helper()
	a := test.NewTempApp(t)
	state, err := app.NewState(config.Default(), zerolog.Nop(), nil)
	require.NoError(t, err)
	mw := New(a, state, p, zerolog.Nop())
	t.Cleanup(mw.Close)
	return mw
}

func TestToggleButton(t *testing.T) {
	mw := newWindow(t, prefs.LoadFrom(filepath.Join(t.TempDir(), "p.json")))
	assert.Equal(t, "Hide lines", mw.toggleBtn.Text)
	assert.True(t, mw.resetBtn.Disabled(), "nothing to reset before an image is loaded")

	test.Tap(mw.toggleBtn)
	assert.Equal(t, "Show lines", mw.toggleBtn.Text)
	assert.False(t, mw.state.Editor.ShowLines())

	test.Tap(mw.toggleBtn)
	assert.Equal(t, "Hide lines", mw.toggleBtn.Text)
}

func TestPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	p := prefs.LoadFrom(path)
	p.SetBool(prefs.KeyShowLines, false)

	mw := newWindow(t, p)
	assert.False(t, mw.state.Editor.ShowLines(), "restored from preferences")
	assert.Equal(t, "Show lines", mw.toggleBtn.Text)

	test.Tap(mw.toggleBtn)
	mw.SavePreferences()

	saved := prefs.LoadFrom(path)
	assert.True(t, saved.Bool(prefs.KeyShowLines, false))
}

// Package app holds the desktop session: settings, the editor and the
// events the window listens to.
package app

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"palmlines/internal/config"
	"palmlines/internal/editor"
)

// EventType identifies session events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventImageLoadFailed
	EventLinesReset
	EventLinesToggled
)

// EventListener is called when an event occurs. data is the image path for
// EventImageLoaded, the error for EventImageLoadFailed and the new
// show-lines flag for EventLinesToggled.
type EventListener func(data any)

// State is the session owned by the main window.
type State struct {
	mu sync.RWMutex

	Config *config.Config
	Editor *editor.Editor

	// ImagePath is the file currently shown, empty before the first load
	ImagePath string

	log       zerolog.Logger
	dispatch  editor.Dispatcher
	listeners map[EventType][]EventListener
}

// NewState creates the session. dispatch runs callbacks on the UI thread and
// is shared with the editor; nil runs them inline.
func NewState(cfg *config.Config, log zerolog.Logger, dispatch editor.Dispatcher, opts ...editor.Option) (*State, error) {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	base := []editor.Option{editor.WithLogger(log), editor.WithDispatcher(dispatch)}
	ed, err := editor.NewFromConfig(cfg, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return &State{
		Config:    cfg,
		Editor:    ed,
		log:       log,
		dispatch:  dispatch,
		listeners: make(map[EventType][]EventListener),
	}, nil
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data any) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// OpenImage loads path in the background and emits EventImageLoaded or
// EventImageLoadFailed on the UI thread.
func (s *State) OpenImage(ctx context.Context, path string) {
	s.log.Info().Str("path", path).Msg("State: loading image")
	done := s.Editor.LoadImageFile(ctx, path)
	go func() {
		err := <-done
		s.dispatch(func() {
			if err != nil {
				s.Emit(EventImageLoadFailed, err)
				return
			}
			s.mu.Lock()
			s.ImagePath = path
			s.mu.Unlock()
			s.Emit(EventImageLoaded, path)
		})
	}()
}

// ImageName returns the base name of the current image.
func (s *State) ImageName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ImagePath == "" {
		return ""
	}
	return filepath.Base(s.ImagePath)
}

// ResetLines restores default curve geometry.
func (s *State) ResetLines() {
	s.Editor.ResetLines()
	s.Emit(EventLinesReset, nil)
}

// ToggleLines flips line visibility and returns the new flag.
func (s *State) ToggleLines() bool {
	show := s.Editor.ToggleLinesVisible()
	s.Emit(EventLinesToggled, show)
	return show
}

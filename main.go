// Package main provides the entry point for the Palmlines desktop editor.
package main

import (
	"context"
	"flag"
	"io"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"palmlines/internal/app"
	"palmlines/internal/config"
	"palmlines/internal/logging"
	"palmlines/internal/version"
	"palmlines/ui/mainwindow"
	"palmlines/ui/prefs"
)

const appID = "io.palmlines.editor"

func main() {
	configDir := flag.String("config", prefs.Dir(), "directory containing "+config.FileName)
	flag.Parse()

	boot := logging.New(zerolog.InfoLevel, os.Stderr, nil)

	cfg, err := config.Load(*configDir)
	if err != nil {
		boot.Fatal().Err(err).Str("dir", *configDir).Msg("Failed to load config")
	}

	var logFile *os.File
	if f, err := logging.OpenFile(prefs.Dir(), "palmlines.log"); err == nil {
		logFile = f
		defer f.Close()
	} else {
		boot.Warn().Err(err).Msg("Log file unavailable, logging to console only")
	}
	log := logging.New(cfg.Level(), os.Stderr, fileWriter(logFile))
	log.Info().Str("version", version.String()).Str("config", *configDir).Msg("Starting Palmlines")

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.PalmlinesTheme{})

	state, err := app.NewState(cfg, log, fyne.Do)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session")
	}

	win := mainwindow.New(fyneApp, state, prefs.Load(), log)

	// Optional image path on the command line
	if path := flag.Arg(0); path != "" {
		state.OpenImage(context.Background(), path)
	}

	win.ShowAndRun()
	log.Info().Msg("Palmlines exited")
}

// fileWriter avoids handing logging a typed nil.
func fileWriter(f *os.File) io.Writer {
	if f == nil {
		return nil
	}
	return f
}

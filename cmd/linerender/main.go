// Command linerender draws the default palm lines over an image and writes
// the result as PNG.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/rs/zerolog"

	"palmlines/internal/config"
	"palmlines/internal/editor"
	"palmlines/internal/logging"
	"palmlines/internal/render"
	"palmlines/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("linerender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	imagePath := fs.String("image", "", "Path to the photo (PNG, JPEG, GIF, TIFF, BMP or WebP)")
	outPath := fs.String("out", "", "Path of the PNG to write")
	configDir := fs.String("config", "", "Directory containing "+config.FileName+" (defaults when empty)")
	hideLines := fs.Bool("hide-lines", false, "Render the scaled image without lines")
	printJSON := fs.Bool("json", false, "Print the curve snapshot as JSON")
	showVersion := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "linerender %s\n", version.String())
		return 0
	}
	if *imagePath == "" || *outPath == "" {
		fmt.Fprintln(stderr, "Usage: linerender -image <path> -out <file.png> [-config dir] [-hide-lines] [-json]")
		return 1
	}

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	log := logging.New(max(cfg.Level(), zerolog.WarnLevel), stderr, nil)

	ed, err := editor.NewFromConfig(cfg, editor.WithLogger(log))
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create editor: %v\n", err)
		return 1
	}
	if err := <-ed.LoadImageFile(context.Background(), *imagePath); err != nil {
		fmt.Fprintf(stderr, "Failed to load image: %v\n", err)
		return 1
	}
	if *hideLines {
		ed.SetShowLines(false)
	}

	snap := ed.Snapshot()
	fmt.Fprintf(stdout, "Image %s: %dx%d -> surface %s\n",
		snap.ImageID, snap.Image.Bounds().Dx(), snap.Image.Bounds().Dy(), snap.Surface)

	dst := render.NewTarget(snap.Surface)
	if err := ed.Render(dst); err != nil {
		fmt.Fprintf(stderr, "Render failed: %v\n", err)
		return 1
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create output: %v\n", err)
		return 1
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		fmt.Fprintf(stderr, "Failed to encode PNG: %v\n", err)
		return 1
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(stderr, "Failed to write output: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Wrote %s\n", *outPath)

	if *printJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			fmt.Fprintf(stderr, "Failed to encode snapshot: %v\n", err)
			return 1
		}
	}
	return 0
}

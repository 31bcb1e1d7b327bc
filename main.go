package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/fogleman/gg"

	"htmlcanvas/browser"
	"htmlcanvas/canvas"
	"htmlcanvas/config"
	"htmlcanvas/container"
	"htmlcanvas/scene"
	"htmlcanvas/trace"
)

func main() {
	scenePath := flag.String("scene", "", "display list to render (TOML)")
	configPath := flag.String("config", "", "settings file (TOML); defaults when empty")
	out := flag.String("o", "", "write the rendered frame to this PNG file")
	show := flag.Bool("show", false, "show the rendered frame in a window")
	tracePath := flag.String("trace", "", "write a Chrome trace of the paint callbacks")
	verbose := flag.Bool("v", false, "log container diagnostics to stderr")
	flag.Parse()

	if *scenePath == "" && flag.NArg() > 0 {
		*scenePath = flag.Arg(0)
	}
	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "usage: htmlcanvas -scene page.toml [-config c.toml] [-o out.png] [-show] [-trace t.json] [-v]")
		os.Exit(2)
	}
	if err := run(*scenePath, *configPath, *out, *tracePath, *show, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "htmlcanvas:", err)
		os.Exit(1)
	}
}

func run(scenePath, configPath, out, tracePath string, show, verbose bool) error {
	if verbose {
		container.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	settings := config.Default()
	if configPath != "" {
		var err error
		if settings, err = config.Load(configPath); err != nil {
			return err
		}
	}
	s, err := scene.LoadFile(scenePath)
	if err != nil {
		return err
	}
	settings.Viewport.Width = float64(s.Width)
	settings.Viewport.Height = float64(s.Height)

	var measure *trace.MeasureTime
	if tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			return fmt.Errorf("create trace: %w", err)
		}
		defer f.Close()
		measure = trace.NewMeasureTime(f)
	}

	ctx := gg.NewContext(s.Width, s.Height)
	c := canvas.New(ctx, settings, canvas.WithTrace(measure),
		canvas.WithAnchorHandler(func(target string) { fmt.Println("link:", target) }))
	defer c.Close()

	measure.Time("render")
	err = s.Play(c)
	measure.Stop("render")
	// the trace is closed even when playback fails
	if ferr := measure.Finish(); ferr != nil && err == nil {
		err = fmt.Errorf("write trace: %w", ferr)
	}
	if err != nil {
		return err
	}

	if out != "" {
		if err := ctx.SavePNG(out); err != nil {
			return fmt.Errorf("save %s: %w", out, err)
		}
		fmt.Println("wrote", out)
	}
	if show {
		title := c.Caption()
		if title == "" {
			title = "htmlcanvas"
		}
		w, err := browser.Open(title, s.Width, s.Height)
		if err != nil {
			return err
		}
		defer w.Close()
		return w.Run(ctx.Image())
	}
	return nil
}

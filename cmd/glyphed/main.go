// Package main is a terminal host for the glyphed editor engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/glyphed"
	"github.com/dshills/glyphed/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a TOML options file")
	flag.Parse()

	opts := glyphed.DefaultOptions()
	if *configPath != "" {
		loaded, err := glyphed.LoadOptions(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		opts = loaded
	}

	content := ""
	if path := flag.Arg(0); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		content = string(data)
	}

	editor := glyphed.New(content, opts)
	defer editor.Stop()

	// Reloaded options cross onto the UI thread through this channel;
	// the watcher goroutine must not touch the editor directly.
	reloads := make(chan glyphed.Options, 1)
	if *configPath != "" {
		watcher, err := config.Watch(*configPath, func(o config.Options) {
			select {
			case reloads <- o:
			default:
			}
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer watcher.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	ui := newUI(screen, editor, reloads)
	ui.loop()
	return 0
}

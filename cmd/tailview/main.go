package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/five82/tailview/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	flag.Parse()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Source:     flag.Arg(0),
	}

	if err := app.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "tailview: %v\n", err)
		return 1
	}
	return 0
}

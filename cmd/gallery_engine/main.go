package main

import (
	"os"

	"github.com/gallerykit/gallery-engine/cmd/gallery_engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

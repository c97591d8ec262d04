package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rigidbodies/common"
	"github.com/milk9111/rigidbodies/scenes"
)

func main() {
	sceneName := flag.String("scene", scenes.DefaultScene, "scene name in scenes/ (basename, .yaml optional) or a path")
	debug := flag.Bool("debug", false, "show the stats overlay")
	watch := flag.Bool("watch", false, "reload the scene when its file changes on disk")
	scale := flag.Int("scale", 2, "window size multiplier")
	flag.Parse()

	ctx := context.Background()

	var watcher *scenes.Watcher
	if *watch {
		dir := filepath.Dir(scenes.DiskPath(*sceneName))
		w, err := scenes.NewWatcher(dir)
		if err != nil {
			log.Printf("scene watcher disabled: %v", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	ebiten.SetWindowSize(common.BaseWidth**scale, common.BaseHeight**scale)
	ebiten.SetWindowTitle("rigidbodies")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := NewGame(ctx, *sceneName, *debug, watcher)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

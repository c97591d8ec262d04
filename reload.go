package main

import (
	"log"
	"path/filepath"

	"github.com/milk9111/rigidbodies/scenes"
)

// sceneReloader turns watcher events for the active scene file into resets.
type sceneReloader struct {
	events <-chan string
	errs   <-chan error
	scene  string
	reset  func()
}

func newSceneReloader(w *scenes.Watcher, sceneName string, reset func()) *sceneReloader {
	if w == nil {
		return nil
	}
	return &sceneReloader{
		events: w.Events,
		errs:   w.Errors,
		scene:  filepath.Base(scenes.DiskPath(sceneName)),
		reset:  reset,
	}
}

// drain handles every pending event without blocking and reports whether a
// reset was triggered. It stops listening once the watcher is closed.
func (r *sceneReloader) drain() bool {
	if r == nil || r.events == nil {
		return false
	}
	reloaded := false
	for {
		select {
		case name, ok := <-r.events:
			if !ok {
				r.events = nil
				return reloaded
			}
			if filepath.Base(name) != r.scene || reloaded {
				continue
			}
			log.Printf("game: scene %s changed, reloading", name)
			r.reset()
			reloaded = true
		case err, ok := <-r.errs:
			if !ok {
				r.events = nil
				return reloaded
			}
			log.Printf("game: scene watcher: %v", err)
		default:
			return reloaded
		}
	}
}

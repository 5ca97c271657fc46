// Package object holds the terminal sprites and effects the client draws
// on top of a game snapshot.
package object

import (
	"time"

	"github.com/tomz197/mousehunt/internal/draw"
)

// DrawContext provides drawing resources for objects.
// Canvas coordinates are arena coordinates.
type DrawContext struct {
	Canvas *draw.Canvas      // Half-block canvas scaled to the arena
	Writer *draw.ChunkWriter // Direct terminal output for glyphs and text
}

// Drawable is anything that can paint itself for one frame.
type Drawable interface {
	Draw(ctx DrawContext) error
}

// Object is a client-side effect that lives for a number of frames.
type Object interface {
	Drawable

	// Update advances the object. Returns true if the object should be removed.
	Update(delta time.Duration) (remove bool)
}

// Spawner allows effects to be queued for the next frame.
type Spawner interface {
	Spawn(obj Object)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Effects is an ordered list of live client-side objects.
type Effects struct {
	objects []Object
	toSpawn []Object
}

// Spawn queues an object to be added after the current update.
func (e *Effects) Spawn(obj Object) {
	e.toSpawn = append(e.toSpawn, obj)
}

// Update advances every object, dropping and releasing the finished ones.
func (e *Effects) Update(delta time.Duration) {
	kept := e.objects[:0]
	for _, obj := range e.objects {
		if obj.Update(delta) {
			ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	e.objects = append(kept, e.toSpawn...)
	e.toSpawn = e.toSpawn[:0]
}

// Draw paints every live object.
func (e *Effects) Draw(ctx DrawContext) error {
	for _, obj := range e.objects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of live objects.
func (e *Effects) Len() int {
	return len(e.objects)
}

// Reset releases all objects.
func (e *Effects) Reset() {
	for _, obj := range e.objects {
		ReleaseObject(obj)
	}
	e.objects = e.objects[:0]
	e.toSpawn = e.toSpawn[:0]
}

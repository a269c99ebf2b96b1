package frame

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/engine/scene"
)

// ErrClosed is returned by requests made after the loop has been closed.
var ErrClosed = errors.New("frame loop closed")

// ErrNoAssets is returned by RequestAdd when no asset source is configured.
var ErrNoAssets = errors.New("no asset source configured")

const (
	taskPending int32 = iota
	taskTaken
	taskWithdrawn
)

// task is one unit of work handed to the render goroutine.
// Whoever moves it out of taskPending owns the single write to done.
type task struct {
	run   func() error
	done  chan error
	state atomic.Int32
}

func newTask(fn func() error) *task {
	return &task{run: fn, done: make(chan error, 1)}
}

func (t *task) cancel(err error) {
	if t.state.CompareAndSwap(taskPending, taskWithdrawn) {
		t.done <- err
	}
}

// runPending executes at most one task at the frame boundary. Tasks
// withdrawn by their caller are dropped without counting.
func (o *Orchestrator) runPending() {
	for {
		select {
		case t := <-o.tasks:
			if !t.state.CompareAndSwap(taskPending, taskTaken) {
				continue
			}
			t.done <- t.run()
			return
		default:
			return
		}
	}
}

// Invoke runs fn on the render goroutine at the next frame boundary and
// returns its error. One task is carried per frame; concurrent callers queue
// on the handoff slot in arrival order.
//
// If ctx ends before the render goroutine picks the task up, the task is
// withdrawn and ctx.Err() is returned. Once picked up it runs to completion.
func (o *Orchestrator) Invoke(ctx context.Context, fn func() error) error {
	if o.isClosed() {
		return ErrClosed
	}

	t := newTask(fn)
	select {
	case o.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	case <-o.closed:
		return ErrClosed
	}

	select {
	case err := <-t.done:
		return err
	case <-ctx.Done():
		t.cancel(ctx.Err())
	case <-o.closed:
		t.cancel(ErrClosed)
	}
	return <-t.done
}

// ObjectOption adjusts an object before it becomes visible in the queue.
type ObjectOption func(*scene.Object)

// WithName overrides the default name, which is the descriptor.
func WithName(name string) ObjectOption {
	return func(o *scene.Object) { o.Name = name }
}

// WithMaterial sets the four material colors.
func WithMaterial(diffuse, specular, ambient, emit mgl32.Vec4) ObjectOption {
	return func(o *scene.Object) {
		o.Diffuse = diffuse
		o.Specular = specular
		o.Ambient = ambient
		o.Emit = emit
	}
}

// WithTransform sets position, Euler rotation and scale.
func WithTransform(position, rotation, scale mgl32.Vec3) ObjectOption {
	return func(o *scene.Object) {
		o.Position = position
		o.Rotation = rotation
		o.Scale = scale
	}
}

// RequestAdd decodes desc on the calling goroutine, then blocks until the
// render goroutine has uploaded its geometry and appended the finished
// object to the render queue.
func (o *Orchestrator) RequestAdd(ctx context.Context, desc assets.Descriptor, opts ...ObjectOption) (*scene.Object, error) {
	if o.assets == nil {
		return nil, ErrNoAssets
	}
	mesh, err := o.assets.Load(desc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", desc, err)
	}

	var obj *scene.Object
	err = o.Invoke(ctx, func() error {
		geom, err := o.dev.Upload(mesh)
		if err != nil {
			return fmt.Errorf("upload %s: %w", desc, err)
		}
		created := scene.NewObject(string(desc), geom)
		for _, opt := range opts {
			opt(created)
		}
		o.queue.Add(created)
		obj = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.log.Debug("object added",
		zap.String("object", obj.Name),
		zap.String("asset", string(desc)),
		zap.Int("vertices", len(mesh.Vertices)),
	)
	return obj, nil
}

// RequestRemove drops obj from the render queue and releases its geometry.
// It reports whether obj was queued.
func (o *Orchestrator) RequestRemove(ctx context.Context, obj *scene.Object) (bool, error) {
	var removed bool
	err := o.Invoke(ctx, func() error {
		removed = o.queue.Remove(obj)
		return nil
	})
	return removed, err
}

// Package scene holds the render queue and the objects it draws.
package scene

import "slices"

// Queue is the insertion-ordered list of objects drawn each frame.
// It is owned by the render goroutine and is not safe for concurrent use.
type Queue struct {
	objects []*Object
}

// NewQueue creates an empty render queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add appends a fully constructed object.
func (q *Queue) Add(o *Object) {
	q.objects = append(q.objects, o)
}

// Remove drops the object and releases its geometry.
// Returns false if the object was not queued.
func (q *Queue) Remove(o *Object) bool {
	i := slices.Index(q.objects, o)
	if i < 0 {
		return false
	}
	q.objects = slices.Delete(q.objects, i, i+1)
	if o.Geometry != nil {
		o.Geometry.Release()
	}
	return true
}

// Len returns the number of queued objects.
func (q *Queue) Len() int {
	return len(q.objects)
}

// Objects returns the queue in draw order. The slice must not be modified.
func (q *Queue) Objects() []*Object {
	return q.objects
}

// Contains reports whether o is queued.
func (q *Queue) Contains(o *Object) bool {
	return slices.Contains(q.objects, o)
}

// Clear releases every object's geometry and empties the queue.
func (q *Queue) Clear() {
	for _, o := range q.objects {
		if o.Geometry != nil {
			o.Geometry.Release()
		}
	}
	q.objects = nil
}

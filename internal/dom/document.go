package dom

import (
	"sync"
)

// Mutation describes children added to or removed from a node.
type Mutation struct {
	Target  *Node
	Added   []*Node
	Removed []*Node
}

// Event is dispatched on a node and received by every listener of its document.
type Event struct {
	Name   string
	Target *Node
}

type subscriber struct {
	id int
	fn func([]Mutation)
}

type listener struct {
	id int
	fn func(Event)
}

// Document is the root of a tree. Mutations are recorded and delivered in batches,
// similar to a mutation observer.
type Document struct {
	root *Node

	mu          sync.Mutex
	seq         int
	pending     []Mutation
	subscribers []subscriber
	listeners   map[string][]listener
}

func NewDocument() *Document {
	d := &Document{
		listeners: make(map[string][]listener),
	}
	d.root = &Node{Kind: KindDocument, doc: d}
	return d
}

// Root returns the top-most node.
func (d *Document) Root() *Node {
	return d.root
}

func (d *Document) record(mutation Mutation) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.subscribers) == 0 {
		return
	}
	d.pending = append(d.pending, mutation)
}

// Subscribe registers a callback receiving the mutation batches.
// The returned function unsubscribes.
func (d *Document) Subscribe(fn func([]Mutation)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	id := d.seq
	d.subscribers = append(d.subscribers, subscriber{id: id, fn: fn})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, s := range d.subscribers {
			if s.id == id {
				d.subscribers = append(d.subscribers[:i:i], d.subscribers[i+1:]...)
				return
			}
		}
	}
}

// PendingMutations returns the number of mutations not yet delivered.
func (d *Document) PendingMutations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// FlushMutations delivers the pending mutations to every subscriber as a single batch.
// Mutations made by the subscribers are delivered on the next flush.
func (d *Document) FlushMutations() int {
	d.mu.Lock()
	batch := d.pending
	d.pending = nil
	subscribers := append([]subscriber(nil), d.subscribers...)
	d.mu.Unlock()

	if len(batch) == 0 {
		return 0
	}
	for _, s := range subscribers {
		s.fn(batch)
	}
	return len(batch)
}

// AddEventListener registers a callback for the named event.
// The returned function removes the listener.
func (d *Document) AddEventListener(name string, fn func(Event)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	id := d.seq
	d.listeners[name] = append(d.listeners[name], listener{id: id, fn: fn})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		listeners := d.listeners[name]
		for i, l := range listeners {
			if l.id == id {
				d.listeners[name] = append(listeners[:i:i], listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for the named event.
func (d *Document) ListenerCount(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[name])
}

// Dispatch notifies the listeners of the document owning the target.
// Nothing happens when the target is not connected.
func Dispatch(target *Node, name string) bool {
	d := target.OwnerDocument()
	if d == nil {
		return false
	}
	d.mu.Lock()
	listeners := append([]listener(nil), d.listeners[name]...)
	d.mu.Unlock()

	event := Event{Name: name, Target: target}
	for _, l := range listeners {
		l.fn(event)
	}
	return len(listeners) > 0
}

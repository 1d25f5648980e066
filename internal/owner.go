package internal

import (
	"iter"
	"slices"
	"sync"
)

type Owner struct {
	mu sync.Mutex

	// cleanup functions, run on reset and on dispose
	cleanups []func()

	// run once, when the owner is disposed for good
	finalizers []func()

	// panic error handlers
	catchers []func(any)

	disposed bool

	// set once when attached, the sibling links below are guarded by the parent's mutex
	parent       *Owner
	linked       bool
	prevSibling  *Owner
	nextSibling  *Owner
	childrenHead *Owner
}

// NewOwner creates an owner, child of the current owner if there is one.
func (r *Runtime) NewOwner() *Owner {
	o := &Owner{
		cleanups: make([]func(), 0),
	}

	if parent := r.CurrentOwner(); parent != nil {
		parent.AddChild(o)
	}

	return o
}

func (o *Owner) Run(fn func()) {
	defer o.recover()

	r := GetRuntime()
	r.tracker.RunWithOwner(o, fn)
}

func (o *Owner) recover() {
	if r := recover(); r != nil {
		catchers := o.findCatchers()
		if len(catchers) == 0 {
			panic(r)
		}

		for _, catcher := range catchers {
			catcher(r)
		}
	}
}

// findCatchers walks up the tree to the closest owner listening for errors.
func (o *Owner) findCatchers() []func(any) {
	for n := o; n != nil; n = n.parent {
		n.mu.Lock()
		catchers := slices.Clone(n.catchers)
		n.mu.Unlock()

		if len(catchers) > 0 {
			return catchers
		}
	}

	return nil
}

func (parent *Owner) AddChild(child *Owner) {
	parent.mu.Lock()
	defer parent.mu.Unlock()

	child.parent = parent
	child.linked = true
	child.prevSibling = nil
	child.nextSibling = parent.childrenHead

	if parent.childrenHead != nil {
		parent.childrenHead.prevSibling = child
	}

	parent.childrenHead = child
}

// removeChild unlinks child, if it is still linked to parent.
func (parent *Owner) removeChild(child *Owner) {
	parent.mu.Lock()
	defer parent.mu.Unlock()

	if !child.linked {
		return
	}

	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else if parent.childrenHead == child {
		parent.childrenHead = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	}

	child.linked = false
	child.prevSibling = nil
	child.nextSibling = nil
}

// Children yields the children at the time of the call, most recent first.
func (n *Owner) Children() iter.Seq[*Owner] {
	n.mu.Lock()
	var children []*Owner
	for child := n.childrenHead; child != nil; child = child.nextSibling {
		children = append(children, child)
	}
	n.mu.Unlock()

	return slices.Values(children)
}

// Dispose disposes the children, runs the cleanups then the finalizers.
// Calling it again is a no-op.
func (n *Owner) Dispose() {
	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		return
	}
	n.disposed = true
	n.mu.Unlock()

	n.Reset()

	// a parent outliving its child must not keep it around
	if n.parent != nil {
		n.parent.removeChild(n)
	}

	n.mu.Lock()
	finalizers := n.finalizers
	n.finalizers = nil
	n.mu.Unlock()

	for _, fn := range finalizers {
		fn()
	}
}

// Reset disposes the children and runs the cleanups, leaving the owner usable.
func (n *Owner) Reset() {
	n.DisposeChildren()

	n.mu.Lock()
	cleanups := n.cleanups
	n.cleanups = nil
	n.mu.Unlock()

	for i := 0; i < len(cleanups); i++ {
		cleanups[i]()
	}
}

func (n *Owner) DisposeChildren() {
	for child := range n.Children() {
		child.Dispose()
	}
}

func (n *Owner) Disposed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.disposed
}

// OnCleanup registers fn to run on the next reset or dispose.
// On an already disposed owner fn runs right away.
func (n *Owner) OnCleanup(fn func()) {
	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		fn()
		return
	}
	n.cleanups = append(n.cleanups, fn)
	n.mu.Unlock()
}

func (n *Owner) OnDispose(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.finalizers = append(n.finalizers, fn)
}

func (n *Owner) OnError(fn func(any)) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.catchers = append(n.catchers, fn)
}

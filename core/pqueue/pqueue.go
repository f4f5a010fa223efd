// File: core/pqueue/pqueue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Intrusive ordered queue. Nodes are caller-owned handles linked into a
// doubly linked sequence; insertion appends at the tail, removal of the
// designated root rotates the tail node into the root role, and an explicit
// Reorder pass performs a local payload sift around the root. The queue
// never allocates nodes and knows nothing about time; ordering is defined
// entirely by the caller-supplied outranking rule.

package pqueue

import (
	"github.com/momentics/tickcore/api"
)

// Node is a queue handle embedded in (or owned by) the caller's record.
// The queue borrows nodes between Insert and Pop/Remove; it never frees
// them. The payload may migrate between nodes during Reorder, so owners
// that need to address "the node currently holding item X" must track
// relocation through the OnMove hook.
type Node[T any] struct {
	prev, next *Node[T]
	item       T
	member     bool
}

// Item returns the payload currently held by the node.
func (n *Node[T]) Item() T { return n.item }

// SetItem seeds the node's payload. Must not be called while the node
// is a queue member.
func (n *Node[T]) SetItem(v T) { n.item = v }

// Member reports whether the node is currently linked into a queue.
func (n *Node[T]) Member() bool { return n.member }

// Outranks reports whether payload a takes priority over payload b.
type Outranks[T any] func(a, b T) bool

// OnMove is invoked whenever a payload changes holder node, including on
// Insert. It lets the owner keep an item→node back-reference current.
type OnMove[T any] func(item T, n *Node[T])

// Queue is an intrusive ordered queue. The zero value is unusable; call
// Init (or New) before any other operation.
type Queue[T any] struct {
	head, tail *Node[T]
	root       *Node[T]
	outranks   Outranks[T]
	onMove     OnMove[T]
	length     int
}

// New constructs an initialized queue.
func New[T any](outranks Outranks[T], onMove OnMove[T]) (*Queue[T], error) {
	q := &Queue[T]{}
	if err := q.Init(outranks, onMove); err != nil {
		return nil, err
	}
	return q, nil
}

// Init resets the queue to empty and stores the ordering rule used for
// all future decisions. onMove may be nil.
func (q *Queue[T]) Init(outranks Outranks[T], onMove OnMove[T]) error {
	if outranks == nil {
		return api.ErrInvalidArgument
	}
	q.head, q.tail, q.root = nil, nil, nil
	q.outranks = outranks
	q.onMove = onMove
	q.length = 0
	return nil
}

// Len returns the number of member nodes.
func (q *Queue[T]) Len() int { return q.length }

// Insert appends node at the tail. The first insert makes the node head,
// tail, and root simultaneously. No re-balance happens here; callers batch
// Reorder explicitly. Rejected calls leave the queue unchanged.
func (q *Queue[T]) Insert(n *Node[T]) error {
	if n == nil {
		return api.ErrInvalidArgument
	}
	if n.member {
		return api.ErrAlreadyExists
	}
	n.prev, n.next = nil, nil
	if q.head == nil {
		q.head, q.tail, q.root = n, n, n
	} else {
		n.prev = q.tail
		q.tail.next = n
		q.tail = n
	}
	n.member = true
	q.length++
	if q.onMove != nil {
		q.onMove(n.item, n)
	}
	return nil
}

// Peek returns the root node without removing it, or false if empty.
func (q *Queue[T]) Peek() (*Node[T], bool) {
	if q.root == nil {
		return nil, false
	}
	return q.root, true
}

// Pop detaches and returns the root node. The node is fully unlinked and
// the tail node rotates into the root role; the root never advances to the
// physical list head. Returns false if empty.
func (q *Queue[T]) Pop() (*Node[T], bool) {
	if q.root == nil {
		return nil, false
	}
	r := q.root
	q.unlink(r)
	q.root = q.tail
	return r, true
}

// Remove unlinks an arbitrary member node, fixing head/tail/root roles.
// Root removal follows the same tail rotation as Pop.
func (q *Queue[T]) Remove(n *Node[T]) error {
	if n == nil {
		return api.ErrInvalidArgument
	}
	if !n.member {
		return api.ErrNotFound
	}
	wasRoot := q.root == n
	q.unlink(n)
	if wasRoot {
		q.root = q.tail
	}
	return nil
}

// Reorder performs the local sift around the root: while one of the root
// node's two list-adjacent neighbors outranks the root payload, exchange
// the two payloads in place (list positions never change) and test the
// root again. Each swap strictly improves the root payload, so the pass
// converges; it only ever examines the root's immediate neighbors and does
// not produce a globally sorted sequence — the root is merely locally
// correct. No-op on an empty queue.
func (q *Queue[T]) Reorder() {
	r := q.root
	if r == nil {
		return
	}
	for {
		top := r
		if r.next != nil && q.outranks(r.next.item, top.item) {
			top = r.next
		}
		if r.prev != nil && q.outranks(r.prev.item, top.item) {
			top = r.prev
		}
		if top == r {
			return
		}
		r.item, top.item = top.item, r.item
		if q.onMove != nil {
			q.onMove(r.item, r)
			q.onMove(top.item, top)
		}
	}
}

// unlink detaches n and clears its links and membership.
func (q *Queue[T]) unlink(n *Node[T]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		q.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		q.tail = n.prev
	}
	n.prev, n.next = nil, nil
	n.member = false
	q.length--
}

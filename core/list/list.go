// File: core/list/list.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Intrusive doubly linked list over caller-owned nodes. The list never
// allocates: callers embed Node handles in their own records and link them
// in and out. Single-threaded cooperative, like the rest of the core.

// Package list implements an intrusive doubly linked list with
// caller-owned nodes.
package list

import (
	"github.com/momentics/tickcore/api"
)

// Node is a list handle embedded in the caller's record.
type Node[T any] struct {
	prev, next *Node[T]
	item       T
	member     bool
}

// Item returns the node's payload.
func (n *Node[T]) Item() T { return n.item }

// SetItem sets the node's payload.
func (n *Node[T]) SetItem(v T) { n.item = v }

// Member reports whether the node is currently linked into a list.
func (n *Node[T]) Member() bool { return n.member }

// Next returns the following node, or nil at the tail.
func (n *Node[T]) Next() *Node[T] { return n.next }

// Prev returns the preceding node, or nil at the head.
func (n *Node[T]) Prev() *Node[T] { return n.prev }

// List is an intrusive doubly linked list. The zero value is an empty
// list ready for use.
type List[T any] struct {
	head, tail *Node[T]
	length     int
}

// Init resets the list to empty without touching member nodes.
func (l *List[T]) Init() {
	l.head, l.tail = nil, nil
	l.length = 0
}

// Empty reports whether the list has no nodes.
func (l *List[T]) Empty() bool { return l.head == nil }

// Len returns the number of linked nodes.
func (l *List[T]) Len() int { return l.length }

// PeekHead returns the first node, or false if empty.
func (l *List[T]) PeekHead() (*Node[T], bool) {
	if l.head == nil {
		return nil, false
	}
	return l.head, true
}

// PeekTail returns the last node, or false if empty.
func (l *List[T]) PeekTail() (*Node[T], bool) {
	if l.tail == nil {
		return nil, false
	}
	return l.tail, true
}

// Append links node at the end of the list.
func (l *List[T]) Append(n *Node[T]) error {
	if n == nil {
		return api.ErrInvalidArgument
	}
	if n.member {
		return api.ErrAlreadyExists
	}
	n.next = nil
	n.prev = l.tail
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	n.member = true
	l.length++
	return nil
}

// Prepend links node at the beginning of the list.
func (l *List[T]) Prepend(n *Node[T]) error {
	if n == nil {
		return api.ErrInvalidArgument
	}
	if n.member {
		return api.ErrAlreadyExists
	}
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	n.member = true
	l.length++
	return nil
}

// InsertAfter links n directly after at, which must be a member.
func (l *List[T]) InsertAfter(at, n *Node[T]) error {
	if at == nil || n == nil {
		return api.ErrInvalidArgument
	}
	if !at.member {
		return api.ErrNotFound
	}
	if n.member {
		return api.ErrAlreadyExists
	}
	n.prev = at
	n.next = at.next
	if at.next != nil {
		at.next.prev = n
	} else {
		l.tail = n
	}
	at.next = n
	n.member = true
	l.length++
	return nil
}

// InsertBefore links n directly before at, which must be a member.
func (l *List[T]) InsertBefore(at, n *Node[T]) error {
	if at == nil || n == nil {
		return api.ErrInvalidArgument
	}
	if !at.member {
		return api.ErrNotFound
	}
	if n.member {
		return api.ErrAlreadyExists
	}
	n.next = at
	n.prev = at.prev
	if at.prev != nil {
		at.prev.next = n
	} else {
		l.head = n
	}
	at.prev = n
	n.member = true
	l.length++
	return nil
}

// Remove unlinks a member node, fixing head/tail as needed.
func (l *List[T]) Remove(n *Node[T]) error {
	if n == nil {
		return api.ErrInvalidArgument
	}
	if !n.member {
		return api.ErrNotFound
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	n.member = false
	l.length--
	return nil
}

// Each walks the list head to tail, calling fn for every node. The walk
// is safe against removal of the visited node from within fn.
func (l *List[T]) Each(fn func(n *Node[T])) {
	for n := l.head; n != nil; {
		next := n.next
		fn(n)
		n = next
	}
}
